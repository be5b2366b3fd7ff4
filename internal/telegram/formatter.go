package telegram

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/pfrederiksen/quiz-results/internal/submission"
)

// TimestampLayout renders the submission time as month/day/year with a 12-hour clock
const TimestampLayout = "1/2/2006, 3:04:05 PM"

const notAvailable = "N/A"

// performance tiers, highest first; the first threshold the score reaches wins
var tiers = []struct {
	min     float64
	emoji   string
	message string
}{
	{90, "🏅", "Excellent performance!"},
	{80, "⭐", "Very good!"},
	{70, "✅", "Good job!"},
	{60, "📝", "Not bad, keep practicing!"},
}

// FormatResult formats a validated submission as a Telegram message.
// now is rendered as-is, so callers convert it to the display time zone first.
// A missing correctAnswers or totalQuestions renders as N/A rather than the
// literal "undefined" a JavaScript template would produce.
func FormatResult(sub *submission.Submission, now time.Time) string {
	score := sub.Score.Float()

	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("<b>📊 New Test Result</b> %s\n\n", ResultEmoji(score)))

	msg.WriteString(fmt.Sprintf("<b>Student:</b> %s\n", escape(sub.Student)))
	msg.WriteString(fmt.Sprintf("<b>Score:</b> %s%%\n", escape(sub.Score)))
	msg.WriteString(fmt.Sprintf("<b>Correct Answers:</b> %s/%s\n", escape(sub.CorrectAnswers), escape(sub.TotalQuestions)))
	msg.WriteString(fmt.Sprintf("<b>Time Spent:</b> %s\n\n", FormatTimeSpent(sub.TimeSpent)))

	msg.WriteString(fmt.Sprintf("<b>Date:</b> %s\n\n", now.Format(TimestampLayout)))

	msg.WriteString(PerformanceMessage(score))

	return strings.TrimSpace(msg.String())
}

// ResultEmoji picks the header emoji for a score
func ResultEmoji(score float64) string {
	switch {
	case score >= 80:
		return "🎉"
	case score >= 60:
		return "👍"
	default:
		return "📚"
	}
}

// PerformanceMessage returns the closing line for a score, including its emoji and markup
func PerformanceMessage(score float64) string {
	for _, tier := range tiers {
		if score >= tier.min {
			return fmt.Sprintf("%s <b>%s</b>", tier.emoji, tier.message)
		}
	}
	return "📖 <b>More practice needed.</b>"
}

// FormatTimeSpent renders seconds as "<m>m <s>s". Falsy values, including 0, render as N/A.
func FormatTimeSpent(seconds submission.Value) string {
	if !seconds.Truthy() {
		return notAvailable
	}

	s := seconds.Float()
	minutes := math.Floor(s / 60)
	remaining := math.Mod(s, 60)

	return fmt.Sprintf("%sm %ss", submission.FormatNumber(minutes), submission.FormatNumber(remaining))
}

// escape renders an optional field for HTML parse mode
func escape(v submission.Value) string {
	if !v.Present() {
		return notAvailable
	}
	return html.EscapeString(v.String())
}

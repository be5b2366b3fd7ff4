package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/quiz-results/internal/submission"
)

var fixedNow = time.Date(2026, time.March, 4, 15, 7, 9, 0, time.UTC)

func mustParse(t *testing.T, body string) *submission.Submission {
	t.Helper()
	sub, err := submission.Parse([]byte(body))
	if err != nil {
		t.Fatalf("Parse(%s) error = %v", body, err)
	}
	return sub
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains []string
		excludes []string
	}{
		{
			name: "complete submission",
			body: `{"student":"Alice","score":95,"correctAnswers":19,"totalQuestions":20,"timeSpent":125}`,
			contains: []string{
				"<b>📊 New Test Result</b> 🎉",
				"<b>Student:</b> Alice",
				"<b>Score:</b> 95%",
				"<b>Correct Answers:</b> 19/20",
				"<b>Time Spent:</b> 2m 5s",
				"<b>Date:</b> 3/4/2026, 3:07:09 PM",
				"🏅 <b>Excellent performance!</b>",
			},
		},
		{
			name: "optional fields missing",
			body: `{"student":"Bob","score":42}`,
			contains: []string{
				"New Test Result</b> 📚",
				"<b>Correct Answers:</b> N/A/N/A",
				"<b>Time Spent:</b> N/A",
				"📖 <b>More practice needed.</b>",
			},
		},
		{
			name: "correct answers above total are kept as sent",
			body: `{"student":"Carol","score":65,"correctAnswers":25,"totalQuestions":20,"timeSpent":0}`,
			contains: []string{
				"New Test Result</b> 👍",
				"25/20",
				"<b>Time Spent:</b> N/A",
				"📝 <b>Not bad, keep practicing!</b>",
			},
		},
		{
			name: "student name is escaped",
			body: `{"student":"<i>Dave & Co</i>","score":75}`,
			contains: []string{
				"<b>Student:</b> &lt;i&gt;Dave &amp; Co&lt;/i&gt;",
				"✅ <b>Good job!</b>",
			},
			excludes: []string{"<i>"},
		},
		{
			name: "single element arrays coerce like their only element",
			body: `{"student":"Fay","score":[95],"correctAnswers":[19],"totalQuestions":20,"timeSpent":[125]}`,
			contains: []string{
				"New Test Result</b> 🎉",
				"<b>Score:</b> 95%",
				"<b>Correct Answers:</b> 19/20",
				"<b>Time Spent:</b> 2m 5s",
				"🏅 <b>Excellent performance!</b>",
			},
		},
		{
			name: "non-numeric time spent",
			body: `{"student":"Gus","score":50,"timeSpent":"abc"}`,
			contains: []string{
				"<b>Time Spent:</b> NaNm NaNs",
			},
		},
		{
			name: "huge score uses exponent notation",
			body: `{"student":"Hal","score":1e21}`,
			contains: []string{
				"<b>Score:</b> 1e+21%",
				"🏅 <b>Excellent performance!</b>",
			},
		},
		{
			name: "fractional score",
			body: `{"student":"Eve","score":89.5}`,
			contains: []string{
				"<b>Score:</b> 89.5%",
				"⭐ <b>Very good!</b>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatResult(mustParse(t, tt.body), fixedNow)

			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("FormatResult() missing %q in message:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("FormatResult() should not contain %q:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestFormatResult_Layout(t *testing.T) {
	sub := mustParse(t, `{"student":"Alice","score":95,"correctAnswers":19,"totalQuestions":20,"timeSpent":125}`)

	want := "<b>📊 New Test Result</b> 🎉\n" +
		"\n" +
		"<b>Student:</b> Alice\n" +
		"<b>Score:</b> 95%\n" +
		"<b>Correct Answers:</b> 19/20\n" +
		"<b>Time Spent:</b> 2m 5s\n" +
		"\n" +
		"<b>Date:</b> 3/4/2026, 3:07:09 PM\n" +
		"\n" +
		"🏅 <b>Excellent performance!</b>"

	if got := FormatResult(sub, fixedNow); got != want {
		t.Errorf("FormatResult() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatResult_UsesGivenZone(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	sub := mustParse(t, `{"student":"Alice","score":95}`)

	got := FormatResult(sub, fixedNow.In(loc))
	if !strings.Contains(got, "3/4/2026, 5:07:09 PM") {
		t.Errorf("FormatResult() did not render in the given zone:\n%s", got)
	}
}

func TestResultEmoji(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "🎉"},
		{80, "🎉"},
		{79.999, "👍"},
		{60, "👍"},
		{59.999, "📚"},
		{0, "📚"},
		{-5, "📚"},
		{150, "🎉"},
	}

	for _, tt := range tests {
		if got := ResultEmoji(tt.score); got != tt.want {
			t.Errorf("ResultEmoji(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestPerformanceMessage(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Excellent performance!"},
		{90, "Excellent performance!"},
		{89.999, "Very good!"},
		{80, "Very good!"},
		{79.999, "Good job!"},
		{70, "Good job!"},
		{69.999, "Not bad, keep practicing!"},
		{60, "Not bad, keep practicing!"},
		{59.999, "More practice needed."},
		{0, "More practice needed."},
		{-10, "More practice needed."},
	}

	for _, tt := range tests {
		got := PerformanceMessage(tt.score)
		if !strings.Contains(got, "<b>"+tt.want+"</b>") {
			t.Errorf("PerformanceMessage(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFormatTimeSpent(t *testing.T) {
	tests := []struct {
		name  string
		value submission.Value
		want  string
	}{
		{"missing", submission.Missing, "N/A"},
		{"zero", submission.NumberValue(0), "N/A"},
		{"empty string", submission.TextValue(""), "N/A"},
		{"one minute five", submission.NumberValue(65), "1m 5s"},
		{"under a minute", submission.NumberValue(59), "0m 59s"},
		{"just under an hour", submission.NumberValue(3599), "59m 59s"},
		{"over an hour stays in minutes", submission.NumberValue(3725), "62m 5s"},
		{"fractional seconds", submission.NumberValue(65.5), "1m 5.5s"},
		{"numeric string", submission.TextValue("125"), "2m 5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimeSpent(tt.value); got != tt.want {
				t.Errorf("FormatTimeSpent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTimeSpent_Null(t *testing.T) {
	sub := mustParse(t, `{"student":"x","score":1,"timeSpent":null}`)
	if got := FormatTimeSpent(sub.TimeSpent); got != "N/A" {
		t.Errorf("FormatTimeSpent(null) = %q, want N/A", got)
	}
}

func TestPlainText(t *testing.T) {
	sub := mustParse(t, `{"student":"Tom & Jerry","score":95,"correctAnswers":19,"totalQuestions":20,"timeSpent":125}`)

	got, err := PlainText(FormatResult(sub, fixedNow))
	if err != nil {
		t.Fatalf("PlainText() error = %v", err)
	}

	if strings.Contains(got, "<b>") {
		t.Errorf("PlainText() kept markup:\n%s", got)
	}
	for _, want := range []string{"📊 New Test Result 🎉", "Student: Tom & Jerry", "Score: 95%", "🏅 Excellent performance!"} {
		if !strings.Contains(got, want) {
			t.Errorf("PlainText() missing %q in:\n%s", want, got)
		}
	}
}

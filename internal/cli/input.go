package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/quiz-results/internal/submission"
)

// submissionFlags are the flags shared by send and preview
type submissionFlags struct {
	file    string
	student string
	score   string
	correct string
	total   string
	time    string
}

func (f *submissionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read the submission as JSON from a file ('-' for stdin)")
	cmd.Flags().StringVar(&f.student, "student", "", "Student name")
	cmd.Flags().StringVar(&f.score, "score", "", "Score in percent")
	cmd.Flags().StringVar(&f.correct, "correct", "", "Number of correct answers")
	cmd.Flags().StringVar(&f.total, "total", "", "Number of questions")
	cmd.Flags().StringVar(&f.time, "time", "", "Time spent in seconds")
}

// build reads the submission from --file or the individual flags and validates it
func (f *submissionFlags) build(cmd *cobra.Command) (*submission.Submission, error) {
	var sub *submission.Submission

	if f.file != "" {
		body, err := f.readFile(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		sub, err = submission.Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.file, err)
		}
	} else {
		flags := cmd.Flags()
		sub = &submission.Submission{
			Student:        flagValue(flags.Changed("student"), f.student),
			Score:          flagValue(flags.Changed("score"), f.score),
			CorrectAnswers: flagValue(flags.Changed("correct"), f.correct),
			TotalQuestions: flagValue(flags.Changed("total"), f.total),
			TimeSpent:      flagValue(flags.Changed("time"), f.time),
		}
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}
	return sub, nil
}

func (f *submissionFlags) readFile(stdin io.Reader) ([]byte, error) {
	if f.file == "-" {
		body, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return body, nil
	}

	body, err := os.ReadFile(f.file)
	if err != nil {
		return nil, fmt.Errorf("reading submission file: %w", err)
	}
	return body, nil
}

// flagValue turns a flag into a submission value; numbers stay numeric
func flagValue(set bool, raw string) submission.Value {
	if !set {
		return submission.Missing
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return submission.NumberValue(n)
	}
	return submission.TextValue(raw)
}

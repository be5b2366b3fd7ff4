package submission

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	// ErrMissingFields is returned by Validate when student or score is missing
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidJSON is returned by Parse when the body is not valid JSON
	ErrInvalidJSON = errors.New("request body is not valid JSON")
)

// Submission is a single quiz result as sent by the client
type Submission struct {
	Student        Value
	Score          Value
	CorrectAnswers Value
	TotalQuestions Value
	TimeSpent      Value // seconds
}

// Parse extracts a Submission from a JSON request body.
// Unknown fields are ignored and a body that is not an object yields a
// Submission with every field missing. Invalid JSON returns ErrInvalidJSON
// together with an empty Submission.
func Parse(body []byte) (*Submission, error) {
	if !gjson.ValidBytes(body) {
		return &Submission{}, ErrInvalidJSON
	}

	fields := gjson.GetManyBytes(body, "student", "score", "correctAnswers", "totalQuestions", "timeSpent")

	return &Submission{
		Student:        fromResult(fields[0]),
		Score:          fromResult(fields[1]),
		CorrectAnswers: fromResult(fields[2]),
		TotalQuestions: fromResult(fields[3]),
		TimeSpent:      fromResult(fields[4]),
	}, nil
}

// Validate checks the required fields. A student must be truthy; a score
// only has to be present, so an explicit null score is accepted.
func (s *Submission) Validate() error {
	if !s.Student.Truthy() {
		return fmt.Errorf("%w: student", ErrMissingFields)
	}
	if !s.Score.Present() {
		return fmt.Errorf("%w: score", ErrMissingFields)
	}
	return nil
}

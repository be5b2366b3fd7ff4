package handler

import (
	"errors"
	"net/http"

	"github.com/pfrederiksen/quiz-results/internal/metrics"
)

// Kind classifies a failed request. Every Kind maps to one status code and
// one fixed, non-leaking message.
type Kind int

const (
	// KindInternal covers anything unexpected, including panics
	KindInternal Kind = iota
	// KindMethod is a request method other than POST or OPTIONS
	KindMethod
	// KindValidation is a submission without student or score
	KindValidation
	// KindConfiguration means the bot token or chat ID is missing
	KindConfiguration
	// KindDelivery is a transport failure or a rejection by the Bot API
	KindDelivery
)

var (
	errMissingCredentials = errors.New("telegram credentials not configured")
	errBodyTooLarge       = errors.New("request body too large")
)

// Error is a request failure with its Kind. Err keeps the underlying cause
// for logs; it is never written to the response.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// asError converts any error to an *Error, treating unknown errors as internal
func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(KindInternal, err)
}

func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method error"
	case KindValidation:
		return "validation error"
	case KindConfiguration:
		return "configuration error"
	case KindDelivery:
		return "delivery error"
	default:
		return "internal error"
	}
}

// Status returns the HTTP status code for the kind
func (k Kind) Status() int {
	switch k {
	case KindMethod:
		return http.StatusMethodNotAllowed
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the error text sent to the caller
func (k Kind) Message() string {
	switch k {
	case KindMethod:
		return "Method not allowed"
	case KindValidation:
		return "Missing required fields"
	case KindConfiguration:
		return "Server configuration error"
	case KindDelivery:
		return "Failed to send notification"
	default:
		return "Internal server error"
	}
}

func (k Kind) outcome() metrics.Outcome {
	switch k {
	case KindMethod:
		return metrics.OutcomeRejectedMethod
	case KindValidation:
		return metrics.OutcomeRejectedValidation
	case KindConfiguration:
		return metrics.OutcomeRejectedConfig
	case KindDelivery:
		return metrics.OutcomeDeliveryFailed
	default:
		return metrics.OutcomeInternalFailure
	}
}

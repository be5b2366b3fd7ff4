package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pfrederiksen/quiz-results/internal/metrics"
)

func TestKind_Mapping(t *testing.T) {
	tests := []struct {
		kind    Kind
		status  int
		message string
		outcome metrics.Outcome
	}{
		{KindMethod, http.StatusMethodNotAllowed, "Method not allowed", metrics.OutcomeRejectedMethod},
		{KindValidation, http.StatusBadRequest, "Missing required fields", metrics.OutcomeRejectedValidation},
		{KindConfiguration, http.StatusInternalServerError, "Server configuration error", metrics.OutcomeRejectedConfig},
		{KindDelivery, http.StatusInternalServerError, "Failed to send notification", metrics.OutcomeDeliveryFailed},
		{KindInternal, http.StatusInternalServerError, "Internal server error", metrics.OutcomeInternalFailure},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.kind.Status())
			assert.Equal(t, tt.message, tt.kind.Message())
			assert.Equal(t, tt.outcome, tt.kind.outcome())
		})
	}
}

func TestError_Wrapping(t *testing.T) {
	cause := errors.New("chat not found")
	err := fmt.Errorf("sending: %w", newError(KindDelivery, cause))

	assert.ErrorIs(t, err, cause)

	e := asError(err)
	assert.Equal(t, KindDelivery, e.Kind)
	assert.Equal(t, "delivery error: chat not found", e.Error())

	assert.Equal(t, "method error", (&Error{Kind: KindMethod}).Error())
}

func TestAsError_UnknownIsInternal(t *testing.T) {
	e := asError(errors.New("surprise"))
	assert.Equal(t, KindInternal, e.Kind)
}

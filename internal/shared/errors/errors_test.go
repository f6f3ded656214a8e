package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsufficientInventoryError(t *testing.T) {
	err := NewInsufficientInventoryError(5, 2)

	assert.Equal(t, http.StatusConflict, err.Code)
	assert.True(t, IsInsufficientInventoryError(err))

	wrapped := fmt.Errorf("submit payment: %w", err)
	remaining, ok := RemainingFromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 2, remaining)

	_, ok = RemainingFromError(NewConflictError("duplicate reference"))
	assert.False(t, ok)
}

func TestPersistenceError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewPersistenceError("failed to claim tickets", cause)

	assert.Equal(t, http.StatusServiceUnavailable, err.Code)
	assert.True(t, IsPersistenceError(err))
	assert.ErrorIs(t, err, cause)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", NewNotFoundError("raffle not found"), IsNotFoundError},
		{"validation", NewValidationError("quantity must be positive"), IsValidationError},
		{"conflict", NewConflictError("reference already used"), IsConflictError},
		{"state transition", NewInvalidStateTransitionError("payment already verified"), IsInvalidStateTransitionError},
		{"already drawn", NewAlreadyDrawnError("raffle already drawn"), IsAlreadyDrawnError},
		{"no paid tickets", NewNoPaidTicketsError("nothing to draw"), IsNoPaidTicketsError},
		{"not open", NewRaffleNotOpenError("sales closed"), IsRaffleNotOpenError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(fmt.Errorf("wrapped: %w", tt.err)))
			assert.False(t, tt.check(stderrors.New("plain")))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(stderrors.New("Error 1062: Duplicate entry 'ABC' for key 'payments.idx_reference'")))
	assert.True(t, IsDuplicateError(stderrors.New("UNIQUE constraint failed: payments.reference")))
	assert.False(t, IsDuplicateError(stderrors.New("connection refused")))
	assert.False(t, IsDuplicateError(nil))
}

package usecases

import (
	stderrors "errors"

	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/shared/errors"
)

// mutationError classifies an error returned by a raffle aggregate method.
func mutationError(err error) error {
	if stderrors.Is(err, raffle.ErrRaffleDrawn) {
		return errors.NewInvalidStateTransitionError("raffle already drawn")
	}
	return errors.NewValidationError(err.Error())
}

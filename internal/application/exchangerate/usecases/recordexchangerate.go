package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/domain/exchangerate"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type RecordExchangeRateCommand struct {
	Value  float64
	Source string
}

type RecordExchangeRateResult struct {
	Rate *exchangerate.ExchangeRate
}

type RecordExchangeRateUseCase struct {
	repo   exchangerate.Repository
	logger logger.Interface
}

func NewRecordExchangeRateUseCase(repo exchangerate.Repository, logger logger.Interface) *RecordExchangeRateUseCase {
	return &RecordExchangeRateUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *RecordExchangeRateUseCase) Execute(ctx context.Context, cmd RecordExchangeRateCommand) (*RecordExchangeRateResult, error) {
	rate, err := exchangerate.NewExchangeRate(cmd.Value, cmd.Source)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.repo.Create(ctx, rate); err != nil {
		uc.logger.Errorw("failed to record exchange rate", "error", err, "value", cmd.Value)
		return nil, errors.Persistence("failed to record exchange rate", err)
	}

	uc.logger.Infow("exchange rate recorded", "id", rate.ID(), "value", rate.Value(), "source", rate.Source())
	return &RecordExchangeRateResult{Rate: rate}, nil
}

package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/domain/exchangerate"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type GetLatestExchangeRateQuery struct {
	// HistoryLimit, when positive, also returns that many recent rates.
	HistoryLimit int
}

type GetLatestExchangeRateResult struct {
	Latest  *exchangerate.ExchangeRate
	History []*exchangerate.ExchangeRate
}

type GetLatestExchangeRateUseCase struct {
	repo   exchangerate.Repository
	logger logger.Interface
}

func NewGetLatestExchangeRateUseCase(repo exchangerate.Repository, logger logger.Interface) *GetLatestExchangeRateUseCase {
	return &GetLatestExchangeRateUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *GetLatestExchangeRateUseCase) Execute(ctx context.Context, query GetLatestExchangeRateQuery) (*GetLatestExchangeRateResult, error) {
	latest, err := uc.repo.Latest(ctx)
	if err != nil {
		uc.logger.Errorw("failed to get latest exchange rate", "error", err)
		return nil, errors.Persistence("failed to get latest exchange rate", err)
	}
	if latest == nil {
		return nil, errors.NewNotFoundError("no exchange rate recorded")
	}

	result := &GetLatestExchangeRateResult{Latest: latest}
	if query.HistoryLimit > 0 {
		history, err := uc.repo.List(ctx, query.HistoryLimit)
		if err != nil {
			return nil, errors.Persistence("failed to list exchange rates", err)
		}
		result.History = history
	}
	return result, nil
}

package usecases

import "context"

type RecordExchangeRateExecutor interface {
	Execute(ctx context.Context, cmd RecordExchangeRateCommand) (*RecordExchangeRateResult, error)
}

type GetLatestExchangeRateExecutor interface {
	Execute(ctx context.Context, query GetLatestExchangeRateQuery) (*GetLatestExchangeRateResult, error)
}

package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/domain/exchangerate"
)

type mockRepository struct {
	CreateFunc func(ctx context.Context, rate *exchangerate.ExchangeRate) error
	LatestFunc func(ctx context.Context) (*exchangerate.ExchangeRate, error)
	ListFunc   func(ctx context.Context, limit int) ([]*exchangerate.ExchangeRate, error)
}

func (m *mockRepository) Create(ctx context.Context, rate *exchangerate.ExchangeRate) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rate)
	}
	rate.SetID(1)
	return nil
}

func (m *mockRepository) Latest(ctx context.Context) (*exchangerate.ExchangeRate, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepository) List(ctx context.Context, limit int) ([]*exchangerate.ExchangeRate, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit)
	}
	return nil, nil
}

package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/domain/exchangerate"
	"github.com/modorifa/rifas/internal/shared/errors"
)

// RateResolver picks the VES per USD rate applied to a payment.
type RateResolver struct {
	repo exchangerate.Repository
}

func NewRateResolver(repo exchangerate.Repository) *RateResolver {
	return &RateResolver{repo: repo}
}

// Resolve returns preferred when positive, otherwise the latest recorded rate.
func (r *RateResolver) Resolve(ctx context.Context, preferred float64) (float64, error) {
	if preferred > 0 {
		return preferred, nil
	}
	latest, err := r.repo.Latest(ctx)
	if err != nil {
		return 0, errors.Persistence("failed to get latest exchange rate", err)
	}
	if latest == nil {
		return 0, errors.NewConflictError("exchange rate unavailable")
	}
	return latest.Value(), nil
}

// Package exchangerate holds the append-only history of VES per USD rates.
package exchangerate

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/modorifa/rifas/internal/shared/biztime"
)

type ExchangeRate struct {
	id         uint
	value      float64
	source     string
	recordedAt time.Time
}

func NewExchangeRate(value float64, source string) (*ExchangeRate, error) {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("exchange rate must be a positive number")
	}
	return &ExchangeRate{
		value:      value,
		source:     source,
		recordedAt: biztime.NowUTC(),
	}, nil
}

func (e *ExchangeRate) ID() uint {
	return e.id
}

func (e *ExchangeRate) Value() float64 {
	return e.value
}

func (e *ExchangeRate) Source() string {
	return e.source
}

func (e *ExchangeRate) RecordedAt() time.Time {
	return e.recordedAt
}

func (e *ExchangeRate) SetID(id uint) {
	e.id = id
}

func ReconstructExchangeRate(id uint, value float64, source string, recordedAt time.Time) *ExchangeRate {
	return &ExchangeRate{id: id, value: value, source: source, recordedAt: recordedAt}
}

type Repository interface {
	Create(ctx context.Context, rate *ExchangeRate) error
	// Latest returns the most recently recorded rate, or nil when none exists.
	Latest(ctx context.Context) (*ExchangeRate, error)
	List(ctx context.Context, limit int) ([]*ExchangeRate, error)
}

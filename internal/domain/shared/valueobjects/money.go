package valueobjects

import (
	"fmt"
	"math"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyVES Currency = "VES"
)

func (c Currency) IsValid() bool {
	return c == CurrencyUSD || c == CurrencyVES
}

func (c Currency) String() string {
	return string(c)
}

func NewCurrency(s string) (Currency, error) {
	c := Currency(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid currency: %s", s)
	}
	return c, nil
}

// Money is an amount in minor units (cents) tagged with its currency.
type Money struct {
	amountInCents int64
	currency      Currency
}

func NewMoney(amountInCents int64, currency Currency) Money {
	return Money{amountInCents: amountInCents, currency: currency}
}

// NewMoneyFromFloat rounds a decimal amount to cents.
func NewMoneyFromFloat(amount float64, currency Currency) Money {
	return Money{amountInCents: int64(math.Round(amount * 100)), currency: currency}
}

func (m Money) AmountInCents() int64 {
	return m.amountInCents
}

func (m Money) Amount() float64 {
	return float64(m.amountInCents) / 100.0
}

func (m Money) Currency() Currency {
	return m.currency
}

func (m Money) IsPositive() bool {
	return m.amountInCents > 0
}

func (m Money) Equals(other Money) bool {
	return m.amountInCents == other.amountInCents && m.currency == other.currency
}

// Multiply scales the amount, used for unit price times quantity.
func (m Money) Multiply(n int) Money {
	return Money{amountInCents: m.amountInCents * int64(n), currency: m.currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Amount(), m.currency)
}

// Convert expresses m in target using rate, quoted as VES per one USD.
// Conversion to the same currency returns m unchanged.
func Convert(m Money, target Currency, rate float64) (Money, error) {
	if !target.IsValid() {
		return Money{}, fmt.Errorf("invalid target currency: %s", target)
	}
	if m.currency == target {
		return m, nil
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Money{}, fmt.Errorf("exchange rate must be a positive number, got %v", rate)
	}

	var cents float64
	switch target {
	case CurrencyVES:
		cents = float64(m.amountInCents) * rate
	default:
		cents = float64(m.amountInCents) / rate
	}
	return Money{amountInCents: int64(math.Round(cents)), currency: target}, nil
}

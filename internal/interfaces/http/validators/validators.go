// Package validators registers the binding tags used by request DTOs.
package validators

import (
	"strings"
	"sync"

	paymentvo "github.com/modorifa/rifas/internal/domain/payment/valueobjects"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/shared/utils"
)

const (
	TagIDType        = "id_type"
	TagTicketNumber  = "ticket_number"
	TagPaymentMethod = "payment_method"
)

var (
	once    sync.Once
	initErr error
)

// Register installs the custom tags on gin's validator. Safe to call more
// than once.
func Register() error {
	once.Do(func() {
		rules := map[string]func(string) bool{
			TagIDType:        IsIDType,
			TagTicketNumber:  IsTicketNumber,
			TagPaymentMethod: IsPaymentMethod,
		}
		for tag, fn := range rules {
			if err := utils.RegisterValidation(tag, fn); err != nil {
				initErr = err
				return
			}
		}
	})
	return initErr
}

func IsIDType(s string) bool {
	return sharedvo.IDType(strings.ToUpper(strings.TrimSpace(s))).IsValid()
}

// IsTicketNumber accepts digits only; width is checked against the raffle.
func IsTicketNumber(s string) bool {
	if s == "" || len(s) > 9 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func IsPaymentMethod(s string) bool {
	return paymentvo.PaymentMethod(s).IsValid()
}

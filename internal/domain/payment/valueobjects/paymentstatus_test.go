package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus(t *testing.T) {
	assert.True(t, PaymentStatusPending.HoldsTickets())
	assert.True(t, PaymentStatusVerified.HoldsTickets())
	assert.False(t, PaymentStatusRejected.HoldsTickets())

	assert.False(t, PaymentStatusPending.IsFinal())
	assert.True(t, PaymentStatusRejected.IsFinal())

	_, err := NewPaymentStatus("paid")
	assert.Error(t, err)
}

func TestNewPaymentMethod(t *testing.T) {
	for _, m := range []string{"binance", "pago_movil", "bank_transfer", "zelle", "cash", "other"} {
		_, err := NewPaymentMethod(m)
		assert.NoError(t, err, m)
	}
	_, err := NewPaymentMethod("Pago Movil")
	assert.Error(t, err)
}

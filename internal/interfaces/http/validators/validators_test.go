package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/utils"
)

type buyerRequest struct {
	IDType string `json:"id_type" binding:"omitempty,id_type"`
	Number string `json:"number" binding:"omitempty,ticket_number"`
	Method string `json:"method" binding:"required,payment_method"`
}

func TestRules(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"id type upper", IsIDType, "V", true},
		{"id type lower", IsIDType, "j", true},
		{"id type unknown", IsIDType, "X", false},
		{"ticket digits", IsTicketNumber, "0042", true},
		{"ticket letters", IsTicketNumber, "42a", false},
		{"ticket negative", IsTicketNumber, "-1", false},
		{"ticket too long", IsTicketNumber, "1234567890", false},
		{"method known", IsPaymentMethod, "pago_movil", true},
		{"method unknown", IsPaymentMethod, "paypal", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestRegister(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())

	assert.NoError(t, utils.ValidateStruct(buyerRequest{IDType: "v", Number: "7", Method: "zelle"}))

	err := utils.ValidateStruct(buyerRequest{IDType: "Z", Number: "7x", Method: "paypal"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	details := errors.GetAppError(err).Details
	assert.Contains(t, details, "id_type must be one of V, E, P, J, G")
	assert.Contains(t, details, "number must contain only digits")
	assert.Contains(t, details, "method is not a supported payment method")
}

package valueobjects

import "fmt"

type PaymentMethod string

const (
	PaymentMethodBinance      PaymentMethod = "binance"
	PaymentMethodPagoMovil    PaymentMethod = "pago_movil"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodZelle        PaymentMethod = "zelle"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodOther        PaymentMethod = "other"
)

func NewPaymentMethod(method string) (PaymentMethod, error) {
	pm := PaymentMethod(method)
	if !pm.IsValid() {
		return "", fmt.Errorf("invalid payment method: %s", method)
	}
	return pm, nil
}

func (pm PaymentMethod) IsValid() bool {
	switch pm {
	case PaymentMethodBinance, PaymentMethodPagoMovil, PaymentMethodBankTransfer,
		PaymentMethodZelle, PaymentMethodCash, PaymentMethodOther:
		return true
	default:
		return false
	}
}

func (pm PaymentMethod) String() string {
	return string(pm)
}

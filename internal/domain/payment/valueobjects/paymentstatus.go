package valueobjects

import "fmt"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRejected PaymentStatus = "rejected"
)

func NewPaymentStatus(s string) (PaymentStatus, error) {
	ps := PaymentStatus(s)
	if !ps.IsValid() {
		return "", fmt.Errorf("invalid payment status: %s", s)
	}
	return ps, nil
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusVerified, PaymentStatusRejected:
		return true
	default:
		return false
	}
}

func (s PaymentStatus) IsPending() bool {
	return s == PaymentStatusPending
}

// IsFinal reports a reviewed payment. Reviewed payments never return to pending.
func (s PaymentStatus) IsFinal() bool {
	return s == PaymentStatusVerified || s == PaymentStatusRejected
}

// HoldsTickets reports whether tickets are still linked to a payment in this status.
func (s PaymentStatus) HoldsTickets() bool {
	return s == PaymentStatusPending || s == PaymentStatusVerified
}

func (s PaymentStatus) String() string {
	return string(s)
}

package valueobjects

// PurchaseStatus is the buyer facing view of whether a raffle sells tickets.
// It is derived on every read and never stored.
type PurchaseStatus string

const (
	PurchaseOpen         PurchaseStatus = "open"
	PurchaseSoldOut      PurchaseStatus = "sold_out"
	PurchaseInactive     PurchaseStatus = "inactive"
	PurchaseClosedManual PurchaseStatus = "closed_manual"
)

// DerivePurchaseStatus checks sold out first, then status, then the manual flag.
func DerivePurchaseStatus(status RaffleStatus, manualOpen bool, ticketsSold, totalTickets int) PurchaseStatus {
	switch {
	case ticketsSold >= totalTickets:
		return PurchaseSoldOut
	case !status.IsActive():
		return PurchaseInactive
	case !manualOpen:
		return PurchaseClosedManual
	default:
		return PurchaseOpen
	}
}

func (p PurchaseStatus) IsOpen() bool {
	return p == PurchaseOpen
}

func (p PurchaseStatus) String() string {
	return string(p)
}

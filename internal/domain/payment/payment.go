package payment

import (
	"fmt"
	"sort"
	"strings"
	"time"

	vo "github.com/modorifa/rifas/internal/domain/payment/valueobjects"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/shared/biztime"
)

// Payment is a buyer's claim that they paid for quantity tickets of one raffle.
// It is created pending together with its ticket claim and reviewed once by
// an administrator.
type Payment struct {
	id        uint
	paymentNo string
	raffleID  uint
	buyer     sharedvo.Buyer
	quantity  int

	amount           sharedvo.Money
	amountUSD        sharedvo.Money
	amountVES        sharedvo.Money
	exchangeRateUsed float64

	method    vo.PaymentMethod
	reference *string
	proofKey  *string

	assignedNumbers []string
	status          vo.PaymentStatus
	adminNotes      string

	paidAt     time.Time
	reviewedAt *time.Time

	version   int
	loaded    int
	createdAt time.Time
	updatedAt time.Time
}

// NewPaymentParams carries the buyer supplied data of a new payment claim.
type NewPaymentParams struct {
	PaymentNo    string
	RaffleID     uint
	Buyer        sharedvo.Buyer
	Quantity     int
	Amount       sharedvo.Money
	ExchangeRate float64
	Method       vo.PaymentMethod
	Reference    string
	ProofKey     string
	PaidAt       *time.Time
}

func NewPayment(p NewPaymentParams) (*Payment, error) {
	if p.RaffleID == 0 {
		return nil, fmt.Errorf("raffle ID is required")
	}
	if p.PaymentNo == "" {
		return nil, fmt.Errorf("payment number is required")
	}
	if p.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if !p.Amount.Currency().IsValid() {
		return nil, fmt.Errorf("invalid currency: %s", p.Amount.Currency())
	}
	if !p.Method.IsValid() {
		return nil, fmt.Errorf("invalid payment method: %s", p.Method)
	}
	if err := p.Buyer.Validate(); err != nil {
		return nil, err
	}

	reference := strings.TrimSpace(p.Reference)
	if reference == "" && p.ProofKey == "" {
		return nil, fmt.Errorf("a payment reference or a proof of payment is required")
	}

	amountUSD, err := sharedvo.Convert(p.Amount, sharedvo.CurrencyUSD, p.ExchangeRate)
	if err != nil {
		return nil, err
	}
	amountVES, err := sharedvo.Convert(p.Amount, sharedvo.CurrencyVES, p.ExchangeRate)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	paidAt := now
	if p.PaidAt != nil {
		paidAt = p.PaidAt.UTC()
	}

	payment := &Payment{
		paymentNo:        p.PaymentNo,
		raffleID:         p.RaffleID,
		buyer:            p.Buyer,
		quantity:         p.Quantity,
		amount:           p.Amount,
		amountUSD:        amountUSD,
		amountVES:        amountVES,
		exchangeRateUsed: p.ExchangeRate,
		method:           p.Method,
		status:           vo.PaymentStatusPending,
		paidAt:           paidAt,
		version:          1,
		loaded:           1,
		createdAt:        now,
		updatedAt:        now,
	}
	if reference != "" {
		payment.reference = &reference
	}
	if p.ProofKey != "" {
		proofKey := p.ProofKey
		payment.proofKey = &proofKey
	}
	return payment, nil
}

// AssignNumbers records the ticket numbers claimed for this payment.
func (p *Payment) AssignNumbers(numbers []string) error {
	if !p.status.IsPending() {
		return fmt.Errorf("cannot assign numbers to payment in status %s", p.status)
	}
	if len(numbers) != p.quantity {
		return fmt.Errorf("expected %d ticket numbers, got %d", p.quantity, len(numbers))
	}
	sorted := append([]string(nil), numbers...)
	sort.Strings(sorted)
	p.assignedNumbers = sorted
	p.touch(biztime.NowUTC())
	return nil
}

func (p *Payment) review(next vo.PaymentStatus, notes string) error {
	if !p.status.IsPending() {
		return fmt.Errorf("cannot move payment %s from %s to %s", p.paymentNo, p.status, next)
	}
	now := biztime.NowUTC()
	p.status = next
	if notes != "" {
		p.adminNotes = notes
	}
	p.reviewedAt = &now
	p.touch(now)
	return nil
}

func (p *Payment) Verify(notes string) error {
	return p.review(vo.PaymentStatusVerified, notes)
}

func (p *Payment) Reject(notes string) error {
	return p.review(vo.PaymentStatusRejected, notes)
}

// HoldsTickets reports whether deleting this payment must release tickets.
func (p *Payment) HoldsTickets() bool {
	return p.status.HoldsTickets()
}

// TotalFor returns the expected amount for quantity tickets at unitPrice.
func TotalFor(unitPrice sharedvo.Money, quantity int) sharedvo.Money {
	return unitPrice.Multiply(quantity)
}

func (p *Payment) ID() uint {
	return p.id
}

func (p *Payment) PaymentNo() string {
	return p.paymentNo
}

func (p *Payment) RaffleID() uint {
	return p.raffleID
}

func (p *Payment) Buyer() sharedvo.Buyer {
	return p.buyer
}

func (p *Payment) Quantity() int {
	return p.quantity
}

func (p *Payment) Amount() sharedvo.Money {
	return p.amount
}

func (p *Payment) AmountUSD() sharedvo.Money {
	return p.amountUSD
}

func (p *Payment) AmountVES() sharedvo.Money {
	return p.amountVES
}

func (p *Payment) ExchangeRateUsed() float64 {
	return p.exchangeRateUsed
}

func (p *Payment) Method() vo.PaymentMethod {
	return p.method
}

func (p *Payment) Reference() *string {
	return p.reference
}

func (p *Payment) ProofKey() *string {
	return p.proofKey
}

func (p *Payment) AssignedNumbers() []string {
	return append([]string(nil), p.assignedNumbers...)
}

func (p *Payment) Status() vo.PaymentStatus {
	return p.status
}

func (p *Payment) AdminNotes() string {
	return p.adminNotes
}

func (p *Payment) PaidAt() time.Time {
	return p.paidAt
}

func (p *Payment) ReviewedAt() *time.Time {
	return p.reviewedAt
}

func (p *Payment) Version() int {
	return p.version
}

// LoadedVersion is the stored version this payment was read with.
func (p *Payment) LoadedVersion() int {
	return p.loaded
}

func (p *Payment) MarkPersisted() {
	p.loaded = p.version
}

func (p *Payment) touch(at time.Time) {
	p.updatedAt = at
	p.version = p.loaded + 1
}

func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Payment) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetID sets the payment ID after persistence (used by repository after Create)
func (p *Payment) SetID(id uint) {
	p.id = id
}

// PaymentReconstructParams holds persisted payment fields.
type PaymentReconstructParams struct {
	ID               uint
	PaymentNo        string
	RaffleID         uint
	Buyer            sharedvo.Buyer
	Quantity         int
	Amount           sharedvo.Money
	AmountUSD        sharedvo.Money
	AmountVES        sharedvo.Money
	ExchangeRateUsed float64
	Method           vo.PaymentMethod
	Reference        *string
	ProofKey         *string
	AssignedNumbers  []string
	Status           vo.PaymentStatus
	AdminNotes       string
	PaidAt           time.Time
	ReviewedAt       *time.Time
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func ReconstructPaymentWithParams(p PaymentReconstructParams) *Payment {
	return &Payment{
		id:               p.ID,
		paymentNo:        p.PaymentNo,
		raffleID:         p.RaffleID,
		buyer:            p.Buyer,
		quantity:         p.Quantity,
		amount:           p.Amount,
		amountUSD:        p.AmountUSD,
		amountVES:        p.AmountVES,
		exchangeRateUsed: p.ExchangeRateUsed,
		method:           p.Method,
		reference:        p.Reference,
		proofKey:         p.ProofKey,
		assignedNumbers:  p.AssignedNumbers,
		status:           p.Status,
		adminNotes:       p.AdminNotes,
		paidAt:           p.PaidAt,
		reviewedAt:       p.ReviewedAt,
		version:          p.Version,
		loaded:           p.Version,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
}

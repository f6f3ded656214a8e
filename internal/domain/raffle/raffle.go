package raffle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	vo "github.com/modorifa/rifas/internal/domain/raffle/valueobjects"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/domain/ticket"
	"github.com/modorifa/rifas/internal/shared/biztime"
)

// MaxTotalTickets bounds the pool of one raffle.
const MaxTotalTickets = 1_000_000

// ErrRaffleDrawn is returned by every mutation of a drawn raffle.
var ErrRaffleDrawn = errors.New("raffle already drawn")

// Raffle is the aggregate root of a prize draw. ticketsSold is a cached
// counter maintained by the reservation and reconciliation transactions; it
// always equals the count of pending and paid tickets.
type Raffle struct {
	id                uint
	productName       string
	description       string
	imageURL          string
	unitPrice         sharedvo.Money
	exchangeRate      float64
	totalTickets      int
	ticketsSold       int
	numberWidth       int
	status            vo.RaffleStatus
	manualOpenForSale bool
	startsAt          *time.Time
	endsAt            *time.Time
	drawAt            *time.Time
	drawnAt           *time.Time
	version           int
	loadedVersion     int
	createdAt         time.Time
	updatedAt         time.Time
}

type NewRaffleParams struct {
	ProductName  string
	Description  string
	ImageURL     string
	UnitPrice    sharedvo.Money
	ExchangeRate float64
	TotalTickets int
	// NumberWidth overrides the digit count of ticket numbers. Zero selects the
	// smallest width that fits TotalTickets. A wider value leaves room to grow.
	NumberWidth int
	StartsAt    *time.Time
	EndsAt      *time.Time
	DrawAt      *time.Time
}

func NewRaffle(p NewRaffleParams) (*Raffle, error) {
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if p.TotalTickets < 1 || p.TotalTickets > MaxTotalTickets {
		return nil, fmt.Errorf("total tickets must be between 1 and %d", MaxTotalTickets)
	}
	if err := validatePrice(p.UnitPrice, p.ExchangeRate); err != nil {
		return nil, err
	}
	if err := validateDates(p.StartsAt, p.EndsAt); err != nil {
		return nil, err
	}

	width := p.NumberWidth
	minWidth := ticket.DefaultNumberWidth(p.TotalTickets)
	if width == 0 {
		width = minWidth
	}
	if width < minWidth || width > len(fmt.Sprint(MaxTotalTickets)) {
		return nil, fmt.Errorf("number width %d cannot hold %d tickets", width, p.TotalTickets)
	}

	now := biztime.NowUTC()
	return &Raffle{
		productName:       name,
		description:       p.Description,
		imageURL:          strings.TrimSpace(p.ImageURL),
		unitPrice:         p.UnitPrice,
		exchangeRate:      p.ExchangeRate,
		totalTickets:      p.TotalTickets,
		numberWidth:       width,
		status:            vo.StatusActive,
		manualOpenForSale: true,
		startsAt:          p.StartsAt,
		endsAt:            p.EndsAt,
		drawAt:            p.DrawAt,
		version:           1,
		loadedVersion:     1,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func validatePrice(price sharedvo.Money, rate float64) error {
	if price.Currency() != sharedvo.CurrencyUSD {
		return fmt.Errorf("unit price must be expressed in USD")
	}
	if !price.IsPositive() {
		return fmt.Errorf("unit price must be positive")
	}
	if rate < 0 {
		return fmt.Errorf("exchange rate cannot be negative")
	}
	return nil
}

func validateDates(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return fmt.Errorf("end date must be after start date")
	}
	return nil
}

// UpdateRaffleParams holds optional changes; nil fields are left untouched.
type UpdateRaffleParams struct {
	ProductName  *string
	Description  *string
	ImageURL     *string
	UnitPrice    *sharedvo.Money
	ExchangeRate *float64
	StartsAt     *time.Time
	EndsAt       *time.Time
	DrawAt       *time.Time
}

func (r *Raffle) UpdateDetails(p UpdateRaffleParams) error {
	if r.status.IsDrawn() {
		return ErrRaffleDrawn
	}

	name := r.productName
	if p.ProductName != nil {
		name = strings.TrimSpace(*p.ProductName)
		if name == "" {
			return fmt.Errorf("product name is required")
		}
	}
	price, rate := r.unitPrice, r.exchangeRate
	if p.UnitPrice != nil {
		price = *p.UnitPrice
	}
	if p.ExchangeRate != nil {
		rate = *p.ExchangeRate
	}
	if err := validatePrice(price, rate); err != nil {
		return err
	}
	startsAt, endsAt := r.startsAt, r.endsAt
	if p.StartsAt != nil {
		startsAt = p.StartsAt
	}
	if p.EndsAt != nil {
		endsAt = p.EndsAt
	}
	if err := validateDates(startsAt, endsAt); err != nil {
		return err
	}

	r.productName = name
	if p.Description != nil {
		r.description = *p.Description
	}
	if p.ImageURL != nil {
		r.imageURL = strings.TrimSpace(*p.ImageURL)
	}
	if p.DrawAt != nil {
		r.drawAt = p.DrawAt
	}
	r.unitPrice, r.exchangeRate = price, rate
	r.startsAt, r.endsAt = startsAt, endsAt
	r.touch()
	return nil
}

// GrowCapacity raises totalTickets to newTotal and returns the range of
// numbers [from, to) that must be added to the pool. Existing numbers are
// never renumbered, so growth is bounded by the fixed number width.
func (r *Raffle) GrowCapacity(newTotal int) (from, to int, err error) {
	if r.status.IsDrawn() {
		return 0, 0, ErrRaffleDrawn
	}
	if newTotal < r.totalTickets {
		return 0, 0, fmt.Errorf("total tickets cannot shrink from %d to %d", r.totalTickets, newTotal)
	}
	if newTotal > MaxTotalTickets {
		return 0, 0, fmt.Errorf("total tickets cannot exceed %d", MaxTotalTickets)
	}
	if capacity := ticket.NumberCapacity(r.numberWidth); newTotal > capacity {
		return 0, 0, fmt.Errorf("total tickets %d exceed the %d numbers available with width %d; "+
			"the raffle must be created with number_width %d or more to grow this far",
			newTotal, capacity, r.numberWidth, ticket.DefaultNumberWidth(newTotal))
	}

	from, to = r.totalTickets, newTotal
	if to > from {
		r.totalTickets = newTotal
		r.touch()
	}
	return from, to, nil
}

// ChangeStatus applies a manual status change. drawn is set only by MarkDrawn.
func (r *Raffle) ChangeStatus(next vo.RaffleStatus) error {
	if r.status.IsDrawn() {
		return ErrRaffleDrawn
	}
	if r.status == next {
		return nil
	}
	if !r.status.CanTransitionTo(next) {
		return fmt.Errorf("cannot move raffle from %s to %s", r.status, next)
	}
	r.status = next
	r.touch()
	return nil
}

func (r *Raffle) SetManualSale(open bool) error {
	if r.status.IsDrawn() {
		return ErrRaffleDrawn
	}
	r.manualOpenForSale = open
	r.touch()
	return nil
}

// MarkDrawn freezes the raffle after its winners have been selected.
func (r *Raffle) MarkDrawn(at time.Time) error {
	if r.status.IsDrawn() {
		return ErrRaffleDrawn
	}
	r.status = vo.StatusDrawn
	r.drawnAt = &at
	r.touch()
	return nil
}

func (r *Raffle) touch() {
	r.updatedAt = biztime.NowUTC()
	r.version = r.loadedVersion + 1
}

// PurchaseStatus derives whether buyers can currently purchase tickets.
func (r *Raffle) PurchaseStatus() vo.PurchaseStatus {
	return vo.DerivePurchaseStatus(r.status, r.manualOpenForSale, r.ticketsSold, r.totalTickets)
}

func (r *Raffle) IsOpenForSale() bool {
	return r.PurchaseStatus().IsOpen()
}

func (r *Raffle) TicketsAvailable() int {
	if r.ticketsSold >= r.totalTickets {
		return 0
	}
	return r.totalTickets - r.ticketsSold
}

func (r *Raffle) SoldPercentage() float64 {
	if r.totalTickets == 0 {
		return 0
	}
	return float64(r.ticketsSold) * 100 / float64(r.totalTickets)
}

// FormatNumber renders n with this raffle's number width.
func (r *Raffle) FormatNumber(n int) string {
	return ticket.FormatNumber(n, r.numberWidth)
}

func (r *Raffle) ID() uint {
	return r.id
}

func (r *Raffle) ProductName() string {
	return r.productName
}

func (r *Raffle) Description() string {
	return r.description
}

func (r *Raffle) ImageURL() string {
	return r.imageURL
}

func (r *Raffle) UnitPrice() sharedvo.Money {
	return r.unitPrice
}

func (r *Raffle) ExchangeRate() float64 {
	return r.exchangeRate
}

func (r *Raffle) TotalTickets() int {
	return r.totalTickets
}

func (r *Raffle) TicketsSold() int {
	return r.ticketsSold
}

func (r *Raffle) NumberWidth() int {
	return r.numberWidth
}

func (r *Raffle) Status() vo.RaffleStatus {
	return r.status
}

func (r *Raffle) ManualOpenForSale() bool {
	return r.manualOpenForSale
}

func (r *Raffle) StartsAt() *time.Time {
	return r.startsAt
}

func (r *Raffle) EndsAt() *time.Time {
	return r.endsAt
}

func (r *Raffle) DrawAt() *time.Time {
	return r.drawAt
}

func (r *Raffle) DrawnAt() *time.Time {
	return r.drawnAt
}

func (r *Raffle) Version() int {
	return r.version
}

// LoadedVersion is the version the raffle had when it was read. Update uses it
// as the optimistic lock.
func (r *Raffle) LoadedVersion() int {
	return r.loadedVersion
}

// MarkPersisted records a successful write so later mutations bump again.
func (r *Raffle) MarkPersisted() {
	r.loadedVersion = r.version
}

func (r *Raffle) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Raffle) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Raffle) SetID(id uint) {
	r.id = id
}

type RaffleReconstructParams struct {
	ID                uint
	ProductName       string
	Description       string
	ImageURL          string
	UnitPrice         sharedvo.Money
	ExchangeRate      float64
	TotalTickets      int
	TicketsSold       int
	NumberWidth       int
	Status            vo.RaffleStatus
	ManualOpenForSale bool
	StartsAt          *time.Time
	EndsAt            *time.Time
	DrawAt            *time.Time
	DrawnAt           *time.Time
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func ReconstructRaffle(p RaffleReconstructParams) *Raffle {
	return &Raffle{
		id:                p.ID,
		productName:       p.ProductName,
		description:       p.Description,
		imageURL:          p.ImageURL,
		unitPrice:         p.UnitPrice,
		exchangeRate:      p.ExchangeRate,
		totalTickets:      p.TotalTickets,
		ticketsSold:       p.TicketsSold,
		numberWidth:       p.NumberWidth,
		status:            p.Status,
		manualOpenForSale: p.ManualOpenForSale,
		startsAt:          p.StartsAt,
		endsAt:            p.EndsAt,
		drawAt:            p.DrawAt,
		drawnAt:           p.DrawnAt,
		version:           p.Version,
		loadedVersion:     p.Version,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}
}

// Package reservation assigns random available tickets of a raffle to a
// payment without overselling under concurrent requests.
package reservation

import (
	"context"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/modorifa/rifas/internal/domain/raffle"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/domain/ticket"
	vo "github.com/modorifa/rifas/internal/domain/ticket/valueobjects"
	"github.com/modorifa/rifas/internal/shared/biztime"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

const DefaultMaxAttempts = 3

type Request struct {
	RaffleID  uint
	Quantity  int
	Owner     sharedvo.Buyer
	PaymentID uint
}

// Claim is the outcome of a successful reservation.
type Claim struct {
	Numbers   []string
	TicketIDs []uint
}

// Engine must be called inside the caller's transaction; it never commits.
type Engine struct {
	raffles     raffle.RaffleRepository
	pool        ticket.Pool
	maxAttempts int
	logger      logger.Interface

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewEngine(raffles raffle.RaffleRepository, pool ticket.Pool, maxAttempts int, log logger.Interface) *Engine {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Engine{
		raffles:     raffles,
		pool:        pool,
		maxAttempts: maxAttempts,
		logger:      log,
		rnd:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithSource replaces the random source. Tests use it for deterministic picks.
func (e *Engine) WithSource(src rand.Source) *Engine {
	e.mu.Lock()
	e.rnd = rand.New(src)
	e.mu.Unlock()
	return e
}

func (e *Engine) Reserve(ctx context.Context, req Request) (*Claim, error) {
	if req.Quantity < 1 {
		return nil, errors.NewValidationError("quantity must be at least 1")
	}
	if req.PaymentID == 0 {
		return nil, errors.NewValidationError("payment id is required")
	}

	// Row lock is the cross-instance serialization point for this raffle.
	rf, err := e.raffles.GetByIDForUpdate(ctx, req.RaffleID)
	if err != nil {
		return nil, errors.Persistence("failed to lock raffle", err)
	}
	// Sold out is decided below against the live pool, not the cached counter.
	if !rf.Status().IsActive() || !rf.ManualOpenForSale() {
		return nil, errors.NewRaffleNotOpenError("raffle is not open for sale", rf.PurchaseStatus().String())
	}

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		claim, ok, err := e.attempt(ctx, req)
		if err != nil {
			return nil, err
		}
		if ok {
			return claim, nil
		}
		e.logger.Warnw("reservation under-filled, retrying",
			"raffle_id", req.RaffleID,
			"payment_id", req.PaymentID,
			"attempt", attempt,
		)
	}
	return nil, errors.NewInvalidStateTransitionError("reservation conflict", "tickets changed while being claimed")
}

// attempt returns ok=false when the claim lost a race and was compensated.
func (e *Engine) attempt(ctx context.Context, req Request) (*Claim, bool, error) {
	available, err := e.pool.CountByStates(ctx, req.RaffleID, vo.StateAvailable)
	if err != nil {
		return nil, false, errors.Persistence("failed to count available tickets", err)
	}
	if available < int64(req.Quantity) {
		return nil, false, errors.NewInsufficientInventoryError(req.Quantity, int(available))
	}

	ids, err := e.pool.ListAvailableIDs(ctx, req.RaffleID)
	if err != nil {
		return nil, false, errors.Persistence("failed to list available tickets", err)
	}
	if len(ids) < req.Quantity {
		return nil, false, errors.NewInsufficientInventoryError(req.Quantity, len(ids))
	}
	picked := e.sample(ids, req.Quantity)

	claimed, err := e.pool.Claim(ctx, req.RaffleID, picked, req.PaymentID, req.Owner, biztime.NowUTC())
	if err != nil {
		return nil, false, errors.Persistence("failed to claim tickets", err)
	}

	numbers, err := e.pool.NumbersByIDs(ctx, picked)
	if err != nil {
		return nil, false, errors.Persistence("failed to load ticket numbers", err)
	}

	if claimed != int64(req.Quantity) {
		// Undo the partial claim; rows owned by other payments are untouched.
		if _, err := e.pool.Release(ctx, req.RaffleID, numbers, req.PaymentID); err != nil {
			return nil, false, errors.Persistence("failed to undo partial claim", err)
		}
		return nil, false, nil
	}

	ok, err := e.raffles.IncrementTicketsSold(ctx, req.RaffleID, req.Quantity)
	if err != nil {
		return nil, false, errors.Persistence("failed to update tickets sold", err)
	}
	if !ok {
		return nil, false, errors.NewInsufficientInventoryError(req.Quantity, int(available)-req.Quantity)
	}

	sort.Strings(numbers)
	return &Claim{Numbers: numbers, TicketIDs: picked}, true, nil
}

// sample draws n distinct ids uniformly with a partial Fisher-Yates shuffle.
func (e *Engine) sample(ids []uint, n int) []uint {
	pool := append([]uint(nil), ids...)

	e.mu.Lock()
	for i := 0; i < n; i++ {
		j := i + e.rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	e.mu.Unlock()

	return pool[:n]
}

package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/domain/ticket"
	"github.com/modorifa/rifas/internal/shared/biztime"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type TicketAction string

const (
	TicketActionVoid    TicketAction = "void"
	TicketActionRestore TicketAction = "restore"
)

type ChangeTicketStateCommand struct {
	TicketID uint
	Action   TicketAction
}

type ChangeTicketStateResult struct {
	Ticket *ticket.Ticket
}

// ChangeTicketStateUseCase withdraws an available ticket from sale or puts a
// voided one back.
type ChangeTicketStateUseCase struct {
	pool      ticket.Pool
	locks     RaffleLocker
	publisher EventPublisher
	logger    logger.Interface
}

func NewChangeTicketStateUseCase(
	pool ticket.Pool,
	locks RaffleLocker,
	publisher EventPublisher,
	logger logger.Interface,
) *ChangeTicketStateUseCase {
	return &ChangeTicketStateUseCase{
		pool:      pool,
		locks:     locks,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *ChangeTicketStateUseCase) Execute(ctx context.Context, cmd ChangeTicketStateCommand) (*ChangeTicketStateResult, error) {
	t, err := uc.pool.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.Persistence("failed to get ticket", err)
	}

	unlock := uc.locks.LockID(t.RaffleID())
	defer unlock()

	from := t.State()
	switch cmd.Action {
	case TicketActionVoid:
		err = t.Void()
	case TicketActionRestore:
		err = t.Restore()
	default:
		return nil, errors.NewValidationError("unknown ticket action", string(cmd.Action))
	}
	if err != nil {
		return nil, errors.NewInvalidStateTransitionError(err.Error())
	}

	moved, err := uc.pool.TransitionState(ctx, t.ID(), from, t.State())
	if err != nil {
		return nil, errors.Persistence("failed to change ticket state", err)
	}
	if !moved {
		return nil, errors.NewInvalidStateTransitionError("ticket changed state concurrently", t.Number())
	}

	uc.logger.Infow("ticket state changed",
		"ticket_id", t.ID(),
		"raffle_id", t.RaffleID(),
		"number", t.Number(),
		"from", from.String(),
		"to", t.State().String(),
	)
	uc.publisher.Publish(ticket.NewTicketStateChangedEvent(t, from.String(), biztime.NowUTC()))

	return &ChangeTicketStateResult{Ticket: t}, nil
}

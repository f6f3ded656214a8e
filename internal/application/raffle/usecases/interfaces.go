package usecases

import (
	"context"
	"time"

	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/ticket"
)

type CreateRaffleExecutor interface {
	Execute(ctx context.Context, cmd CreateRaffleCommand) (*CreateRaffleResult, error)
}

type GrowRaffleCapacityExecutor interface {
	Execute(ctx context.Context, cmd GrowRaffleCapacityCommand) (*GrowRaffleCapacityResult, error)
}

type UpdateRaffleExecutor interface {
	Execute(ctx context.Context, cmd UpdateRaffleCommand) (*UpdateRaffleResult, error)
}

type ChangeRaffleStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeRaffleStatusCommand) (*ChangeRaffleStatusResult, error)
}

type SetManualSaleExecutor interface {
	Execute(ctx context.Context, cmd SetManualSaleCommand) (*SetManualSaleResult, error)
}

type GetRaffleExecutor interface {
	Execute(ctx context.Context, query GetRaffleQuery) (*GetRaffleResult, error)
}

type ListRafflesExecutor interface {
	Execute(ctx context.Context, query ListRafflesQuery) (*ListRafflesResult, error)
}

type DeleteRaffleExecutor interface {
	Execute(ctx context.Context, cmd DeleteRaffleCommand) error
}

type DrawRaffleExecutor interface {
	Execute(ctx context.Context, cmd DrawRaffleCommand) (*DrawRaffleResult, error)
}

type CheckConsistencyExecutor interface {
	Execute(ctx context.Context, cmd CheckConsistencyCommand) (*CheckConsistencyResult, error)
}

type RaffleLocker interface {
	LockID(id uint) (unlock func())
}

type WinnerSelector interface {
	Select(paid []*ticket.Ticket, tiers []raffle.TierRequest, at time.Time) []raffle.Winner
}

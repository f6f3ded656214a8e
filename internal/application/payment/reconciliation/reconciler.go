// Package reconciliation applies admin review outcomes to a payment, its
// tickets and the raffle counter as one unit.
package reconciliation

import (
	"context"
	"fmt"

	"github.com/modorifa/rifas/internal/domain/payment"
	paymentvo "github.com/modorifa/rifas/internal/domain/payment/valueobjects"
	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/ticket"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type Action string

const (
	ActionVerify Action = "verify"
	ActionReject Action = "reject"
	ActionDelete Action = "delete"
)

type poolEffect int

const (
	poolNone poolEffect = iota
	poolMarkPaid
	poolRelease
)

type recordEffect int

const (
	recordVerify recordEffect = iota
	recordReject
	recordDelete
)

type transition struct {
	pool   poolEffect
	record recordEffect
}

// transitions lists every allowed (action, status) pair. Anything missing is
// an invalid state transition and nothing is written.
var transitions = map[Action]map[paymentvo.PaymentStatus]transition{
	ActionVerify: {
		paymentvo.PaymentStatusPending: {pool: poolMarkPaid, record: recordVerify},
	},
	ActionReject: {
		paymentvo.PaymentStatusPending: {pool: poolRelease, record: recordReject},
	},
	ActionDelete: {
		paymentvo.PaymentStatusPending:  {pool: poolRelease, record: recordDelete},
		paymentvo.PaymentStatusVerified: {pool: poolRelease, record: recordDelete},
		paymentvo.PaymentStatusRejected: {pool: poolNone, record: recordDelete},
	},
}

// Allowed reports whether action may be applied to a payment in status.
func Allowed(action Action, status paymentvo.PaymentStatus) bool {
	_, ok := transitions[action][status]
	return ok
}

type Outcome struct {
	Payment  *payment.Payment
	Action   Action
	Released int64
	Marked   int64
	Deleted  bool
}

// Reconciler must run inside the caller's transaction.
type Reconciler struct {
	raffles  raffle.RaffleRepository
	pool     ticket.Pool
	payments payment.PaymentRepository
	logger   logger.Interface
}

func NewReconciler(
	raffles raffle.RaffleRepository,
	pool ticket.Pool,
	payments payment.PaymentRepository,
	log logger.Interface,
) *Reconciler {
	return &Reconciler{
		raffles:  raffles,
		pool:     pool,
		payments: payments,
		logger:   log,
	}
}

func (r *Reconciler) Apply(ctx context.Context, p *payment.Payment, action Action, notes string) (*Outcome, error) {
	status := p.Status()
	t, ok := transitions[action][status]
	if !ok {
		return nil, errors.NewInvalidStateTransitionError(
			fmt.Sprintf("cannot %s payment in status %s", action, status),
			p.PaymentNo(),
		)
	}

	out := &Outcome{Payment: p, Action: action}

	switch t.pool {
	case poolMarkPaid:
		n, err := r.pool.MarkPaid(ctx, p.RaffleID(), p.AssignedNumbers(), p.ID())
		if err != nil {
			return nil, errors.Persistence("failed to mark tickets paid", err)
		}
		if int(n) != len(p.AssignedNumbers()) {
			r.logger.Warnw("marked fewer tickets paid than assigned",
				"payment_no", p.PaymentNo(),
				"assigned", len(p.AssignedNumbers()),
				"marked", n,
			)
		}
		out.Marked = n
	case poolRelease:
		n, err := r.release(ctx, p)
		if err != nil {
			return nil, err
		}
		out.Released = n
	}

	switch t.record {
	case recordVerify, recordReject:
		review := p.Verify
		if t.record == recordReject {
			review = p.Reject
		}
		if err := review(notes); err != nil {
			return nil, errors.NewInvalidStateTransitionError(err.Error(), p.PaymentNo())
		}
		if err := r.payments.Update(ctx, p); err != nil {
			return nil, errors.Persistence("failed to update payment", err)
		}
	case recordDelete:
		if err := r.payments.Delete(ctx, p.ID()); err != nil {
			return nil, errors.Persistence("failed to delete payment", err)
		}
		out.Deleted = true
	}

	r.logger.Infow("payment reconciled",
		"payment_no", p.PaymentNo(),
		"raffle_id", p.RaffleID(),
		"action", string(action),
		"from", status.String(),
		"released", out.Released,
		"marked", out.Marked,
	)
	return out, nil
}

// release frees the payment's tickets and gives back exactly the rows that
// moved. The counter floor at zero is enforced by the repository.
func (r *Reconciler) release(ctx context.Context, p *payment.Payment) (int64, error) {
	n, err := r.pool.Release(ctx, p.RaffleID(), p.AssignedNumbers(), p.ID())
	if err != nil {
		return 0, errors.Persistence("failed to release tickets", err)
	}
	if int(n) != p.Quantity() {
		r.logger.Warnw("released ticket count differs from payment quantity",
			"payment_no", p.PaymentNo(),
			"quantity", p.Quantity(),
			"released", n,
		)
	}
	if n > 0 {
		if err := r.raffles.DecrementTicketsSold(ctx, p.RaffleID(), int(n)); err != nil {
			return 0, errors.Persistence("failed to decrement tickets sold", err)
		}
	}
	return n, nil
}

package usecases

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/modorifa/rifas/internal/application/notification"
	"github.com/modorifa/rifas/internal/application/payment/proofstore"
	"github.com/modorifa/rifas/internal/application/payment/reservation"
	"github.com/modorifa/rifas/internal/domain/payment"
	vo "github.com/modorifa/rifas/internal/domain/payment/valueobjects"
	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/shared/services"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

// PaymentNoPrefix starts every public payment number.
const PaymentNoPrefix = "RF"

// ProofUpload is an uploaded proof of payment. Body is read once.
type ProofUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type SubmitPaymentCommand struct {
	RaffleID  uint
	Quantity  int
	Amount    float64
	Currency  string
	Method    string
	Reference string
	PaidAt    *time.Time
	Buyer     BuyerInput
	Proof     *ProofUpload
}

type BuyerInput struct {
	Name     string
	Email    string
	Phone    string
	IDType   string
	IDNumber string
}

type SubmitPaymentResult struct {
	Payment *payment.Payment
}

// ProofPolicy limits uploaded proofs. Zero values disable the check.
type ProofPolicy struct {
	MaxSizeBytes int64
	AllowedMIME  []string
}

type SubmitPaymentUseCase struct {
	raffleRepo  raffle.RaffleRepository
	paymentRepo payment.PaymentRepository
	reserver    Reserver
	rates       RateResolver
	proofs      proofstore.Store
	paymentNos  services.PaymentNumberGenerator
	locks       RaffleLocker
	txManager   db.Transactor
	notifier    notification.Notifier
	policy      ProofPolicy
	logger      logger.Interface
}

func NewSubmitPaymentUseCase(
	raffleRepo raffle.RaffleRepository,
	paymentRepo payment.PaymentRepository,
	reserver Reserver,
	rates RateResolver,
	proofs proofstore.Store,
	paymentNos services.PaymentNumberGenerator,
	locks RaffleLocker,
	txManager db.Transactor,
	notifier notification.Notifier,
	policy ProofPolicy,
	logger logger.Interface,
) *SubmitPaymentUseCase {
	return &SubmitPaymentUseCase{
		raffleRepo:  raffleRepo,
		paymentRepo: paymentRepo,
		reserver:    reserver,
		rates:       rates,
		proofs:      proofs,
		paymentNos:  paymentNos,
		locks:       locks,
		txManager:   txManager,
		notifier:    notifier,
		policy:      policy,
		logger:      logger,
	}
}

func (uc *SubmitPaymentUseCase) Execute(ctx context.Context, cmd SubmitPaymentCommand) (*SubmitPaymentResult, error) {
	params, err := uc.validate(cmd)
	if err != nil {
		return nil, err
	}

	rf, err := uc.raffleRepo.GetByID(ctx, cmd.RaffleID)
	if err != nil {
		return nil, errors.Persistence("failed to get raffle", err)
	}
	// Cheap early exit; the authoritative check runs under the raffle lock.
	if !rf.Status().IsActive() || !rf.ManualOpenForSale() {
		return nil, errors.NewRaffleNotOpenError("raffle is not open for sale", rf.PurchaseStatus().String())
	}

	rate, err := uc.rates.Resolve(ctx, rf.ExchangeRate())
	if err != nil {
		return nil, err
	}
	params.ExchangeRate = rate

	if params.Reference != "" {
		exists, err := uc.paymentRepo.ExistsByReference(ctx, params.Reference)
		if err != nil {
			return nil, errors.Persistence("failed to check payment reference", err)
		}
		if exists {
			return nil, errors.NewConflictError("payment reference already submitted", params.Reference)
		}
	}

	if cmd.Proof != nil {
		key, err := uc.proofs.Save(ctx, cmd.Proof.Filename, cmd.Proof.ContentType, cmd.Proof.Body, cmd.Proof.Size)
		if err != nil {
			uc.logger.Errorw("failed to store proof of payment", "error", err, "raffle_id", cmd.RaffleID)
			return nil, errors.Persistence("failed to store proof of payment", err)
		}
		params.ProofKey = key
	}

	params.PaymentNo = uc.paymentNos.Generate(PaymentNoPrefix)
	p, err := payment.NewPayment(params)
	if err != nil {
		uc.discardProof(params.ProofKey)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.persist(ctx, p); err != nil {
		uc.discardProof(params.ProofKey)
		uc.logger.Warnw("payment submission failed",
			"error", err,
			"raffle_id", cmd.RaffleID,
			"quantity", cmd.Quantity,
		)
		return nil, errors.Persistence("failed to submit payment", err)
	}

	uc.logger.Infow("payment submitted",
		"payment_id", p.ID(),
		"payment_no", p.PaymentNo(),
		"raffle_id", p.RaffleID(),
		"quantity", p.Quantity(),
		"numbers", p.AssignedNumbers(),
	)
	uc.notifier.PaymentSubmitted(p)

	return &SubmitPaymentResult{Payment: p}, nil
}

// persist stores p and claims its numbers while holding the raffle lock.
func (uc *SubmitPaymentUseCase) persist(ctx context.Context, p *payment.Payment) error {
	unlock := uc.locks.LockID(p.RaffleID())
	defer unlock()

	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.paymentRepo.Create(txCtx, p); err != nil {
			return err
		}
		claim, err := uc.reserver.Reserve(txCtx, reservation.Request{
			RaffleID:  p.RaffleID(),
			Quantity:  p.Quantity(),
			Owner:     p.Buyer(),
			PaymentID: p.ID(),
		})
		if err != nil {
			return err
		}
		if err := p.AssignNumbers(claim.Numbers); err != nil {
			return errors.NewInternalError("failed to assign numbers", err.Error())
		}
		return uc.paymentRepo.Update(txCtx, p)
	})
}

func (uc *SubmitPaymentUseCase) validate(cmd SubmitPaymentCommand) (payment.NewPaymentParams, error) {
	if cmd.RaffleID == 0 {
		return payment.NewPaymentParams{}, errors.NewValidationError("raffle id is required")
	}
	if cmd.Quantity < 1 {
		return payment.NewPaymentParams{}, errors.NewValidationError("quantity must be at least 1")
	}
	if cmd.Amount <= 0 {
		return payment.NewPaymentParams{}, errors.NewValidationError("amount must be positive")
	}

	currency, err := sharedvo.NewCurrency(strings.ToUpper(cmd.Currency))
	if err != nil {
		return payment.NewPaymentParams{}, errors.NewValidationError(err.Error())
	}
	method, err := vo.NewPaymentMethod(cmd.Method)
	if err != nil {
		return payment.NewPaymentParams{}, errors.NewValidationError(err.Error())
	}
	buyer, err := sharedvo.NewBuyer(cmd.Buyer.Name, cmd.Buyer.Email, cmd.Buyer.Phone,
		sharedvo.IDType(cmd.Buyer.IDType), cmd.Buyer.IDNumber)
	if err != nil {
		return payment.NewPaymentParams{}, errors.NewValidationError(err.Error())
	}

	reference := strings.TrimSpace(cmd.Reference)
	if reference == "" && cmd.Proof == nil {
		return payment.NewPaymentParams{}, errors.NewValidationError("a payment reference or a proof of payment is required")
	}
	if cmd.Proof != nil {
		if err := uc.checkProof(cmd.Proof); err != nil {
			return payment.NewPaymentParams{}, err
		}
	}

	return payment.NewPaymentParams{
		RaffleID:  cmd.RaffleID,
		Buyer:     buyer,
		Quantity:  cmd.Quantity,
		Amount:    sharedvo.NewMoneyFromFloat(cmd.Amount, currency),
		Method:    method,
		Reference: reference,
		PaidAt:    cmd.PaidAt,
	}, nil
}

func (uc *SubmitPaymentUseCase) checkProof(proof *ProofUpload) error {
	if proof.Body == nil {
		return errors.NewValidationError("proof of payment is empty")
	}
	if uc.policy.MaxSizeBytes > 0 && proof.Size > uc.policy.MaxSizeBytes {
		return errors.NewValidationError(
			fmt.Sprintf("proof of payment exceeds %d bytes", uc.policy.MaxSizeBytes))
	}
	if len(uc.policy.AllowedMIME) > 0 && !slices.Contains(uc.policy.AllowedMIME, proof.ContentType) {
		return errors.NewValidationError("unsupported proof of payment type", proof.ContentType)
	}
	return nil
}

// discardProof removes an uploaded artifact whose payment never committed.
func (uc *SubmitPaymentUseCase) discardProof(key string) {
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := uc.proofs.Delete(ctx, key); err != nil {
		uc.logger.Warnw("failed to remove orphaned proof of payment", "error", err, "key", key)
	}
}

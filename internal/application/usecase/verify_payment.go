package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/event"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/port"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

// Verification decisions accepted by VerifyPaymentUseCase.
const (
	DecisionComplete = "complete"
	DecisionReject   = "reject"
)

// VerifyPaymentUseCase settles the fate of a pending payment. Completing a
// payment is the only path that reduces a loan balance; a completion that
// brings the balance to zero settles the loan and releases held collateral.
type VerifyPaymentUseCase struct {
	paymentRepo    port.PaymentRepository
	loanRepo       port.LoanRepository
	collateralRepo port.CollateralRepository
	transactor     port.Transactor
	publisher      port.EventPublisher
	logger         *slog.Logger
}

func NewVerifyPaymentUseCase(
	paymentRepo port.PaymentRepository,
	loanRepo port.LoanRepository,
	collateralRepo port.CollateralRepository,
	transactor port.Transactor,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *VerifyPaymentUseCase {
	return &VerifyPaymentUseCase{
		paymentRepo:    paymentRepo,
		loanRepo:       loanRepo,
		collateralRepo: collateralRepo,
		transactor:     transactor,
		publisher:      publisher,
		logger:         logger,
	}
}

func (uc *VerifyPaymentUseCase) Execute(ctx context.Context, req dto.VerifyPaymentRequest) (dto.VerifyPaymentResponse, error) {
	payment, err := uc.paymentRepo.FindByID(ctx, req.PaymentID)
	if err != nil {
		return dto.VerifyPaymentResponse{}, fmt.Errorf("finding payment %s: %w", req.PaymentID, err)
	}

	now := time.Now().UTC()
	switch req.Decision {
	case DecisionComplete:
		return uc.complete(ctx, payment, now)
	case DecisionReject:
		return uc.reject(ctx, payment, now)
	default:
		return dto.VerifyPaymentResponse{}, fmt.Errorf("%w: unknown verification decision %q",
			valueobject.ErrValidation, req.Decision)
	}
}

func (uc *VerifyPaymentUseCase) complete(ctx context.Context, payment model.Payment, now time.Time) (dto.VerifyPaymentResponse, error) {
	// 1. Apply the amount to the loan first. If the loan refuses the payment
	// (wrong state, amount exceeds balance) the payment stays pending.
	loan, err := uc.loanRepo.FindByID(ctx, payment.LoanID())
	if err != nil {
		return dto.VerifyPaymentResponse{}, fmt.Errorf("finding loan %s: %w", payment.LoanID(), err)
	}
	updated, err := loan.ApplyPayment(payment.Amount(), now)
	if err != nil {
		return dto.VerifyPaymentResponse{}, err
	}

	completed, err := payment.Complete(now)
	if err != nil {
		return dto.VerifyPaymentResponse{}, err
	}

	// 2. All rows change in one transaction. The payment row goes first: its
	// update only fires while the stored status is still PENDING, so of two
	// racing verifications exactly one reaches the loan write; the loan write
	// carries the version check against other loan mutations. Settlement
	// releases collateral from custody in the same transaction.
	events := append(updated.DomainEvents(), completed.DomainEvents()...)
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.paymentRepo.Save(ctx, completed); err != nil {
			return fmt.Errorf("saving payment %s: %w", payment.ID(), err)
		}
		if err := uc.loanRepo.Save(ctx, updated); err != nil {
			return fmt.Errorf("saving loan %s: %w", loan.ID(), err)
		}
		if updated.Status().Equal(valueobject.LoanStatusSettled) {
			released, err := uc.releaseCollateral(ctx, loan.ID(), now)
			if err != nil {
				return err
			}
			events = append(events, released...)
		}
		return nil
	})
	if err != nil {
		return dto.VerifyPaymentResponse{}, err
	}

	publishEvents(ctx, uc.publisher, uc.logger, events)

	uc.logger.InfoContext(ctx, "payment completed",
		"payment_id", completed.ID(),
		"loan_id", updated.ID(),
		"amount", completed.Amount().String(),
		"balance", updated.Balance().String(),
		"loan_status", updated.Status().String(),
	)

	return dto.VerifyPaymentResponse{
		Payment:    toPaymentResponse(completed),
		LoanStatus: updated.Status().String(),
		Balance:    updated.Balance(),
	}, nil
}

func (uc *VerifyPaymentUseCase) reject(ctx context.Context, payment model.Payment, now time.Time) (dto.VerifyPaymentResponse, error) {
	rejected, err := payment.Reject(now)
	if err != nil {
		return dto.VerifyPaymentResponse{}, err
	}
	if err := uc.paymentRepo.Save(ctx, rejected); err != nil {
		return dto.VerifyPaymentResponse{}, fmt.Errorf("saving payment %s: %w", payment.ID(), err)
	}

	publishEvents(ctx, uc.publisher, uc.logger, rejected.DomainEvents())

	uc.logger.InfoContext(ctx, "payment rejected",
		"payment_id", rejected.ID(),
		"loan_id", rejected.LoanID(),
	)

	loan, err := uc.loanRepo.FindByID(ctx, payment.LoanID())
	if err != nil {
		return dto.VerifyPaymentResponse{}, fmt.Errorf("finding loan %s: %w", payment.LoanID(), err)
	}
	return dto.VerifyPaymentResponse{
		Payment:    toPaymentResponse(rejected),
		LoanStatus: loan.Status().String(),
		Balance:    loan.Balance(),
	}, nil
}

func (uc *VerifyPaymentUseCase) releaseCollateral(ctx context.Context, loanID string, now time.Time) ([]event.DomainEvent, error) {
	items, err := uc.collateralRepo.FindByLoanID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("finding collateral for loan %s: %w", loanID, err)
	}
	var events []event.DomainEvent
	for _, item := range items {
		if !item.Status().Equal(valueobject.CollateralStatusHeld) {
			continue
		}
		returned, err := item.Return(now)
		if err != nil {
			return nil, fmt.Errorf("returning collateral %s: %w", item.ID(), err)
		}
		if err := uc.collateralRepo.Save(ctx, returned); err != nil {
			return nil, fmt.Errorf("saving returned collateral %s: %w", item.ID(), err)
		}
		events = append(events, returned.DomainEvents()...)
	}
	return events, nil
}

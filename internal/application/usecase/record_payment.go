package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/port"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

// RecordPaymentUseCase records a repayment against an active loan. The
// transaction reference makes the operation idempotent: replaying the same
// reference for the same loan is rejected, never double-applied.
//
// When auto-verification is enabled the recorded payment is completed in the
// same call; otherwise it waits for an explicit admin decision.
type RecordPaymentUseCase struct {
	loanRepo    port.LoanRepository
	paymentRepo port.PaymentRepository
	publisher   port.EventPublisher
	verifier    *VerifyPaymentUseCase
	autoVerify  bool
	logger      *slog.Logger
}

func NewRecordPaymentUseCase(
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
	publisher port.EventPublisher,
	verifier *VerifyPaymentUseCase,
	autoVerify bool,
	logger *slog.Logger,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		publisher:   publisher,
		verifier:    verifier,
		autoVerify:  autoVerify,
		logger:      logger,
	}
}

func (uc *RecordPaymentUseCase) Execute(ctx context.Context, req dto.RecordPaymentRequest) (dto.PaymentResponse, error) {
	// 1. The loan must be active. Terminal loans accept no further payments.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("finding loan %s: %w", req.LoanID, err)
	}
	if loan.Status().IsTerminal() {
		return dto.PaymentResponse{}, fmt.Errorf("loan %s is %s: %w",
			loan.ID(), loan.Status(), valueobject.ErrLoanFinalized)
	}
	if !loan.Status().Equal(valueobject.LoanStatusActive) {
		return dto.PaymentResponse{}, fmt.Errorf("payments can only be recorded against active loans, loan is %s: %w",
			loan.Status(), valueobject.ErrInvalidStatusTransition)
	}

	// 2. Idempotence check on the external transaction reference.
	exists, err := uc.paymentRepo.ExistsByTransactionRef(ctx, loan.ID(), req.TransactionRef)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("checking transaction reference: %w", err)
	}
	if exists {
		return dto.PaymentResponse{}, fmt.Errorf("transaction reference %q already recorded for loan %s: %w",
			req.TransactionRef, loan.ID(), valueobject.ErrDuplicateTransaction)
	}

	// 3. Record the payment in pending verification status.
	payment, err := model.NewPayment(loan.ID(), req.Amount, req.TransactionRef, time.Now().UTC())
	if err != nil {
		return dto.PaymentResponse{}, err
	}
	if err := uc.paymentRepo.Save(ctx, payment); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("saving payment: %w", err)
	}

	publishEvents(ctx, uc.publisher, uc.logger, payment.DomainEvents())

	uc.logger.InfoContext(ctx, "payment recorded",
		"payment_id", payment.ID(),
		"loan_id", loan.ID(),
		"amount", payment.Amount().String(),
		"transaction_ref", payment.TransactionRef(),
	)

	// 4. Optionally complete in the same call.
	if uc.autoVerify && uc.verifier != nil {
		verified, err := uc.verifier.Execute(ctx, dto.VerifyPaymentRequest{
			PaymentID: payment.ID(),
			Decision:  DecisionComplete,
		})
		if err != nil {
			return dto.PaymentResponse{}, err
		}
		return verified.Payment, nil
	}

	return toPaymentResponse(payment), nil
}

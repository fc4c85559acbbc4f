package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/application/usecase"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

func TestRecordPayment_Execute(t *testing.T) {
	dueAt := time.Now().UTC().AddDate(0, 0, 7)

	t.Run("records a pending payment against an active loan", func(t *testing.T) {
		loan := activeLoan(1400, 1400, dueAt)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) { return loan, nil },
		}
		paymentRepo := &mockPaymentRepository{}
		publisher := &mockEventPublisher{}

		uc := usecase.NewRecordPaymentUseCase(loanRepo, paymentRepo, publisher, nil, false, testLogger())

		resp, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID:         "loan-001",
			Amount:         decimal.NewFromInt(500),
			TransactionRef: "mm-tx-001",
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "mm-tx-001", resp.TransactionRef)
		require.Len(t, paymentRepo.savedPayments, 1)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("rejects a replayed transaction reference", func(t *testing.T) {
		loan := activeLoan(1400, 900, dueAt)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) { return loan, nil },
		}
		paymentRepo := &mockPaymentRepository{
			existsFunc: func(ctx context.Context, loanID, transactionRef string) (bool, error) {
				return true, nil
			},
		}

		uc := usecase.NewRecordPaymentUseCase(loanRepo, paymentRepo, &mockEventPublisher{}, nil, false, testLogger())

		_, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID:         "loan-001",
			Amount:         decimal.NewFromInt(500),
			TransactionRef: "mm-tx-001",
		})

		require.ErrorIs(t, err, valueobject.ErrDuplicateTransaction)
		assert.Empty(t, paymentRepo.savedPayments)
	})

	t.Run("rejects payments against a settled loan", func(t *testing.T) {
		now := time.Now().UTC()
		settled := model.ReconstructLoan(
			"loan-001", "borrower-001", "", valueobject.ProductTypeGroup,
			decimal.NewFromInt(500), 0,
			decimal.NewFromFloat(0.40), decimal.NewFromInt(700), decimal.Zero,
			valueobject.LoanStatusSettled, "", 3,
			now, now, now, now, now,
		)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) { return settled, nil },
		}

		uc := usecase.NewRecordPaymentUseCase(loanRepo, &mockPaymentRepository{}, &mockEventPublisher{}, nil, false, testLogger())

		_, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID:         "loan-001",
			Amount:         decimal.NewFromInt(100),
			TransactionRef: "mm-tx-002",
		})

		require.ErrorIs(t, err, valueobject.ErrLoanFinalized)
	})

	t.Run("rejects payments against a pending loan", func(t *testing.T) {
		loan := pendingLoan(valueobject.ProductTypeGroup, 500, 0)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) { return loan, nil },
		}

		uc := usecase.NewRecordPaymentUseCase(loanRepo, &mockPaymentRepository{}, &mockEventPublisher{}, nil, false, testLogger())

		_, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID:         "loan-001",
			Amount:         decimal.NewFromInt(100),
			TransactionRef: "mm-tx-003",
		})

		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("auto-verification completes the payment in the same call", func(t *testing.T) {
		loan := activeLoan(1400, 1400, dueAt)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) { return loan, nil },
		}
		paymentRepo := &mockPaymentRepository{}
		paymentRepo.findByIDFunc = func(ctx context.Context, id string) (model.Payment, error) {
			require.NotEmpty(t, paymentRepo.savedPayments)
			return paymentRepo.savedPayments[0], nil
		}
		publisher := &mockEventPublisher{}

		verifier := usecase.NewVerifyPaymentUseCase(paymentRepo, loanRepo, &mockCollateralRepository{}, &mockTransactor{}, publisher, testLogger())
		uc := usecase.NewRecordPaymentUseCase(loanRepo, paymentRepo, publisher, verifier, true, testLogger())

		resp, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID:         "loan-001",
			Amount:         decimal.NewFromInt(400),
			TransactionRef: "mm-tx-004",
		})

		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", resp.Status)

		// Loan balance was reduced by the completed payment.
		require.Len(t, loanRepo.savedLoans, 1)
		assert.True(t, decimal.NewFromInt(1000).Equal(loanRepo.savedLoans[0].Balance()))
	})
}

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

func TestSubmitCollateral_Execute(t *testing.T) {
	t.Run("uploads attachments and stores references", func(t *testing.T) {
		loan := pendingLoan(valueobject.ProductTypePersonal, 1000, 4)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) { return loan, nil },
		}
		collateralRepo := &mockCollateralRepository{}
		var uploaded int
		store := &mockObjectStore{
			uploadFunc: func(ctx context.Context, data []byte, contentType string) (string, error) {
				uploaded++
				return "attachments/ref-1", nil
			},
		}

		uc := usecase.NewSubmitCollateralUseCase(loanRepo, collateralRepo, store, &mockEventPublisher{}, testLogger())

		resp, err := uc.Execute(context.Background(), dto.SubmitCollateralRequest{
			LoanID:         "loan-001",
			Description:    "motorbike",
			EstimatedValue: decimal.NewFromInt(2500),
			Attachments: []dto.AttachmentUpload{
				{Data: []byte("jpeg bytes"), ContentType: "image/jpeg"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING_REVIEW", resp.Status)
		assert.Equal(t, []string{"attachments/ref-1"}, resp.AttachmentRefs)
		assert.Equal(t, 1, uploaded)
		require.Len(t, collateralRepo.savedItems, 1)
	})

	t.Run("refuses collateral on a finalized loan", func(t *testing.T) {
		now := time.Now().UTC()
		rejected := model.ReconstructLoan(
			"loan-001", "borrower-001", "", valueobject.ProductTypePersonal,
			decimal.NewFromInt(1000), 4,
			decimal.Zero, decimal.Zero, decimal.Zero,
			valueobject.LoanStatusRejected, "insufficient history", 2,
			now, time.Time{}, time.Time{}, time.Time{}, now,
		)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) { return rejected, nil },
		}

		uc := usecase.NewSubmitCollateralUseCase(loanRepo, &mockCollateralRepository{}, &mockObjectStore{}, &mockEventPublisher{}, testLogger())

		_, err := uc.Execute(context.Background(), dto.SubmitCollateralRequest{
			LoanID:         "loan-001",
			Description:    "motorbike",
			EstimatedValue: decimal.NewFromInt(2500),
		})

		require.ErrorIs(t, err, valueobject.ErrLoanFinalized)
	})
}

func TestReviewCollateral_Execute(t *testing.T) {
	t.Run("approves a pending item without touching the loan", func(t *testing.T) {
		loan := pendingLoan(valueobject.ProductTypePersonal, 1000, 4)
		item := collateralItem(valueobject.CollateralStatusPendingReview)

		loanRepo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) { return loan, nil },
		}
		collateralRepo := &mockCollateralRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.CollateralItem, error) { return item, nil },
		}

		uc := usecase.NewReviewCollateralUseCase(collateralRepo, loanRepo, &mockEventPublisher{}, testLogger())

		resp, err := uc.Execute(context.Background(), dto.ReviewCollateralRequest{
			ItemID:   "item-001",
			Decision: "approve",
		})

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Empty(t, loanRepo.savedLoans, "review decisions never transition the loan")
	})

	t.Run("rejecting twice fails", func(t *testing.T) {
		loan := pendingLoan(valueobject.ProductTypePersonal, 1000, 4)
		item := collateralItem(valueobject.CollateralStatusRejected)

		loanRepo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) { return loan, nil },
		}
		collateralRepo := &mockCollateralRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.CollateralItem, error) { return item, nil },
		}

		uc := usecase.NewReviewCollateralUseCase(collateralRepo, loanRepo, &mockEventPublisher{}, testLogger())

		_, err := uc.Execute(context.Background(), dto.ReviewCollateralRequest{
			ItemID:   "item-001",
			Decision: "reject",
		})

		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

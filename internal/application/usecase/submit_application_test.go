package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/application/usecase"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

func TestSubmitApplication_Execute(t *testing.T) {
	t.Run("successfully submits a group loan application", func(t *testing.T) {
		loanRepo := &mockLoanRepository{}
		publisher := &mockEventPublisher{}

		uc := usecase.NewSubmitApplicationUseCase(loanRepo, publisher, testLogger())

		resp, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
			BorrowerID:  "borrower-001",
			AgentID:     "agent-001",
			ProductType: "GROUP",
			Principal:   decimal.NewFromInt(500),
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "PENDING", resp.Status)
		assert.True(t, decimal.NewFromInt(500).Equal(resp.Principal))
		assert.True(t, resp.TotalRepaymentDue.IsZero(), "repayment total is frozen at approval, not submission")

		require.Len(t, loanRepo.savedLoans, 1)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("personal loan carries its chosen duration", func(t *testing.T) {
		loanRepo := &mockLoanRepository{}
		publisher := &mockEventPublisher{}

		uc := usecase.NewSubmitApplicationUseCase(loanRepo, publisher, testLogger())

		resp, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
			BorrowerID:    "borrower-001",
			ProductType:   "PERSONAL",
			Principal:     decimal.NewFromInt(1000),
			DurationWeeks: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, resp.DurationWeeks)
	})

	t.Run("fails on unknown product type", func(t *testing.T) {
		uc := usecase.NewSubmitApplicationUseCase(&mockLoanRepository{}, &mockEventPublisher{}, testLogger())

		_, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
			BorrowerID:  "borrower-001",
			ProductType: "PAYDAY",
			Principal:   decimal.NewFromInt(500),
		})

		require.ErrorIs(t, err, valueobject.ErrValidation)
	})

	t.Run("fails on out-of-range personal duration", func(t *testing.T) {
		uc := usecase.NewSubmitApplicationUseCase(&mockLoanRepository{}, &mockEventPublisher{}, testLogger())

		_, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
			BorrowerID:    "borrower-001",
			ProductType:   "PERSONAL",
			Principal:     decimal.NewFromInt(1000),
			DurationWeeks: 6,
		})

		require.ErrorIs(t, err, valueobject.ErrValidation)
	})

	t.Run("fails when save fails", func(t *testing.T) {
		loanRepo := &mockLoanRepository{
			saveFunc: func(ctx context.Context, _ model.Loan) error {
				return fmt.Errorf("database unavailable")
			},
		}
		uc := usecase.NewSubmitApplicationUseCase(loanRepo, &mockEventPublisher{}, testLogger())

		_, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
			BorrowerID:  "borrower-001",
			ProductType: "BUSINESS",
			Principal:   decimal.NewFromInt(2000),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "saving loan application")
	})
}

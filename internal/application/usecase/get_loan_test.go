package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/application/usecase"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

func TestGetLoan_Execute(t *testing.T) {
	t.Run("returns the loan with collateral and payments", func(t *testing.T) {
		loan := activeLoan(1400, 900, time.Now().UTC().AddDate(0, 0, 7))
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) { return loan, nil },
		}
		collateralRepo := &mockCollateralRepository{
			findByLoanIDFunc: func(ctx context.Context, loanID string) ([]model.CollateralItem, error) {
				return []model.CollateralItem{collateralItem(valueobject.CollateralStatusHeld)}, nil
			},
		}
		paymentRepo := &mockPaymentRepository{
			findByLoanIDFunc: func(ctx context.Context, loanID string) ([]model.Payment, error) {
				return []model.Payment{pendingPayment(500, "mm-tx-001")}, nil
			},
		}

		uc := usecase.NewGetLoanUseCase(loanRepo, collateralRepo, paymentRepo)

		resp, err := uc.Execute(context.Background(), dto.GetLoanRequest{LoanID: "loan-001"})

		require.NoError(t, err)
		assert.Equal(t, "loan-001", resp.Loan.ID)
		assert.Len(t, resp.Collateral, 1)
		assert.Len(t, resp.Payments, 1)
	})

	t.Run("fails when the loan does not exist", func(t *testing.T) {
		uc := usecase.NewGetLoanUseCase(&mockLoanRepository{}, &mockCollateralRepository{}, &mockPaymentRepository{})

		_, err := uc.Execute(context.Background(), dto.GetLoanRequest{LoanID: "missing"})

		require.ErrorIs(t, err, valueobject.ErrNotFound)
	})
}

package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/service"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

func loanWithStatus(status valueobject.LoanStatus, principal int64) model.Loan {
	now := time.Now().UTC()
	return model.ReconstructLoan(
		"loan-001", "borrower-001", "agent-001", valueobject.ProductTypeGroup,
		decimal.NewFromInt(principal), 0,
		decimal.NewFromFloat(0.40), decimal.Zero, decimal.Zero,
		status, "", 1,
		now, time.Time{}, time.Time{}, time.Time{}, now,
	)
}

func TestCommissionPolicy(t *testing.T) {
	policy := service.NewCommissionPolicy(decimal.NewFromFloat(0.05))

	t.Run("only activated loans earn commission", func(t *testing.T) {
		loans := []model.Loan{
			loanWithStatus(valueobject.LoanStatusActive, 1000),
			loanWithStatus(valueobject.LoanStatusSettled, 2000),
			loanWithStatus(valueobject.LoanStatusPending, 400),
			loanWithStatus(valueobject.LoanStatusRejected, 800),
			loanWithStatus(valueobject.LoanStatusDefaulted, 600),
		}

		assert.True(t, decimal.NewFromInt(3000).Equal(policy.AttributedVolume(loans)))
		assert.True(t, decimal.NewFromInt(150).Equal(policy.Commission(loans)))
	})

	t.Run("empty book pays nothing", func(t *testing.T) {
		assert.True(t, policy.Commission(nil).IsZero())
	})
}

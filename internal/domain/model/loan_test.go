package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

func newPendingLoan(t *testing.T, product valueobject.ProductType, principal int64, weeks int) model.Loan {
	t.Helper()
	loan, err := model.NewLoan("borrower-001", "agent-001", product, decimal.NewFromInt(principal), weeks, time.Now().UTC())
	require.NoError(t, err)
	return loan
}

func approvedLoan(t *testing.T, principal int64) model.Loan {
	t.Helper()
	now := time.Now().UTC()
	loan := newPendingLoan(t, valueobject.ProductTypePersonal, principal, 4)
	rate := decimal.NewFromFloat(0.40)
	total := decimal.NewFromInt(principal).Mul(decimal.NewFromFloat(1.40)).Round(2)
	active, err := loan.Approve(rate, total, now.AddDate(0, 0, 28), now)
	require.NoError(t, err)
	return active
}

func TestNewLoan(t *testing.T) {
	t.Run("creates a pending loan with an application event", func(t *testing.T) {
		loan := newPendingLoan(t, valueobject.ProductTypeGroup, 500, 0)

		assert.Equal(t, "PENDING", loan.Status().String())
		assert.Equal(t, 1, loan.Version())
		assert.True(t, loan.Balance().IsZero())
		assert.True(t, loan.TotalRepaymentDue().IsZero())
		assert.Len(t, loan.DomainEvents(), 1)
	})

	t.Run("requires a borrower", func(t *testing.T) {
		_, err := model.NewLoan("", "", valueobject.ProductTypeGroup, decimal.NewFromInt(500), 0, time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrValidation)
	})

	t.Run("requires a positive principal", func(t *testing.T) {
		_, err := model.NewLoan("borrower-001", "", valueobject.ProductTypeGroup, decimal.Zero, 0, time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrValidation)
	})

	t.Run("bounds personal loan duration to the rate table", func(t *testing.T) {
		_, err := model.NewLoan("borrower-001", "", valueobject.ProductTypePersonal, decimal.NewFromInt(1000), 5, time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrValidation)

		_, err = model.NewLoan("borrower-001", "", valueobject.ProductTypePersonal, decimal.NewFromInt(1000), 0, time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrValidation)
	})
}

func TestLoan_Approve(t *testing.T) {
	t.Run("freezes the repayment total and opens the balance", func(t *testing.T) {
		now := time.Now().UTC()
		loan := newPendingLoan(t, valueobject.ProductTypePersonal, 1000, 4)

		active, err := loan.Approve(decimal.NewFromFloat(0.40), decimal.NewFromInt(1400), now.AddDate(0, 0, 28), now)

		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", active.Status().String())
		assert.True(t, decimal.NewFromInt(1400).Equal(active.TotalRepaymentDue()))
		assert.True(t, decimal.NewFromInt(1400).Equal(active.Balance()))
		assert.False(t, active.DueAt().IsZero())

		// The original copy is untouched.
		assert.Equal(t, "PENDING", loan.Status().String())
	})

	t.Run("cannot approve twice", func(t *testing.T) {
		active := approvedLoan(t, 1000)
		_, err := active.Approve(decimal.NewFromFloat(0.40), decimal.NewFromInt(1400), time.Now().UTC(), time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("refuses a total below principal", func(t *testing.T) {
		loan := newPendingLoan(t, valueobject.ProductTypeGroup, 1000, 0)
		_, err := loan.Approve(decimal.Zero, decimal.NewFromInt(900), time.Now().UTC(), time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrValidation)
	})
}

func TestLoan_Reject(t *testing.T) {
	t.Run("records the decision reason", func(t *testing.T) {
		loan := newPendingLoan(t, valueobject.ProductTypeGroup, 500, 0)

		rejected, err := loan.Reject("insufficient group history", time.Now().UTC())

		require.NoError(t, err)
		assert.Equal(t, "REJECTED", rejected.Status().String())
		assert.Equal(t, "insufficient group history", rejected.DecisionReason())
		assert.True(t, rejected.Status().IsTerminal())
	})

	t.Run("cannot reject an active loan", func(t *testing.T) {
		active := approvedLoan(t, 1000)
		_, err := active.Reject("too late", time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestLoan_ApplyPayment(t *testing.T) {
	t.Run("partial payment reduces the balance", func(t *testing.T) {
		active := approvedLoan(t, 1000)

		updated, err := active.ApplyPayment(decimal.NewFromInt(500), time.Now().UTC())

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(900).Equal(updated.Balance()))
		assert.Equal(t, "ACTIVE", updated.Status().String())
	})

	t.Run("a payment clearing the balance settles the loan", func(t *testing.T) {
		active := approvedLoan(t, 1000)

		settled, err := active.ApplyPayment(decimal.NewFromInt(1400), time.Now().UTC())

		require.NoError(t, err)
		assert.Equal(t, "SETTLED", settled.Status().String())
		assert.True(t, settled.Balance().IsZero())
		assert.False(t, settled.SettledAt().IsZero())
	})

	t.Run("refuses an amount above the balance", func(t *testing.T) {
		active := approvedLoan(t, 1000)

		_, err := active.ApplyPayment(decimal.NewFromInt(1500), time.Now().UTC())

		require.ErrorIs(t, err, valueobject.ErrValidation)
	})

	t.Run("refuses payments on a settled loan", func(t *testing.T) {
		active := approvedLoan(t, 1000)
		settled, err := active.ApplyPayment(decimal.NewFromInt(1400), time.Now().UTC())
		require.NoError(t, err)

		_, err = settled.ApplyPayment(decimal.NewFromInt(1), time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("refuses a non-positive amount", func(t *testing.T) {
		active := approvedLoan(t, 1000)
		_, err := active.ApplyPayment(decimal.Zero, time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrValidation)
	})
}

func TestLoan_MarkDefaulted(t *testing.T) {
	t.Run("defaults an active loan", func(t *testing.T) {
		active := approvedLoan(t, 1000)

		defaulted, err := active.MarkDefaulted(time.Now().UTC())

		require.NoError(t, err)
		assert.Equal(t, "DEFAULTED", defaulted.Status().String())
		assert.True(t, defaulted.Status().IsTerminal())
		// The outstanding balance is preserved for reporting.
		assert.True(t, decimal.NewFromInt(1400).Equal(defaulted.Balance()))
	})

	t.Run("cannot default a pending loan", func(t *testing.T) {
		loan := newPendingLoan(t, valueobject.ProductTypeGroup, 500, 0)
		_, err := loan.MarkDefaulted(time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestLoan_ClearEvents(t *testing.T) {
	loan := newPendingLoan(t, valueobject.ProductTypeGroup, 500, 0)
	cleared := loan.ClearEvents()

	assert.Empty(t, cleared.DomainEvents())
	assert.Len(t, loan.DomainEvents(), 1)
}

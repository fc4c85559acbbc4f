package usecase_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

func pendingLoan(product valueobject.ProductType, principal int64, weeks int) model.Loan {
	now := time.Now().UTC()
	return model.ReconstructLoan(
		"loan-001", "borrower-001", "agent-001", product,
		decimal.NewFromInt(principal), weeks,
		decimal.Zero, decimal.Zero, decimal.Zero,
		valueobject.LoanStatusPending, "", 1,
		now, time.Time{}, time.Time{}, time.Time{}, now,
	)
}

func activeLoan(totalDue, balance int64, dueAt time.Time) model.Loan {
	now := time.Now().UTC()
	return model.ReconstructLoan(
		"loan-001", "borrower-001", "agent-001", valueobject.ProductTypePersonal,
		decimal.NewFromInt(1000), 4,
		decimal.NewFromFloat(0.40), decimal.NewFromInt(totalDue), decimal.NewFromInt(balance),
		valueobject.LoanStatusActive, "", 2,
		now.AddDate(0, 0, -30), now.AddDate(0, 0, -30), dueAt, time.Time{}, now,
	)
}

func collateralItem(status valueobject.CollateralStatus) model.CollateralItem {
	now := time.Now().UTC()
	return model.ReconstructCollateralItem(
		"item-001", "loan-001", "motorbike",
		decimal.NewFromInt(2500), []string{"attachments/ref-1"},
		status, now, now,
	)
}

func pendingPayment(amount int64, ref string) model.Payment {
	return model.ReconstructPayment(
		"payment-001", "loan-001", decimal.NewFromInt(amount), ref,
		valueobject.PaymentStatusPending, time.Now().UTC(), time.Time{},
	)
}

package service

import (
	"github.com/shopspring/decimal"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// CommissionPolicy – derived agent payout, computed on read
// ---------------------------------------------------------------------------

// CommissionPolicy computes an agent's commission from the loan volume they
// originated. Commission is a read model, never a stored ledger entity.
type CommissionPolicy struct {
	rate decimal.Decimal
}

// NewCommissionPolicy returns a policy applying the given fractional rate
// (e.g. 0.05 pays the agent 5% of attributed volume).
func NewCommissionPolicy(rate decimal.Decimal) *CommissionPolicy {
	return &CommissionPolicy{rate: rate}
}

// Rate returns the configured commission rate.
func (p *CommissionPolicy) Rate() decimal.Decimal { return p.rate }

// AttributedVolume sums the principal of loans that count towards commission:
// loans the agent originated that reached ACTIVE or SETTLED.
func (p *CommissionPolicy) AttributedVolume(loans []model.Loan) decimal.Decimal {
	volume := decimal.Zero
	for _, loan := range loans {
		if loan.Status().Equal(valueobject.LoanStatusActive) ||
			loan.Status().Equal(valueobject.LoanStatusSettled) {
			volume = volume.Add(loan.Principal())
		}
	}
	return volume
}

// Commission computes rate * attributed volume, rounded to 2 decimal places.
func (p *CommissionPolicy) Commission(loans []model.Loan) decimal.Decimal {
	return p.AttributedVolume(loans).Mul(p.rate).Round(2)
}

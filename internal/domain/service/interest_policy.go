package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// InterestPolicy – domain service for product pricing
// ---------------------------------------------------------------------------

// InterestPolicyConfig carries the product rate tables. Rates are fractions,
// not percentages: 0.40 means the borrower repays principal * 1.40.
type InterestPolicyConfig struct {
	GroupRate    decimal.Decimal
	BusinessRate decimal.Decimal
	ItemRate     decimal.Decimal

	// PersonalWeeklyRates maps chosen duration in weeks to the flat rate for
	// personal/collateral loans.
	PersonalWeeklyRates map[int]decimal.Decimal
}

// DefaultInterestPolicyConfig returns the platform's standard rate tables.
func DefaultInterestPolicyConfig() InterestPolicyConfig {
	return InterestPolicyConfig{
		GroupRate:    decimal.NewFromFloat(0.40),
		BusinessRate: decimal.NewFromFloat(0.15),
		ItemRate:     decimal.NewFromFloat(0.40),
		PersonalWeeklyRates: map[int]decimal.Decimal{
			1: decimal.NewFromFloat(0.19),
			2: decimal.NewFromFloat(0.26),
			3: decimal.NewFromFloat(0.33),
			4: decimal.NewFromFloat(0.40),
		},
	}
}

// InterestPolicy computes the repayment total frozen at loan approval.
// The computation runs exactly once per loan, on the PENDING -> ACTIVE
// transition; it is never re-run afterwards.
type InterestPolicy struct {
	cfg InterestPolicyConfig
}

// NewInterestPolicy returns a policy using the given rate tables.
func NewInterestPolicy(cfg InterestPolicyConfig) *InterestPolicy {
	return &InterestPolicy{cfg: cfg}
}

// Rate returns the flat rate for a product. For duration-priced products the
// rate is looked up by the chosen duration in weeks; a duration outside the
// table is a validation error.
func (p *InterestPolicy) Rate(product valueobject.ProductType, durationWeeks int) (decimal.Decimal, error) {
	if product.UsesDuration() {
		rate, ok := p.cfg.PersonalWeeklyRates[durationWeeks]
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: no rate for duration of %d weeks",
				valueobject.ErrValidation, durationWeeks)
		}
		return rate, nil
	}

	switch {
	case product.Equal(valueobject.ProductTypeGroup):
		return p.cfg.GroupRate, nil
	case product.Equal(valueobject.ProductTypeBusiness):
		return p.cfg.BusinessRate, nil
	case product.Equal(valueobject.ProductTypeItem):
		return p.cfg.ItemRate, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown product type %s", valueobject.ErrValidation, product)
	}
}

// TotalDue computes principal * (1 + rate), rounded to 2 decimal places.
func (p *InterestPolicy) TotalDue(product valueobject.ProductType, principal decimal.Decimal, durationWeeks int) (decimal.Decimal, decimal.Decimal, error) {
	rate, err := p.Rate(product, durationWeeks)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	total := principal.Mul(decimal.NewFromInt(1).Add(rate)).Round(2)
	return rate, total, nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/port"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

// PortfolioSummaryUseCase projects portfolio-wide statistics for investor and
// admin dashboards. Everything here is derived from loan and collateral state
// on each read.
type PortfolioSummaryUseCase struct {
	loanRepo           port.LoanRepository
	collateralRepo     port.CollateralRepository
	investorReturnRate decimal.Decimal
}

func NewPortfolioSummaryUseCase(
	loanRepo port.LoanRepository,
	collateralRepo port.CollateralRepository,
	investorReturnRate decimal.Decimal,
) *PortfolioSummaryUseCase {
	return &PortfolioSummaryUseCase{
		loanRepo:           loanRepo,
		collateralRepo:     collateralRepo,
		investorReturnRate: investorReturnRate,
	}
}

func (uc *PortfolioSummaryUseCase) Execute(ctx context.Context) (dto.PortfolioSummaryResponse, error) {
	loans, err := uc.loanRepo.FindAll(ctx)
	if err != nil {
		return dto.PortfolioSummaryResponse{}, fmt.Errorf("listing loans: %w", err)
	}
	items, err := uc.collateralRepo.FindAll(ctx)
	if err != nil {
		return dto.PortfolioSummaryResponse{}, fmt.Errorf("listing collateral: %w", err)
	}

	counts := make(map[string]int)
	principalVolume := decimal.Zero
	activeVolume := decimal.Zero
	outstanding := decimal.Zero
	repaid := decimal.Zero

	for _, loan := range loans {
		counts[loan.Status().String()]++
		principalVolume = principalVolume.Add(loan.Principal())

		switch {
		case loan.Status().Equal(valueobject.LoanStatusActive):
			activeVolume = activeVolume.Add(loan.Principal())
			outstanding = outstanding.Add(loan.Balance())
			repaid = repaid.Add(loan.TotalRepaymentDue().Sub(loan.Balance()))
		case loan.Status().Equal(valueobject.LoanStatusSettled):
			repaid = repaid.Add(loan.TotalRepaymentDue())
		case loan.Status().Equal(valueobject.LoanStatusDefaulted):
			repaid = repaid.Add(loan.TotalRepaymentDue().Sub(loan.Balance()))
		}
	}

	heldValue := decimal.Zero
	for _, item := range items {
		if item.Status().Equal(valueobject.CollateralStatusHeld) {
			heldValue = heldValue.Add(item.EstimatedValue())
		}
	}

	loanToValue := decimal.Zero
	if heldValue.IsPositive() {
		loanToValue = activeVolume.DivRound(heldValue, 4)
	}

	return dto.PortfolioSummaryResponse{
		TotalLoans:              len(loans),
		CountsByStatus:          counts,
		PrincipalVolume:         principalVolume,
		ActiveLoanVolume:        activeVolume,
		OutstandingBalance:      outstanding,
		TotalRepaid:             repaid,
		TotalCollateralValue:    heldValue,
		LoanToValue:             loanToValue,
		ProjectedInvestorReturn: activeVolume.Mul(uc.investorReturnRate).Round(2),
	}, nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/port"
)

// GetLoanUseCase retrieves a single loan with its collateral and payment
// history. Caller-scoped visibility (borrower sees own loans only) is
// enforced at the transport boundary.
type GetLoanUseCase struct {
	loanRepo       port.LoanRepository
	collateralRepo port.CollateralRepository
	paymentRepo    port.PaymentRepository
}

func NewGetLoanUseCase(
	loanRepo port.LoanRepository,
	collateralRepo port.CollateralRepository,
	paymentRepo port.PaymentRepository,
) *GetLoanUseCase {
	return &GetLoanUseCase{
		loanRepo:       loanRepo,
		collateralRepo: collateralRepo,
		paymentRepo:    paymentRepo,
	}
}

func (uc *GetLoanUseCase) Execute(ctx context.Context, req dto.GetLoanRequest) (dto.LoanDetailResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("finding loan %s: %w", req.LoanID, err)
	}

	items, err := uc.collateralRepo.FindByLoanID(ctx, loan.ID())
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("finding collateral for loan %s: %w", loan.ID(), err)
	}
	payments, err := uc.paymentRepo.FindByLoanID(ctx, loan.ID())
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("finding payments for loan %s: %w", loan.ID(), err)
	}

	return dto.LoanDetailResponse{
		Loan:       toLoanResponse(loan),
		Collateral: toCollateralResponses(items),
		Payments:   toPaymentResponses(payments),
	}, nil
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/port"
)

// BorrowerDashboardUseCase projects a borrower's loans with collateral and
// payment history. Attachment references are resolved to retrievable URLs;
// a resolution failure degrades the view instead of failing it.
type BorrowerDashboardUseCase struct {
	loanRepo       port.LoanRepository
	collateralRepo port.CollateralRepository
	paymentRepo    port.PaymentRepository
	objectStore    port.ObjectStore
	logger         *slog.Logger
}

func NewBorrowerDashboardUseCase(
	loanRepo port.LoanRepository,
	collateralRepo port.CollateralRepository,
	paymentRepo port.PaymentRepository,
	objectStore port.ObjectStore,
	logger *slog.Logger,
) *BorrowerDashboardUseCase {
	return &BorrowerDashboardUseCase{
		loanRepo:       loanRepo,
		collateralRepo: collateralRepo,
		paymentRepo:    paymentRepo,
		objectStore:    objectStore,
		logger:         logger,
	}
}

func (uc *BorrowerDashboardUseCase) Execute(ctx context.Context, borrowerID string) (dto.BorrowerDashboardResponse, error) {
	loans, err := uc.loanRepo.FindByBorrowerID(ctx, borrowerID)
	if err != nil {
		return dto.BorrowerDashboardResponse{}, fmt.Errorf("finding loans for borrower %s: %w", borrowerID, err)
	}

	details := make([]dto.LoanDetailResponse, 0, len(loans))
	for _, loan := range loans {
		items, err := uc.collateralRepo.FindByLoanID(ctx, loan.ID())
		if err != nil {
			return dto.BorrowerDashboardResponse{}, fmt.Errorf("finding collateral for loan %s: %w", loan.ID(), err)
		}
		payments, err := uc.paymentRepo.FindByLoanID(ctx, loan.ID())
		if err != nil {
			return dto.BorrowerDashboardResponse{}, fmt.Errorf("finding payments for loan %s: %w", loan.ID(), err)
		}

		collateral := toCollateralResponses(items)
		for i := range collateral {
			collateral[i].AttachmentURLs = uc.resolveRefs(ctx, collateral[i].AttachmentRefs)
		}

		details = append(details, dto.LoanDetailResponse{
			Loan:       toLoanResponse(loan),
			Collateral: collateral,
			Payments:   toPaymentResponses(payments),
		})
	}

	return dto.BorrowerDashboardResponse{
		BorrowerID: borrowerID,
		Loans:      details,
	}, nil
}

func (uc *BorrowerDashboardUseCase) resolveRefs(ctx context.Context, refs []string) []string {
	if len(refs) == 0 {
		return nil
	}
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		url, err := uc.objectStore.Resolve(ctx, ref)
		if err != nil {
			uc.logger.WarnContext(ctx, "failed to resolve attachment reference", "ref", ref, "error", err)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

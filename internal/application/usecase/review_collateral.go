package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/port"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

// ReviewCollateralUseCase applies the admin decision to a pending collateral
// item. The decision never transitions the owning loan; approval only makes
// the item eligible as backing when the loan is approved later.
type ReviewCollateralUseCase struct {
	collateralRepo port.CollateralRepository
	loanRepo       port.LoanRepository
	publisher      port.EventPublisher
	logger         *slog.Logger
}

func NewReviewCollateralUseCase(
	collateralRepo port.CollateralRepository,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *ReviewCollateralUseCase {
	return &ReviewCollateralUseCase{
		collateralRepo: collateralRepo,
		loanRepo:       loanRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

func (uc *ReviewCollateralUseCase) Execute(ctx context.Context, req dto.ReviewCollateralRequest) (dto.CollateralResponse, error) {
	item, err := uc.collateralRepo.FindByID(ctx, req.ItemID)
	if err != nil {
		return dto.CollateralResponse{}, fmt.Errorf("finding collateral item %s: %w", req.ItemID, err)
	}

	loan, err := uc.loanRepo.FindByID(ctx, item.LoanID())
	if err != nil {
		return dto.CollateralResponse{}, fmt.Errorf("finding loan %s: %w", item.LoanID(), err)
	}
	if loan.Status().IsTerminal() {
		return dto.CollateralResponse{}, fmt.Errorf("loan %s is %s: %w",
			loan.ID(), loan.Status(), valueobject.ErrLoanFinalized)
	}

	now := time.Now().UTC()
	var reviewed model.CollateralItem
	switch req.Decision {
	case "approve":
		reviewed, err = item.Approve(now)
	case "reject":
		reviewed, err = item.Reject(now)
	default:
		return dto.CollateralResponse{}, fmt.Errorf("%w: unknown review decision %q",
			valueobject.ErrValidation, req.Decision)
	}
	if err != nil {
		return dto.CollateralResponse{}, err
	}

	if err := uc.collateralRepo.Save(ctx, reviewed); err != nil {
		return dto.CollateralResponse{}, fmt.Errorf("saving collateral item %s: %w", item.ID(), err)
	}

	publishEvents(ctx, uc.publisher, uc.logger, reviewed.DomainEvents())

	uc.logger.InfoContext(ctx, "collateral reviewed",
		"item_id", reviewed.ID(),
		"loan_id", reviewed.LoanID(),
		"decision", req.Decision,
	)

	return toCollateralResponse(reviewed), nil
}

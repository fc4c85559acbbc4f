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

// SubmitCollateralUseCase pledges an item against a loan. Attachments are
// uploaded to the object store and only their references enter the ledger.
type SubmitCollateralUseCase struct {
	loanRepo       port.LoanRepository
	collateralRepo port.CollateralRepository
	objectStore    port.ObjectStore
	publisher      port.EventPublisher
	logger         *slog.Logger
}

func NewSubmitCollateralUseCase(
	loanRepo port.LoanRepository,
	collateralRepo port.CollateralRepository,
	objectStore port.ObjectStore,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *SubmitCollateralUseCase {
	return &SubmitCollateralUseCase{
		loanRepo:       loanRepo,
		collateralRepo: collateralRepo,
		objectStore:    objectStore,
		publisher:      publisher,
		logger:         logger,
	}
}

func (uc *SubmitCollateralUseCase) Execute(ctx context.Context, req dto.SubmitCollateralRequest) (dto.CollateralResponse, error) {
	// 1. Collateral may be attached while the loan is pending or active, but
	// never after it reaches a terminal state.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.CollateralResponse{}, fmt.Errorf("finding loan %s: %w", req.LoanID, err)
	}
	if loan.Status().IsTerminal() {
		return dto.CollateralResponse{}, fmt.Errorf("loan %s is %s: %w",
			loan.ID(), loan.Status(), valueobject.ErrLoanFinalized)
	}

	// 2. Upload attachments; the item stores opaque references only.
	refs := make([]string, 0, len(req.Attachments))
	for i, attachment := range req.Attachments {
		ref, err := uc.objectStore.Upload(ctx, attachment.Data, attachment.ContentType)
		if err != nil {
			return dto.CollateralResponse{}, fmt.Errorf("uploading attachment %d: %w", i, err)
		}
		refs = append(refs, ref)
	}

	// 3. Create and persist the item.
	item, err := model.NewCollateralItem(loan.ID(), req.Description, req.EstimatedValue, refs, time.Now().UTC())
	if err != nil {
		return dto.CollateralResponse{}, err
	}
	if err := uc.collateralRepo.Save(ctx, item); err != nil {
		return dto.CollateralResponse{}, fmt.Errorf("saving collateral item: %w", err)
	}

	publishEvents(ctx, uc.publisher, uc.logger, item.DomainEvents())

	uc.logger.InfoContext(ctx, "collateral submitted",
		"item_id", item.ID(),
		"loan_id", loan.ID(),
		"estimated_value", item.EstimatedValue().String(),
		"attachments", len(refs),
	)

	return toCollateralResponse(item), nil
}

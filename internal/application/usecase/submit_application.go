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

// SubmitApplicationUseCase opens a loan application in PENDING status.
type SubmitApplicationUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

func NewSubmitApplicationUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *SubmitApplicationUseCase) Execute(ctx context.Context, req dto.SubmitApplicationRequest) (dto.LoanResponse, error) {
	// 1. Parse and validate the product type.
	productType, err := valueobject.NewProductType(req.ProductType)
	if err != nil {
		return dto.LoanResponse{}, err
	}

	// 2. Create the aggregate. All field validation lives in the constructor.
	now := time.Now().UTC()
	loan, err := model.NewLoan(req.BorrowerID, req.AgentID, productType, req.Principal, req.DurationWeeks, now)
	if err != nil {
		return dto.LoanResponse{}, err
	}

	// 3. Persist.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("saving loan application: %w", err)
	}

	// 4. Publish change notifications. Delivery failures do not fail the write.
	publishEvents(ctx, uc.publisher, uc.logger, loan.DomainEvents())

	uc.logger.InfoContext(ctx, "loan application submitted",
		"loan_id", loan.ID(),
		"borrower_id", loan.BorrowerID(),
		"product_type", productType.String(),
		"principal", loan.Principal().String(),
	)

	return toLoanResponse(loan), nil
}

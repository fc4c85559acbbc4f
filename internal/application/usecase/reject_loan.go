package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/port"
)

// RejectLoanUseCase transitions a pending loan to REJECTED.
type RejectLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

func NewRejectLoanUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *RejectLoanUseCase {
	return &RejectLoanUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *RejectLoanUseCase) Execute(ctx context.Context, req dto.RejectLoanRequest) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("finding loan %s: %w", req.LoanID, err)
	}

	rejected, err := loan.Reject(req.Reason, time.Now().UTC())
	if err != nil {
		return dto.LoanResponse{}, err
	}
	if err := uc.loanRepo.Save(ctx, rejected); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("saving rejected loan %s: %w", loan.ID(), err)
	}

	publishEvents(ctx, uc.publisher, uc.logger, rejected.DomainEvents())

	uc.logger.InfoContext(ctx, "loan rejected",
		"loan_id", rejected.ID(),
		"reason", req.Reason,
	)

	return toLoanResponse(rejected), nil
}

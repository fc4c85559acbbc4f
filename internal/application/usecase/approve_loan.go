package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/port"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/service"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

// ApproveLoanUseCase transitions a pending loan to ACTIVE. Approval prices the
// loan exactly once, freezes the repayment total, and takes approved
// collateral into custody.
type ApproveLoanUseCase struct {
	loanRepo       port.LoanRepository
	collateralRepo port.CollateralRepository
	transactor     port.Transactor
	publisher      port.EventPublisher
	interestPolicy *service.InterestPolicy
	termWeeks      int
	logger         *slog.Logger
}

// NewApproveLoanUseCase wires the approval flow. termWeeks is the repayment
// term applied to products that do not carry a borrower-chosen duration.
func NewApproveLoanUseCase(
	loanRepo port.LoanRepository,
	collateralRepo port.CollateralRepository,
	transactor port.Transactor,
	publisher port.EventPublisher,
	interestPolicy *service.InterestPolicy,
	termWeeks int,
	logger *slog.Logger,
) *ApproveLoanUseCase {
	return &ApproveLoanUseCase{
		loanRepo:       loanRepo,
		collateralRepo: collateralRepo,
		transactor:     transactor,
		publisher:      publisher,
		interestPolicy: interestPolicy,
		termWeeks:      termWeeks,
		logger:         logger,
	}
}

func (uc *ApproveLoanUseCase) Execute(ctx context.Context, req dto.ApproveLoanRequest) (dto.LoanResponse, error) {
	// 1. Load the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("finding loan %s: %w", req.LoanID, err)
	}

	// 2. Collateral-backed products require at least one approved item before
	// the loan may activate.
	var heldItems []model.CollateralItem
	if loan.ProductType().RequiresCollateral() {
		items, err := uc.collateralRepo.FindByLoanID(ctx, loan.ID())
		if err != nil {
			return dto.LoanResponse{}, fmt.Errorf("finding collateral for loan %s: %w", loan.ID(), err)
		}
		for _, item := range items {
			if item.Status().Equal(valueobject.CollateralStatusApproved) {
				heldItems = append(heldItems, item)
			}
		}
		if len(heldItems) == 0 {
			return dto.LoanResponse{}, fmt.Errorf("loan %s has no approved collateral: %w",
				loan.ID(), valueobject.ErrMissingCollateral)
		}
	}

	// 3. Price the loan. This is the only point where the rate table is read.
	rate, totalDue, err := uc.interestPolicy.TotalDue(loan.ProductType(), loan.Principal(), loan.DurationWeeks())
	if err != nil {
		return dto.LoanResponse{}, err
	}

	// 4. Transition and persist. A version conflict surfaces unchanged so the
	// caller can retry against fresh state.
	now := time.Now().UTC()
	weeks := uc.termWeeks
	if loan.ProductType().UsesDuration() {
		weeks = loan.DurationWeeks()
	}
	dueAt := now.AddDate(0, 0, weeks*7)

	approved, err := loan.Approve(rate, totalDue, dueAt, now)
	if err != nil {
		return dto.LoanResponse{}, err
	}

	// 5. The loan write and the custody transfers commit as one transaction:
	// an ACTIVE loan never exists without its collateral HELD. Approved
	// collateral stays in custody for the life of the loan.
	events := approved.DomainEvents()
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.loanRepo.Save(ctx, approved); err != nil {
			return fmt.Errorf("saving approved loan %s: %w", loan.ID(), err)
		}
		for _, item := range heldItems {
			held, err := item.Hold(now)
			if err != nil {
				return fmt.Errorf("holding collateral %s: %w", item.ID(), err)
			}
			if err := uc.collateralRepo.Save(ctx, held); err != nil {
				return fmt.Errorf("saving held collateral %s: %w", item.ID(), err)
			}
			events = append(events, held.DomainEvents()...)
		}
		return nil
	})
	if err != nil {
		return dto.LoanResponse{}, err
	}

	publishEvents(ctx, uc.publisher, uc.logger, events)

	uc.logger.InfoContext(ctx, "loan approved",
		"loan_id", approved.ID(),
		"interest_rate", rate.String(),
		"total_repayment_due", totalDue.String(),
		"due_at", dueAt,
		"collateral_held", len(heldItems),
	)

	return toLoanResponse(approved), nil
}

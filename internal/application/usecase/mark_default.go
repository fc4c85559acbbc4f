package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/port"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

// MarkDefaultUseCase transitions an overdue active loan to DEFAULTED and
// seizes any collateral in custody. Default is an administrative decision,
// never automatic: the grace window only gates when the decision may be made.
type MarkDefaultUseCase struct {
	loanRepo       port.LoanRepository
	collateralRepo port.CollateralRepository
	transactor     port.Transactor
	publisher      port.EventPublisher
	gracePeriod    time.Duration
	logger         *slog.Logger
}

func NewMarkDefaultUseCase(
	loanRepo port.LoanRepository,
	collateralRepo port.CollateralRepository,
	transactor port.Transactor,
	publisher port.EventPublisher,
	gracePeriod time.Duration,
	logger *slog.Logger,
) *MarkDefaultUseCase {
	return &MarkDefaultUseCase{
		loanRepo:       loanRepo,
		collateralRepo: collateralRepo,
		transactor:     transactor,
		publisher:      publisher,
		gracePeriod:    gracePeriod,
		logger:         logger,
	}
}

func (uc *MarkDefaultUseCase) Execute(ctx context.Context, req dto.MarkDefaultRequest) (dto.LoanResponse, error) {
	// 1. Load the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("finding loan %s: %w", req.LoanID, err)
	}

	// 2. The grace window after the due date must have elapsed.
	now := time.Now().UTC()
	if loan.Status().Equal(valueobject.LoanStatusActive) {
		earliest := loan.DueAt().Add(uc.gracePeriod)
		if now.Before(earliest) {
			return dto.LoanResponse{}, fmt.Errorf("%w: loan %s cannot default before %s",
				valueobject.ErrValidation, loan.ID(), earliest.Format(time.RFC3339))
		}
	}

	// 3. Transition and persist. The loan write and the seizures commit as
	// one transaction so a DEFAULTED loan never leaves collateral in limbo.
	defaulted, err := loan.MarkDefaulted(now)
	if err != nil {
		return dto.LoanResponse{}, err
	}

	events := defaulted.DomainEvents()
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.loanRepo.Save(ctx, defaulted); err != nil {
			return fmt.Errorf("saving defaulted loan %s: %w", loan.ID(), err)
		}
		items, err := uc.collateralRepo.FindByLoanID(ctx, loan.ID())
		if err != nil {
			return fmt.Errorf("finding collateral for loan %s: %w", loan.ID(), err)
		}
		for _, item := range items {
			if !item.Status().Equal(valueobject.CollateralStatusHeld) {
				continue
			}
			seized, err := item.Seize(now)
			if err != nil {
				return fmt.Errorf("seizing collateral %s: %w", item.ID(), err)
			}
			if err := uc.collateralRepo.Save(ctx, seized); err != nil {
				return fmt.Errorf("saving seized collateral %s: %w", item.ID(), err)
			}
			events = append(events, seized.DomainEvents()...)
		}
		return nil
	})
	if err != nil {
		return dto.LoanResponse{}, err
	}

	publishEvents(ctx, uc.publisher, uc.logger, events)

	uc.logger.InfoContext(ctx, "loan marked defaulted",
		"loan_id", defaulted.ID(),
		"outstanding_balance", defaulted.Balance().String(),
	)

	return toLoanResponse(defaulted), nil
}

package port

import (
	"context"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/event"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository persists and retrieves loans. Save performs a conditional
// update keyed on the aggregate's version and returns
// valueobject.ErrConcurrencyConflict when another writer got there first.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id string) (model.Loan, error)
	FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.Loan, error)
	FindByAgentID(ctx context.Context, agentID string) ([]model.Loan, error)
	FindAll(ctx context.Context) ([]model.Loan, error)
}

// CollateralRepository persists and retrieves collateral items.
type CollateralRepository interface {
	Save(ctx context.Context, item model.CollateralItem) error
	FindByID(ctx context.Context, id string) (model.CollateralItem, error)
	FindByLoanID(ctx context.Context, loanID string) ([]model.CollateralItem, error)
	FindAll(ctx context.Context) ([]model.CollateralItem, error)
}

// PaymentRepository persists and retrieves repayments.
type PaymentRepository interface {
	Save(ctx context.Context, payment model.Payment) error
	FindByID(ctx context.Context, id string) (model.Payment, error)
	FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error)
	// ExistsByTransactionRef reports whether the reference has already been
	// recorded for the loan, regardless of verification outcome.
	ExistsByTransactionRef(ctx context.Context, loanID, transactionRef string) (bool, error)
}

// Transactor runs fn atomically: every repository write made through the
// context handed to fn either commits as one unit or rolls back entirely.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to the change-notification bus.
// Dashboards subscribe for live updates; delivery is not required for
// correctness of the core.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// ObjectStore is the blob-storage collaborator. The core never owns bytes;
// it stores opaque references and resolves them to retrievable URLs on read.
type ObjectStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	Resolve(ctx context.Context, ref string) (string, error)
}

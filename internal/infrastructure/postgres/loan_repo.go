package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
	pkgpostgres "github.com/remy-crypto/dunkuloans-sub000/pkg/postgres"
)

// scannable abstracts pgx.Row and pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

const loanColumns = `
	id, borrower_id, agent_id, product_type, principal, duration_weeks,
	interest_rate, total_repayment_due, balance, status, decision_reason,
	version, created_at, approved_at, due_at, settled_at, updated_at
`

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Save persists a loan (upsert). Updates are conditional on the version the
// aggregate was loaded at; a lost race returns ErrConcurrencyConflict.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	query := `
		INSERT INTO loans (
			id, borrower_id, agent_id, product_type, principal, duration_weeks,
			interest_rate, total_repayment_due, balance, status, decision_reason,
			version, created_at, approved_at, due_at, settled_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			interest_rate       = EXCLUDED.interest_rate,
			total_repayment_due = EXCLUDED.total_repayment_due,
			balance             = EXCLUDED.balance,
			status              = EXCLUDED.status,
			decision_reason     = EXCLUDED.decision_reason,
			version             = loans.version + 1,
			approved_at         = EXCLUDED.approved_at,
			due_at              = EXCLUDED.due_at,
			settled_at          = EXCLUDED.settled_at,
			updated_at          = EXCLUDED.updated_at
		WHERE loans.version = $12
	`
	tag, err := pkgpostgres.QuerierFrom(ctx, r.pool).Exec(ctx, query,
		loan.ID(), loan.BorrowerID(), nullable(loan.AgentID()),
		loan.ProductType().String(), loan.Principal(), loan.DurationWeeks(),
		loan.InterestRate(), loan.TotalRepaymentDue(), loan.Balance(),
		loan.Status().String(), nullable(loan.DecisionReason()),
		loan.Version(), loan.CreatedAt(),
		nullTime(loan.ApprovedAt()), nullTime(loan.DueAt()), nullTime(loan.SettledAt()),
		loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s was modified concurrently: %w",
			loan.ID(), valueobject.ErrConcurrencyConflict)
	}
	return nil
}

// FindByID retrieves a loan by ID.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	loan, err := scanLoan(pkgpostgres.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, fmt.Errorf("loan %s: %w", id, valueobject.ErrNotFound)
	}
	return loan, err
}

// FindByBorrowerID retrieves all loans for a borrower, newest first.
func (r *LoanRepo) FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE borrower_id = $1 ORDER BY created_at DESC`
	return r.queryLoans(ctx, query, borrowerID)
}

// FindByAgentID retrieves all loans originated by an agent, newest first.
func (r *LoanRepo) FindByAgentID(ctx context.Context, agentID string) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE agent_id = $1 ORDER BY created_at DESC`
	return r.queryLoans(ctx, query, agentID)
}

// FindAll retrieves every loan, newest first.
func (r *LoanRepo) FindAll(ctx context.Context) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY created_at DESC`
	return r.queryLoans(ctx, query)
}

func (r *LoanRepo) queryLoans(ctx context.Context, query string, args ...any) ([]model.Loan, error) {
	rows, err := pkgpostgres.QuerierFrom(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var result []model.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, loan)
	}
	return result, rows.Err()
}

func scanLoan(s scannable) (model.Loan, error) {
	var (
		id, borrowerID                        string
		agentID, decisionReason               *string
		productTypeStr, statusStr             string
		principal, rate, totalDue, balance    decimal.Decimal
		durationWeeks, version                int
		createdAt, updatedAt                  time.Time
		approvedAt, dueAt, settledAt          *time.Time
	)

	err := s.Scan(
		&id, &borrowerID, &agentID, &productTypeStr, &principal, &durationWeeks,
		&rate, &totalDue, &balance, &statusStr, &decisionReason,
		&version, &createdAt, &approvedAt, &dueAt, &settledAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, err
		}
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	productType, err := valueobject.NewProductType(productTypeStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse product type: %w", err)
	}
	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}

	return model.ReconstructLoan(
		id, borrowerID, deref(agentID), productType,
		principal, durationWeeks, rate, totalDue, balance,
		status, deref(decisionReason), version,
		createdAt, derefTime(approvedAt), derefTime(dueAt), derefTime(settledAt), updatedAt,
	), nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

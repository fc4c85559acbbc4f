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

const paymentColumns = `
	id, loan_id, amount, transaction_ref, status, submitted_at, verified_at
`

// PaymentRepo implements port.PaymentRepository.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentRepo creates a PostgreSQL-backed payment repository.
func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// Save persists a payment (upsert). The unique (loan_id, transaction_ref)
// index backs the idempotence check against racing writers, and the update
// arm only fires while the stored row is still PENDING: a verification that
// lost the race against another verifier affects zero rows and returns
// ErrInvalidStatusTransition instead of overwriting a finalized payment.
func (r *PaymentRepo) Save(ctx context.Context, payment model.Payment) error {
	query := `
		INSERT INTO payments (
			id, loan_id, amount, transaction_ref, status, submitted_at, verified_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			status      = EXCLUDED.status,
			verified_at = EXCLUDED.verified_at
		WHERE payments.status = 'PENDING'
	`
	tag, err := pkgpostgres.QuerierFrom(ctx, r.pool).Exec(ctx, query,
		payment.ID(), payment.LoanID(), payment.Amount(), payment.TransactionRef(),
		payment.Status().String(), payment.SubmittedAt(), nullTime(payment.VerifiedAt()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transaction reference %q already recorded for loan %s: %w",
				payment.TransactionRef(), payment.LoanID(), valueobject.ErrDuplicateTransaction)
		}
		return fmt.Errorf("save payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s is already verified: %w",
			payment.ID(), valueobject.ErrInvalidStatusTransition)
	}
	return nil
}

// FindByID retrieves a payment by ID.
func (r *PaymentRepo) FindByID(ctx context.Context, id string) (model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	payment, err := scanPayment(pkgpostgres.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Payment{}, fmt.Errorf("payment %s: %w", id, valueobject.ErrNotFound)
	}
	return payment, err
}

// FindByLoanID retrieves all payments recorded against a loan, oldest first.
func (r *PaymentRepo) FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE loan_id = $1 ORDER BY submitted_at`
	rows, err := pkgpostgres.QuerierFrom(ctx, r.pool).Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, payment)
	}
	return result, rows.Err()
}

// ExistsByTransactionRef reports whether the reference has already been
// recorded for the loan, regardless of verification outcome.
func (r *PaymentRepo) ExistsByTransactionRef(ctx context.Context, loanID, transactionRef string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM payments WHERE loan_id = $1 AND transaction_ref = $2)`
	var exists bool
	if err := pkgpostgres.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, loanID, transactionRef).Scan(&exists); err != nil {
		return false, fmt.Errorf("check transaction reference: %w", err)
	}
	return exists, nil
}

func scanPayment(s scannable) (model.Payment, error) {
	var (
		id, loanID, transactionRef, statusStr string
		amount                                decimal.Decimal
		submittedAt                           time.Time
		verifiedAt                            *time.Time
	)

	err := s.Scan(&id, &loanID, &amount, &transactionRef, &statusStr, &submittedAt, &verifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Payment{}, err
		}
		return model.Payment{}, fmt.Errorf("scan payment: %w", err)
	}

	status, err := valueobject.NewPaymentStatus(statusStr)
	if err != nil {
		return model.Payment{}, fmt.Errorf("parse payment status: %w", err)
	}

	return model.ReconstructPayment(
		id, loanID, amount, transactionRef, status, submittedAt, derefTime(verifiedAt),
	), nil
}

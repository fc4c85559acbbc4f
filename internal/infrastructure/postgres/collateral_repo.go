package postgres

import (
	"context"
	"encoding/json"
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

const collateralColumns = `
	id, loan_id, description, estimated_value, attachment_refs, status,
	created_at, updated_at
`

// CollateralRepo implements port.CollateralRepository.
type CollateralRepo struct {
	pool *pgxpool.Pool
}

// NewCollateralRepo creates a PostgreSQL-backed collateral repository.
func NewCollateralRepo(pool *pgxpool.Pool) *CollateralRepo {
	return &CollateralRepo{pool: pool}
}

// Save persists a collateral item (upsert).
func (r *CollateralRepo) Save(ctx context.Context, item model.CollateralItem) error {
	refsJSON, err := json.Marshal(item.AttachmentRefs())
	if err != nil {
		return fmt.Errorf("marshal attachment refs: %w", err)
	}

	query := `
		INSERT INTO collateral_items (
			id, loan_id, description, estimated_value, attachment_refs, status,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			description     = EXCLUDED.description,
			estimated_value = EXCLUDED.estimated_value,
			attachment_refs = EXCLUDED.attachment_refs,
			status          = EXCLUDED.status,
			updated_at      = EXCLUDED.updated_at
	`
	tag, err := pkgpostgres.QuerierFrom(ctx, r.pool).Exec(ctx, query,
		item.ID(), item.LoanID(), item.Description(), item.EstimatedValue(),
		refsJSON, item.Status().String(), item.CreatedAt(), item.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save collateral item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("failed to save collateral item")
	}
	return nil
}

// FindByID retrieves a collateral item by ID.
func (r *CollateralRepo) FindByID(ctx context.Context, id string) (model.CollateralItem, error) {
	query := `SELECT ` + collateralColumns + ` FROM collateral_items WHERE id = $1`
	item, err := scanCollateralItem(pkgpostgres.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CollateralItem{}, fmt.Errorf("collateral item %s: %w", id, valueobject.ErrNotFound)
	}
	return item, err
}

// FindByLoanID retrieves all collateral items attached to a loan.
func (r *CollateralRepo) FindByLoanID(ctx context.Context, loanID string) ([]model.CollateralItem, error) {
	query := `SELECT ` + collateralColumns + ` FROM collateral_items WHERE loan_id = $1 ORDER BY created_at`
	return r.queryItems(ctx, query, loanID)
}

// FindAll retrieves every collateral item.
func (r *CollateralRepo) FindAll(ctx context.Context) ([]model.CollateralItem, error) {
	query := `SELECT ` + collateralColumns + ` FROM collateral_items ORDER BY created_at`
	return r.queryItems(ctx, query)
}

func (r *CollateralRepo) queryItems(ctx context.Context, query string, args ...any) ([]model.CollateralItem, error) {
	rows, err := pkgpostgres.QuerierFrom(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query collateral items: %w", err)
	}
	defer rows.Close()

	var result []model.CollateralItem
	for rows.Next() {
		item, err := scanCollateralItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func scanCollateralItem(s scannable) (model.CollateralItem, error) {
	var (
		id, loanID, description string
		estimatedValue          decimal.Decimal
		refsJSON                []byte
		statusStr               string
		createdAt, updatedAt    time.Time
	)

	err := s.Scan(&id, &loanID, &description, &estimatedValue, &refsJSON, &statusStr, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CollateralItem{}, err
		}
		return model.CollateralItem{}, fmt.Errorf("scan collateral item: %w", err)
	}

	status, err := valueobject.NewCollateralStatus(statusStr)
	if err != nil {
		return model.CollateralItem{}, fmt.Errorf("parse collateral status: %w", err)
	}

	var refs []string
	if err := json.Unmarshal(refsJSON, &refs); err != nil {
		return model.CollateralItem{}, fmt.Errorf("unmarshal attachment refs: %w", err)
	}

	return model.ReconstructCollateralItem(
		id, loanID, description, estimatedValue, refs, status, createdAt, updatedAt,
	), nil
}

package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/event"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockLoanRepository struct {
	findByIDFunc         func(ctx context.Context, id string) (model.Loan, error)
	findByBorrowerIDFunc func(ctx context.Context, borrowerID string) ([]model.Loan, error)
	findByAgentIDFunc    func(ctx context.Context, agentID string) ([]model.Loan, error)
	findAllFunc          func(ctx context.Context) ([]model.Loan, error)
	saveFunc             func(ctx context.Context, loan model.Loan) error
	savedLoans           []model.Loan
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, loan); err != nil {
			return err
		}
	}
	m.savedLoans = append(m.savedLoans, loan)
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, valueobject.ErrNotFound
}

func (m *mockLoanRepository) FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.Loan, error) {
	if m.findByBorrowerIDFunc != nil {
		return m.findByBorrowerIDFunc(ctx, borrowerID)
	}
	return nil, nil
}

func (m *mockLoanRepository) FindByAgentID(ctx context.Context, agentID string) ([]model.Loan, error) {
	if m.findByAgentIDFunc != nil {
		return m.findByAgentIDFunc(ctx, agentID)
	}
	return nil, nil
}

func (m *mockLoanRepository) FindAll(ctx context.Context) ([]model.Loan, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

type mockCollateralRepository struct {
	findByIDFunc     func(ctx context.Context, id string) (model.CollateralItem, error)
	findByLoanIDFunc func(ctx context.Context, loanID string) ([]model.CollateralItem, error)
	findAllFunc      func(ctx context.Context) ([]model.CollateralItem, error)
	saveFunc         func(ctx context.Context, item model.CollateralItem) error
	savedItems       []model.CollateralItem
}

func (m *mockCollateralRepository) Save(ctx context.Context, item model.CollateralItem) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, item); err != nil {
			return err
		}
	}
	m.savedItems = append(m.savedItems, item)
	return nil
}

func (m *mockCollateralRepository) FindByID(ctx context.Context, id string) (model.CollateralItem, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.CollateralItem{}, valueobject.ErrNotFound
}

func (m *mockCollateralRepository) FindByLoanID(ctx context.Context, loanID string) ([]model.CollateralItem, error) {
	if m.findByLoanIDFunc != nil {
		return m.findByLoanIDFunc(ctx, loanID)
	}
	return nil, nil
}

func (m *mockCollateralRepository) FindAll(ctx context.Context) ([]model.CollateralItem, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

type mockPaymentRepository struct {
	findByIDFunc     func(ctx context.Context, id string) (model.Payment, error)
	findByLoanIDFunc func(ctx context.Context, loanID string) ([]model.Payment, error)
	existsFunc       func(ctx context.Context, loanID, transactionRef string) (bool, error)
	saveFunc         func(ctx context.Context, payment model.Payment) error
	savedPayments    []model.Payment
}

func (m *mockPaymentRepository) Save(ctx context.Context, payment model.Payment) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, payment); err != nil {
			return err
		}
	}
	m.savedPayments = append(m.savedPayments, payment)
	return nil
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id string) (model.Payment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Payment{}, valueobject.ErrNotFound
}

func (m *mockPaymentRepository) FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error) {
	if m.findByLoanIDFunc != nil {
		return m.findByLoanIDFunc(ctx, loanID)
	}
	return nil, nil
}

func (m *mockPaymentRepository) ExistsByTransactionRef(ctx context.Context, loanID, transactionRef string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, loanID, transactionRef)
	}
	return false, nil
}

// mockTransactor runs the function inline; an optional wrapper lets tests
// observe or fail the transactional section.
type mockTransactor struct {
	withinFunc func(ctx context.Context, fn func(ctx context.Context) error) error
	calls      int
}

func (m *mockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.withinFunc != nil {
		return m.withinFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if m.publishFunc != nil {
		if err := m.publishFunc(ctx, events...); err != nil {
			return err
		}
	}
	m.publishedEvents = append(m.publishedEvents, events...)
	return nil
}

type mockObjectStore struct {
	uploadFunc  func(ctx context.Context, data []byte, contentType string) (string, error)
	resolveFunc func(ctx context.Context, ref string) (string, error)
}

func (m *mockObjectStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, data, contentType)
	}
	return "attachments/test-ref", nil
}

func (m *mockObjectStore) Resolve(ctx context.Context, ref string) (string, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, ref)
	}
	return "http://localhost/objects/" + ref, nil
}

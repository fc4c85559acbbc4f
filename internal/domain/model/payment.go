package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/event"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Payment entity
// ---------------------------------------------------------------------------

// Payment is a repayment submitted against an active loan. It is recorded in
// PENDING verification status and later completed or rejected; only completed
// payments reduce the loan balance. The transaction reference is the external
// provider's id (e.g. a mobile-money transaction) and must be unique within a
// loan's payment history.
type Payment struct {
	id             string
	loanID         string
	amount         decimal.Decimal
	transactionRef string
	status         valueobject.PaymentStatus
	submittedAt    time.Time
	verifiedAt     time.Time
	domainEvents   []event.DomainEvent
}

// NewPayment creates a payment in PENDING verification status.
func NewPayment(loanID string, amount decimal.Decimal, transactionRef string, now time.Time) (Payment, error) {
	if loanID == "" {
		return Payment{}, fmt.Errorf("%w: loan ID is required", valueobject.ErrValidation)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Payment{}, fmt.Errorf("%w: payment amount must be positive", valueobject.ErrValidation)
	}
	if transactionRef == "" {
		return Payment{}, fmt.Errorf("%w: transaction reference is required", valueobject.ErrValidation)
	}

	id := uuid.New().String()
	p := Payment{
		id:             id,
		loanID:         loanID,
		amount:         amount,
		transactionRef: transactionRef,
		status:         valueobject.PaymentStatusPending,
		submittedAt:    now,
	}
	p.domainEvents = append(p.domainEvents, event.NewPaymentRecorded(id, loanID, amount, transactionRef))
	return p, nil
}

// ReconstructPayment rebuilds from persistence.
func ReconstructPayment(
	id, loanID string,
	amount decimal.Decimal,
	transactionRef string,
	status valueobject.PaymentStatus,
	submittedAt, verifiedAt time.Time,
) Payment {
	return Payment{
		id:             id,
		loanID:         loanID,
		amount:         amount,
		transactionRef: transactionRef,
		status:         status,
		submittedAt:    submittedAt,
		verifiedAt:     verifiedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Complete transitions PENDING -> COMPLETED.
func (p Payment) Complete(now time.Time) (Payment, error) {
	return p.verify(valueobject.PaymentStatusCompleted, "completed", now)
}

// Reject transitions PENDING -> REJECTED.
func (p Payment) Reject(now time.Time) (Payment, error) {
	return p.verify(valueobject.PaymentStatusRejected, "rejected", now)
}

func (p Payment) verify(to valueobject.PaymentStatus, decision string, now time.Time) (Payment, error) {
	if !p.status.Equal(valueobject.PaymentStatusPending) {
		return p, fmt.Errorf("payment already verified as %s: %w",
			p.status, valueobject.ErrInvalidStatusTransition)
	}
	next := p
	next.status = to
	next.verifiedAt = now
	next.domainEvents = copyEvents(p.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPaymentVerified(p.id, p.loanID, p.amount, decision))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (p Payment) ID() string                        { return p.id }
func (p Payment) LoanID() string                    { return p.loanID }
func (p Payment) Amount() decimal.Decimal           { return p.amount }
func (p Payment) TransactionRef() string            { return p.transactionRef }
func (p Payment) Status() valueobject.PaymentStatus { return p.status }
func (p Payment) SubmittedAt() time.Time            { return p.submittedAt }
func (p Payment) VerifiedAt() time.Time             { return p.verifiedAt }
func (p Payment) DomainEvents() []event.DomainEvent { return p.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (p Payment) ClearEvents() Payment {
	next := p
	next.domainEvents = nil
	return next
}

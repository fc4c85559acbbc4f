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
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Mutations return a new copy.
//
// Lifecycle: PENDING -> ACTIVE (approval freezes the repayment total) ->
// SETTLED when the balance reaches zero, or DEFAULTED by administrative
// action. PENDING may also go straight to REJECTED. Terminal states permit no
// further mutation.
type Loan struct {
	id                string
	borrowerID        string
	agentID           string
	productType       valueobject.ProductType
	principal         decimal.Decimal
	durationWeeks     int
	interestRate      decimal.Decimal
	totalRepaymentDue decimal.Decimal
	balance           decimal.Decimal
	status            valueobject.LoanStatus
	decisionReason    string
	version           int
	createdAt         time.Time
	approvedAt        time.Time
	dueAt             time.Time
	settledAt         time.Time
	updatedAt         time.Time
	domainEvents      []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoan creates a loan application in PENDING status. The repayment total is
// not computed here; it is frozen later, on approval.
func NewLoan(
	borrowerID, agentID string,
	productType valueobject.ProductType,
	principal decimal.Decimal,
	durationWeeks int,
	now time.Time,
) (Loan, error) {
	if borrowerID == "" {
		return Loan{}, fmt.Errorf("%w: borrower ID is required", valueobject.ErrValidation)
	}
	if productType.IsZero() {
		return Loan{}, fmt.Errorf("%w: product type is required", valueobject.ErrValidation)
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return Loan{}, fmt.Errorf("%w: principal must be positive", valueobject.ErrValidation)
	}
	if productType.UsesDuration() && (durationWeeks < 1 || durationWeeks > 4) {
		return Loan{}, fmt.Errorf("%w: duration must be between 1 and 4 weeks, got %d",
			valueobject.ErrValidation, durationWeeks)
	}

	id := uuid.New().String()
	loan := Loan{
		id:                id,
		borrowerID:        borrowerID,
		agentID:           agentID,
		productType:       productType,
		principal:         principal,
		durationWeeks:     durationWeeks,
		interestRate:      decimal.Zero,
		totalRepaymentDue: decimal.Zero,
		balance:           decimal.Zero,
		status:            valueobject.LoanStatusPending,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanSubmitted(
		id, borrowerID, agentID, productType.String(), principal,
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence without side-effects.
func ReconstructLoan(
	id, borrowerID, agentID string,
	productType valueobject.ProductType,
	principal decimal.Decimal,
	durationWeeks int,
	interestRate, totalRepaymentDue, balance decimal.Decimal,
	status valueobject.LoanStatus,
	decisionReason string,
	version int,
	createdAt, approvedAt, dueAt, settledAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:                id,
		borrowerID:        borrowerID,
		agentID:           agentID,
		productType:       productType,
		principal:         principal,
		durationWeeks:     durationWeeks,
		interestRate:      interestRate,
		totalRepaymentDue: totalRepaymentDue,
		balance:           balance,
		status:            status,
		decisionReason:    decisionReason,
		version:           version,
		createdAt:         createdAt,
		approvedAt:        approvedAt,
		dueAt:             dueAt,
		settledAt:         settledAt,
		updatedAt:         updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Approve transitions PENDING -> ACTIVE. The interest rate and total repayment
// due are frozen here and never recomputed; the balance starts equal to the
// total. Collateral preconditions are checked by the caller before invoking
// this transition.
func (l Loan) Approve(rate, totalRepaymentDue decimal.Decimal, dueAt, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusPending) {
		return l, fmt.Errorf("cannot approve loan in %s state: %w",
			l.status, valueobject.ErrInvalidStatusTransition)
	}
	if totalRepaymentDue.LessThan(l.principal) {
		return l, fmt.Errorf("%w: total repayment due %s is below principal %s",
			valueobject.ErrValidation, totalRepaymentDue, l.principal)
	}

	next := l
	next.status = valueobject.LoanStatusActive
	next.interestRate = rate
	next.totalRepaymentDue = totalRepaymentDue
	next.balance = totalRepaymentDue
	next.approvedAt = now
	next.dueAt = dueAt
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanApproved(
		l.id, l.borrowerID, rate, totalRepaymentDue,
	))
	return next, nil
}

// Reject transitions PENDING -> REJECTED. Terminal.
func (l Loan) Reject(reason string, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusPending) {
		return l, fmt.Errorf("cannot reject loan in %s state: %w",
			l.status, valueobject.ErrInvalidStatusTransition)
	}

	next := l
	next.status = valueobject.LoanStatusRejected
	next.decisionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanRejected(l.id, l.borrowerID, reason))
	return next, nil
}

// ApplyPayment reduces the balance by a verified repayment amount. A payment
// that brings the balance to exactly zero settles the loan. Amounts above the
// outstanding balance are rejected; the excess is never silently discarded.
func (l Loan) ApplyPayment(amount decimal.Decimal, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, fmt.Errorf("payments can only be applied to active loans, loan is %s: %w",
			l.status, valueobject.ErrInvalidStatusTransition)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return l, fmt.Errorf("%w: payment amount must be positive", valueobject.ErrValidation)
	}
	if amount.GreaterThan(l.balance) {
		return l, fmt.Errorf("%w: payment %s exceeds outstanding balance %s",
			valueobject.ErrValidation, amount, l.balance)
	}

	next := l
	next.balance = l.balance.Sub(amount)
	if next.balance.IsNegative() {
		// Unreachable given the guard above; floor kept as the balance invariant.
		next.balance = decimal.Zero
	}
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanBalanceReduced(l.id, amount, next.balance))

	if next.balance.IsZero() {
		next.status = valueobject.LoanStatusSettled
		next.settledAt = now
		next.domainEvents = append(next.domainEvents, event.NewLoanSettled(l.id, l.borrowerID))
	}

	return next, nil
}

// MarkDefaulted transitions ACTIVE -> DEFAULTED. Terminal. The grace-window
// policy is enforced by the caller; the aggregate only guards the state.
func (l Loan) MarkDefaulted(now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, fmt.Errorf("cannot default loan in %s state: %w",
			l.status, valueobject.ErrInvalidStatusTransition)
	}

	next := l
	next.status = valueobject.LoanStatusDefaulted
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDefaulted(l.id, l.borrowerID, l.balance))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                          { return l.id }
func (l Loan) BorrowerID() string                  { return l.borrowerID }
func (l Loan) AgentID() string                     { return l.agentID }
func (l Loan) ProductType() valueobject.ProductType { return l.productType }
func (l Loan) Principal() decimal.Decimal          { return l.principal }
func (l Loan) DurationWeeks() int                  { return l.durationWeeks }
func (l Loan) InterestRate() decimal.Decimal       { return l.interestRate }
func (l Loan) TotalRepaymentDue() decimal.Decimal  { return l.totalRepaymentDue }
func (l Loan) Balance() decimal.Decimal            { return l.balance }
func (l Loan) Status() valueobject.LoanStatus      { return l.status }
func (l Loan) DecisionReason() string              { return l.decisionReason }
func (l Loan) Version() int                        { return l.version }
func (l Loan) CreatedAt() time.Time                { return l.createdAt }
func (l Loan) ApprovedAt() time.Time               { return l.approvedAt }
func (l Loan) DueAt() time.Time                    { return l.dueAt }
func (l Loan) SettledAt() time.Time                { return l.settledAt }
func (l Loan) UpdatedAt() time.Time                { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent   { return l.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}

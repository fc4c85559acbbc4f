package event

import (
	"github.com/shopspring/decimal"

	"github.com/remy-crypto/dunkuloans-sub000/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Loan events
// ---------------------------------------------------------------------------

// LoanSubmitted is raised when a new application enters the system in PENDING.
type LoanSubmitted struct {
	events.BaseEvent
	BorrowerID  string          `json:"borrower_id"`
	AgentID     string          `json:"agent_id,omitempty"`
	ProductType string          `json:"product_type"`
	Principal   decimal.Decimal `json:"principal"`
}

func NewLoanSubmitted(loanID, borrowerID, agentID, productType string, principal decimal.Decimal) LoanSubmitted {
	return LoanSubmitted{
		BaseEvent:   events.NewBaseEvent("lending.loan.submitted", loanID, "Loan"),
		BorrowerID:  borrowerID,
		AgentID:     agentID,
		ProductType: productType,
		Principal:   principal,
	}
}

// LoanApproved is raised on the PENDING -> ACTIVE transition. The repayment
// total is frozen at this point and never recomputed.
type LoanApproved struct {
	events.BaseEvent
	BorrowerID        string          `json:"borrower_id"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	TotalRepaymentDue decimal.Decimal `json:"total_repayment_due"`
}

func NewLoanApproved(loanID, borrowerID string, rate, totalDue decimal.Decimal) LoanApproved {
	return LoanApproved{
		BaseEvent:         events.NewBaseEvent("lending.loan.approved", loanID, "Loan"),
		BorrowerID:        borrowerID,
		InterestRate:      rate,
		TotalRepaymentDue: totalDue,
	}
}

// LoanRejected is raised on the PENDING -> REJECTED transition.
type LoanRejected struct {
	events.BaseEvent
	BorrowerID string `json:"borrower_id"`
	Reason     string `json:"reason"`
}

func NewLoanRejected(loanID, borrowerID, reason string) LoanRejected {
	return LoanRejected{
		BaseEvent:  events.NewBaseEvent("lending.loan.rejected", loanID, "Loan"),
		BorrowerID: borrowerID,
		Reason:     reason,
	}
}

// LoanBalanceReduced is raised when a verified repayment is applied.
type LoanBalanceReduced struct {
	events.BaseEvent
	AmountApplied decimal.Decimal `json:"amount_applied"`
	Balance       decimal.Decimal `json:"balance"`
}

func NewLoanBalanceReduced(loanID string, amount, balance decimal.Decimal) LoanBalanceReduced {
	return LoanBalanceReduced{
		BaseEvent:     events.NewBaseEvent("lending.loan.balance_reduced", loanID, "Loan"),
		AmountApplied: amount,
		Balance:       balance,
	}
}

// LoanSettled is raised when the balance reaches exactly zero.
type LoanSettled struct {
	events.BaseEvent
	BorrowerID string `json:"borrower_id"`
}

func NewLoanSettled(loanID, borrowerID string) LoanSettled {
	return LoanSettled{
		BaseEvent:  events.NewBaseEvent("lending.loan.settled", loanID, "Loan"),
		BorrowerID: borrowerID,
	}
}

// LoanDefaulted is raised on the administrative ACTIVE -> DEFAULTED transition.
type LoanDefaulted struct {
	events.BaseEvent
	BorrowerID string          `json:"borrower_id"`
	Balance    decimal.Decimal `json:"balance"`
}

func NewLoanDefaulted(loanID, borrowerID string, balance decimal.Decimal) LoanDefaulted {
	return LoanDefaulted{
		BaseEvent:  events.NewBaseEvent("lending.loan.defaulted", loanID, "Loan"),
		BorrowerID: borrowerID,
		Balance:    balance,
	}
}

// ---------------------------------------------------------------------------
// Payment events
// ---------------------------------------------------------------------------

// PaymentRecorded is raised when a repayment is submitted for verification.
type PaymentRecorded struct {
	events.BaseEvent
	LoanID         string          `json:"loan_id"`
	Amount         decimal.Decimal `json:"amount"`
	TransactionRef string          `json:"transaction_ref"`
}

func NewPaymentRecorded(paymentID, loanID string, amount decimal.Decimal, transactionRef string) PaymentRecorded {
	return PaymentRecorded{
		BaseEvent:      events.NewBaseEvent("lending.payment.recorded", paymentID, "Payment"),
		LoanID:         loanID,
		Amount:         amount,
		TransactionRef: transactionRef,
	}
}

// PaymentVerified is raised when a pending repayment is completed or rejected.
type PaymentVerified struct {
	events.BaseEvent
	LoanID   string          `json:"loan_id"`
	Amount   decimal.Decimal `json:"amount"`
	Decision string          `json:"decision"`
}

func NewPaymentVerified(paymentID, loanID string, amount decimal.Decimal, decision string) PaymentVerified {
	return PaymentVerified{
		BaseEvent: events.NewBaseEvent("lending.payment.verified", paymentID, "Payment"),
		LoanID:    loanID,
		Amount:    amount,
		Decision:  decision,
	}
}

// ---------------------------------------------------------------------------
// Collateral events
// ---------------------------------------------------------------------------

// CollateralSubmitted is raised when a borrower pledges an item for review.
type CollateralSubmitted struct {
	events.BaseEvent
	LoanID         string          `json:"loan_id"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
}

func NewCollateralSubmitted(itemID, loanID string, estimatedValue decimal.Decimal) CollateralSubmitted {
	return CollateralSubmitted{
		BaseEvent:      events.NewBaseEvent("lending.collateral.submitted", itemID, "CollateralItem"),
		LoanID:         loanID,
		EstimatedValue: estimatedValue,
	}
}

// CollateralReviewed is raised when an item passes or fails review.
type CollateralReviewed struct {
	events.BaseEvent
	LoanID   string `json:"loan_id"`
	Decision string `json:"decision"`
}

func NewCollateralReviewed(itemID, loanID, decision string) CollateralReviewed {
	return CollateralReviewed{
		BaseEvent: events.NewBaseEvent("lending.collateral.reviewed", itemID, "CollateralItem"),
		LoanID:    loanID,
		Decision:  decision,
	}
}

// CollateralCustodyChanged is raised when an item is held, returned or seized.
type CollateralCustodyChanged struct {
	events.BaseEvent
	LoanID string `json:"loan_id"`
	Status string `json:"status"`
}

func NewCollateralCustodyChanged(itemID, loanID, status string) CollateralCustodyChanged {
	return CollateralCustodyChanged{
		BaseEvent: events.NewBaseEvent("lending.collateral.custody_changed", itemID, "CollateralItem"),
		LoanID:    loanID,
		Status:    status,
	}
}

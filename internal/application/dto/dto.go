package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SubmitApplicationRequest carries the data needed to open a loan application.
type SubmitApplicationRequest struct {
	BorrowerID    string          `json:"borrower_id"`
	AgentID       string          `json:"agent_id,omitempty"`
	ProductType   string          `json:"product_type"`
	Principal     decimal.Decimal `json:"principal"`
	DurationWeeks int             `json:"duration_weeks,omitempty"`
}

// ApproveLoanRequest identifies a pending loan to approve.
type ApproveLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// RejectLoanRequest identifies a pending loan to reject.
type RejectLoanRequest struct {
	LoanID string `json:"loan_id"`
	Reason string `json:"reason"`
}

// MarkDefaultRequest identifies an active loan to mark defaulted.
type MarkDefaultRequest struct {
	LoanID string `json:"loan_id"`
}

// RecordPaymentRequest carries a repayment submitted against a loan.
type RecordPaymentRequest struct {
	LoanID         string          `json:"loan_id"`
	Amount         decimal.Decimal `json:"amount"`
	TransactionRef string          `json:"transaction_ref"`
}

// VerifyPaymentRequest carries the admin decision on a pending payment.
// Decision is "complete" or "reject".
type VerifyPaymentRequest struct {
	PaymentID string `json:"payment_id"`
	Decision  string `json:"decision"`
}

// AttachmentUpload is one collateral attachment to store. The core hands the
// bytes to the object store and keeps only the returned reference.
type AttachmentUpload struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
}

// SubmitCollateralRequest pledges an item against a loan.
type SubmitCollateralRequest struct {
	LoanID         string             `json:"loan_id"`
	Description    string             `json:"description"`
	EstimatedValue decimal.Decimal    `json:"estimated_value"`
	Attachments    []AttachmentUpload `json:"attachments,omitempty"`
}

// ReviewCollateralRequest carries the review decision on a pending item.
// Decision is "approve" or "reject".
type ReviewCollateralRequest struct {
	ItemID   string `json:"item_id"`
	Decision string `json:"decision"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID                string          `json:"id"`
	BorrowerID        string          `json:"borrower_id"`
	AgentID           string          `json:"agent_id,omitempty"`
	ProductType       string          `json:"product_type"`
	Principal         decimal.Decimal `json:"principal"`
	DurationWeeks     int             `json:"duration_weeks,omitempty"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	TotalRepaymentDue decimal.Decimal `json:"total_repayment_due"`
	Balance           decimal.Decimal `json:"balance"`
	Status            string          `json:"status"`
	DecisionReason    string          `json:"decision_reason,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	ApprovedAt        time.Time       `json:"approved_at,omitzero"`
	DueAt             time.Time       `json:"due_at,omitzero"`
	SettledAt         time.Time       `json:"settled_at,omitzero"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CollateralResponse is the external representation of a collateral item.
type CollateralResponse struct {
	ID             string          `json:"id"`
	LoanID         string          `json:"loan_id"`
	Description    string          `json:"description"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	AttachmentRefs []string        `json:"attachment_refs,omitempty"`
	AttachmentURLs []string        `json:"attachment_urls,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PaymentResponse is the external representation of a repayment.
type PaymentResponse struct {
	ID             string          `json:"id"`
	LoanID         string          `json:"loan_id"`
	Amount         decimal.Decimal `json:"amount"`
	TransactionRef string          `json:"transaction_ref"`
	Status         string          `json:"status"`
	SubmittedAt    time.Time       `json:"submitted_at"`
	VerifiedAt     time.Time       `json:"verified_at,omitzero"`
}

// VerifyPaymentResponse reports the payment outcome and resulting loan state.
type VerifyPaymentResponse struct {
	Payment    PaymentResponse `json:"payment"`
	LoanStatus string          `json:"loan_status"`
	Balance    decimal.Decimal `json:"balance"`
}

// LoanDetailResponse is a loan with its collateral and payment history.
type LoanDetailResponse struct {
	Loan       LoanResponse         `json:"loan"`
	Collateral []CollateralResponse `json:"collateral,omitempty"`
	Payments   []PaymentResponse    `json:"payments,omitempty"`
}

// BorrowerDashboardResponse projects a single borrower's portfolio.
type BorrowerDashboardResponse struct {
	BorrowerID string               `json:"borrower_id"`
	Loans      []LoanDetailResponse `json:"loans"`
}

// AgentDashboardResponse projects an agent's attributed loans and commission.
type AgentDashboardResponse struct {
	AgentID          string          `json:"agent_id"`
	Loans            []LoanResponse  `json:"loans"`
	AttributedVolume decimal.Decimal `json:"attributed_volume"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	CommissionDue    decimal.Decimal `json:"commission_due"`
}

// PortfolioSummaryResponse projects aggregate portfolio statistics for the
// investor and admin dashboards. Derived on read, never a source of truth.
type PortfolioSummaryResponse struct {
	TotalLoans              int             `json:"total_loans"`
	CountsByStatus          map[string]int  `json:"counts_by_status"`
	PrincipalVolume         decimal.Decimal `json:"principal_volume"`
	ActiveLoanVolume        decimal.Decimal `json:"active_loan_volume"`
	OutstandingBalance      decimal.Decimal `json:"outstanding_balance"`
	TotalRepaid             decimal.Decimal `json:"total_repaid"`
	TotalCollateralValue    decimal.Decimal `json:"total_collateral_value"`
	LoanToValue             decimal.Decimal `json:"loan_to_value"`
	ProjectedInvestorReturn decimal.Decimal `json:"projected_investor_return"`
}

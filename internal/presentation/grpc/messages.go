package grpc

import (
	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
)

// Wire messages for the LendingService. Monetary amounts travel as strings
// and are parsed into decimals at the boundary.

type SubmitApplicationRequest struct {
	BorrowerID    string `json:"borrower_id"`
	AgentID       string `json:"agent_id,omitempty"`
	ProductType   string `json:"product_type"`
	Principal     string `json:"principal"`
	DurationWeeks int    `json:"duration_weeks,omitempty"`
}

type SubmitApplicationResponse struct {
	Loan dto.LoanResponse `json:"loan"`
}

type ApproveLoanRequest struct {
	LoanID string `json:"loan_id"`
}

type ApproveLoanResponse struct {
	Loan dto.LoanResponse `json:"loan"`
}

type RejectLoanRequest struct {
	LoanID string `json:"loan_id"`
	Reason string `json:"reason"`
}

type RejectLoanResponse struct {
	Loan dto.LoanResponse `json:"loan"`
}

type MarkDefaultRequest struct {
	LoanID string `json:"loan_id"`
}

type MarkDefaultResponse struct {
	Loan dto.LoanResponse `json:"loan"`
}

type RecordPaymentRequest struct {
	LoanID         string `json:"loan_id"`
	Amount         string `json:"amount"`
	TransactionRef string `json:"transaction_ref"`
}

type RecordPaymentResponse struct {
	Payment dto.PaymentResponse `json:"payment"`
}

type VerifyPaymentRequest struct {
	PaymentID string `json:"payment_id"`
	Decision  string `json:"decision"`
}

type VerifyPaymentResponse struct {
	Payment    dto.PaymentResponse `json:"payment"`
	LoanStatus string              `json:"loan_status"`
	Balance    string              `json:"balance"`
}

type Attachment struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
}

type SubmitCollateralRequest struct {
	LoanID         string       `json:"loan_id"`
	Description    string       `json:"description"`
	EstimatedValue string       `json:"estimated_value"`
	Attachments    []Attachment `json:"attachments,omitempty"`
}

type SubmitCollateralResponse struct {
	Item dto.CollateralResponse `json:"item"`
}

type ReviewCollateralRequest struct {
	ItemID   string `json:"item_id"`
	Decision string `json:"decision"`
}

type ReviewCollateralResponse struct {
	Item dto.CollateralResponse `json:"item"`
}

type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

type GetLoanResponse struct {
	Loan       dto.LoanResponse         `json:"loan"`
	Collateral []dto.CollateralResponse `json:"collateral,omitempty"`
	Payments   []dto.PaymentResponse    `json:"payments,omitempty"`
}

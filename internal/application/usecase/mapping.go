package usecase

import (
	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
)

func toLoanResponse(loan model.Loan) dto.LoanResponse {
	return dto.LoanResponse{
		ID:                loan.ID(),
		BorrowerID:        loan.BorrowerID(),
		AgentID:           loan.AgentID(),
		ProductType:       loan.ProductType().String(),
		Principal:         loan.Principal(),
		DurationWeeks:     loan.DurationWeeks(),
		InterestRate:      loan.InterestRate(),
		TotalRepaymentDue: loan.TotalRepaymentDue(),
		Balance:           loan.Balance(),
		Status:            loan.Status().String(),
		DecisionReason:    loan.DecisionReason(),
		CreatedAt:         loan.CreatedAt(),
		ApprovedAt:        loan.ApprovedAt(),
		DueAt:             loan.DueAt(),
		SettledAt:         loan.SettledAt(),
		UpdatedAt:         loan.UpdatedAt(),
	}
}

func toLoanResponses(loans []model.Loan) []dto.LoanResponse {
	out := make([]dto.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, toLoanResponse(loan))
	}
	return out
}

func toCollateralResponse(item model.CollateralItem) dto.CollateralResponse {
	return dto.CollateralResponse{
		ID:             item.ID(),
		LoanID:         item.LoanID(),
		Description:    item.Description(),
		EstimatedValue: item.EstimatedValue(),
		AttachmentRefs: item.AttachmentRefs(),
		Status:         item.Status().String(),
		CreatedAt:      item.CreatedAt(),
		UpdatedAt:      item.UpdatedAt(),
	}
}

func toCollateralResponses(items []model.CollateralItem) []dto.CollateralResponse {
	out := make([]dto.CollateralResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toCollateralResponse(item))
	}
	return out
}

func toPaymentResponse(payment model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:             payment.ID(),
		LoanID:         payment.LoanID(),
		Amount:         payment.Amount(),
		TransactionRef: payment.TransactionRef(),
		Status:         payment.Status().String(),
		SubmittedAt:    payment.SubmittedAt(),
		VerifiedAt:     payment.VerifiedAt(),
	}
}

func toPaymentResponses(payments []model.Payment) []dto.PaymentResponse {
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		out = append(out, toPaymentResponse(payment))
	}
	return out
}

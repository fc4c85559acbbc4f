package grpc

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/application/usecase"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
	"github.com/remy-crypto/dunkuloans-sub000/pkg/auth"
)

// LendingHandler implements LendingServiceServer. Role scoping lives here, at
// the transport boundary; the use cases below it trust their callers.
type LendingHandler struct {
	UnimplementedLendingServiceServer

	submitApplication *usecase.SubmitApplicationUseCase
	approveLoan       *usecase.ApproveLoanUseCase
	rejectLoan        *usecase.RejectLoanUseCase
	markDefault       *usecase.MarkDefaultUseCase
	recordPayment     *usecase.RecordPaymentUseCase
	verifyPayment     *usecase.VerifyPaymentUseCase
	submitCollateral  *usecase.SubmitCollateralUseCase
	reviewCollateral  *usecase.ReviewCollateralUseCase
	getLoan           *usecase.GetLoanUseCase
}

// NewLendingHandler creates a handler with all use-case dependencies.
func NewLendingHandler(
	submitApplication *usecase.SubmitApplicationUseCase,
	approveLoan *usecase.ApproveLoanUseCase,
	rejectLoan *usecase.RejectLoanUseCase,
	markDefault *usecase.MarkDefaultUseCase,
	recordPayment *usecase.RecordPaymentUseCase,
	verifyPayment *usecase.VerifyPaymentUseCase,
	submitCollateral *usecase.SubmitCollateralUseCase,
	reviewCollateral *usecase.ReviewCollateralUseCase,
	getLoan *usecase.GetLoanUseCase,
) *LendingHandler {
	return &LendingHandler{
		submitApplication: submitApplication,
		approveLoan:       approveLoan,
		rejectLoan:        rejectLoan,
		markDefault:       markDefault,
		recordPayment:     recordPayment,
		verifyPayment:     verifyPayment,
		submitCollateral:  submitCollateral,
		reviewCollateral:  reviewCollateral,
		getLoan:           getLoan,
	}
}

// SubmitApplication opens a loan application. Borrowers may only apply for
// themselves; agents and admins may apply on a borrower's behalf.
func (h *LendingHandler) SubmitApplication(ctx context.Context, req *SubmitApplicationRequest) (*SubmitApplicationResponse, error) {
	claims, err := requireRoles(ctx, auth.RoleBorrower, auth.RoleAgent, auth.RoleAdmin, auth.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}

	borrowerID := req.BorrowerID
	if borrowerOnly(claims) {
		borrowerID = claims.UserID.String()
	}

	principal, err := parseAmount(req.Principal, "principal")
	if err != nil {
		return nil, err
	}

	loan, err := h.submitApplication.Execute(ctx, dto.SubmitApplicationRequest{
		BorrowerID:    borrowerID,
		AgentID:       req.AgentID,
		ProductType:   req.ProductType,
		Principal:     principal,
		DurationWeeks: req.DurationWeeks,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &SubmitApplicationResponse{Loan: loan}, nil
}

// ApproveLoan activates a pending loan. Admin only.
func (h *LendingHandler) ApproveLoan(ctx context.Context, req *ApproveLoanRequest) (*ApproveLoanResponse, error) {
	if _, err := requireRoles(ctx, auth.RoleAdmin, auth.RoleSuperAdmin); err != nil {
		return nil, err
	}

	loan, err := h.approveLoan.Execute(ctx, dto.ApproveLoanRequest{LoanID: req.LoanID})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &ApproveLoanResponse{Loan: loan}, nil
}

// RejectLoan rejects a pending loan. Admin only.
func (h *LendingHandler) RejectLoan(ctx context.Context, req *RejectLoanRequest) (*RejectLoanResponse, error) {
	if _, err := requireRoles(ctx, auth.RoleAdmin, auth.RoleSuperAdmin); err != nil {
		return nil, err
	}

	loan, err := h.rejectLoan.Execute(ctx, dto.RejectLoanRequest{LoanID: req.LoanID, Reason: req.Reason})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &RejectLoanResponse{Loan: loan}, nil
}

// MarkDefault marks an overdue loan defaulted. Admin only.
func (h *LendingHandler) MarkDefault(ctx context.Context, req *MarkDefaultRequest) (*MarkDefaultResponse, error) {
	if _, err := requireRoles(ctx, auth.RoleAdmin, auth.RoleSuperAdmin); err != nil {
		return nil, err
	}

	loan, err := h.markDefault.Execute(ctx, dto.MarkDefaultRequest{LoanID: req.LoanID})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &MarkDefaultResponse{Loan: loan}, nil
}

// RecordPayment records a repayment against an active loan.
func (h *LendingHandler) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*RecordPaymentResponse, error) {
	if _, err := requireRoles(ctx, auth.RoleBorrower, auth.RoleAgent, auth.RoleAdmin, auth.RoleSuperAdmin); err != nil {
		return nil, err
	}

	amount, err := parseAmount(req.Amount, "amount")
	if err != nil {
		return nil, err
	}

	payment, err := h.recordPayment.Execute(ctx, dto.RecordPaymentRequest{
		LoanID:         req.LoanID,
		Amount:         amount,
		TransactionRef: req.TransactionRef,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &RecordPaymentResponse{Payment: payment}, nil
}

// VerifyPayment completes or rejects a pending payment. Admin only.
func (h *LendingHandler) VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	if _, err := requireRoles(ctx, auth.RoleAdmin, auth.RoleSuperAdmin); err != nil {
		return nil, err
	}

	result, err := h.verifyPayment.Execute(ctx, dto.VerifyPaymentRequest{
		PaymentID: req.PaymentID,
		Decision:  req.Decision,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &VerifyPaymentResponse{
		Payment:    result.Payment,
		LoanStatus: result.LoanStatus,
		Balance:    result.Balance.String(),
	}, nil
}

// SubmitCollateral pledges an item against a loan.
func (h *LendingHandler) SubmitCollateral(ctx context.Context, req *SubmitCollateralRequest) (*SubmitCollateralResponse, error) {
	if _, err := requireRoles(ctx, auth.RoleBorrower, auth.RoleAgent, auth.RoleAdmin, auth.RoleSuperAdmin); err != nil {
		return nil, err
	}

	value, err := parseAmount(req.EstimatedValue, "estimated_value")
	if err != nil {
		return nil, err
	}

	attachments := make([]dto.AttachmentUpload, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, dto.AttachmentUpload{Data: a.Data, ContentType: a.ContentType})
	}

	item, err := h.submitCollateral.Execute(ctx, dto.SubmitCollateralRequest{
		LoanID:         req.LoanID,
		Description:    req.Description,
		EstimatedValue: value,
		Attachments:    attachments,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &SubmitCollateralResponse{Item: item}, nil
}

// ReviewCollateral applies the review decision on a pending item. Admin only.
func (h *LendingHandler) ReviewCollateral(ctx context.Context, req *ReviewCollateralRequest) (*ReviewCollateralResponse, error) {
	if _, err := requireRoles(ctx, auth.RoleAdmin, auth.RoleSuperAdmin); err != nil {
		return nil, err
	}

	item, err := h.reviewCollateral.Execute(ctx, dto.ReviewCollateralRequest{
		ItemID:   req.ItemID,
		Decision: req.Decision,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &ReviewCollateralResponse{Item: item}, nil
}

// GetLoan retrieves a loan with its collateral and payment history. A caller
// holding only the borrower role sees their own loans; anything else reads as
// not found rather than leaking existence.
func (h *LendingHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*GetLoanResponse, error) {
	claims, err := requireRoles(ctx,
		auth.RoleBorrower, auth.RoleAgent, auth.RoleInvestor, auth.RoleAdmin, auth.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}

	detail, err := h.getLoan.Execute(ctx, dto.GetLoanRequest{LoanID: req.LoanID})
	if err != nil {
		return nil, toStatusError(err)
	}
	if borrowerOnly(claims) && detail.Loan.BorrowerID != claims.UserID.String() {
		return nil, status.Errorf(codes.NotFound, "loan %s not found", req.LoanID)
	}

	return &GetLoanResponse{
		Loan:       detail.Loan,
		Collateral: detail.Collateral,
		Payments:   detail.Payments,
	}, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func requireRoles(ctx context.Context, roles ...string) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing authentication")
	}
	if !claims.HasAnyRole(roles...) {
		return nil, status.Error(codes.PermissionDenied, "insufficient role")
	}
	return claims, nil
}

func borrowerOnly(claims *auth.Claims) bool {
	return claims.HasRole(auth.RoleBorrower) &&
		!claims.HasAnyRole(auth.RoleAgent, auth.RoleAdmin, auth.RoleSuperAdmin)
}

func parseAmount(raw, field string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return amount, nil
}

func toStatusError(err error) error {
	switch {
	case errors.Is(err, valueobject.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrDuplicateTransaction):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, valueobject.ErrConcurrencyConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition),
		errors.Is(err, valueobject.ErrLoanFinalized),
		errors.Is(err, valueobject.ErrMissingCollateral):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

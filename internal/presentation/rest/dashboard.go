package rest

import (
	"log/slog"
	"net/http"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/usecase"
	"github.com/remy-crypto/dunkuloans-sub000/pkg/auth"
)

// DashboardHandler serves the role-scoped read models. Borrowers and agents
// always see their own slice of the book; admins may inspect any party via
// the optional query parameters.
type DashboardHandler struct {
	borrower  *usecase.BorrowerDashboardUseCase
	agent     *usecase.AgentDashboardUseCase
	portfolio *usecase.PortfolioSummaryUseCase
	logger    *slog.Logger
}

// NewDashboardHandler creates the dashboard HTTP handler.
func NewDashboardHandler(
	borrower *usecase.BorrowerDashboardUseCase,
	agent *usecase.AgentDashboardUseCase,
	portfolio *usecase.PortfolioSummaryUseCase,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		borrower:  borrower,
		agent:     agent,
		portfolio: portfolio,
		logger:    logger,
	}
}

// Borrower serves GET /api/v1/dashboard/borrower.
func (h *DashboardHandler) Borrower(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"no claims in context"}`, http.StatusUnauthorized)
		return
	}

	borrowerID := claims.UserID.String()
	if requested := r.URL.Query().Get("borrower_id"); requested != "" &&
		claims.HasAnyRole(auth.RoleAdmin, auth.RoleSuperAdmin) {
		borrowerID = requested
	}

	resp, err := h.borrower.Execute(r.Context(), borrowerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "borrower dashboard failed", "borrower_id", borrowerID, "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Agent serves GET /api/v1/dashboard/agent.
func (h *DashboardHandler) Agent(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"no claims in context"}`, http.StatusUnauthorized)
		return
	}

	agentID := claims.UserID.String()
	if requested := r.URL.Query().Get("agent_id"); requested != "" &&
		claims.HasAnyRole(auth.RoleAdmin, auth.RoleSuperAdmin) {
		agentID = requested
	}

	resp, err := h.agent.Execute(r.Context(), agentID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "agent dashboard failed", "agent_id", agentID, "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// PortfolioSummary serves GET /api/v1/portfolio/summary.
func (h *DashboardHandler) PortfolioSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := h.portfolio.Execute(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "portfolio summary failed", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

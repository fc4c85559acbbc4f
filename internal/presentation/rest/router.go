// Package rest serves the read-only dashboard surface and operational
// endpoints over HTTP. All mutations go through gRPC.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/usecase"
	"github.com/remy-crypto/dunkuloans-sub000/pkg/auth"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	BorrowerDashboard *usecase.BorrowerDashboardUseCase
	AgentDashboard    *usecase.AgentDashboardUseCase
	PortfolioSummary  *usecase.PortfolioSummaryUseCase
	JWTService        *auth.JWTService
	Pool              *pgxpool.Pool
	MetricsHandler    http.Handler
	Logger            *slog.Logger
}

// NewRouter builds the chi router with health probes, metrics and the
// role-scoped dashboard endpoints.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	health := NewHealthHandler(deps.Pool, deps.Logger)
	r.Get("/healthz", health.Liveness)
	r.Get("/readyz", health.Readiness)

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	dashboards := NewDashboardHandler(
		deps.BorrowerDashboard, deps.AgentDashboard, deps.PortfolioSummary, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.HTTPAuthMiddleware(deps.JWTService))

		r.With(auth.RequireHTTPRole(auth.RoleBorrower, auth.RoleAdmin, auth.RoleSuperAdmin)).
			Get("/dashboard/borrower", dashboards.Borrower)

		r.With(auth.RequireHTTPRole(auth.RoleAgent, auth.RoleAdmin, auth.RoleSuperAdmin)).
			Get("/dashboard/agent", dashboards.Agent)

		r.With(auth.RequireHTTPRole(auth.RoleInvestor, auth.RoleAdmin, auth.RoleSuperAdmin)).
			Get("/portfolio/summary", dashboards.PortfolioSummary)
	})

	return r
}

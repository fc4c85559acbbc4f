package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/usecase"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/service"
	"github.com/remy-crypto/dunkuloans-sub000/internal/infrastructure/config"
	"github.com/remy-crypto/dunkuloans-sub000/internal/infrastructure/kafka"
	pgRepo "github.com/remy-crypto/dunkuloans-sub000/internal/infrastructure/postgres"
	"github.com/remy-crypto/dunkuloans-sub000/internal/infrastructure/storage"
	grpcPresentation "github.com/remy-crypto/dunkuloans-sub000/internal/presentation/grpc"
	"github.com/remy-crypto/dunkuloans-sub000/internal/presentation/rest"
	"github.com/remy-crypto/dunkuloans-sub000/pkg/auth"
	pkgkafka "github.com/remy-crypto/dunkuloans-sub000/pkg/kafka"
	"github.com/remy-crypto/dunkuloans-sub000/pkg/observability"
	pkgpostgres "github.com/remy-crypto/dunkuloans-sub000/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	})
	slog.SetDefault(logger)

	logger.Info("starting lending-core",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without", "error", err)
	} else {
		defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort shutdown
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(dbCfg.DSN(), cfg.MigrationsPath); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Infrastructure adapters.
	loanRepo := pgRepo.NewLoanRepo(pool)
	collateralRepo := pgRepo.NewCollateralRepo(pool)
	paymentRepo := pgRepo.NewPaymentRepo(pool)
	transactor := pgRepo.NewTransactor(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.EventsTopic)

	objectStore := storage.NewInMemoryObjectStore(getEnv("OBJECT_STORE_BASE_URL", "http://localhost:8090/objects"))

	// Domain services.
	interestPolicy := service.NewInterestPolicy(service.DefaultInterestPolicyConfig())
	commissionPolicy := service.NewCommissionPolicy(cfg.Lending.CommissionRate)

	// Use cases.
	submitApplicationUC := usecase.NewSubmitApplicationUseCase(loanRepo, publisher, logger)
	approveLoanUC := usecase.NewApproveLoanUseCase(
		loanRepo, collateralRepo, transactor, publisher, interestPolicy, cfg.Lending.TermWeeks, logger)
	rejectLoanUC := usecase.NewRejectLoanUseCase(loanRepo, publisher, logger)
	markDefaultUC := usecase.NewMarkDefaultUseCase(
		loanRepo, collateralRepo, transactor, publisher, cfg.Lending.GracePeriod(), logger)
	verifyPaymentUC := usecase.NewVerifyPaymentUseCase(
		paymentRepo, loanRepo, collateralRepo, transactor, publisher, logger)
	recordPaymentUC := usecase.NewRecordPaymentUseCase(
		loanRepo, paymentRepo, publisher, verifyPaymentUC, cfg.Lending.PaymentAutoVerify, logger)
	submitCollateralUC := usecase.NewSubmitCollateralUseCase(loanRepo, collateralRepo, objectStore, publisher, logger)
	reviewCollateralUC := usecase.NewReviewCollateralUseCase(collateralRepo, loanRepo, publisher, logger)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo, collateralRepo, paymentRepo)
	borrowerDashboardUC := usecase.NewBorrowerDashboardUseCase(loanRepo, collateralRepo, paymentRepo, objectStore, logger)
	agentDashboardUC := usecase.NewAgentDashboardUseCase(loanRepo, commissionPolicy)
	portfolioSummaryUC := usecase.NewPortfolioSummaryUseCase(loanRepo, collateralRepo, cfg.Lending.InvestorReturnRate)

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{Issuer: cfg.JWT.Issuer}
	if cfg.JWT.PublicKeyFile != "" {
		keyData, loadErr := auth.LoadKeyFromFile(cfg.JWT.PublicKeyFile)
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	} else {
		jwtCfg.Secret = cfg.JWT.Secret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server (mutations).
	handler := grpcPresentation.NewLendingHandler(
		submitApplicationUC, approveLoanUC, rejectLoanUC, markDefaultUC,
		recordPaymentUC, verifyPaymentUC, submitCollateralUC, reviewCollateralUC,
		getLoanUC,
	)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc)

	// HTTP server (dashboards, health, metrics).
	router := rest.NewRouter(rest.RouterDeps{
		BorrowerDashboard: borrowerDashboardUC,
		AgentDashboard:    agentDashboardUC,
		PortfolioSummary:  portfolioSummaryUC,
		JWTService:        jwtSvc,
		Pool:              pool,
		MetricsHandler:    metricsHandler,
		Logger:            logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("lending-core stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

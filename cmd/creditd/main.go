package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgkafka "github.com/TechTyphoon/Credit-Approval-System/pkg/kafka"
	"github.com/TechTyphoon/Credit-Approval-System/pkg/observability"
	pkgpostgres "github.com/TechTyphoon/Credit-Approval-System/pkg/postgres"

	"github.com/TechTyphoon/Credit-Approval-System/internal/application/usecase"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/port"
	"github.com/TechTyphoon/Credit-Approval-System/internal/domain/service"
	"github.com/TechTyphoon/Credit-Approval-System/internal/infrastructure/config"
	"github.com/TechTyphoon/Credit-Approval-System/internal/infrastructure/messaging"
	pgRepo "github.com/TechTyphoon/Credit-Approval-System/internal/infrastructure/persistence/postgres"
	"github.com/TechTyphoon/Credit-Approval-System/internal/presentation/rest"
)

const migrationsDir = "file://internal/infrastructure/persistence/postgres/migrations"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	logger.Info("starting credit-approval service", "http_port", cfg.HTTPPort)

	if _, _, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	}); err != nil {
		logger.Warn("failed to initialize metrics exporter, continuing", "error", err)
	}

	// --- Database -----------------------------------------------------------
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(pgCfg.DSN(), migrationsDir); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// --- Infrastructure adapters -------------------------------------------
	customerRepo := pgRepo.NewCustomerRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)
	txManager := pgRepo.NewTxManager(pool)

	var publisher port.EventPublisher
	if cfg.Kafka.Enabled {
		producer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
		defer producer.Close()
		publisher = messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)
	} else {
		publisher = messaging.NewLogEventPublisher(logger)
	}

	engine := service.NewEligibilityEngine()

	// --- Use cases ----------------------------------------------------------
	registerUC := usecase.NewRegisterCustomerUseCase(customerRepo, txManager, publisher, logger)
	eligibilityUC := usecase.NewCheckEligibilityUseCase(customerRepo, loanRepo, engine, logger)
	createLoanUC := usecase.NewCreateLoanUseCase(customerRepo, loanRepo, txManager, publisher, engine, logger)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo, customerRepo)
	listLoansUC := usecase.NewListCustomerLoansUseCase(loanRepo, customerRepo)

	// --- HTTP server --------------------------------------------------------
	router := rest.NewRouter(logger, rest.Dependencies{
		Handler: rest.NewHandler(registerUC, eligibilityUC, createLoanUC, getLoanUC, listLoansUC),
		Health: rest.NewHealthHandler(rest.PingFunc(func(ctx context.Context) error {
			return pkgpostgres.HealthCheck(ctx, pool)
		}), cfg.ServiceName),
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-approval service stopped")
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/TechTyphoon/Credit-Approval-System/pkg/observability"
	pkgpostgres "github.com/TechTyphoon/Credit-Approval-System/pkg/postgres"

	"github.com/TechTyphoon/Credit-Approval-System/internal/infrastructure/config"
	"github.com/TechTyphoon/Credit-Approval-System/internal/infrastructure/ingest"
	pgRepo "github.com/TechTyphoon/Credit-Approval-System/internal/infrastructure/persistence/postgres"
)

const migrationsDir = "file://internal/infrastructure/persistence/postgres/migrations"

var (
	recordType    string
	customersFile string
	loansFile     string
)

var rootCmd = &cobra.Command{
	Use:   "credit-ingest",
	Short: "Import customer and loan data from XLSX files",
	Long:  "Loads the initial customer and loan books into the credit approval database. Records are upserted by id, so re-running is safe.",
	RunE:  runIngest,
}

func init() {
	rootCmd.Flags().StringVar(&recordType, "type", "all", "what to import: customers, loans, or all")
	rootCmd.Flags().StringVar(&customersFile, "customers-file", "customer_data.xlsx", "path to the customer workbook")
	rootCmd.Flags().StringVar(&loansFile, "loans-file", "loan_data.xlsx", "path to the loan workbook")
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

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
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := pkgpostgres.RunMigrations(pgCfg.DSN(), migrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	svc := ingest.NewService(
		pgRepo.NewCustomerRepo(pool),
		pgRepo.NewLoanRepo(pool),
		pgRepo.NewTxManager(pool),
		logger,
	)

	switch recordType {
	case "customers":
		summary, err := svc.IngestCustomers(ctx, customersFile)
		if err != nil {
			return err
		}
		printSummary("customers", summary)
	case "loans":
		summary, err := svc.IngestLoans(ctx, loansFile)
		if err != nil {
			return err
		}
		printSummary("loans", summary)
	case "all":
		customers, loans, err := svc.IngestAll(ctx, customersFile, loansFile)
		if err != nil {
			return err
		}
		printSummary("customers", customers)
		printSummary("loans", loans)
	default:
		return fmt.Errorf("unknown --type %q: want customers, loans, or all", recordType)
	}

	return nil
}

func printSummary(kind string, s ingest.Summary) {
	fmt.Printf("%s: %d processed, %d imported, %d failed\n",
		kind, s.TotalProcessed, s.Succeeded, s.Failed)
	for _, e := range s.Errors {
		fmt.Printf("  %s\n", e)
	}
	if s.Failed > len(s.Errors) {
		fmt.Printf("  ... and %d more errors\n", s.Failed-len(s.Errors))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

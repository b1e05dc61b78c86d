package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/josh-kwaku/balance-ledger/internal/config"
	"github.com/josh-kwaku/balance-ledger/internal/csvio"
	"github.com/josh-kwaku/balance-ledger/internal/domain"
	"github.com/josh-kwaku/balance-ledger/internal/logging"
	"github.com/josh-kwaku/balance-ledger/internal/repository"
	"github.com/josh-kwaku/balance-ledger/internal/service"
)

type source interface {
	AccountRows(ctx context.Context) ([]domain.Row, error)
	TransactionRows(ctx context.Context) ([]domain.Row, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Init("ledger", cfg.LogLevel, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		slog.Error("failed to open row source", "source", cfg.Source, "error", err)
		os.Exit(1)
	}
	defer closeSrc()

	processor := service.NewProcessor(service.ProcessorOptions{
		Shuffle: cfg.Shuffle,
		Seed:    cfg.ShuffleSeed,
		Strict:  cfg.StrictLoad,
		Logger:  logger,
	})

	summary, err := processor.RunFrom(ctx, src)
	if err != nil {
		slog.Error("processing failed", "error", err)
		os.Exit(1)
	}

	if err := printReport(os.Stdout, summary); err != nil {
		slog.Error("failed to print report", "error", err)
		os.Exit(1)
	}

	if cfg.OutputFile != "" {
		err := csvio.WriteFile(cfg.OutputFile, func(w io.Writer) error {
			return csvio.WriteBalances(w, summary.Ledger.All())
		})
		if err != nil {
			slog.Error("failed to write balances", "path", cfg.OutputFile, "error", err)
			os.Exit(1)
		}
		slog.Info("balances written", "path", cfg.OutputFile)
	}
}

func openSource(ctx context.Context, cfg *config.Config) (source, func(), error) {
	if cfg.Source != config.SourcePostgres {
		return csvio.FileSource{
			AccountsPath:     cfg.AccountsFile,
			TransactionsPath: cfg.TransactionsFile,
		}, func() {}, nil
	}

	db, err := repository.OpenPostgres(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("openSource: %w", err)
	}
	return repository.NewRowRepository(db), closer(db), nil
}

func closer(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}
}

func printReport(w io.Writer, s *service.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ACCOUNT\tBALANCE\t")
	for _, a := range s.Ledger.All() {
		fmt.Fprintf(tw, "%s\t%s\t\n", a.AccountNumber, a.FormattedBalance())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("printReport: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%d accounts, %d transactions: %d applied, %d skipped (%d unknown account, %d insufficient funds)\n",
		s.Accounts, s.Transactions, s.Applied, s.Skipped, s.NotFound, s.InsufficientFunds)
	if err != nil {
		return fmt.Errorf("printReport: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/josh-kwaku/balance-ledger/internal/config"
	"github.com/josh-kwaku/balance-ledger/internal/csvio"
	"github.com/josh-kwaku/balance-ledger/internal/domain"
	"github.com/josh-kwaku/balance-ledger/internal/factory"
	"github.com/josh-kwaku/balance-ledger/internal/logging"
	"github.com/josh-kwaku/balance-ledger/internal/repository"
)

func main() {
	cfg, err := config.LoadGenerate()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("ledger-generate", cfg.LogLevel, cfg.AppEnv)

	gen := factory.New(cfg.Seed)
	accounts := gen.Accounts(cfg.NumberOfAccounts)
	transactions := gen.TransactionsFor(accounts, cfg.MinTransactionsPerAccount, cfg.MaxTransactionsPerAccount)
	gen.Shuffle(transactions)
	if cfg.CorruptRows {
		gen.Corrupt(transactions)
	}

	if err := csvio.WriteFile(cfg.AccountsFile, func(w io.Writer) error {
		return csvio.WriteAccounts(w, accounts)
	}); err != nil {
		slog.Error("failed to write accounts", "path", cfg.AccountsFile, "error", err)
		os.Exit(1)
	}
	if err := csvio.WriteFile(cfg.TransactionsFile, func(w io.Writer) error {
		return csvio.WriteTransactions(w, transactions)
	}); err != nil {
		slog.Error("failed to write transactions", "path", cfg.TransactionsFile, "error", err)
		os.Exit(1)
	}

	slog.Info("sample data written",
		"accounts", len(accounts),
		"transactions", len(transactions),
		"accounts_file", cfg.AccountsFile,
		"transactions_file", cfg.TransactionsFile,
	)

	if cfg.DatabaseURL != "" {
		if err := load(context.Background(), cfg.DatabaseURL, accounts, transactions); err != nil {
			slog.Error("failed to load rows into postgres", "error", err)
			os.Exit(1)
		}
		slog.Info("import tables replaced")
	}
}

// load replaces the contents of the import tables with the generated rows.
func load(ctx context.Context, databaseURL string, accounts, transactions []domain.Row) error {
	db, err := repository.OpenPostgres(ctx, databaseURL, repository.PoolConfig{})
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewRowRepository(db)
	if err := repo.Reset(ctx); err != nil {
		return err
	}
	if err := repo.InsertAccountRows(ctx, accounts); err != nil {
		return err
	}
	return repo.InsertTransactionRows(ctx, transactions)
}

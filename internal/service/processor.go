package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
	"github.com/josh-kwaku/balance-ledger/internal/ledger"
	"github.com/josh-kwaku/balance-ledger/internal/logging"
)

type ProcessorOptions struct {
	Shuffle bool
	// Seed for the shuffle; 0 seeds from the clock.
	Seed   uint64
	Strict bool
	Logger *slog.Logger
}

type Processor struct {
	shuffle bool
	seed    uint64
	strict  bool
	logger  *slog.Logger
}

func NewProcessor(opts ProcessorOptions) *Processor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		shuffle: opts.Shuffle,
		seed:    opts.Seed,
		strict:  opts.Strict,
		logger:  logger,
	}
}

// Summary describes one processing run. Ledger holds the final balances.
type Summary struct {
	RunID                 uuid.UUID
	Accounts              int
	Transactions          int
	Applied               int
	Skipped               int
	NotFound              int
	InsufficientFunds     int
	AccountRejections     []string
	TransactionRejections []string
	Ledger                *ledger.Ledger
}

// RunFrom reads both row sets from src and runs them.
func (p *Processor) RunFrom(ctx context.Context, src rowSource) (*Summary, error) {
	accountRows, err := src.AccountRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("RunFrom: account rows: %w", err)
	}
	transactionRows, err := src.TransactionRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("RunFrom: transaction rows: %w", err)
	}
	return p.Run(ctx, accountRows, transactionRows)
}

// Run loads accounts and transactions and applies every accepted transfer in
// order. A transfer that cannot be applied is counted and skipped. Only load
// failures (duplicate accounts, or any rejection in strict mode) are
// returned as errors.
func (p *Processor) Run(ctx context.Context, accountRows, transactionRows []domain.Row) (*Summary, error) {
	runID := uuid.New()
	logger := p.logger.With("run_id", runID.String())
	ctx = logging.WithLogger(ctx, logger)

	var opts []ledger.Option
	if p.strict {
		opts = append(opts, ledger.WithStrictLoad())
	}

	l, err := ledger.New(accountRows, opts...)
	if err != nil {
		return nil, fmt.Errorf("Run: load accounts: %w", err)
	}
	for _, msg := range l.Errors() {
		logger.Warn("account row rejected", "reason", msg)
	}

	txs, err := ledger.NewTransactions(transactionRows, opts...)
	if err != nil {
		return nil, fmt.Errorf("Run: load transactions: %w", err)
	}
	for _, msg := range txs.Errors() {
		logger.Warn("transaction row rejected", "reason", msg)
	}

	summary := &Summary{
		RunID:                 runID,
		Accounts:              l.Len(),
		Transactions:          txs.Len(),
		AccountRejections:     l.Errors(),
		TransactionRejections: txs.Errors(),
		Ledger:                l,
	}

	records := txs.All()
	if p.shuffle {
		p.shuffleRecords(records)
	}

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
		p.apply(ctx, l, i, rec, summary)
	}

	logger.Info("run complete",
		"accounts", summary.Accounts,
		"transactions", summary.Transactions,
		"applied", summary.Applied,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

func (p *Processor) apply(ctx context.Context, l *ledger.Ledger, i int, rec domain.TransactionRecord, s *Summary) {
	logger := logging.FromContext(ctx).With(
		"transaction", i,
		"from", rec.From,
		"to", rec.To,
		"amount", domain.FormatAmount(rec.Amount),
	)

	fromBefore, _ := l.BalanceFor(rec.From)
	toBefore, _ := l.BalanceFor(rec.To)

	err := l.Transfer(rec)
	switch {
	case err == nil:
		s.Applied++
		fromAfter, _ := l.BalanceFor(rec.From)
		toAfter, _ := l.BalanceFor(rec.To)
		logger.Info("transfer applied",
			"from_before", fromBefore, "from_after", fromAfter,
			"to_before", toBefore, "to_after", toAfter,
		)
	case errors.Is(err, domain.ErrAccountNotFound):
		s.Skipped++
		s.NotFound++
		logger.Warn("transfer skipped", "error", err)
	case errors.Is(err, domain.ErrInsufficientFunds):
		s.Skipped++
		s.InsufficientFunds++
		logger.Warn("transfer skipped", "error", err, "from_balance", fromBefore)
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidTargets):
		s.Skipped++
		logger.Warn("transfer skipped", "error", err)
	default:
		s.Skipped++
		logger.Error("transfer failed", "error", err)
	}
}

func (p *Processor) shuffleRecords(records []domain.TransactionRecord) {
	seed := p.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rnd.Shuffle(len(records), func(i, j int) { records[i], records[j] = records[j], records[i] })
}

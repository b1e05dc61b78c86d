package csvio

import (
	"context"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
)

// FileSource reads account and transaction rows from two CSV files.
type FileSource struct {
	AccountsPath     string
	TransactionsPath string
}

func (s FileSource) AccountRows(ctx context.Context) ([]domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(s.AccountsPath)
}

func (s FileSource) TransactionRows(ctx context.Context) ([]domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(s.TransactionsPath)
}

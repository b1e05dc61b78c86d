package service

import (
	"context"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
)

// rowSource yields raw rows in import order. Implemented by the Postgres
// RowRepository and the CSV FileSource.
type rowSource interface {
	AccountRows(ctx context.Context) ([]domain.Row, error)
	TransactionRows(ctx context.Context) ([]domain.Row, error)
}

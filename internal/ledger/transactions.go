package ledger

import (
	"fmt"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
	"github.com/josh-kwaku/balance-ledger/internal/validator"
)

// Transactions is the ordered set of accepted transfer records. Indexes are
// dense: a skipped row does not leave a gap.
type Transactions struct {
	records  []domain.TransactionRecord
	rejected validator.Log
}

// NewTransactions loads transaction rows, skipping invalid ones. Repeated or
// identical transfers are independent and all kept.
func NewTransactions(rows []domain.Row, opts ...Option) (*Transactions, error) {
	o := buildOptions(opts)
	ts := &Transactions{records: make([]domain.TransactionRecord, 0, len(rows))}

	for i, row := range rows {
		rec, err := domain.NewTransactionRecord(row)
		if err == nil {
			err = o.transactions.Validate(rec)
		}
		if err != nil {
			if _, ok := domain.AsValidationError(err); !ok || o.strict {
				return nil, fmt.Errorf("NewTransactions: row %d: %w", i, err)
			}
			ts.rejected.Add(err)
			continue
		}
		ts.records = append(ts.records, rec)
	}

	return ts, nil
}

func (ts *Transactions) All() []domain.TransactionRecord {
	out := make([]domain.TransactionRecord, len(ts.records))
	copy(out, ts.records)
	return out
}

func (ts *Transactions) Get(i int) (domain.TransactionRecord, bool) {
	if i < 0 || i >= len(ts.records) {
		return domain.TransactionRecord{}, false
	}
	return ts.records[i], true
}

func (ts *Transactions) Len() int { return len(ts.records) }

func (ts *Transactions) Errors() []string { return ts.rejected.Messages() }

func (ts *Transactions) HasErrors() bool { return ts.rejected.HasErrors() }

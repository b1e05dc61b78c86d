package ledger

import (
	"fmt"
	"sync"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
	"github.com/josh-kwaku/balance-ledger/internal/validator"
)

type Option func(*options)

type options struct {
	accounts     validator.Validator[domain.AccountRecord]
	transactions validator.Validator[domain.TransactionRecord]
	strict       bool
}

func WithAccountValidator(v validator.Validator[domain.AccountRecord]) Option {
	return func(o *options) { o.accounts = v }
}

func WithTransactionValidator(v validator.Validator[domain.TransactionRecord]) Option {
	return func(o *options) { o.transactions = v }
}

// WithStrictLoad makes loading stop at the first rejected row and return its
// ValidationError instead of skipping the row.
func WithStrictLoad() Option {
	return func(o *options) { o.strict = true }
}

func buildOptions(opts []Option) options {
	o := options{
		accounts:     validator.NewAccountValidator(),
		transactions: validator.NewTransactionValidator(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Ledger holds the current balance of every loaded account. Records never
// leave the ledger by reference; Find and All hand out copies.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*domain.AccountRecord
	order    []string
	rejected validator.Log
}

// New loads account rows. Invalid rows are skipped and logged; a repeated
// account number aborts the load with domain.ErrDuplicateAccount.
func New(rows []domain.Row, opts ...Option) (*Ledger, error) {
	o := buildOptions(opts)
	l := &Ledger{accounts: make(map[string]*domain.AccountRecord, len(rows))}

	if err := l.load(rows, o); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	return l, nil
}

func (l *Ledger) load(rows []domain.Row, o options) error {
	seen := make(map[string]struct{}, len(rows))
	for i, row := range rows {
		rec, err := domain.NewAccountRecord(row)
		if err == nil {
			// Checked before validation and against every earlier row, so a
			// repeated number is fatal whichever of the two rows is invalid.
			if _, dup := seen[rec.AccountNumber]; dup {
				return fmt.Errorf("load: account number %q found multiple times, aborting to avoid overwriting balances: %w",
					rec.AccountNumber, domain.ErrDuplicateAccount)
			}
			seen[rec.AccountNumber] = struct{}{}
			err = o.accounts.Validate(rec)
		}
		if err != nil {
			if _, ok := domain.AsValidationError(err); !ok || o.strict {
				return fmt.Errorf("load: row %d: %w", i, err)
			}
			l.rejected.Add(err)
			continue
		}

		l.accounts[rec.AccountNumber] = &rec
		l.order = append(l.order, rec.AccountNumber)
	}
	return nil
}

// Find accepts the same raw forms a row does, so an integer lookup key is
// normalized exactly like an integer account number field.
func (l *Ledger) Find(accountNumber any) (domain.AccountRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.find(accountNumber)
	if !ok {
		return domain.AccountRecord{}, false
	}
	return *a, true
}

func (l *Ledger) find(accountNumber any) (*domain.AccountRecord, bool) {
	key, err := domain.NormalizeAccountNumber(accountNumber)
	if err != nil {
		return nil, false
	}
	a, ok := l.accounts[key]
	return a, ok
}

// BalanceFor returns the balance with exactly two decimals, or false when
// the account is unknown.
func (l *Ledger) BalanceFor(accountNumber any) (string, bool) {
	a, ok := l.Find(accountNumber)
	if !ok {
		return "", false
	}
	return a.FormattedBalance(), true
}

// Transfer moves t.Amount from t.From to t.To. Both balances change together
// or not at all; the sum of the two is the same before and after.
func (l *Ledger) Transfer(t domain.TransactionRecord) error {
	// Records built by hand never went through a validator.
	if !t.Amount.IsPositive() {
		return fmt.Errorf("Transfer: amount %s: %w", t.Amount, domain.ErrInvalidAmount)
	}
	if t.From == t.To {
		return fmt.Errorf("Transfer: %s to itself: %w", t.From, domain.ErrInvalidTargets)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	source, ok := l.find(t.From)
	if !ok {
		return fmt.Errorf("Transfer: source %s: %w", t.From, domain.ErrAccountNotFound)
	}
	destination, ok := l.find(t.To)
	if !ok {
		return fmt.Errorf("Transfer: destination %s: %w", t.To, domain.ErrAccountNotFound)
	}

	if source.Balance.LessThan(t.Amount) {
		return fmt.Errorf("Transfer: %s has %s, needs %s: %w",
			t.From, source.FormattedBalance(), domain.FormatAmount(t.Amount), domain.ErrInsufficientFunds)
	}

	source.Balance = source.Balance.Sub(t.Amount)
	destination.Balance = destination.Balance.Add(t.Amount)
	return nil
}

// Transact reports whether the transfer was applied. A non-positive amount,
// a self transfer, a missing account or insufficient funds leaves every
// balance untouched.
func (l *Ledger) Transact(t domain.TransactionRecord) bool {
	return l.Transfer(t) == nil
}

func (l *Ledger) All() []domain.AccountRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.AccountRecord, 0, len(l.order))
	for _, number := range l.order {
		out = append(out, *l.accounts[number])
	}
	return out
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

func (l *Ledger) Errors() []string { return l.rejected.Messages() }

func (l *Ledger) HasErrors() bool { return l.rejected.HasErrors() }

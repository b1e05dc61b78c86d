package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
	"github.com/josh-kwaku/balance-ledger/internal/factory"
	"github.com/josh-kwaku/balance-ledger/internal/logging"
)

const (
	acctA = "1111234522226789"
	acctB = "1212343433335665"
	acctC = "2222123433331212"
)

func accountRows() []domain.Row {
	return []domain.Row{
		{acctA, "5000.00"},
		{acctB, "1200.00"},
		{acctC, "550.00"},
		{"jajaja", "10.00"},
	}
}

func newTestProcessor(buf *bytes.Buffer, opts ProcessorOptions) *Processor {
	opts.Logger = logging.New(buf, "ledger", "debug", "production")
	return NewProcessor(opts)
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		out = append(out, line)
	}
	return out
}

func TestProcessor_Run(t *testing.T) {
	var buf bytes.Buffer
	p := newTestProcessor(&buf, ProcessorOptions{})

	txRows := []domain.Row{
		{acctA, acctB, "500.00"},
		{acctC, acctA, "1000.00"},            // insufficient funds
		{acctB, "9999999999999999", "10.00"}, // unknown destination
		{acctB, acctC, "-10.00"},             // rejected at load
		{acctC, acctA, "25.60"},
	}

	s, err := p.Run(context.Background(), accountRows(), txRows)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Accounts)
	assert.Equal(t, 4, s.Transactions)
	assert.Equal(t, 2, s.Applied)
	assert.Equal(t, 2, s.Skipped)
	assert.Equal(t, 1, s.NotFound)
	assert.Equal(t, 1, s.InsufficientFunds)
	assert.Len(t, s.AccountRejections, 1)
	assert.Len(t, s.TransactionRejections, 1)

	bal, ok := s.Ledger.BalanceFor(acctA)
	require.True(t, ok)
	assert.Equal(t, "4525.60", bal)
	bal, _ = s.Ledger.BalanceFor(acctB)
	assert.Equal(t, "1700.00", bal)
	bal, _ = s.Ledger.BalanceFor(acctC)
	assert.Equal(t, "524.40", bal)

	lines := logLines(t, &buf)
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Equal(t, s.RunID.String(), line["run_id"], "every line carries the run id")
	}

	var applied int
	for _, line := range lines {
		if line["msg"] == "transfer applied" {
			applied++
			if applied == 1 {
				assert.Equal(t, "5000.00", line["from_before"])
				assert.Equal(t, "4500.00", line["from_after"])
				assert.Equal(t, "1200.00", line["to_before"])
				assert.Equal(t, "1700.00", line["to_after"])
			}
		}
	}
	assert.Equal(t, 2, applied)
}

func TestProcessor_RunDuplicateAccountIsFatal(t *testing.T) {
	var buf bytes.Buffer
	p := newTestProcessor(&buf, ProcessorOptions{})

	rows := append(accountRows(), domain.Row{acctB, "1.00"})
	_, err := p.Run(context.Background(), rows, nil)
	require.ErrorIs(t, err, domain.ErrDuplicateAccount)
}

func TestProcessor_RunStrict(t *testing.T) {
	var buf bytes.Buffer
	p := newTestProcessor(&buf, ProcessorOptions{Strict: true})

	_, err := p.Run(context.Background(), accountRows(), nil)
	require.ErrorIs(t, err, domain.ErrInvalidAccountNumber)

	valid := accountRows()[:3]
	_, err = p.Run(context.Background(), valid, []domain.Row{{acctA, acctA, "1.00"}})
	require.ErrorIs(t, err, domain.ErrInvalidTargets)
}

func TestProcessor_ShuffleConservesTotal(t *testing.T) {
	gen := factory.New(7)
	accounts := gen.Accounts(20)
	txs := gen.TransactionsFor(accounts, 1, 5)

	var buf bytes.Buffer
	s, err := newTestProcessor(&buf, ProcessorOptions{Shuffle: true, Seed: 99}).
		Run(context.Background(), accounts, txs)
	require.NoError(t, err)
	assert.Equal(t, s.Transactions, s.Applied+s.Skipped)

	before := decimal.Zero
	for _, row := range accounts {
		before = before.Add(decimal.RequireFromString(row[1].(string)))
	}
	after := decimal.Zero
	for _, a := range s.Ledger.All() {
		after = after.Add(a.Balance)
	}
	assert.True(t, before.Equal(after), "total %s became %s", before, after)

	// same seed, same order, same outcome
	var buf2 bytes.Buffer
	again, err := newTestProcessor(&buf2, ProcessorOptions{Shuffle: true, Seed: 99}).
		Run(context.Background(), accounts, txs)
	require.NoError(t, err)
	assert.Equal(t, s.Applied, again.Applied)
	assert.Equal(t, s.Ledger.All(), again.Ledger.All())
}

func TestProcessor_RunCancelled(t *testing.T) {
	var buf bytes.Buffer
	p := newTestProcessor(&buf, ProcessorOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Run(ctx, accountRows(), []domain.Row{{acctA, acctB, "1.00"}})
	require.ErrorIs(t, err, context.Canceled)
}

type stubSource struct {
	accounts, transactions []domain.Row
	err                    error
}

func (s stubSource) AccountRows(context.Context) ([]domain.Row, error) { return s.accounts, s.err }

func (s stubSource) TransactionRows(context.Context) ([]domain.Row, error) {
	return s.transactions, nil
}

func TestProcessor_RunFrom(t *testing.T) {
	var buf bytes.Buffer
	p := newTestProcessor(&buf, ProcessorOptions{})

	s, err := p.RunFrom(context.Background(), stubSource{
		accounts:     accountRows(),
		transactions: []domain.Row{{acctA, acctC, "0.01"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Applied)

	boom := errors.New("boom")
	_, err = p.RunFrom(context.Background(), stubSource{err: boom})
	require.ErrorIs(t, err, boom)
}

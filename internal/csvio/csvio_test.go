package csvio

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
)

func TestReadRows(t *testing.T) {
	in := "1111222233334444,500.25\n5555666677778888, 200.86\n\nshort\n"

	rows, err := ReadRows(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.Row{"1111222233334444", "500.25"}, rows[0])
	assert.Equal(t, domain.Row{"5555666677778888", "200.86"}, rows[1])
	assert.Equal(t, domain.Row{"short"}, rows[2])
}

func TestReadRows_BadQuoting(t *testing.T) {
	_, err := ReadRows(strings.NewReader("\"unterminated,1\n"))
	require.Error(t, err)
}

func TestWriteAccountsAndTransactions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, []domain.Row{
		{"1111222233334444", "239.2"},
		{"5555666677778888", 600},
		{"9999000011112222", "oops"},
	}))
	assert.Equal(t, "1111222233334444,239.20\n5555666677778888,600.00\n9999000011112222,oops\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteTransactions(&buf, []domain.Row{
		{"1111222233334444", "5555666677778888", "-10"},
	}))
	assert.Equal(t, "1111222233334444,5555666677778888,-10.00\n", buf.String())
}

func TestWriteBalances(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBalances(&buf, []domain.AccountRecord{
		{AccountNumber: "1111222233334444", Balance: decimal.RequireFromString("344.13423")},
	}))
	assert.Equal(t, "1111222233334444,344.13\n", buf.String())
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "accounts.csv")
	rows := []domain.Row{{"1111222233334444", "1.5"}}

	require.NoError(t, WriteFile(path, func(w io.Writer) error { return WriteAccounts(w, rows) }))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Row{{"1111222233334444", "1.50"}}, got)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	src := FileSource{
		AccountsPath:     filepath.Join(dir, "accounts.csv"),
		TransactionsPath: filepath.Join(dir, "transactions.csv"),
	}
	require.NoError(t, WriteFile(src.AccountsPath, func(w io.Writer) error {
		return WriteAccounts(w, []domain.Row{{"1111222233334444", "10"}})
	}))
	require.NoError(t, WriteFile(src.TransactionsPath, func(w io.Writer) error {
		return WriteTransactions(w, []domain.Row{{"1111222233334444", "5555666677778888", "2.5"}})
	}))

	ctx := context.Background()
	accounts, err := src.AccountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Row{{"1111222233334444", "10.00"}}, accounts)

	txs, err := src.TransactionRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Row{{"1111222233334444", "5555666677778888", "2.50"}}, txs)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = src.AccountRows(cancelled)
	require.ErrorIs(t, err, context.Canceled)
}

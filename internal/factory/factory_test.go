package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
	"github.com/josh-kwaku/balance-ledger/internal/validator"
)

func TestAccounts(t *testing.T) {
	g := New(42)
	rows := g.Accounts(50)
	require.Len(t, rows, 50)

	v := validator.NewAccountValidator()
	seen := map[string]bool{}
	for _, row := range rows {
		rec, err := domain.NewAccountRecord(row)
		require.NoError(t, err)
		require.NoError(t, v.Validate(rec))
		assert.False(t, seen[rec.AccountNumber], "duplicate %s", rec.AccountNumber)
		seen[rec.AccountNumber] = true
	}
}

func TestTransactions(t *testing.T) {
	g := New(7)
	v := validator.NewTransactionValidator()

	for _, row := range g.Transactions(100) {
		rec, err := domain.NewTransactionRecord(row)
		require.NoError(t, err)
		assert.NoError(t, v.Validate(rec))
	}
}

func TestOverrides(t *testing.T) {
	g := New(1)

	acct := g.Account(AccountOverrides{Balance: "-15.20"})
	assert.Equal(t, "-15.20", acct[1])
	assert.Len(t, acct[0], domain.AccountNumberLength)

	tx := g.Transaction(TransactionOverrides{From: "1111222233334444", Amount: "0"})
	assert.Equal(t, "1111222233334444", tx[0])
	assert.Equal(t, "0", tx[2])
	assert.NotEqual(t, tx[0], tx[1])
}

func TestSeedIsDeterministic(t *testing.T) {
	assert.Equal(t, New(99).Accounts(5), New(99).Accounts(5))
}

func TestTransactionsForAndCorrupt(t *testing.T) {
	g := New(3)
	accounts := g.Accounts(10)

	rows := g.TransactionsFor(accounts, 2, 3)
	require.Len(t, rows, 20)

	numbers := map[any]bool{}
	for _, a := range accounts {
		numbers[a[0]] = true
	}
	for _, r := range rows {
		assert.True(t, numbers[r[0]])
		assert.True(t, numbers[r[1]])
	}

	g.Corrupt(rows)
	var bogusFrom, negative int
	for _, r := range rows {
		if r[0] == bogusAccountNumber {
			bogusFrom++
		}
		if r[2] == bogusNegativeAmount {
			negative++
		}
	}
	assert.Equal(t, 1, bogusFrom)
	assert.Equal(t, 1, negative)

	assert.Nil(t, g.TransactionsFor(nil, 1, 2))
}

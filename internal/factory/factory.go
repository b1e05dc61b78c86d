// Package factory produces random account and transaction rows for tests
// and sample data files. Rows come out in the same raw shape a CSV reader
// yields: strings for every field.
package factory

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
)

const (
	maxBalance          = 100000
	zeroBalanceChance   = 0.25
	largeAmountChance   = 0.5
	smallAmountFactor   = 100
	largeAmountFactor   = 100000
	bogusAccountNumber  = "jajaja"
	bogusNegativeAmount = "-10.00"
)

type Generator struct {
	rnd *rand.Rand
}

// New returns a generator seeded with seed; 0 seeds from the clock.
func New(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Generator) AccountNumber() string {
	digits := make([]byte, domain.AccountNumberLength)
	for i := range digits {
		digits[i] = '0' + byte(g.rnd.IntN(10))
	}
	return string(digits)
}

// Balance is "0.00" a quarter of the time, otherwise anything below 100k.
func (g *Generator) Balance() string {
	if g.rnd.Float64() < zeroBalanceChance {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", g.rnd.Float64()*maxBalance)
}

// Amount is never zero. Half of the amounts stay small so that most
// generated transfers have funds to draw on.
func (g *Generator) Amount() string {
	factor := float64(smallAmountFactor)
	if g.rnd.Float64() < largeAmountChance {
		factor = largeAmountFactor
	}
	return fmt.Sprintf("%.2f", (0.01+g.rnd.Float64()*0.98)*factor)
}

type AccountOverrides struct {
	AccountNumber any
	Balance       any
}

func (g *Generator) Account(o AccountOverrides) domain.Row {
	row := domain.Row{o.AccountNumber, o.Balance}
	if row[0] == nil {
		row[0] = g.AccountNumber()
	}
	if row[1] == nil {
		row[1] = g.Balance()
	}
	return row
}

// Accounts returns n rows with unique account numbers.
func (g *Generator) Accounts(n int) []domain.Row {
	used := make(map[string]struct{}, n)
	rows := make([]domain.Row, 0, n)
	for len(rows) < n {
		number := g.AccountNumber()
		if _, ok := used[number]; ok {
			continue
		}
		used[number] = struct{}{}
		rows = append(rows, domain.Row{number, g.Balance()})
	}
	return rows
}

type TransactionOverrides struct {
	From   any
	To     any
	Amount any
}

// Transaction fills the missing fields at random. A generated destination
// always differs from the source.
func (g *Generator) Transaction(o TransactionOverrides) domain.Row {
	row := domain.Row{o.From, o.To, o.Amount}
	if row[2] == nil {
		row[2] = g.Amount()
	}
	if row[0] == nil {
		row[0] = g.AccountNumber()
	}
	if row[1] == nil {
		for {
			to := g.AccountNumber()
			if to != fmt.Sprint(row[0]) {
				row[1] = to
				break
			}
		}
	}
	return row
}

func (g *Generator) Transactions(n int) []domain.Row {
	rows := make([]domain.Row, 0, n)
	for range n {
		rows = append(rows, g.Transaction(TransactionOverrides{}))
	}
	return rows
}

// TransactionsFor draws between minPer and maxPer (exclusive) transfers out of every
// account, each to a random account of the same set. A draw can land on
// the source itself; those rows are rejected at load like any other.
func (g *Generator) TransactionsFor(accounts []domain.Row, minPer, maxPer int) []domain.Row {
	if len(accounts) == 0 {
		return nil
	}
	var rows []domain.Row
	for _, acct := range accounts {
		n := minPer
		if maxPer > minPer {
			n += g.rnd.IntN(maxPer - minPer)
		}
		for range n {
			to := accounts[g.rnd.IntN(len(accounts))][0]
			rows = append(rows, g.Transaction(TransactionOverrides{From: acct[0], To: to}))
		}
	}
	return rows
}

// Corrupt replaces the source of one random row with a malformed account
// number and the amount of another with a negative value.
func (g *Generator) Corrupt(rows []domain.Row) {
	if len(rows) == 0 {
		return
	}
	i := g.rnd.IntN(len(rows))
	rows[i] = domain.Row{bogusAccountNumber, rows[i][1], rows[i][2]}

	j := g.rnd.IntN(len(rows))
	rows[j] = domain.Row{rows[j][0], rows[j][1], bogusNegativeAmount}
}

func (g *Generator) Shuffle(rows []domain.Row) {
	g.rnd.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
}

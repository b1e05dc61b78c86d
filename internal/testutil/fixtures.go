package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
)

func SeedAccountRows(t *testing.T, db *sql.DB, rows ...domain.Row) {
	t.Helper()

	for _, r := range rows {
		_, err := db.Exec(
			`INSERT INTO account_balances (account_number, balance) VALUES ($1, $2)`,
			text(r, 0), text(r, 1),
		)
		if err != nil {
			t.Fatalf("seed account row %v: %v", r, err)
		}
	}
}

func SeedTransactionRows(t *testing.T, db *sql.DB, rows ...domain.Row) {
	t.Helper()

	for _, r := range rows {
		_, err := db.Exec(
			`INSERT INTO transactions (from_account, to_account, amount) VALUES ($1, $2, $3)`,
			text(r, 0), text(r, 1), text(r, 2),
		)
		if err != nil {
			t.Fatalf("seed transaction row %v: %v", r, err)
		}
	}
}

func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
		t.Fatalf("count rows in %s: %v", table, err)
	}
	return count
}

// text returns field i as a nullable string; missing or nil fields become NULL.
func text(r domain.Row, i int) sql.NullString {
	if i >= len(r) || r[i] == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: fmt.Sprint(r[i]), Valid: true}
}

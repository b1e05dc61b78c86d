package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
)

// RowRepository reads raw import rows. Columns are TEXT so that dirty
// values reach the validators exactly as they were imported.
type RowRepository struct {
	db *sql.DB
}

func NewRowRepository(db *sql.DB) *RowRepository {
	return &RowRepository{db: db}
}

func (r *RowRepository) AccountRows(ctx context.Context) ([]domain.Row, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT account_number, balance FROM account_balances ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("AccountRows: %w", err)
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		row, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("AccountRows: scan: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("AccountRows: rows: %w", err)
	}
	return out, nil
}

func (r *RowRepository) TransactionRows(ctx context.Context) ([]domain.Row, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT from_account, to_account, amount FROM transactions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("TransactionRows: %w", err)
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		row, err := scanTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("TransactionRows: scan: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("TransactionRows: rows: %w", err)
	}
	return out, nil
}

func (r *RowRepository) InsertAccountRows(ctx context.Context, rows []domain.Row) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		for i, row := range rows {
			if len(row) != 2 {
				return fmt.Errorf("row %d: %d fields: %w", i, len(row), domain.ErrMalformedRow)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO account_balances (account_number, balance) VALUES ($1, $2)`,
				field(row[0]), field(row[1]),
			); err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("InsertAccountRows: %w", err)
	}
	return nil
}

func (r *RowRepository) InsertTransactionRows(ctx context.Context, rows []domain.Row) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		for i, row := range rows {
			if len(row) != 3 {
				return fmt.Errorf("row %d: %d fields: %w", i, len(row), domain.ErrMalformedRow)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO transactions (from_account, to_account, amount) VALUES ($1, $2, $3)`,
				field(row[0]), field(row[1]), field(row[2]),
			); err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("InsertTransactionRows: %w", err)
	}
	return nil
}

// Reset empties both import tables.
func (r *RowRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`TRUNCATE account_balances, transactions RESTART IDENTITY`,
	); err != nil {
		return fmt.Errorf("Reset: %w", err)
	}
	return nil
}

func scanAccountRow(s scanner) (domain.Row, error) {
	var number, balance sql.NullString
	if err := s.Scan(&number, &balance); err != nil {
		return nil, err
	}
	return domain.Row{nullable(number), nullable(balance)}, nil
}

func scanTransactionRow(s scanner) (domain.Row, error) {
	var from, to, amount sql.NullString
	if err := s.Scan(&from, &to, &amount); err != nil {
		return nil, err
	}
	return domain.Row{nullable(from), nullable(to), nullable(amount)}, nil
}

func field(v any) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: fmt.Sprint(v), Valid: true}
}

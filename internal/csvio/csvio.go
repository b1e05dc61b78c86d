package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
)

// ReadRows returns every CSV record as a row of strings. Records may have
// any number of fields; arity is checked when records are built.
func ReadRows(r io.Reader) ([]domain.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []domain.Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("ReadRows: %w", err)
		}

		row := make(domain.Row, len(rec))
		for i, field := range rec {
			row[i] = field
		}
		rows = append(rows, row)
	}
}

func ReadFile(path string) ([]domain.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadFile: %w", err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("ReadFile %s: %w", path, err)
	}
	return rows, nil
}

// WriteAccounts writes (account_number, balance) rows with balances in two
// decimals. Fields that do not parse as decimals are written unchanged.
func WriteAccounts(w io.Writer, rows []domain.Row) error {
	if err := writeRows(w, rows, 1); err != nil {
		return fmt.Errorf("WriteAccounts: %w", err)
	}
	return nil
}

// WriteTransactions writes (from, to, amount) rows with amounts in two
// decimals.
func WriteTransactions(w io.Writer, rows []domain.Row) error {
	if err := writeRows(w, rows, 2); err != nil {
		return fmt.Errorf("WriteTransactions: %w", err)
	}
	return nil
}

func WriteBalances(w io.Writer, accounts []domain.AccountRecord) error {
	rows := make([]domain.Row, len(accounts))
	for i, a := range accounts {
		rows[i] = a.Row()
	}
	if err := writeRows(w, rows, 1); err != nil {
		return fmt.Errorf("WriteBalances: %w", err)
	}
	return nil
}

func WriteFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("WriteFile: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteFile: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("WriteFile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("WriteFile %s: close: %w", path, err)
	}
	return nil
}

func writeRows(w io.Writer, rows []domain.Row, moneyField int) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, field := range row {
			rec[i] = fmt.Sprint(field)
			if i == moneyField {
				if d, err := domain.ParseDecimal(field); err == nil {
					rec[i] = domain.FormatAmount(d)
				}
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

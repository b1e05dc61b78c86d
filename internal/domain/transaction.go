package domain

import (
	"github.com/shopspring/decimal"
)

type TransactionRecord struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// NewTransactionRecord builds a record from a (from, to, amount) row.
func NewTransactionRecord(row Row) (TransactionRecord, error) {
	if len(row) != 3 {
		return TransactionRecord{}, malformed("Transaction row needs 3 fields (from, to, amount), got %d", len(row))
	}

	from, err := NormalizeAccountNumber(row[0])
	if err != nil {
		return TransactionRecord{}, malformed("Unreadable source account %v: %v", row[0], err)
	}

	to, err := NormalizeAccountNumber(row[1])
	if err != nil {
		return TransactionRecord{}, malformed("Unreadable destination account %v: %v", row[1], err)
	}

	amount, err := ParseDecimal(row[2])
	if err != nil {
		return TransactionRecord{}, malformed("Unreadable amount %v (from: %s, to: %s): %v", row[2], from, to, err)
	}

	return TransactionRecord{From: from, To: to, Amount: amount}, nil
}

func (t TransactionRecord) Row() Row {
	return Row{t.From, t.To, FormatAmount(t.Amount)}
}

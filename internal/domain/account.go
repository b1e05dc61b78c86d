package domain

import (
	"github.com/shopspring/decimal"
)

const BalanceScale = 2

type AccountRecord struct {
	AccountNumber string
	Balance       decimal.Decimal
}

// NewAccountRecord builds a record from an (account_number, balance) row.
// It only normalizes; business rules live in validator.AccountValidator.
func NewAccountRecord(row Row) (AccountRecord, error) {
	if len(row) != 2 {
		return AccountRecord{}, malformed("Account row needs 2 fields (account_number, balance), got %d", len(row))
	}

	number, err := NormalizeAccountNumber(row[0])
	if err != nil {
		return AccountRecord{}, malformed("Unreadable account number %v: %v", row[0], err)
	}

	balance, err := ParseDecimal(row[1])
	if err != nil {
		return AccountRecord{}, malformed("Unreadable balance %v for account %s: %v", row[1], number, err)
	}

	return AccountRecord{AccountNumber: number, Balance: balance}, nil
}

func (a AccountRecord) FormattedBalance() string {
	return FormatAmount(a.Balance)
}

// FormatAmount renders money in fixed point with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(BalanceScale)
}

func (a AccountRecord) Row() Row {
	return Row{a.AccountNumber, a.FormattedBalance()}
}

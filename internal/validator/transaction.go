package validator

import (
	"fmt"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
)

type TransactionValidator struct{}

func NewTransactionValidator() *TransactionValidator {
	return &TransactionValidator{}
}

// Validate checks amount, then both account numbers, then that the
// transfer has two distinct ends.
func (v *TransactionValidator) Validate(t domain.TransactionRecord) error {
	// Zero would be a no-op and a negative amount would pull money from the destination.
	if !t.Amount.IsPositive() {
		return domain.NewValidationError(domain.ErrInvalidAmount, fmt.Sprintf(
			"Transaction amount needs to be higher than 0 (from: %s, to: %s, amount: %s)",
			t.From, t.To, t.Amount,
		))
	}

	if !domain.IsAccountNumber(t.To) || !domain.IsAccountNumber(t.From) {
		return domain.NewValidationError(domain.ErrInvalidAccountNumber, fmt.Sprintf(
			"Invalid format for account number (to: %s, from: %s). Needs to be a 16-character string of digits 0-9.",
			t.To, t.From,
		))
	}

	if t.To == t.From {
		return domain.NewValidationError(domain.ErrInvalidTargets, fmt.Sprintf(
			"Transaction source needs to be different to its destination (account: %s)",
			t.From,
		))
	}

	return nil
}

func (v *TransactionValidator) Valid(t domain.TransactionRecord) bool {
	return valid(v.Validate(t))
}

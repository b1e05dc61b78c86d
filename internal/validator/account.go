package validator

import (
	"fmt"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
)

type AccountValidator struct{}

func NewAccountValidator() *AccountValidator {
	return &AccountValidator{}
}

// Validate checks the balance first, then the account number format.
func (v *AccountValidator) Validate(a domain.AccountRecord) error {
	if a.Balance.IsNegative() {
		return domain.NewValidationError(domain.ErrInvalidBalance, fmt.Sprintf(
			"Starting balance for account %s must be greater than or equal to zero. Balance: %s",
			a.AccountNumber, a.Balance,
		))
	}

	if !domain.IsAccountNumber(a.AccountNumber) {
		return domain.NewValidationError(domain.ErrInvalidAccountNumber, fmt.Sprintf(
			"Invalid format for account number %q. Needs to be a 16-character string of digits 0-9.",
			a.AccountNumber,
		))
	}

	return nil
}

func (v *AccountValidator) Valid(a domain.AccountRecord) bool {
	return valid(v.Validate(a))
}

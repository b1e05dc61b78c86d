package domain

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrInvalidBalance       = errors.New("invalid balance")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidTargets       = errors.New("cannot transfer to same account")
	ErrMalformedRow         = errors.New("malformed row")

	ErrDuplicateAccount  = errors.New("duplicate account number")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ValidationError reports the first rule a record broke. Kind is one of the
// sentinel errors above; Message is meant for people reading a load report.
type ValidationError struct {
	Kind    error
	Message string
}

func NewValidationError(kind error, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Kind}
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

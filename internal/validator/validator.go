// Package validator holds the record rules applied while loading rows.
//
// Validators are stateless: Validate returns the first broken rule as a
// *domain.ValidationError, Valid folds that into a bool. Collecting the
// rejection messages is the caller's job, see Log.
package validator

import (
	"fmt"

	"github.com/josh-kwaku/balance-ledger/internal/domain"
)

type Validator[T any] interface {
	Validate(record T) error
	Valid(record T) bool
}

// valid maps a Validate result to a bool. Anything outside the
// ValidationError family means a broken validator, not bad data.
func valid(err error) bool {
	if err == nil {
		return true
	}
	if _, ok := domain.AsValidationError(err); ok {
		return false
	}
	panic(fmt.Sprintf("validator: unexpected error: %v", err))
}

// Log accumulates rejection messages in the order they happened.
type Log struct {
	messages []string
}

func (l *Log) Add(err error) {
	l.messages = append(l.messages, err.Error())
}

func (l *Log) Messages() []string {
	out := make([]string, len(l.messages))
	copy(out, l.messages)
	return out
}

func (l *Log) Len() int { return len(l.messages) }

func (l *Log) HasErrors() bool { return len(l.messages) > 0 }

package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const AccountNumberLength = 16

// Row is one raw record as handed over by a reader: CSV cells arrive as
// strings, hand-built fixtures may carry integers or decimals.
type Row []any

var accountNumberPattern = regexp.MustCompile(`^[0-9]{16}$`)

func IsAccountNumber(s string) bool {
	return accountNumberPattern.MatchString(s)
}

// NormalizeAccountNumber converts a raw field to its string form. Strings are
// taken as is, padding included. Integers
// are formatted in base 10, so a number that lost its leading zeros comes
// out shorter than 16 characters and fails IsAccountNumber later.
func NormalizeAccountNumber(v any) (string, error) {
	switch n := v.(type) {
	case nil:
		return "", fmt.Errorf("NormalizeAccountNumber: missing value")
	case string:
		return n, nil
	case []byte:
		return string(n), nil
	case int:
		return strconv.FormatInt(int64(n), 10), nil
	case int8:
		return strconv.FormatInt(int64(n), 10), nil
	case int16:
		return strconv.FormatInt(int64(n), 10), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case fmt.Stringer:
		return n.String(), nil
	default:
		return "", fmt.Errorf("NormalizeAccountNumber: unsupported type %T", v)
	}
}

// ParseDecimal converts a raw money field to an exact decimal. Floats go
// through their shortest decimal representation.
func ParseDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, fmt.Errorf("ParseDecimal: missing value")
	case decimal.Decimal:
		return n, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, fmt.Errorf("ParseDecimal: %w", err)
		}
		return d, nil
	case []byte:
		return ParseDecimal(string(n))
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int8:
		return decimal.NewFromInt32(int32(n)), nil
	case int16:
		return decimal.NewFromInt32(int32(n)), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case uint:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint8:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint16:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint32:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint64:
		return decimal.NewFromUint64(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Zero, fmt.Errorf("ParseDecimal: unsupported type %T", v)
	}
}

func malformed(format string, args ...any) *ValidationError {
	return NewValidationError(ErrMalformedRow, fmt.Sprintf(format, args...))
}

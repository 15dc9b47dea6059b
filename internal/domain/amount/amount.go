package amount

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalid = errors.New("invalid amount")

// Amount is a strictly positive payment amount in Baht. The zero value is not a valid
// Amount; obtain one through Parse, ParseString or New.
type Amount struct {
	value decimal.Decimal
}

func New(d decimal.Decimal) (Amount, error) {
	if !d.IsPositive() {
		return Amount{}, ErrInvalid
	}
	return Amount{value: d}, nil
}

// Parse converts an untrusted value into an Amount. Strings, JSON numbers, Go numeric
// types and decimals are accepted; everything else, including nil, is rejected.
func Parse(raw any) (Amount, error) {
	switch v := raw.(type) {
	case nil:
		return Amount{}, ErrInvalid
	case string:
		return ParseString(v)
	case json.Number:
		return ParseString(v.String())
	case decimal.Decimal:
		return New(v)
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return New(decimal.NewFromInt(int64(v)))
	case int32:
		return New(decimal.NewFromInt32(v))
	case int64:
		return New(decimal.NewFromInt(v))
	case uint:
		return fromUint(uint64(v))
	case uint32:
		return fromUint(uint64(v))
	case uint64:
		return fromUint(v)
	default:
		return Amount{}, ErrInvalid
	}
}

func ParseString(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrInvalid
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, ErrInvalid
	}
	return New(d)
}

func fromFloat(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}, ErrInvalid
	}
	return New(decimal.NewFromFloat(f))
}

func fromUint(u uint64) (Amount, error) {
	return New(decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0))
}

func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Valid reports whether a satisfies the positivity invariant. It is false for the zero
// value.
func (a Amount) Valid() bool {
	return a.value.IsPositive()
}

func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

func (a Amount) String() string {
	return a.value.String()
}

// Package money holds the single fixed-point currency used for deposits.
// Amounts are counted in minor units (sen) so splits are exact.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Prefix is the display prefix for every formatted amount.
const Prefix = "RM"

// Scale is the number of minor-unit digits.
const Scale = 2

var (
	ErrEmpty        = errors.New("amount is empty")
	ErrNotNumeric   = errors.New("amount is not a number")
	ErrNotFinite    = errors.New("amount is not finite")
	ErrSubUnit      = errors.New("amount has more than two decimal places")
	ErrOutOfRange   = errors.New("amount is out of range")
	maxMajorDecimal = decimal.New(math.MaxInt64, -Scale)
)

// Money is an amount in minor units.
type Money int64

// Zero is RM 0.00.
const Zero Money = 0

// FromMinor wraps a minor-unit count.
func FromMinor(minor int64) Money {
	return Money(minor)
}

// OfMajor converts a stored major-unit number such as 100.5.
func OfMajor(v float64) (Money, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return fromDecimal(decimal.NewFromFloat(v))
}

// Parse reads admin input. Blank, non-numeric and sub-unit inputs are
// rejected rather than rounded.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmpty
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return fromDecimal(d)
}

func fromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Round(Scale).Equal(d) {
		return 0, ErrSubUnit
	}
	if d.Abs().GreaterThan(maxMajorDecimal) {
		return 0, ErrOutOfRange
	}
	return Money(d.Shift(Scale).IntPart()), nil
}

// Minor returns the minor-unit count.
func (m Money) Minor() int64 {
	return int64(m)
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -Scale)
}

// Major returns the amount in major units for stores that keep numbers as
// doubles.
func (m Money) Major() float64 {
	f, _ := m.Decimal().Float64()
	return f
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return m + o
}

// Sub returns m - o, clamped at zero.
func (m Money) Sub(o Money) Money {
	if o >= m {
		return 0
	}
	return m - o
}

// SubAllowNegative returns m - o without clamping.
func (m Money) SubAllowNegative(o Money) Money {
	return m - o
}

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsPositive() bool { return m > 0 }
func (m Money) IsNegative() bool { return m < 0 }

// Format renders the amount for admins and notifications, e.g. "RM 40.00".
func (m Money) Format() string {
	return Prefix + " " + m.Decimal().StringFixed(Scale)
}

func (m Money) String() string {
	return m.Format()
}

// MarshalJSON writes the amount as a major-unit number, e.g. 40.00.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(Scale)), nil
}

// UnmarshalJSON reads a major-unit number or numeric string with the same
// rules as Parse.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	v, err := Parse(strings.Trim(s, `"`))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

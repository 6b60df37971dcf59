package kernel

import (
	"fmt"
	"strconv"

	"mealdispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the scale every stored and computed amount is rounded to.
const MoneyPlaces = 2

var (
	hundred = decimal.NewFromInt(100)
	// maxAmount is the largest value a numeric(12,2) column holds.
	maxAmount = decimal.RequireFromString("9999999999.99")
)

// Money is a non-negative currency amount with two decimal places.
// Arithmetic rounds half away from zero after every operation.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns an amount of 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney rounds d to two places and rejects amounts outside [0, MaxMoney].
func NewMoney(d decimal.Decimal) (Money, error) {
	d = d.Round(MoneyPlaces)
	if d.IsNegative() || d.GreaterThan(maxAmount) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", d.String(), "0", maxAmount.String())
	}
	return Money{amount: d}, nil
}

// MaxMoney is the largest amount that can be stored.
func MaxMoney() Money {
	return Money{amount: maxAmount}
}

// MoneyFromString parses a decimal string such as "12.50" into Money.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two decimals, e.g. "1134.00".
func (m Money) String() string {
	return m.amount.StringFixed(MoneyPlaces)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares amounts by value.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(MoneyPlaces)}
}

// Sub returns m - other. The result must not go below zero.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// Times multiplies by a positive quantity, as for a line item.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyPlaces)}
}

// Scale multiplies by a non-negative factor such as 1 + tax/100.
func (m Money) Scale(factor decimal.Decimal) (Money, error) {
	return NewMoney(m.amount.Mul(factor))
}

// MarshalJSON encodes the amount as a JSON string with two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

// UnmarshalJSON accepts a quoted decimal string and applies the NewMoney checks.
func (m *Money) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	parsed, err := MoneyFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Percent is a rate in the closed range [0, 100], e.g. 8.00 for eight percent.
type Percent struct {
	value decimal.Decimal
}

// NewPercent creates a rate in the range [0, 100].
func NewPercent(d decimal.Decimal) (Percent, error) {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return Percent{}, errs.NewValueIsOutOfRangeError("percent", d.String(), "0", "100")
	}
	return Percent{value: d.Round(MoneyPlaces)}, nil
}

// PercentFromString parses a decimal string into a Percent.
func PercentFromString(s string) (Percent, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Percent{}, errs.NewValueIsInvalidErrorWithCause("percent", err)
	}
	return NewPercent(d)
}

func (p Percent) Decimal() decimal.Decimal {
	return p.value
}

// Fraction returns the rate divided by 100.
func (p Percent) Fraction() decimal.Decimal {
	return p.value.Div(hundred)
}

func (p Percent) String() string {
	return p.value.StringFixed(MoneyPlaces)
}

// IsEqual compares rates by value.
func (p Percent) IsEqual(other Percent) bool {
	return p.value.Equal(other.value)
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", p.String())), nil
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("percent", err)
	}
	parsed, err := PercentFromString(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

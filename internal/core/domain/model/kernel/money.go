package kernel

import (
	"fmt"

	"deliverypartner/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative monetary amount in the backend's currency.
// It wraps github.com/shopspring/decimal so sums of charges stay exact.
//
// The zero value is a valid amount of 0. Absent charges in backend payloads
// are represented by the zero value.
//
// Example:
//
//	charge, err := kernel.MoneyFromFloat(49.5)
//	if err != nil {
//	    return err
//	}
//	total := kernel.ZeroMoney().Add(charge)
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns an amount of 0.
func ZeroMoney() Money {
	return Money{}
}

// NewMoney creates Money from a decimal amount. Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount}, nil
}

// MoneyFromFloat creates Money from a JSON number.
func MoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// MoneyFromString parses a decimal string such as "49.50".
func MoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a number", amount))
	}
	return NewMoney(d)
}

// MustMoney is MoneyFromString for constants and tests. It panics on invalid input.
func MustMoney(amount string) Money {
	m, err := MoneyFromString(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times returns m multiplied by a quantity. Negative quantities yield zero.
func (m Money) Times(quantity int) Money {
	if quantity <= 0 {
		return Money{}
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a JSON-friendly float.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// IsZero reports whether the amount is 0.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares amounts numerically, so 70 equals 70.00.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders whole amounts without decimals ("70") and fractional
// amounts with two ("49.50").
func (m Money) String() string {
	if m.amount.IsInteger() {
		return m.amount.StringFixed(0)
	}
	return m.amount.StringFixed(2)
}

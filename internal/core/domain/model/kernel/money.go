package kernel

import (
	"errors"
	"fmt"

	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned by Validate on a zero-value Money.
var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or ParseMoney")

// moneyScale is the number of fractional digits kept for prices and totals.
const moneyScale = 2

// MaxMoney is the largest amount the numeric(14,2) columns hold.
var MaxMoney = decimal.RequireFromString("999999999999.99")

// Money is a non-negative amount with two fractional digits. Currency is not modelled:
// every purchase order is denominated in the organisation's single currency.
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney validates amount and rounds it half-away-from-zero to two decimals.
// paramName is used in the returned validation error.
func NewMoney(paramName string, amount decimal.Decimal) (Money, error) {
	rounded := amount.Round(moneyScale)
	if amount.IsNegative() || rounded.GreaterThan(MaxMoney) {
		return Money{}, errs.NewValueIsOutOfRangeError(paramName, amount.String(), 0, MaxMoney.String())
	}
	return Money{
		amount: rounded,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// ParseMoney parses a decimal literal such as "12.50".
func ParseMoney(paramName, s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%q is not a number", s))
	}
	return NewMoney(paramName, amount)
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Mul multiplies the amount by an integer quantity.
func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), guard: m.guard}
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: m.guard}
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

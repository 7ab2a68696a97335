// Package money provides currency-safe amounts for display and arithmetic,
// wrapping go-money for ISO-4217 handling and shopspring/decimal for
// precision.
package money

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currencies the ledger deals with most. Any ISO-4217 code works; these
// exist so call sites don't scatter string literals.
const (
	INR = "INR"
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
)

// Money is a monetary value in minor units with its currency.
type Money struct {
	m *money.Money
}

// New creates Money from minor units (paise, cents) and a currency code.
func New(minorUnits int64, currencyCode string) *Money {
	return &Money{m: money.New(minorUnits, currencyCode)}
}

// NewFromDecimal creates Money from a decimal major-unit amount, rounding to
// the currency's fraction.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) *Money {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		cur = money.GetCurrency(INR)
	}
	multiplier := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(multiplier).Round(0).IntPart()
	return New(minor, currencyCode)
}

// NewFromString parses a display amount like "1,234.50" or "₹500", stripping
// currency symbols and thousands separators.
func NewFromString(amount string, currencyCode string) (*Money, error) {
	s := strings.TrimSpace(amount)
	for _, sym := range []string{"₹", "$", "€", "£", "Rs.", "Rs"} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return NewFromDecimal(d, currencyCode), nil
}

// Amount returns the value in minor units.
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 code.
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Currency().Code
}

// IsZero reports whether the amount is zero.
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m *Money) IsNegative() bool {
	return m != nil && m.m != nil && m.m.IsNegative()
}

// Abs returns the absolute value.
func (m *Money) Abs() *Money {
	if m == nil || m.m == nil {
		return New(0, INR)
	}
	return &Money{m: m.m.Absolute()}
}

// Add sums two values of the same currency.
func (m *Money) Add(other *Money) (*Money, error) {
	if m == nil || m.m == nil {
		return other, nil
	}
	if other == nil || other.m == nil {
		return m, nil
	}
	sum, err := m.m.Add(other.m)
	if err != nil {
		return nil, err
	}
	return &Money{m: sum}, nil
}

// ToDecimal converts to a major-unit decimal for precise arithmetic.
func (m *Money) ToDecimal() decimal.Decimal {
	if m == nil || m.m == nil {
		return decimal.Zero
	}
	divisor := decimal.New(1, int32(m.m.Currency().Fraction))
	return decimal.NewFromInt(m.m.Amount()).Div(divisor)
}

// Convert re-expresses the amount in another currency at the given rate
// (units of target per unit of source). Pure function of its inputs; the
// rate discipline (entry-time vs display-time) is the caller's contract.
func (m *Money) Convert(targetCurrency string, rate decimal.Decimal) *Money {
	if m == nil || m.m == nil {
		return New(0, targetCurrency)
	}
	return NewFromDecimal(m.ToDecimal().Mul(rate), targetCurrency)
}

// Display formats with the currency's symbol, e.g. "₹1,234.50".
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Display()
}

// String returns the plain decimal form, e.g. "1234.50".
func (m *Money) String() string {
	if m == nil || m.m == nil {
		return "0"
	}
	return m.ToDecimal().StringFixed(int32(m.m.Currency().Fraction))
}

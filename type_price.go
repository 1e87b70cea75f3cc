package stockroom

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Price is a non-negative monetary amount in the inventory's unit currency.
//
// It is an exact decimal, so that totals like 3 x 0.10 do not drift.
type Price struct {
	value decimal.Decimal
}

// P is a convenient factory for Price.
func P[T float64 | int | int64 | decimal.Decimal](value T) Price {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Price{value: v}
	case float64:
		return Price{value: decimal.NewFromFloat(v)}
	case int:
		return Price{value: decimal.NewFromInt(int64(v))}
	case int64:
		return Price{value: decimal.NewFromInt(v)}
	default:
		panic("unsupported type")
	}
}

// ParsePrice parses a non-negative decimal number like "2.50". A leading
// currency symbol is not accepted.
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if d.IsNegative() {
		return Price{}, fmt.Errorf("invalid price %q: must not be negative", s)
	}
	return Price{value: d}, nil
}

func (p Price) Add(q Price) Price        { return Price{value: p.value.Add(q.value)} }
func (p Price) Mul(quantity int) Price   { return Price{value: p.value.Mul(decimal.NewFromInt(int64(quantity)))} }
func (p Price) Equal(q Price) bool       { return p.value.Equal(q.value) }
func (p Price) IsZero() bool             { return p.value.IsZero() }
func (p Price) IsNegative() bool         { return p.value.IsNegative() }
func (p Price) Decimal() decimal.Decimal { return p.value }
func (p Price) String() string           { return p.value.String() }

// Deprecated: AsFloat is only meant for display code that cannot deal with decimals.
func (p Price) AsFloat() float64 { return p.value.InexactFloat64() }

// Fixed returns the price with exactly two decimals, e.g. "2.50".
func (p Price) Fixed() string { return p.value.StringFixed(2) }

// Format returns the price formatted in the given ISO currency, e.g. "$1,234.50" for USD.
//
// Unknown currencies fall back to Fixed followed by the code.
func (p Price) Format(currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		if currency == "" {
			return p.Fixed()
		}
		return p.Fixed() + " " + currency
	}
	minor := p.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// MarshalJSON writes the price as a plain JSON number.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.value.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted number.
func (p *Price) UnmarshalJSON(b []byte) error {
	return p.value.UnmarshalJSON(b)
}

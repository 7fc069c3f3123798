package inky

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Price is an exact, quote currency amount. Prices can be far below a cent
// (0.0000008 for some meme coins) so they are never stored as minor units.
type Price struct {
	value decimal.Decimal
}

// P returns a Price from any supported numeric value.
func P[T float64 | int | int64 | decimal.Decimal](v T) Price {
	switch x := any(v).(type) {
	case float64:
		return Price{value: decimal.NewFromFloat(x)}
	case int:
		return Price{value: decimal.NewFromInt(int64(x))}
	case int64:
		return Price{value: decimal.NewFromInt(x)}
	case decimal.Decimal:
		return Price{value: x}
	}
	panic("unreachable")
}

// ParsePrice parses a decimal string such as "0.00014".
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return Price{value: d}, nil
}

func (p Price) Add(q Price) Price          { return Price{value: p.value.Add(q.value)} }
func (p Price) Equal(q Price) bool         { return p.value.Equal(q.value) }
func (p Price) IsZero() bool               { return p.value.IsZero() }
func (p Price) IsPositive() bool           { return p.value.IsPositive() }
func (p Price) LessThan(q Price) bool      { return p.value.LessThan(q.value) }
func (p Price) Decimal() decimal.Decimal   { return p.value }
func (p Price) InexactFloat64() float64    { return p.value.InexactFloat64() }
func (p Price) StringFixed(n int32) string { return p.value.StringFixed(n) }

var (
	oneCent = decimal.New(1, -2)
	oneUnit = decimal.New(1, 0)
)

// String formats the price in dollars with a precision that depends on its
// magnitude: 8 decimals below a cent, 4 below a dollar and cents otherwise.
func (p Price) String() string {
	usd := money.GetCurrency(money.USD)
	fraction := usd.Fraction
	switch {
	case p.value.LessThan(oneCent):
		fraction = 8
	case p.value.LessThan(oneUnit):
		fraction = 4
	}
	f := money.NewFormatter(fraction, usd.Decimal, usd.Thousand, usd.Grapheme, usd.Template)
	return f.Format(p.value.Shift(int32(fraction)).Round(0).IntPart())
}

// MarshalJSON writes the price as a JSON number with all its digits.
func (p Price) MarshalJSON() ([]byte, error) { return []byte(p.value.String()), nil }

// UnmarshalJSON accepts both JSON numbers and strings.
func (p *Price) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("invalid price %s: %w", data, err)
	}
	p.value = d
	return nil
}

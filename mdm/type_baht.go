package mdm

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Baht is an amount in Thai baht.
type Baht struct{ value decimal.Decimal }

// THB builds an amount in baht.
func THB[T float64 | int | int64 | decimal.Decimal](v T) Baht {
	switch v := any(v).(type) {
	case float64:
		return Baht{decimal.NewFromFloat(v)}
	case int:
		return Baht{decimal.NewFromInt(int64(v))}
	case int64:
		return Baht{decimal.NewFromInt(v)}
	case decimal.Decimal:
		return Baht{v}
	}
	return Baht{}
}

func (b Baht) Add(c Baht) Baht            { return Baht{b.value.Add(c.value)} }
func (b Baht) Mul(n int) Baht             { return Baht{b.value.Mul(decimal.NewFromInt(int64(n)))} }
func (b Baht) Div(n int) Baht             { return Baht{b.value.Div(decimal.NewFromInt(int64(n)))} }
func (b Baht) Equal(c Baht) bool          { return b.value.Equal(c.value) }
func (b Baht) IsZero() bool               { return b.value.IsZero() }
func (b Baht) Decimal() decimal.Decimal   { return b.value }
func (b Baht) InexactFloat64() float64    { return b.value.InexactFloat64() }
func (b Baht) StringFixed(n int32) string { return b.value.StringFixed(n) }

func thb() money.Currency { return *money.New(0, money.THB).Currency() }

// String formats the amount with satang, e.g. ฿25,750.00.
func (b Baht) String() string {
	cur := thb()
	return cur.Formatter().Format(b.value.Shift(int32(cur.Fraction)).Round(0).IntPart())
}

var (
	thousand = decimal.New(1, 3)
	million  = decimal.New(1, 6)
)

// Compact formats the amount as a headline figure: ฿2.5M, ฿9.2K or ฿950.
func (b Baht) Compact() string {
	g := thb().Grapheme
	switch abs := b.value.Abs(); {
	case abs.GreaterThanOrEqual(million):
		return g + b.value.Div(million).StringFixed(1) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return g + b.value.Div(thousand).StringFixed(1) + "K"
	}
	return g + b.value.StringFixed(0)
}

// MarshalJSON writes the amount as a number rounded to the satang.
func (b Baht) MarshalJSON() ([]byte, error) { return []byte(b.value.StringFixed(2)), nil }

// UnmarshalJSON reads a JSON number or string.
func (b *Baht) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	b.value = d
	return nil
}

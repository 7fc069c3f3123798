package inky

import (
	"fmt"
	"strings"
)

// Category is the closed set of asset kinds shown in a deck.
type Category string

const (
	Crypto Category = "crypto"
	Stock  Category = "stock"
	Meme   Category = "meme"
)

// Categories returns all categories in their display order.
func Categories() []Category { return []Category{Crypto, Stock, Meme} }

// ParseCategory parses a category label, case insensitive.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Crypto, Stock, Meme:
		return c, nil
	}
	return "", fmt.Errorf("invalid category %q: must be one of crypto, stock or meme", s)
}

func (c Category) String() string { return string(c) }

// Asset is a tradable instrument as presented on a card.
//
// Assets are values: once loaded in a Catalog they are never mutated.
type Asset struct {
	ID        int
	Name      string
	Symbol    string
	Category  Category
	Price     Price
	Change    Percent // daily change in percent
	MarketCap string  // display only, e.g. "831.2B"
	Volume    string  // display only
}

// Positive reports whether the asset went up.
// A zero change is not positive, like a falling asset.
func (a Asset) Positive() bool { return a.Change > 0 }

func (a Asset) String() string { return fmt.Sprintf("%s (%s)", a.Name, a.Symbol) }

// validate checks the invariants of a single asset.
func (a Asset) validate() error {
	if a.Symbol == "" {
		return fmt.Errorf("asset %d has no symbol", a.ID)
	}
	if _, err := ParseCategory(string(a.Category)); err != nil {
		return fmt.Errorf("asset %q: %w", a.Symbol, err)
	}
	if !a.Price.IsPositive() {
		return fmt.Errorf("asset %q: price must be positive, got %s", a.Symbol, a.Price.value)
	}
	return nil
}

package inky

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed catalog.jsonl
var defaultCatalog []byte

// Catalog is the ordered, read-only list of assets a deck is drawn from.
type Catalog struct {
	assets   []Asset
	bySymbol map[string]int
}

// NewCatalog builds a catalog and checks that ids and symbols are unique.
func NewCatalog(assets ...Asset) (*Catalog, error) {
	c := &Catalog{
		assets:   make([]Asset, 0, len(assets)),
		bySymbol: make(map[string]int, len(assets)),
	}
	ids := make(map[int]bool, len(assets))
	for _, a := range assets {
		if err := a.validate(); err != nil {
			return nil, err
		}
		if ids[a.ID] {
			return nil, fmt.Errorf("duplicate asset id %d", a.ID)
		}
		key := strings.ToUpper(a.Symbol)
		if _, exists := c.bySymbol[key]; exists {
			return nil, fmt.Errorf("duplicate asset symbol %q", a.Symbol)
		}
		ids[a.ID] = true
		c.bySymbol[key] = len(c.assets)
		c.assets = append(c.assets, a)
	}
	return c, nil
}

// DefaultCatalog returns the catalog shipped with the binary.
func DefaultCatalog() *Catalog {
	c, err := DecodeCatalog(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalog reads a JSONL catalog file, or returns the default catalog if
// filename is empty.
func LoadCatalog(filename string) (*Catalog, error) {
	if filename == "" {
		return DefaultCatalog(), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode catalog %q: %w", filename, err)
	}
	return c, nil
}

// Len returns the number of assets.
func (c *Catalog) Len() int { return len(c.assets) }

// Assets returns a copy of the assets in catalog order.
func (c *Catalog) Assets() []Asset {
	return append([]Asset(nil), c.assets...)
}

// Lookup finds an asset by its ticker symbol, case insensitive.
func (c *Catalog) Lookup(symbol string) (Asset, bool) {
	i, ok := c.bySymbol[strings.ToUpper(symbol)]
	if !ok {
		return Asset{}, false
	}
	return c.assets[i], true
}

package inky

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// The catalog is persisted as JSONL: one asset per line, fields in a fixed
// order so that the file stays diff friendly.

// jasset is the object read from a catalog line.
type jasset struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Symbol    string   `json:"symbol"`
	Category  Category `json:"category"`
	Price     Price    `json:"price"`
	Change    Percent  `json:"change"`
	MarketCap string   `json:"marketCap"`
	Volume    string   `json:"volume"`
}

// DecodeCatalog reads a JSONL catalog. Blank lines are ignored.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var assets []Asset
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var a Asset
		if err := json.Unmarshal(line, &a); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", n, string(line), err)
		}
		assets = append(assets, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewCatalog(assets...)
}

// EncodeCatalog writes the catalog as JSONL.
func EncodeCatalog(w io.Writer, c *Catalog) error {
	for _, a := range c.assets {
		b, err := a.MarshalJSON()
		if err != nil {
			return fmt.Errorf("cannot encode asset %q: %w", a.Symbol, err)
		}
		b = append(b, '\n')
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes the asset as a JSON object with a stable field order.
func (a Asset) MarshalJSON() ([]byte, error) {
	var o orderedObject
	o.Set("id", a.ID).
		Set("name", a.Name).
		Set("symbol", a.Symbol).
		Set("category", a.Category).
		Set("price", a.Price).
		Set("change", a.Change).
		SetString("marketCap", a.MarketCap).
		SetString("volume", a.Volume)
	return o.MarshalJSON()
}

// UnmarshalJSON decodes an asset and checks its category.
func (a *Asset) UnmarshalJSON(data []byte) error {
	var ja jasset
	if err := json.Unmarshal(data, &ja); err != nil {
		return err
	}
	cat, err := ParseCategory(string(ja.Category))
	if err != nil {
		return err
	}
	*a = Asset{
		ID:        ja.ID,
		Name:      ja.Name,
		Symbol:    ja.Symbol,
		Category:  cat,
		Price:     ja.Price,
		Change:    ja.Change,
		MarketCap: ja.MarketCap,
		Volume:    ja.Volume,
	}
	return nil
}

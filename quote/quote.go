// Package quote builds asset catalogs out of third-party JSON quote documents.
//
// A Mapping tells where the list of quotes is in the document and where each
// asset field is in a quote, as jsonpath expressions.
package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/inky"
	"github.com/shopspring/decimal"
)

// Mapping locates assets in a JSON document.
//
// List is evaluated on the document, it must select an array or an object of
// quotes. The other paths are evaluated on each quote. An empty ID path
// numbers the assets from 1, an empty Category path uses Category.
type Mapping struct {
	List      string
	ID        string
	Name      string
	Symbol    string
	Category  string
	Price     string
	Change    string
	MarketCap string
	Volume    string

	DefaultCategory inky.Category
}

// DefaultMapping reads a document shaped like the catalog itself, under a
// top level "data" array.
var DefaultMapping = Mapping{
	List:            "$.data",
	ID:              "$.id",
	Name:            "$.name",
	Symbol:          "$.symbol",
	Category:        "$.category",
	Price:           "$.price",
	Change:          "$.change",
	MarketCap:       "$.marketCap",
	Volume:          "$.volume",
	DefaultCategory: inky.Crypto,
}

// Decode parses a JSON document. Numbers are kept as json.Number so that
// prices stay exact.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadFile decodes the JSON document in filename.
func ReadFile(filename string) (any, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", filename, err)
	}
	return doc, nil
}

// Fetch performs an HTTP GET request and decodes the JSON response.
func Fetch(ctx context.Context, client *http.Client, addr string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, err
	}
	return Decode(&buf)
}

// Catalog extracts the assets of doc.
func (m Mapping) Catalog(doc any) (*inky.Catalog, error) {
	quotes, err := m.quotes(doc)
	if err != nil {
		return nil, err
	}
	assets := make([]inky.Asset, 0, len(quotes))
	for i, q := range quotes {
		a, err := m.asset(i, q)
		if err != nil {
			return nil, fmt.Errorf("quote #%d: %w", i, err)
		}
		assets = append(assets, a)
	}
	return inky.NewCatalog(assets...)
}

// quotes returns the items selected by the List path. Objects are read in
// key order.
func (m Mapping) quotes(doc any) ([]any, error) {
	path := m.List
	if path == "" {
		path = "$"
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	switch x := v.(type) {
	case []any:
		return x, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		list := make([]any, 0, len(keys))
		for _, k := range keys {
			list = append(list, x[k])
		}
		return list, nil
	}
	return nil, fmt.Errorf("%q is not a list of quotes: %T", path, v)
}

func (m Mapping) asset(i int, q any) (inky.Asset, error) {
	a := inky.Asset{ID: i + 1, Category: m.DefaultCategory}

	if m.ID != "" {
		s, err := get(m.ID, q)
		if err != nil {
			return a, err
		}
		id, err := strconv.Atoi(s)
		if err != nil {
			return a, fmt.Errorf("invalid id %q: %w", s, err)
		}
		a.ID = id
	}
	var err error
	if a.Symbol, err = get(m.Symbol, q); err != nil {
		return a, err
	}
	if a.Name, err = optional(m.Name, q); err != nil {
		return a, err
	}
	if a.Name == "" {
		a.Name = a.Symbol
	}
	cat, err := optional(m.Category, q)
	if err != nil {
		return a, err
	}
	if cat != "" {
		if a.Category, err = inky.ParseCategory(cat); err != nil {
			return a, err
		}
	}

	price, err := get(m.Price, q)
	if err != nil {
		return a, err
	}
	if a.Price, err = inky.ParsePrice(strings.ReplaceAll(price, ",", "")); err != nil {
		return a, err
	}

	change, err := optional(m.Change, q)
	if err != nil {
		return a, err
	}
	if change != "" {
		change = strings.TrimSuffix(strings.TrimPrefix(change, "+"), "%")
		c, err := strconv.ParseFloat(change, 64)
		if err != nil {
			return a, fmt.Errorf("invalid change %q: %w", change, err)
		}
		a.Change = inky.Percent(c)
	}

	if a.MarketCap, err = optionalAmount(m.MarketCap, q); err != nil {
		return a, err
	}
	if a.Volume, err = optionalAmount(m.Volume, q); err != nil {
		return a, err
	}
	return a, nil
}

// get evaluates a mandatory path and returns its value as a string.
func get(path string, q any) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no path for a mandatory field")
	}
	v, err := jsonpath.Get(path, q)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// a path with a wildcard returns a list, keep the first answer
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return "", fmt.Errorf("%q has no value", path)
		}
		v = list[0]
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), nil
	case json.Number:
		return x.String(), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(x), nil
	}
	return "", fmt.Errorf("%q is neither a string or a number: %v", path, v)
}

// optional is like get but a missing value is empty.
func optional(path string, q any) (string, error) {
	if path == "" {
		return "", nil
	}
	if _, err := jsonpath.Get(path, q); err != nil {
		return "", nil
	}
	return get(path, q)
}

// optionalAmount reads a display amount. Numbers are shortened like "831.2B",
// strings are kept as they are.
func optionalAmount(path string, q any) (string, error) {
	s, err := optional(path, q)
	if err != nil || s == "" {
		return s, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s, nil
	}
	return Compact(d.InexactFloat64()), nil
}

// Compact shortens a large amount with a T, B, M or K suffix and one decimal.
func Compact(v float64) string {
	units := []struct {
		size   float64
		suffix string
	}{{1e12, "T"}, {1e9, "B"}, {1e6, "M"}, {1e3, "K"}}
	for _, u := range units {
		if math.Abs(v) >= u.size {
			return strconv.FormatFloat(v/u.size, 'f', 1, 64) + u.suffix
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

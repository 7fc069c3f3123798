package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/inky"
	"github.com/etnz/inky/chart"
	md "github.com/nao1215/markdown"
)

// CatalogMarkdown lists assets as a markdown table.
func CatalogMarkdown(assets []inky.Asset) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Asset Catalog")
	doc.PlainText(fmt.Sprintf("%d assets.", len(assets)))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Name", "Category", "Price", "24h", "Market Cap", "Volume"},
	}
	for _, a := range assets {
		table.Rows = append(table.Rows, []string{
			md.Bold(a.Symbol),
			a.Name,
			a.Category.String(),
			a.Price.String(),
			a.Change.SignedString(),
			a.MarketCap,
			a.Volume,
		})
	}
	doc.Table(table)
	return doc.String()
}

// SegmentsMarkdown lists the segments of a donut as a legend table.
func SegmentsMarkdown(d *chart.Donut) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(fmt.Sprintf("%d Assets", d.Total))
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Category", "Count", "Share", "Arc", "Offset"},
	}
	for _, s := range d.Segments {
		table.Rows = append(table.Rows, []string{
			s.Label,
			fmt.Sprint(s.Count),
			fmt.Sprintf("%d%%", s.Percentage),
			fmt.Sprintf("%.2f", s.ArcLength),
			fmt.Sprintf("%.2f", s.ArcOffset),
		})
	}
	doc.Table(table)
	return doc.String()
}

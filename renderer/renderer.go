package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/inky"
	"github.com/etnz/inky/chart"
)

//go:embed *.md *.svg
var templates embed.FS

// Card is a swipe card: an asset, its position in the deck and its sparkline.
type Card struct {
	Asset  inky.Asset `json:"asset"`
	N      int        `json:"n"`
	Total  int        `json:"total"`
	Series []float64  `json:"series"`
}

// NewCard returns the card of a with its generated series.
func NewCard(a inky.Asset, n, total int) *Card {
	return &Card{Asset: a, N: n, Total: total, Series: a.Series()}
}

// Sparkline is the price chart of a card.
type Sparkline struct {
	Series   []float64 `json:"series"`
	Positive bool      `json:"positive"`
}

// Color of the line: purple when the asset is up, red otherwise.
func (s *Sparkline) Color() string {
	if s.Positive {
		return "#8B5CF6"
	}
	return "#EF4444"
}

// Last returns the point where the chart draws its dot, nil for an empty series.
func (s *Sparkline) Last() *chart.Point {
	p, ok := chart.Last(s.Series)
	if !ok {
		return nil
	}
	return &p
}

// categoryColors are the donut colors of each category.
var categoryColors = map[string]string{
	string(inky.Crypto): "#EAB308",
	string(inky.Stock):  "#3B82F6",
	string(inky.Meme):   "#10B981",
}

// Color returns the chart color of a category label.
func Color(label string) string {
	if c, ok := categoryColors[label]; ok {
		return c
	}
	return "#6B7280"
}

var funcs = template.FuncMap{
	"num":    chart.Format,
	"points": chart.Points,
	"blocks": Blocks,
	"color":  Color,
	"arrow": func(a inky.Asset) string {
		if a.Positive() {
			return "▲"
		}
		return "▼"
	},
}

// RenderCard renders a swipe card to markdown.
func RenderCard(c *Card) string {
	return renderTemplate("card", "card.md", nil, c)
}

// RenderSummary renders the portfolio summary to markdown.
func RenderSummary(s *inky.Summary) string {
	partials := map[string]string{
		"summary_breakdown": "summary_breakdown.md",
		"summary_picks":     "summary_picks.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

// RenderSparkline renders the sparkline of a card to SVG.
func RenderSparkline(s *Sparkline) string {
	return renderTemplate("sparkline", "sparkline.svg", nil, s)
}

// RenderDonut renders an allocated donut to SVG.
func RenderDonut(d *chart.Donut) string {
	return renderTemplate("donut", "donut.svg", nil, d)
}

// RenderNoData renders the placeholder drawn instead of an empty donut.
func RenderNoData(g chart.Geometry) string {
	return renderTemplate("nodata", "nodata.svg", nil, g)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

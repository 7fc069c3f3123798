package inky

import "github.com/etnz/inky/chart"

// Series returns the sparkline of the asset, seeded by its id and drifting
// in the direction of its change.
func (a Asset) Series() []float64 {
	return chart.Generate(a.ID, chart.SeriesLength, chart.TrendOf(float64(a.Change)))
}

// DonutEntries lists the tally in category order as chart entries.
func (t Tally) DonutEntries() []chart.Entry {
	var entries []chart.Entry
	for _, e := range t.Entries() {
		entries = append(entries, chart.Entry{Label: e.Category.String(), Count: e.Count})
	}
	return entries
}

// Donut allocates the summary breakdown on a ring of geometry g. ok is false
// when nothing was picked.
func (s Summary) Donut(g chart.Geometry) (chart.Donut, bool) {
	return chart.NewDonut(g, s.Tally.DonutEntries())
}

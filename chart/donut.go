package chart

import (
	"math"
)

// Geometry is the size of a donut chart, in pixels.
type Geometry struct {
	Size        float64
	StrokeWidth float64
}

// DefaultGeometry is the donut size when none is given.
var DefaultGeometry = Geometry{Size: 120, StrokeWidth: 12}

// SummaryGeometry is the donut size of the portfolio summary.
var SummaryGeometry = Geometry{Size: 140, StrokeWidth: 16}

// Radius of the ring, measured to the middle of the stroke.
func (g Geometry) Radius() float64 { return (g.Size - g.StrokeWidth) / 2 }

// Center of the ring on both axis.
func (g Geometry) Center() float64 { return g.Size / 2 }

// Circumference of the ring.
func (g Geometry) Circumference() float64 { return 2 * math.Pi * g.Radius() }

// Entry is a labelled count to be drawn as a share of the ring.
type Entry struct {
	Label string
	Count int
}

// Segment is the arc of one entry.
type Segment struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage int     `json:"percentage"` // rounded share, for the legend
	ArcLength  float64 `json:"arcLength"`
	ArcOffset  float64 `json:"arcOffset"` // negative start of the arc along the ring
}

// DashArray renders the SVG stroke-dasharray of the segment.
func (s Segment) DashArray(circumference float64) string {
	return Format(s.ArcLength) + " " + Format(circumference)
}

// Allocate splits a ring of the given circumference between entries, in
// input order, proportionally to their counts.
//
// ok is false when the total count is zero: there is nothing to draw and the
// caller shows a "no data" placeholder instead. Negative counts count as zero.
//
// Offsets accumulate the exact fractions, not the rounded percentages, so
// the last segment always ends on the full circumference.
func Allocate(entries []Entry, circumference float64) (segments []Segment, ok bool) {
	total := 0
	for _, e := range entries {
		total += max(e.Count, 0)
	}
	if total == 0 {
		return nil, false
	}

	segments = make([]Segment, 0, len(entries))
	cumulative := 0.0
	for _, e := range entries {
		count := max(e.Count, 0)
		fraction := float64(count) / float64(total)
		segments = append(segments, Segment{
			Label:      e.Label,
			Count:      count,
			Percentage: int(math.Round(100 * fraction)),
			ArcLength:  fraction * circumference,
			ArcOffset:  0 - float64(cumulative*circumference), // never -0
		})
		cumulative += fraction
	}
	return segments, true
}

// Donut is an allocated chart ready to be drawn.
type Donut struct {
	Geometry
	Total    int
	Segments []Segment
}

// NewDonut allocates entries on a ring of geometry g. ok is false when there
// is no data to draw.
func NewDonut(g Geometry, entries []Entry) (d Donut, ok bool) {
	segments, ok := Allocate(entries, g.Circumference())
	if !ok {
		return Donut{Geometry: g}, false
	}
	for _, s := range segments {
		d.Total += s.Count
	}
	d.Geometry = g
	d.Segments = segments
	return d, true
}

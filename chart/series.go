// Package chart computes the geometry of the small charts shown with assets:
// a deterministic sparkline series per asset and the arcs of the portfolio
// donut chart.
package chart

import (
	"math"
	"strconv"
	"strings"
)

// SeriesLength is the number of points of an asset sparkline.
const SeriesLength = 30

// Trend is the direction a series drifts to.
type Trend int

const (
	Down Trend = -1
	Up   Trend = 1
)

// TrendOf returns Up for a strictly positive change and Down otherwise.
func TrendOf(change float64) Trend {
	if change > 0 {
		return Up
	}
	return Down
}

// PseudoRandom returns a value in [0, 1) that only depends on seed and i.
// It is the fractional part of sin(seed*9999 + i*1234) * 10000, it is not
// random in any statistical sense. Values are bit identical to the browser
// ones, sin being the fdlibm one.
func PseudoRandom(seed, i int) float64 {
	// The float64 conversions forbid fused multiply-add.
	x := sin(float64(float64(seed)*9999)+float64(float64(i)*1234)) * 10000
	return x - math.Floor(x)
}

// Generate returns length values of the sparkline of seed, drifting in the
// trend direction:
//
//	value(i) = 10 + PseudoRandom(seed, i)*8*trend + i*0.2*trend
//
// The same arguments always yield the same values, bit for bit.
func Generate(seed, length int, trend Trend) []float64 {
	if length <= 0 {
		return nil
	}
	t := float64(trend)
	series := make([]float64, length)
	for i := range series {
		series[i] = 10 + float64(PseudoRandom(seed, i)*8*t) + float64(float64(i)*0.2*t)
	}
	return series
}

// Point is a position in the sparkline view box.
type Point struct {
	X, Y float64
}

// Sparkline view box: 140x60, x step of 4.67 and a vertical scale of 3.
const (
	ViewWidth  = 140
	ViewHeight = 60
	stepX      = 4.67
	scaleY     = 3
)

// Project maps the i-th value of a series into the view box.
func Project(i int, v float64) Point {
	return Point{X: float64(i) * stepX, Y: ViewHeight - float64(v*scaleY)}
}

// Points renders a series as a SVG polyline points attribute: "x,y x,y ...".
func Points(series []float64) string {
	var b strings.Builder
	for i, v := range series {
		if i > 0 {
			b.WriteByte(' ')
		}
		p := Project(i, v)
		b.WriteString(Format(p.X))
		b.WriteByte(',')
		b.WriteString(Format(p.Y))
	}
	return b.String()
}

// Last returns the projection of the last value, where the chart draws its
// pulsing dot. ok is false for an empty series.
func Last(series []float64) (p Point, ok bool) {
	if len(series) == 0 {
		return Point{}, false
	}
	n := len(series) - 1
	return Project(n, series[n]), true
}

// Format prints the shortest decimal representation of f, without exponent.
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

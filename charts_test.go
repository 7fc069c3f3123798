package inky

import (
	"math"
	"testing"

	"github.com/etnz/inky/chart"
)

func TestAsset_Series(t *testing.T) {
	got := BTC.Series()
	want := chart.Generate(1, chart.SeriesLength, chart.Up)
	if len(got) != chart.SeriesLength {
		t.Fatalf("len(Series()) = %d, want %d", len(got), chart.SeriesLength)
	}
	for i := range want {
		if math.Float64bits(got[i]) != math.Float64bits(want[i]) {
			t.Errorf("Series()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	// AAPL is down, its series drifts down.
	if s := AAPL.Series(); s[len(s)-1] > 10 {
		t.Errorf("AAPL last value = %v, want below 10", s[len(s)-1])
	}
}

func TestSummary_Donut(t *testing.T) {
	s := Summarize([]Asset{DOGE, BTC, ETH, AAPL})
	d, ok := s.Donut(chart.SummaryGeometry)
	if !ok {
		t.Fatal("Donut() returned no data")
	}
	labels := []string{"crypto", "stock", "meme"}
	if len(d.Segments) != len(labels) {
		t.Fatalf("got %d segments, want %d", len(d.Segments), len(labels))
	}
	for i, l := range labels {
		if d.Segments[i].Label != l {
			t.Errorf("segment %d = %q, want %q", i, d.Segments[i].Label, l)
		}
	}
	if d.Segments[0].Percentage != 50 {
		t.Errorf("crypto percentage = %d, want 50", d.Segments[0].Percentage)
	}

	if _, ok := Summarize(nil).Donut(chart.SummaryGeometry); ok {
		t.Error("Donut() of an empty summary returned ok")
	}
}

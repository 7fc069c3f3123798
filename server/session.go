package server

import (
	"fmt"
	"net/http"

	"github.com/etnz/inky"
	"github.com/etnz/inky/chart"
	"github.com/etnz/inky/renderer"
	"github.com/gorilla/mux"
)

// sessionView is the session as returned by the API: the snapshot plus the
// card stack and the position label.
type sessionView struct {
	inky.Snapshot
	Stack    []inky.Asset `json:"stack"`
	Position string       `json:"position,omitempty"`
}

func (s *Server) sessionView() sessionView {
	v := sessionView{Snapshot: s.session.Snapshot(), Stack: s.session.Stack(inky.StackSize)}
	if v.State == inky.Active {
		n, total := s.session.Position()
		v.Position = fmt.Sprintf("%d of %d", n, total)
	}
	return v
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) swipe(w http.ResponseWriter, r *http.Request) {
	d, err := inky.ParseDirection(mux.Vars(r)["direction"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.session.Swipe(d)
	writeJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.session.Reset()
	writeJSON(w, http.StatusOK, s.sessionView())
}

// summary returns the summary as JSON, or as markdown with ?format=markdown.
func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	sum := s.session.Summary()
	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(renderer.RenderSummary(&sum)))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) donut(w http.ResponseWriter, r *http.Request) {
	sum := s.session.Summary()
	d, ok := sum.Donut(chart.SummaryGeometry)
	if !ok {
		writeSVG(w, renderer.RenderNoData(chart.SummaryGeometry))
		return
	}
	writeSVG(w, renderer.RenderDonut(&d))
}

func (s *Server) assets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Assets())
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (inky.Asset, bool) {
	symbol := mux.Vars(r)["symbol"]
	a, ok := s.catalog.Lookup(symbol)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown asset %q", symbol))
	}
	return a, ok
}

// seriesView is the sparkline data of an asset.
type seriesView struct {
	Symbol   string    `json:"symbol"`
	Series   []float64 `json:"series"`
	Points   string    `json:"points"`
	Positive bool      `json:"positive"`
}

func (s *Server) series(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	series := a.Series()
	writeJSON(w, http.StatusOK, seriesView{
		Symbol:   a.Symbol,
		Series:   series,
		Points:   chart.Points(series),
		Positive: a.Positive(),
	})
}

func (s *Server) sparkline(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeSVG(w, renderer.RenderSparkline(&renderer.Sparkline{Series: a.Series(), Positive: a.Positive()}))
}

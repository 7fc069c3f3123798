package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/etnz/inky"
	"github.com/etnz/inky/mdm"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateExecutor blocks every batch until release is closed.
type gateExecutor struct {
	release chan struct{}
	once    sync.Once
}

func (g *gateExecutor) Execute(ctx context.Context, _ mdm.Device, _ []mdm.Operation) error {
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gateExecutor) open() { g.once.Do(func() { close(g.release) }) }

type fixture struct {
	srv  *httptest.Server
	exec *gateExecutor
}

func newFixture(t *testing.T, symbols ...string) *fixture {
	t.Helper()
	log, _ := test.NewNullLogger()
	catalog := inky.DefaultCatalog()
	var cards []inky.Asset
	for _, s := range symbols {
		a, ok := catalog.Lookup(s)
		require.True(t, ok, s)
		cards = append(cards, a)
	}
	exec := &gateExecutor{release: make(chan struct{})}
	app := mdm.NewAppState(mdm.DefaultDataset(), exec, log)
	s := New(catalog, inky.Start(inky.DeckOf(cards...)), app, log)
	srv := httptest.NewServer(s)
	t.Cleanup(func() {
		exec.open()
		s.Close()
		srv.Close()
	})
	return &fixture{srv: srv, exec: exec}
}

func (f *fixture) do(t *testing.T, method, path, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func (f *fixture) getJSON(t *testing.T, path string, v any) int {
	t.Helper()
	code, body := f.do(t, http.MethodGet, path, "")
	require.NoError(t, json.Unmarshal([]byte(body), v), body)
	return code
}

func TestHealth(t *testing.T) {
	f := newFixture(t, "BTC")
	code, body := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

type sessionJSON struct {
	State    string                    `json:"state"`
	Index    int                       `json:"index"`
	Total    int                       `json:"total"`
	Current  *struct{ Symbol string }  `json:"current"`
	Accepted []json.RawMessage         `json:"accepted"`
	Stack    []struct{ Symbol string } `json:"stack"`
	Position string                    `json:"position"`
}

func TestSessionFlow(t *testing.T) {
	f := newFixture(t, "BTC", "ETH", "AAPL")

	var s sessionJSON
	require.Equal(t, http.StatusOK, f.getJSON(t, "/session", &s))
	assert.Equal(t, "active", s.State)
	assert.Equal(t, "1 of 3", s.Position)
	require.NotNil(t, s.Current)
	assert.Equal(t, "BTC", s.Current.Symbol)
	assert.Len(t, s.Stack, 3)

	for _, dir := range []string{"right", "l", "buy"} {
		code, body := f.do(t, http.MethodPost, "/session/swipe/"+dir, "")
		require.Equal(t, http.StatusOK, code, body)
		require.NoError(t, json.Unmarshal([]byte(body), &s))
	}
	assert.Equal(t, "complete", s.State)
	assert.Equal(t, 3, s.Index)
	assert.Nil(t, s.Current)
	assert.Len(t, s.Accepted, 2)
	assert.Empty(t, s.Position)

	// swiping a complete session changes nothing
	code, body := f.do(t, http.MethodPost, "/session/swipe/right", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal([]byte(body), &s))
	assert.Equal(t, 3, s.Index)

	code, body = f.do(t, http.MethodGet, "/session/summary", "")
	require.Equal(t, http.StatusOK, code)
	var sum struct {
		AverageChange float64        `json:"averageChange"`
		Tally         map[string]int `json:"tally"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &sum))
	assert.Equal(t, map[string]int{"crypto": 1, "stock": 1}, sum.Tally)
	assert.Contains(t, body, `"totalValue":42685.2`)

	code, body = f.do(t, http.MethodGet, "/session/summary?format=markdown", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "$42,685.20")

	code, body = f.do(t, http.MethodPost, "/session/reset", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal([]byte(body), &s))
	assert.Equal(t, "active", s.State)
	assert.Equal(t, 0, s.Index)
	assert.Empty(t, s.Accepted)
	assert.Equal(t, "BTC", s.Current.Symbol, "reset keeps the deck order")
}

func TestSwipeInvalidDirection(t *testing.T) {
	f := newFixture(t, "BTC")
	code, body := f.do(t, http.MethodPost, "/session/swipe/up", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, "invalid swipe direction")

	code, _ = f.do(t, http.MethodGet, "/session/swipe/right", "")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func TestDonut(t *testing.T) {
	f := newFixture(t, "BTC", "DOGE")
	code, body := f.do(t, http.MethodGet, "/session/donut.svg", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "No data")

	f.do(t, http.MethodPost, "/session/swipe/right", "")
	f.do(t, http.MethodPost, "/session/swipe/right", "")
	_, body = f.do(t, http.MethodGet, "/session/donut.svg", "")
	assert.NotContains(t, body, "No data")
	assert.Contains(t, body, "#EAB308")
	assert.Contains(t, body, "#10B981")
}

func TestAssets(t *testing.T) {
	f := newFixture(t, "BTC")
	var assets []struct{ Symbol string }
	require.Equal(t, http.StatusOK, f.getJSON(t, "/assets", &assets))
	assert.Len(t, assets, 20)

	var series struct {
		Symbol   string    `json:"symbol"`
		Series   []float64 `json:"series"`
		Points   string    `json:"points"`
		Positive bool      `json:"positive"`
	}
	require.Equal(t, http.StatusOK, f.getJSON(t, "/assets/aapl/series", &series))
	assert.Equal(t, "AAPL", series.Symbol)
	assert.Len(t, series.Series, 30)
	assert.False(t, series.Positive)
	assert.True(t, strings.HasPrefix(series.Points, "0,"))

	code, body := f.do(t, http.MethodGet, "/assets/BTC/chart.svg", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "#8B5CF6")

	code, _ = f.do(t, http.MethodGet, "/assets/XYZ/series", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = f.do(t, http.MethodGet, "/assets/XYZ/chart.svg", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDevices(t *testing.T) {
	f := newFixture(t, "BTC")
	testCases := []struct {
		query string
		code  int
		ids   []string
	}{
		{"", http.StatusOK, []string{"1", "2", "3", "4", "5"}},
		{"?tenant=2U%20Mobile", http.StatusOK, []string{"1", "3"}},
		{"?tenant=6", http.StatusOK, []string{"5"}},
		{"?status=online", http.StatusOK, []string{"1", "2", "4"}},
		{"?status=all&q=PRO", http.StatusOK, []string{"2"}},
		{"?tenant=General", http.StatusOK, []string{}},
		{"?status=broken", http.StatusBadRequest, nil},
		{"?tenant=Nowhere", http.StatusNotFound, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			code, body := f.do(t, http.MethodGet, "/devices"+tc.query, "")
			require.Equal(t, tc.code, code, body)
			if tc.ids == nil {
				assert.Contains(t, body, `"error"`)
				return
			}
			var devices []struct{ ID string }
			require.NoError(t, json.Unmarshal([]byte(body), &devices))
			ids := []string{}
			for _, d := range devices {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tc.ids, ids)
		})
	}
}

func TestStats(t *testing.T) {
	f := newFixture(t, "BTC")

	var overview struct {
		Total    int `json:"total"`
		Online   int `json:"online"`
		Financed int `json:"financed"`
	}
	require.Equal(t, http.StatusOK, f.getJSON(t, "/overview", &overview))
	assert.Equal(t, 5, overview.Total)
	assert.Equal(t, 3, overview.Online)

	_, body := f.do(t, http.MethodGet, "/overview?tenant=2U%20Mobile", "")
	assert.Contains(t, body, `"revenue":53250.00`)

	var financing struct {
		CollectionRate  float64 `json:"collectionRate"`
		ActiveContracts int     `json:"activeContracts"`
	}
	require.Equal(t, http.StatusOK, f.getJSON(t, "/financing", &financing))
	assert.Equal(t, 80.0, financing.CollectionRate)

	code, _ := f.do(t, http.MethodGet, "/financing?tenant=Nowhere", "")
	assert.Equal(t, http.StatusNotFound, code)

	var tenants []struct{ Name string }
	require.Equal(t, http.StatusOK, f.getJSON(t, "/tenants", &tenants))
	assert.Len(t, tenants, 8)

	var groups []struct {
		Category   string `json:"category"`
		Operations []struct{ ID string }
	}
	require.Equal(t, http.StatusOK, f.getJSON(t, "/operations", &groups))
	assert.Len(t, groups, 11)
	assert.Equal(t, "test", groups[0].Category)
}

func TestExecute(t *testing.T) {
	f := newFixture(t, "BTC")

	code, body := f.do(t, http.MethodPost, "/devices/1/operations", `{"operations": ["lock", "location"]}`)
	require.Equal(t, http.StatusAccepted, code, body)
	var resp struct {
		TaskID string `json:"taskId"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotEmpty(t, resp.TaskID)

	var view struct {
		Modal struct {
			Executing bool   `json:"executing"`
			TaskID    string `json:"taskId"`
		} `json:"modal"`
	}
	f.getJSON(t, "/view", &view)
	assert.True(t, view.Modal.Executing)
	assert.Equal(t, resp.TaskID, view.Modal.TaskID)

	// a second batch is refused while the first one runs
	code, _ = f.do(t, http.MethodPost, "/devices/2/operations", `{"operations": ["restart"]}`)
	assert.Equal(t, http.StatusConflict, code)

	var status struct {
		ID         string   `json:"id"`
		DeviceID   string   `json:"deviceId"`
		Operations []string `json:"operations"`
		Done       bool     `json:"done"`
	}
	require.Equal(t, http.StatusOK, f.getJSON(t, "/tasks/"+resp.TaskID, &status))
	assert.False(t, status.Done)
	assert.Equal(t, "1", status.DeviceID)
	assert.Equal(t, []string{"lock", "location"}, status.Operations)

	f.exec.open()
	require.Eventually(t, func() bool {
		f.getJSON(t, "/tasks/"+resp.TaskID, &status)
		return status.Done
	}, 2*time.Second, 10*time.Millisecond)

	f.getJSON(t, "/view", &view)
	assert.False(t, view.Modal.Executing)
}

func TestExecuteErrors(t *testing.T) {
	f := newFixture(t, "BTC")
	testCases := []struct {
		name string
		path string
		body string
		code int
	}{
		{"unknown device", "/devices/99/operations", `{"operations": ["lock"]}`, http.StatusNotFound},
		{"unknown operation", "/devices/1/operations", `{"operations": ["explode"]}`, http.StatusBadRequest},
		{"nothing selected", "/devices/1/operations", `{"operations": []}`, http.StatusBadRequest},
		{"invalid body", "/devices/1/operations", `lock`, http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := f.do(t, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, tc.code, code, body)
		})
	}
	code, _ := f.do(t, http.MethodGet, "/tasks/unknown", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStream(t *testing.T) {
	f := newFixture(t, "BTC", "ETH")

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var snap sessionJSON
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, "active", snap.State)
	assert.Equal(t, 0, snap.Index)

	f.do(t, http.MethodPost, "/session/swipe/right", "")
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, 1, snap.Index)
	assert.Len(t, snap.Accepted, 1)

	f.do(t, http.MethodPost, "/session/swipe/left", "")
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, "complete", snap.State)
}

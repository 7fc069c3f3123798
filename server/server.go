// Package server exposes a swipe session and the device dashboard over HTTP.
//
// Every response is JSON, except the SVG charts. The /ws endpoint streams a
// snapshot of the session after every transition.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/inky"
	"github.com/etnz/inky/mdm"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Server owns one swipe session and one dashboard state.
type Server struct {
	catalog *inky.Catalog
	session *inky.Session
	app     *mdm.AppState
	log     logrus.FieldLogger

	router   *mux.Router
	upgrader websocket.Upgrader

	// tasks run on this context, not on the request one, so that they
	// survive the request that started them.
	ctx    context.Context
	cancel context.CancelFunc
}

// New returns a server over the given session and dashboard state.
func New(catalog *inky.Catalog, session *inky.Session, app *mdm.AppState, log logrus.FieldLogger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		catalog:  catalog,
		session:  session,
		app:      app,
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		ctx:      ctx,
		cancel:   cancel,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods("GET")

	r.HandleFunc("/session", s.getSession).Methods("GET")
	r.HandleFunc("/session/swipe/{direction}", s.swipe).Methods("POST")
	r.HandleFunc("/session/reset", s.reset).Methods("POST")
	r.HandleFunc("/session/summary", s.summary).Methods("GET")
	r.HandleFunc("/session/donut.svg", s.donut).Methods("GET")
	r.HandleFunc("/assets", s.assets).Methods("GET")
	r.HandleFunc("/assets/{symbol}/series", s.series).Methods("GET")
	r.HandleFunc("/assets/{symbol}/chart.svg", s.sparkline).Methods("GET")
	r.HandleFunc("/ws", s.stream).Methods("GET")

	r.HandleFunc("/view", s.view).Methods("GET")
	r.HandleFunc("/tenants", s.tenants).Methods("GET")
	r.HandleFunc("/devices", s.devices).Methods("GET")
	r.HandleFunc("/overview", s.overview).Methods("GET")
	r.HandleFunc("/financing", s.financing).Methods("GET")
	r.HandleFunc("/operations", s.operations).Methods("GET")
	r.HandleFunc("/devices/{id}/operations", s.execute).Methods("POST")
	r.HandleFunc("/tasks/{id}", s.task).Methods("GET")

	r.Use(s.logRequests)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// Close cancels the running tasks.
func (s *Server) Close() { s.cancel() }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("HTTP server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	defer s.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("request")
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": "..."} with the given status code.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeSVG(w http.ResponseWriter, svg string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}

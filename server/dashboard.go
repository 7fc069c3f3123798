package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/etnz/inky/mdm"
	"github.com/gorilla/mux"
)

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.View())
}

func (s *Server) tenants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Dataset().Tenants)
}

// filter reads the tenant, q and status query parameters. A missing tenant
// selects every device.
func (s *Server) filter(r *http.Request) (mdm.Filter, int, error) {
	q := r.URL.Query()
	f := mdm.Filter{Tenant: mdm.AllTenants, Query: q.Get("q")}
	if key := q.Get("tenant"); key != "" {
		t, ok := s.app.Dataset().Tenant(key)
		if !ok {
			return f, http.StatusNotFound, fmt.Errorf("unknown tenant %q", key)
		}
		f.Tenant = t.Name
	}
	status, ok, err := mdm.ParseDeviceStatus(q.Get("status"))
	if err != nil {
		return f, http.StatusBadRequest, err
	}
	if ok {
		f.Status = status
	}
	return f, http.StatusOK, nil
}

func (s *Server) devices(w http.ResponseWriter, r *http.Request) {
	f, code, err := s.filter(r)
	if err != nil {
		writeError(w, code, err)
		return
	}
	devices := s.app.Dataset().FilterDevices(f)
	if devices == nil {
		devices = []mdm.Device{}
	}
	writeJSON(w, http.StatusOK, devices)
}

func (s *Server) overview(w http.ResponseWriter, r *http.Request) {
	f, code, err := s.filter(r)
	if err != nil {
		writeError(w, code, err)
		return
	}
	data := s.app.Dataset()
	writeJSON(w, http.StatusOK, data.Overview(data.FilterDevices(mdm.Filter{Tenant: f.Tenant})))
}

func (s *Server) financing(w http.ResponseWriter, r *http.Request) {
	f, code, err := s.filter(r)
	if err != nil {
		writeError(w, code, err)
		return
	}
	data := s.app.Dataset()
	writeJSON(w, http.StatusOK, data.Financing(data.FilterDevices(mdm.Filter{Tenant: f.Tenant})))
}

func (s *Server) operations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Dataset().OperationsByCategory())
}

type executeRequest struct {
	Operations []string `json:"operations"`
}

type executeResponse struct {
	TaskID string `json:"taskId"`
}

// execute starts the operations on a device and answers 202 with the task
// id, without waiting for the task.
func (s *Server) execute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	t, err := s.app.Submit(s.ctx, mux.Vars(r)["id"], req.Operations...)
	switch {
	case errors.Is(err, mdm.ErrUnknownDevice):
		writeError(w, http.StatusNotFound, err)
		return
	case errors.Is(err, mdm.ErrBusy):
		writeError(w, http.StatusConflict, err)
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusAccepted, executeResponse{TaskID: t.ID()})
}

func (s *Server) task(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	t, ok := s.app.Task(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown task %q", id))
		return
	}
	writeJSON(w, http.StatusOK, t.Status())
}

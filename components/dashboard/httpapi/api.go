package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-pipeline-dashboard/components/dashboard"
	"github.com/goliatone/go-pipeline-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-pipeline-dashboard/components/dashboard/queries"
)

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Update    gocommand.Commander[commands.UpdateDataInput]
	Metric    gocommand.Commander[commands.SelectMetricInput]
	Filters   gocommand.Commander[commands.ChangeFilterInput]
	Stage     gocommand.Commander[commands.StageInput]
	Data      gocommand.Querier[queries.CurrentDataInput, dashboard.Dataset]
	View      gocommand.Querier[queries.ViewInput, dashboard.View]
	Page      PageRenderer
	Validator *dashboard.JSONSchemaValidator
}

// PageRenderer renders the dashboard HTML page.
type PageRenderer interface {
	RenderTemplate(ctx context.Context, out io.Writer) error
}

// Mount registers every handler on mux under base. stream, when set, serves
// redraw events as a WebSocket at /dashboard/ws and as SSE at /dashboard/events.
func (h *Handlers) Mount(mux *http.ServeMux, base string, stream *dashboard.BroadcastHook) {
	if h.Page != nil {
		mux.HandleFunc("GET "+base+"/dashboard", h.HandlePage)
	}
	mux.HandleFunc("GET "+base+"/dashboard/_view", h.HandleView)
	mux.HandleFunc("GET "+base+"/dashboard/data", h.HandleCurrentData)
	mux.HandleFunc("POST "+base+"/dashboard/data", h.HandleUpdateData)
	mux.HandleFunc("POST "+base+"/dashboard/metric", h.HandleSelectMetric)
	mux.HandleFunc("POST "+base+"/dashboard/filters", h.HandleChangeFilters)
	mux.HandleFunc("POST "+base+"/dashboard/stage", h.HandleStage)
	if stream != nil {
		mux.HandleFunc("GET "+base+"/dashboard/ws", stream.ServeWebSocket)
		mux.HandleFunc("GET "+base+"/dashboard/events", stream.ServeSSE)
	}
}

// HandlePage renders the full dashboard page.
func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Page.RenderTemplate(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// HandleUpdateData merges a partial dataset posted as JSON.
func (h *Handlers) HandleUpdateData(w http.ResponseWriter, r *http.Request) {
	patch, err := dashboard.DecodeDatasetPatch(r.Body, h.Validator)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Update.Execute(r.Context(), commands.UpdateDataInput{Patch: patch}); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCurrentData returns the stored dataset.
func (h *Handlers) HandleCurrentData(w http.ResponseWriter, r *http.Request) {
	data, err := h.Data.Query(r.Context(), queries.CurrentDataInput{})
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// HandleView returns the rendered view model.
func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	view, err := h.View.Query(r.Context(), queries.ViewInput{})
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) HandleSelectMetric(w http.ResponseWriter, r *http.Request) {
	var payload commands.SelectMetricInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Metric.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleChangeFilters(w http.ResponseWriter, r *http.Request) {
	var payload commands.ChangeFilterInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Filters.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandleStage(w http.ResponseWriter, r *http.Request) {
	var payload commands.StageInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Stage.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StatusFor maps dashboard errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownStage):
		return http.StatusNotFound
	case errors.Is(err, queries.ErrNotReady):
		return http.StatusServiceUnavailable
	case dashboard.IsInputError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

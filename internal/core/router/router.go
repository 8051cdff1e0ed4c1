package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mohammed-shakir/pt-dashboard/internal/aggregate"
	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
	"github.com/mohammed-shakir/pt-dashboard/internal/core/observability"
	"github.com/mohammed-shakir/pt-dashboard/internal/dashboard"
	"github.com/mohammed-shakir/pt-dashboard/internal/filter"
	mylog "github.com/mohammed-shakir/pt-dashboard/internal/logger"
	"github.com/mohammed-shakir/pt-dashboard/internal/selections"
)

var ErrUnknownField = errors.New("unknown field")

// fields that /api/frequency accepts
var frequencyFields = map[model.Field]bool{
	model.FieldProvince:      true,
	model.FieldOperatingBody: true,
	model.FieldForm:          true,
	model.FieldAccreditation: true,
}

// ViewSource returns the (possibly cached) view of a selection and where it
// came from.
type ViewSource interface {
	View(ctx context.Context, c filter.Criteria) (*dashboard.View, string)
}

type API struct {
	log    *slog.Logger
	b      *dashboard.Builder
	views  ViewSource
	events selections.Sink
}

func New(logger *slog.Logger, b *dashboard.Builder, views ViewSource, events selections.Sink) *API {
	if logger == nil {
		logger = slog.Default()
	}
	if events == nil {
		events = selections.Nop{}
	}
	return &API{log: logger, b: b, views: views, events: events}
}

// Mount registers the /api routes on r.
func (a *API) Mount(r chi.Router) {
	r.Get("/api/options", a.instrument("/api/options", a.handleOptions))
	r.Get("/api/dashboard", a.instrument("/api/dashboard", a.handleDashboard))
	r.Get("/api/institutions", a.instrument("/api/institutions", a.handleInstitutions))
	r.Get("/api/markers", a.instrument("/api/markers", a.handleMarkers))
	r.Get("/api/frequency/{field}", a.instrument("/api/frequency/{field}", a.handleFrequency))
	r.Get("/api/charts", a.instrument("/api/charts", a.handleCharts))
	r.Get("/api/charts/{id}", a.instrument("/api/charts/{id}", a.handleChart))
}

func (a *API) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		h(sw, r)
		observability.ObserveHTTP(r.Method, route, sw.code, time.Since(start).Seconds())
	}
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (a *API) handleOptions(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, http.StatusOK, a.b.Options())
}

// ViewCacheHeader reports how a view was obtained (lru_hit, shared_hit, miss).
const ViewCacheHeader = "X-View-Cache"

func (a *API) view(w http.ResponseWriter, r *http.Request) (*dashboard.View, string, context.Context) {
	c := filter.CriteriaFromQuery(r.URL.Query())
	ctx := mylog.WithSelection(r.Context(), c.Key())
	v, src := a.views.View(ctx, c)
	ctx = mylog.WithViewSource(ctx, src)
	w.Header().Set(ViewCacheHeader, src)
	a.log.DebugContext(ctx, "view served", "matched", v.Matched, "fallbacks", v.Map.Fallbacks)
	return v, src, ctx
}

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	v, src, ctx := a.view(w, r)
	a.events.Publish(selections.Event{
		Criteria:  v.Criteria,
		Matched:   v.Matched,
		Fallbacks: v.Map.Fallbacks,
		Cache:     src,
		RequestID: mylog.RequestID(ctx),
	})
	a.writeJSON(w, r, http.StatusOK, v)
}

type institutionsResp struct {
	Criteria     filter.Criteria            `json:"criteria"`
	Matched      int                        `json:"matched"`
	Institutions []dashboard.InstitutionRow `json:"institutions"`
}

func (a *API) handleInstitutions(w http.ResponseWriter, r *http.Request) {
	v, _, _ := a.view(w, r)
	a.writeJSON(w, r, http.StatusOK, institutionsResp{
		Criteria:     v.Criteria,
		Matched:      v.Matched,
		Institutions: v.Institutions,
	})
}

type markersResp struct {
	Criteria filter.Criteria `json:"criteria"`
	dashboard.MapView
}

func (a *API) handleMarkers(w http.ResponseWriter, r *http.Request) {
	v, _, _ := a.view(w, r)
	a.writeJSON(w, r, http.StatusOK, markersResp{Criteria: v.Criteria, MapView: v.Map})
}

type frequencyResp struct {
	Field    model.Field              `json:"field"`
	Label    string                   `json:"label"`
	Criteria filter.Criteria          `json:"criteria"`
	Total    int                      `json:"total"`
	Entries  aggregate.FrequencyTable `json:"entries"`
}

// ParseFrequencyField resolves the {field} path segment.
func ParseFrequencyField(raw string) (model.Field, error) {
	f, err := model.ParseField(raw)
	if err != nil || !frequencyFields[f] {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
	}
	return f, nil
}

func (a *API) handleFrequency(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFrequencyField(chi.URLParam(r, "field"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	c := filter.CriteriaFromQuery(r.URL.Query())
	ft := a.b.Frequency(c, f)
	a.writeJSON(w, r, http.StatusOK, frequencyResp{
		Field:    f,
		Label:    f.Label(),
		Criteria: c,
		Total:    ft.Total(),
		Entries:  ft,
	})
}

func (a *API) handleCharts(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, http.StatusOK, a.b.Charts())
}

func (a *API) handleChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok := a.b.Chart(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown chart %q", id))
		return
	}
	a.writeJSON(w, r, http.StatusOK, c)
}

// writeJSON encodes before touching the response so a value that cannot be
// encoded turns into a logged 500 instead of an empty 200.
func (a *API) writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		a.log.ErrorContext(r.Context(), "encode response", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("response could not be encoded"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

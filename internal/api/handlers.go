package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/siderealworks/astrocarto/core"
	"github.com/siderealworks/astrocarto/internal/logging"
	"github.com/siderealworks/astrocarto/internal/observability"
	"github.com/siderealworks/astrocarto/kb"
	"github.com/siderealworks/astrocarto/model"
	"github.com/siderealworks/astrocarto/timectrl"
)

var tracer = otel.Tracer("astrocarto/api")

// Handler serves the chart and activation endpoints.
type Handler struct {
	Log     logging.Logger
	Store   *kb.Store
	Engine  *core.ScoringEngine
	Clock   timectrl.Clock
	Metrics *observability.EngineCollector
}

func (h *Handler) now() time.Time {
	if h.Clock != nil {
		return h.Clock.Now()
	}
	return time.Now().UTC()
}

func (h *Handler) logger() logging.Logger {
	if h.Log != nil {
		return h.Log
	}
	return logging.Noop()
}

type createChartRequest struct {
	Birth model.BirthData `json:"birth"`
}

func (h *Handler) createChart(w http.ResponseWriter, r *http.Request) {
	var req createChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Birth.Latitude < -90 || req.Birth.Latitude > 90 ||
		req.Birth.Longitude < -180 || req.Birth.Longitude > 180 {
		respondError(w, http.StatusBadRequest, "birth coordinates out of range")
		return
	}

	birthJD, err := core.BirthJulianDay(req.Birth)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	natal := core.PositionsAt(birthJD)
	gst := core.GreenwichSiderealTime(birthJD)
	lines := core.GenerateLines(natal, gst, "natal")
	h.Metrics.AddPositionsComputed(len(natal))

	chart := &model.Chart{
		ID:        uuid.NewString(),
		Birth:     req.Birth,
		JulianDay: birthJD,
		Positions: natal,
		Lines:     lines,
	}
	if err := h.Store.AddChart(chart); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}

	h.logger().Info(r.Context(), "chart created",
		logging.String("chart_id", chart.ID),
		logging.Int("lines", len(lines)))
	respondJSON(w, http.StatusCreated, chart)
}

func (h *Handler) listCharts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Store.ListCharts())
}

func (h *Handler) chartFromRequest(w http.ResponseWriter, r *http.Request) *model.Chart {
	id := chi.URLParam(r, "chartID")
	chart := h.Store.GetChart(id)
	if chart == nil {
		respondError(w, http.StatusNotFound, "chart not found")
		return nil
	}
	return chart
}

func (h *Handler) getChart(w http.ResponseWriter, r *http.Request) {
	if chart := h.chartFromRequest(w, r); chart != nil {
		respondJSON(w, http.StatusOK, chart)
	}
}

func (h *Handler) chartLines(w http.ResponseWriter, r *http.Request) {
	if chart := h.chartFromRequest(w, r); chart != nil {
		respondJSON(w, http.StatusOK, chart.Lines)
	}
}

// chartActivations returns every aspect live at the current instant,
// transits and progressions merged.
func (h *Handler) chartActivations(w http.ResponseWriter, r *http.Request) {
	chart := h.chartFromRequest(w, r)
	if chart == nil {
		return
	}
	activations := h.Engine.CurrentActivations(chart.Positions, chart.JulianDay, h.now())
	respondJSON(w, http.StatusOK, activations)
}

// chartWindows scans ahead for activation windows. The horizon defaults to
// six months and is capped at five years.
func (h *Handler) chartWindows(w http.ResponseWriter, r *http.Request) {
	chart := h.chartFromRequest(w, r)
	if chart == nil {
		return
	}

	months := 6
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 60 {
			respondError(w, http.StatusBadRequest, "months must be between 1 and 60")
			return
		}
		months = parsed
	}

	ctx, span := tracer.Start(r.Context(), "chart.windows")
	span.SetAttributes(
		attribute.String("chart.id", chart.ID),
		attribute.Int("scan.months", months),
	)
	defer span.End()

	now := h.now()
	h.Metrics.ScanStarted()
	start := time.Now()
	windows, err := h.Engine.Scanner.Scan(ctx, chart.Positions, chart.JulianDay, now, now.AddDate(0, months, 0))
	h.Metrics.ScanFinished()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Metrics.ObserveScan(time.Since(start), len(windows))
	respondJSON(w, http.StatusOK, windows)
}

func (h *Handler) cityActivation(w http.ResponseWriter, r *http.Request) {
	chart := h.chartFromRequest(w, r)
	if chart == nil {
		return
	}
	loc := h.Store.GetLocation(chi.URLParam(r, "name"))
	if loc == nil {
		respondError(w, http.StatusNotFound, "location not found")
		return
	}

	ctx, span := tracer.Start(r.Context(), "chart.city_activation")
	span.SetAttributes(attribute.String("location.name", loc.Name))
	defer span.End()

	activation, err := h.Engine.CityActivation(ctx, *loc, chart.Lines, chart.Positions, chart.JulianDay, h.now())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, activation)
}

func (h *Handler) synthesis(w http.ResponseWriter, r *http.Request) {
	chart := h.chartFromRequest(w, r)
	if chart == nil {
		return
	}

	horizon := core.SpanQuarter
	switch r.URL.Query().Get("span") {
	case "", "quarter":
	case "month":
		horizon = core.SpanMonth
	case "year":
		horizon = core.SpanYear
	default:
		respondError(w, http.StatusBadRequest, "span must be month, quarter, or year")
		return
	}

	locations := make([]model.Location, 0)
	for _, loc := range h.Store.ListLocations() {
		locations = append(locations, *loc)
	}

	ctx, span := tracer.Start(r.Context(), "chart.synthesis")
	span.SetAttributes(
		attribute.String("chart.id", chart.ID),
		attribute.Int("locations", len(locations)),
	)
	defer span.End()

	synthesis, err := h.Engine.TransitSynthesis(ctx, locations, chart.Lines, chart.Positions, chart.JulianDay, h.now(), horizon)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, synthesis)
}

// positions is the raw ephemeris endpoint: body positions for an arbitrary
// local instant and place.
func (h *Handler) positions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	birth := model.BirthData{
		Date: q.Get("date"),
		Time: q.Get("time"),
	}
	var err error
	if birth.Latitude, err = parseFloat(q.Get("lat")); err != nil {
		respondError(w, http.StatusBadRequest, "invalid lat")
		return
	}
	if birth.Longitude, err = parseFloat(q.Get("lon")); err != nil {
		respondError(w, http.StatusBadRequest, "invalid lon")
		return
	}

	jd, err := core.BirthJulianDay(birth)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	positions := core.PositionsAt(jd)
	h.Metrics.AddPositionsComputed(len(positions))
	respondJSON(w, http.StatusOK, positions)
}

// lines is the stateless counterpart of chartLines: it projects lines for an
// arbitrary birth instant without storing a chart.
func (h *Handler) lines(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	birth := model.BirthData{
		Date: q.Get("date"),
		Time: q.Get("time"),
	}
	var err error
	if birth.Latitude, err = parseFloat(q.Get("lat")); err != nil {
		respondError(w, http.StatusBadRequest, "invalid lat")
		return
	}
	if birth.Longitude, err = parseFloat(q.Get("lon")); err != nil {
		respondError(w, http.StatusBadRequest, "invalid lon")
		return
	}

	jd, err := core.BirthJulianDay(birth)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	positions := core.PositionsAt(jd)
	h.Metrics.AddPositionsComputed(len(positions))
	lines := core.GenerateLines(positions, core.GreenwichSiderealTime(jd), "natal")
	respondJSON(w, http.StatusOK, lines)
}

func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Store.ListLocations())
}

func parseFloat(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

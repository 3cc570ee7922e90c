package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/siderealworks/astrocarto/core"
	"github.com/siderealworks/astrocarto/internal/logging"
	"github.com/siderealworks/astrocarto/internal/observability"
	"github.com/siderealworks/astrocarto/kb"
	"github.com/siderealworks/astrocarto/model"
	"github.com/siderealworks/astrocarto/timectrl"
)

func newTestRouter(t *testing.T) (http.Handler, *kb.Store) {
	t.Helper()

	reg := prometheus.NewRegistry()
	apiCollector, err := observability.NewAPICollector(reg)
	if err != nil {
		t.Fatalf("NewAPICollector: %v", err)
	}
	engineCollector, err := observability.NewEngineCollector(reg)
	if err != nil {
		t.Fatalf("NewEngineCollector: %v", err)
	}

	store := kb.NewStore()
	handler := &Handler{
		Log:     logging.Noop(),
		Store:   store,
		Engine:  core.NewScoringEngine(core.DefaultOrbPolicy(), core.DefaultFavorability(), nil),
		Clock:   timectrl.FrozenClock{At: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		Metrics: engineCollector,
	}
	return NewRouter(handler, logging.Noop(), apiCollector), store
}

func createTestChart(t *testing.T, router http.Handler) model.Chart {
	t.Helper()

	body := `{"birth": {"date": "1990-06-21", "time": "14:30", "lat": 40.7, "lon": -74.0}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/charts", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("create chart status = %d, body %s", rr.Code, rr.Body.String())
	}
	var chart model.Chart
	if err := json.Unmarshal(rr.Body.Bytes(), &chart); err != nil {
		t.Fatalf("decoding chart: %v", err)
	}
	return chart
}

func TestCreateChart(t *testing.T) {
	router, _ := newTestRouter(t)
	chart := createTestChart(t, router)

	if chart.ID == "" {
		t.Fatalf("created chart has no ID")
	}
	if len(chart.Positions) != len(model.AllBodies) {
		t.Fatalf("chart has %d positions, want %d", len(chart.Positions), len(model.AllBodies))
	}
	if len(chart.Lines) == 0 {
		t.Fatalf("chart has no lines")
	}
}

func TestCreateChart_BadRequests(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []string{
		`not json`,
		`{"birth": {"date": "1990-06-21", "time": "14:30", "lat": 95, "lon": 0}}`,
		`{"birth": {"date": "junk", "time": "14:30", "lat": 40, "lon": 0}}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/charts", bytes.NewReader([]byte(body)))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rr.Code)
		}
	}
}

func TestGetChart_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/charts/nope", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestPositionsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/positions?date=2025-06-01&time=12:00&lat=38.72&lon=-9.14", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var positions []model.PlanetPosition
	if err := json.Unmarshal(rr.Body.Bytes(), &positions); err != nil {
		t.Fatalf("decoding positions: %v", err)
	}
	if len(positions) != len(model.AllBodies) {
		t.Fatalf("got %d positions, want %d", len(positions), len(model.AllBodies))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/positions?date=2025-06-01&time=12:00&lat=abc&lon=0", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad lat status = %d, want 400", rr.Code)
	}
}

func TestLinesEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lines?date=1990-06-21&time=14:30&lat=40.7&lon=-74", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var lines []model.AstroLine
	if err := json.Unmarshal(rr.Body.Bytes(), &lines); err != nil {
		t.Fatalf("decoding lines: %v", err)
	}
	if len(lines) == 0 {
		t.Fatalf("no lines returned")
	}
	for _, line := range lines {
		if len(line.Points) == 0 {
			t.Fatalf("%v %s line has no points", line.Body, line.LineType)
		}
	}
}

func TestChartActivations(t *testing.T) {
	router, _ := newTestRouter(t)
	chart := createTestChart(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/charts/"+chart.ID+"/activations", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var activations []model.LineActivation
	if err := json.Unmarshal(rr.Body.Bytes(), &activations); err != nil {
		t.Fatalf("decoding activations: %v", err)
	}
	if len(activations) == 0 {
		t.Fatalf("a full chart should have live aspects")
	}
}

func TestChartWindows(t *testing.T) {
	router, _ := newTestRouter(t)
	chart := createTestChart(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/charts/"+chart.ID+"/windows?months=2", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	var windows []model.ActivationWindow
	if err := json.Unmarshal(rr.Body.Bytes(), &windows); err != nil {
		t.Fatalf("decoding windows: %v", err)
	}
	for _, w := range windows {
		if w.Exact.Before(w.Start) || w.Exact.After(w.End) {
			t.Fatalf("window %q violates containment", w.Description)
		}
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/charts/"+chart.ID+"/windows?months=0", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("months=0 status = %d, want 400", rr.Code)
	}
}

func TestCityActivationEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	chart := createTestChart(t, router)

	if err := store.AddLocation(&model.Location{Name: "Lisbon", Country: "PT", Lat: 38.72, Lon: -9.14}); err != nil {
		t.Fatalf("AddLocation: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/charts/"+chart.ID+"/cities/Lisbon", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	var activation model.CityActivation
	if err := json.Unmarshal(rr.Body.Bytes(), &activation); err != nil {
		t.Fatalf("decoding activation: %v", err)
	}
	if activation.Overall == "" {
		t.Fatalf("activation missing overall strength")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/charts/"+chart.ID+"/cities/Atlantis", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown city status = %d, want 404", rr.Code)
	}
}

func TestSynthesisEndpoint_RejectsBadSpan(t *testing.T) {
	router, _ := newTestRouter(t)
	chart := createTestChart(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/charts/"+chart.ID+"/synthesis?span=decade", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Fatalf("/healthz = %d %q", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "api_requests_total") {
		t.Fatalf("/metrics output missing request counter:\n%s", rr.Body.String())
	}
}

func TestListEndpoints(t *testing.T) {
	router, store := newTestRouter(t)
	createTestChart(t, router)
	for i := 0; i < 2; i++ {
		if err := store.AddLocation(&model.Location{Name: fmt.Sprintf("city-%d", i)}); err != nil {
			t.Fatalf("AddLocation: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/charts", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	var charts []model.Chart
	if err := json.Unmarshal(rr.Body.Bytes(), &charts); err != nil {
		t.Fatalf("decoding charts: %v", err)
	}
	if len(charts) != 1 {
		t.Fatalf("got %d charts, want 1", len(charts))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	var locations []model.Location
	if err := json.Unmarshal(rr.Body.Bytes(), &locations); err != nil {
		t.Fatalf("decoding locations: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("got %d locations, want 2", len(locations))
	}
}

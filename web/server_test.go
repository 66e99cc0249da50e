// ABOUTME: Tests for the web dashboard routes and JSON API
// ABOUTME: Drives the router through httptest against an in-memory workspace
package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/metrics"
	"github.com/harperreed/revenueos/notify"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/team"
)

var refNow = time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	m := metrics.New()
	s := store.New(store.NewMemoryBackend(), store.WithClock(func() time.Time { return refNow }), store.WithMetrics(m))
	require.NoError(t, s.Load())
	m.Watch(s)
	roster, err := team.Open(s.Backend(), s.Get().TeamPerformance, 7, refNow, nil)
	require.NoError(t, err)
	app := controllers.NewApp(s, notify.New(notify.WithDuration(time.Hour)), roster)

	srv, err := NewServer(app, m.Handler(), nil)
	require.NoError(t, err)
	return srv.Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPages(t *testing.T) {
	h := setupServer(t)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "$36,250")
	assert.Contains(t, rec.Body.String(), "Funnel")

	rec = get(t, h, "/?scenario=risk")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>risk</strong>")

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/?scenario=boom").Code)

	rec = get(t, h, "/pipeline")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tech Solutions Ltda")

	rec = get(t, h, "/today")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fast Burger")
}

func TestAPILeads(t *testing.T) {
	h := setupServer(t)

	rec := get(t, h, "/api/leads?filter=overdue")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Filter string `json:"filter"`
		Leads  []struct {
			Name string `json:"name"`
		} `json:"leads"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "overdue", body.Filter)
	require.NotEmpty(t, body.Leads)
	assert.Equal(t, "Fast Burger", body.Leads[0].Name)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/leads?filter=bogus").Code)
}

func TestAPIDashboard(t *testing.T) {
	h := setupServer(t)

	rec := get(t, h, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	var d struct {
		Scenario  string  `json:"scenario"`
		Forecast  float64 `json:"forecastedRevenue"`
		GapToGoal float64 `json:"gapToGoal"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, "healthy", d.Scenario)
	assert.Equal(t, 36250.0, d.Forecast)
	assert.Equal(t, 213750.0, d.GapToGoal)
}

func TestAPIEndpointsRespond(t *testing.T) {
	h := setupServer(t)
	for _, path := range []string{
		"/api/deals", "/api/proposals", "/api/contracts", "/api/funnel", "/api/today", "/api/team",
		"/api/proposals?status=Sent", "/api/contracts?status=Sent", "/api/team?tab=top_closer",
	} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusOK, get(t, h, path).Code)
		})
	}
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/proposals?quick=stale").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/contracts?status=Pending").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/team?tab=fastest").Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := setupServer(t)

	rec := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","source":"seed"}`, rec.Body.String())

	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "revenueos_store_load_fallbacks_total")
}

func TestRequestIDAndCORS(t *testing.T) {
	h := setupServer(t)

	rec := get(t, h, "/healthz")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/deals", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestWriteIsNotRouted(t *testing.T) {
	h := setupServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/leads", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

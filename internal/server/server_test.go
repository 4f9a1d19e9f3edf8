package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/akhenakh/sgp4/v2"
	"github.com/akhenakh/sgp4/v2/internal/metrics"
)

const (
	issLine1 = "1 25544U 98067A   25138.37048074  .00007749  00000+0  14567-3 0  9994"
	issLine2 = "2 25544  51.6369  94.7823 0002558 120.7586  15.7840 15.49587957510533"
)

func newTestServer(t *testing.T, limit rate.Limit, burst int) (*Server, *metrics.Collector) {
	t.Helper()
	m, err := metrics.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	s := New(Options{
		Metrics:   m,
		Satellite: sgp4.Config{Gravity: sgp4.WGS84, OpsMode: sgp4.OpsImproved},
		RateLimit: limit,
		Burst:     burst,
	})
	return s, m
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, rate.Inf, 1)
	rr := do(t, s.Handler(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestPropagate(t *testing.T) {
	s, m := newTestServer(t, rate.Inf, 1)
	rr := do(t, s.Handler(), http.MethodPost, "/api/v1/propagate", map[string]interface{}{
		"name":    "ISS (ZARYA)",
		"line1":   issLine1,
		"line2":   issLine2,
		"minutes": []float64{0, 90},
		"times":   []time.Time{time.Date(2025, 5, 18, 12, 0, 0, 0, time.UTC)},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp propagateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "25544", resp.SatNum)
	assert.Equal(t, "near-earth", resp.Method)
	require.Len(t, resp.States, 3)
	assert.Equal(t, 0.0, resp.States[0].Minutes)
	assert.InDelta(t, 32.740, resp.States[0].Latitude, 0.05)
	assert.InDelta(t, 418.256, resp.States[0].Altitude, 1.0)
	assert.True(t, resp.States[2].Time.Equal(time.Date(2025, 5, 18, 12, 0, 0, 0, time.UTC)))

	for _, st := range resp.States {
		r := sgp4.Vector{X: st.Position[0], Y: st.Position[1], Z: st.Position[2]}.Norm()
		assert.InDelta(t, 6790, r, 30)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Propagations.WithLabelValues("near-earth", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST /api/v1/propagate", "POST", "200")))
}

func TestPropagateErrors(t *testing.T) {
	s, _ := newTestServer(t, rate.Inf, 1)
	h := s.Handler()

	rr := do(t, h, http.MethodPost, "/api/v1/propagate", map[string]interface{}{"line1": issLine1, "line2": issLine2})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/v1/propagate", map[string]interface{}{"line1": issLine1, "line2": issLine1, "minutes": []float64{0}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/v1/propagate", map[string]interface{}{"line1": issLine1, "line2": issLine2, "minutes": []float64{0}, "extra": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/v1/propagate", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestPropagateDecayed(t *testing.T) {
	s, _ := newTestServer(t, rate.Inf, 1)
	// a drag term this high drives the eccentricity out of range
	rr := do(t, s.Handler(), http.MethodPost, "/api/v1/propagate", map[string]interface{}{
		"line1":   "1 88888U          80275.98708465  .00073094  13844-3  50000-0 0    8",
		"line2":   "2 88888  72.8435 115.9689 0086731  52.6988 110.5714 16.05824518  105",
		"minutes": []float64{0, 1000},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code, rr.Body.String())

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, int(sgp4.CodeEccentricity), resp.Code)
	assert.Len(t, resp.States, 1)
}

func TestPasses(t *testing.T) {
	s, m := newTestServer(t, rate.Inf, 1)
	rr := do(t, s.Handler(), http.MethodPost, "/api/v1/passes", map[string]interface{}{
		"line1":         issLine1,
		"line2":         issLine2,
		"lat":           46.829853,
		"lon":           -71.254028,
		"alt":           80,
		"start":         time.Date(2025, 5, 18, 9, 0, 0, 0, time.UTC),
		"hours":         24,
		"min_elevation": 10,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp []passResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp)
	for _, p := range resp {
		assert.True(t, p.AOS.Before(p.LOS))
		assert.GreaterOrEqual(t, p.MaxElevation, 10.0)
		assert.InDelta(t, p.LOS.Sub(p.AOS).Seconds(), p.DurationSeconds, 1e-6)
	}
	assert.Equal(t, float64(len(resp)), testutil.ToFloat64(m.PassesFound))

	rr = do(t, s.Handler(), http.MethodPost, "/api/v1/passes", map[string]interface{}{
		"line1": issLine1, "line2": issLine2, "lat": 91.0,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, s.Handler(), http.MethodPost, "/api/v1/passes", map[string]interface{}{
		"line1": issLine1, "line2": issLine2, "hours": 1000,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRateLimit(t *testing.T) {
	s, m := newTestServer(t, rate.Every(time.Hour), 2)
	h := s.Handler()
	body := map[string]interface{}{"line1": issLine1, "line2": issLine2, "minutes": []float64{0}}

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/propagate", body).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/propagate", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodPost, "/api/v1/propagate", body).Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited))

	// probes are not limited
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/metrics", nil).Code)

	// another client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRateLimiterSweep(t *testing.T) {
	l := newIPRateLimiter(rate.Every(time.Hour), 2)
	now := time.Now()
	l.now = func() time.Time { return now }

	busy := l.limiter("10.0.0.1")
	require.True(t, busy.Allow())
	require.True(t, busy.Allow())
	l.limiter("10.0.0.2")

	assert.Equal(t, 0, l.sweep())
	assert.Equal(t, 2, l.size())

	// only the client whose bucket refilled goes away
	now = now.Add(limiterIdle + time.Minute)
	assert.Equal(t, 1, l.sweep())
	assert.Equal(t, 1, l.size())
	assert.Same(t, busy, l.limiter("10.0.0.1"))
	assert.False(t, l.limiter("10.0.0.1").Allow())

	now = now.Add(3 * time.Hour)
	assert.Equal(t, 1, l.sweep())
	assert.Equal(t, 0, l.size())
	assert.NotSame(t, busy, l.limiter("10.0.0.1"))
}

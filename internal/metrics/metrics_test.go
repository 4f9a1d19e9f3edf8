package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akhenakh/sgp4/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/propagate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := c.Middleware(mux)(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/propagate", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/propagate", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("POST /api/v1/propagate", "POST", "418")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.HTTPDurations))
}

func TestMiddlewareLabelsByPattern(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /satellites/{id}", func(w http.ResponseWriter, r *http.Request) {})
	h := c.Middleware(mux)(mux)

	for _, id := range []string{"25544", "11801", "08195", "28626"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/satellites/"+id, nil))
	}
	for _, path := range []string{"/nope", "/nope/again", "/x"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2, testutil.CollectAndCount(c.HTTPRequests))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET /satellites/{id}", "GET", "200")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues(UnmatchedRoute, "GET", "404")))
}

func TestObservePropagation(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	c.ObservePropagation(sgp4.NearEarth, nil)
	c.ObservePropagation(sgp4.DeepSpace, &sgp4.SatelliteDecayedError{Tsince: 10, Radius: 0.9})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Propagations.WithLabelValues("near-earth", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Propagations.WithLabelValues("deep-space", "6")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	c.PassesFound.Add(3)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "sgp4_passes_found_total 3"))
}

func TestNewCollectorTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)
	_, err = NewCollector(reg)
	assert.Error(t, err)
}

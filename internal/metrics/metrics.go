// Package metrics holds the Prometheus collectors of the sgp4 service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akhenakh/sgp4/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the service metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
	Propagations  *prometheus.CounterVec
	PassesFound   prometheus.Counter
	RateLimited   prometheus.Counter
}

// NewCollector registers the metrics against reg, the global registry when
// reg is nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		gatherer: gatherer,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sgp4_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"route", "method", "code"}),
		HTTPDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sgp4_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		Propagations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sgp4_propagations_total",
			Help: "Propagated states, labeled by method and error code.",
		}, []string{"method", "code"}),
		PassesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sgp4_passes_found_total",
			Help: "Passes returned by pass searches.",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sgp4_http_rate_limited_total",
			Help: "Requests rejected by the per client rate limit.",
		}),
	}
	for _, m := range []prometheus.Collector{c.HTTPRequests, c.HTTPDurations, c.Propagations, c.PassesFound, c.RateLimited} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObservePropagation counts one propagated state and its outcome.
func (c *Collector) ObservePropagation(method sgp4.Method, err error) {
	c.Propagations.WithLabelValues(method.String(), strconv.Itoa(int(sgp4.CodeOf(err)))).Inc()
}

// Handler exposes the registered metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// UnmatchedRoute labels requests no registered pattern serves.
const UnmatchedRoute = "unmatched"

// Router resolves the registered pattern serving a request, as
// *http.ServeMux does.
type Router interface {
	Handler(r *http.Request) (h http.Handler, pattern string)
}

// Middleware records request count and duration for each request, labeled
// by the pattern routes resolves for it so the series stay bounded.
func (c *Collector) Middleware(routes Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			_, route := routes.Handler(r)
			if route == "" {
				route = UnmatchedRoute
			}

			next.ServeHTTP(rw, r)

			c.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rw.statusCode)).Inc()
			c.HTTPDurations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

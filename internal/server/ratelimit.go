package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterSweepEvery = time.Minute
	limiterIdle       = 10 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP.
type ipRateLimiter struct {
	ips  map[string]*ipLimiter
	mu   sync.Mutex
	r    rate.Limit
	b    int
	now  func() time.Time
	idle time.Duration
}

func newIPRateLimiter(r rate.Limit, b int) *ipRateLimiter {
	return &ipRateLimiter{
		ips:  make(map[string]*ipLimiter),
		r:    r,
		b:    b,
		now:  time.Now,
		idle: limiterIdle,
	}
}

func (l *ipRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.ips[ip]
	if !exists {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.r, l.b)}
		l.ips[ip] = entry
	}
	entry.lastSeen = l.now()
	return entry.limiter
}

// sweep drops the clients idle for longer than l.idle whose bucket refilled.
// A full bucket is what a new client gets, so eviction never loosens the limit.
func (l *ipRateLimiter) sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var n int
	for ip, entry := range l.ips {
		if now.Sub(entry.lastSeen) < l.idle || entry.limiter.TokensAt(now) < float64(l.b) {
			continue
		}
		delete(l.ips, ip)
		n++
	}
	return n
}

func (l *ipRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ips)
}

// run sweeps every interval until ctx is done.
func (l *ipRateLimiter) run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// middleware answers 429 once a client exhausted its bucket. Probes are
// never limited.
func (l *ipRateLimiter) middleware(onReject func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !probePath(r.URL.Path) && !l.limiter(clientIP(r)).Allow() {
				onReject()
				writeError(w, http.StatusTooManyRequests, errTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

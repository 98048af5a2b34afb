package server

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/juju/ratelimit"
	"github.com/rs/zerolog/log"
)

// clientLimiter keeps one token bucket per client address.
type clientLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*ratelimit.Bucket
	rate    float64
	burst   int64
}

func newClientLimiter(rate float64, burst int64) *clientLimiter {
	l := &clientLimiter{
		buckets: make(map[string]*ratelimit.Bucket),
		rate:    rate,
		burst:   burst,
	}
	go l.cleanup()
	return l
}

func (l *clientLimiter) bucket(clientIP string) *ratelimit.Bucket {
	l.mu.RLock()
	bucket, ok := l.buckets[clientIP]
	l.mu.RUnlock()
	if ok {
		return bucket
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if bucket, ok = l.buckets[clientIP]; !ok {
		bucket = ratelimit.NewBucketWithRate(l.rate, l.burst)
		l.buckets[clientIP] = bucket
	}
	return bucket
}

// cleanup drops buckets that have refilled completely, i.e. idle clients.
func (l *clientLimiter) cleanup() {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		for ip, bucket := range l.buckets {
			if bucket.Available() == bucket.Capacity() {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *clientLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if l.bucket(ip).TakeAvailable(1) == 0 {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(ww.Status())).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

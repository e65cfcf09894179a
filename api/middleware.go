/*
middleware.go - request logging and rate limiting

PURPOSE:
  Carries the HTTP middleware that is specific to this service: a
  structured request log on zap and a per-client token-bucket rate
  limiter guarding the calculation routes.

RATE LIMITING:
  Every calculation is cheap, but the endpoints are public and
  unauthenticated, so each client IP gets a small token bucket. Buckets
  refill in full once per window and idle buckets are swept so the map
  does not grow without bound.

SEE ALSO:
  - server.go: where the middleware is mounted
*/
package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// =============================================================================
// REQUEST LOGGING
// =============================================================================

// requestLogger emits one structured log line per request.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// =============================================================================
// RATE LIMITING
// =============================================================================

const (
	bucketIdleThreshold = 1 * time.Hour
	bucketSweepInterval = 30 * time.Minute
)

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter is a per-client token bucket. Each client gets capacity
// requests per refill window; the bucket refills in full when the
// window elapses.
type RateLimiter struct {
	mu        sync.Mutex
	capacity  int
	refillDur time.Duration
	clients   map[string]*clientBucket
	stopSweep chan struct{}
}

func NewRateLimiter(capacity int, refillDur time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity:  capacity,
		refillDur: refillDur,
		clients:   make(map[string]*clientBucket),
		stopSweep: make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(bucketSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopSweep:
			return
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for client, bucket := range rl.clients {
		if now.Sub(bucket.lastRefill) > bucketIdleThreshold {
			delete(rl.clients, client)
		}
	}
}

// Stop terminates the background sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopSweep)
}

// Allow reports whether the client may proceed and consumes a token if so.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, exists := rl.clients[client]

	if !exists {
		rl.clients[client] = &clientBucket{
			tokens:     rl.capacity - 1,
			lastRefill: now,
		}
		return true
	}

	if now.Sub(bucket.lastRefill) >= rl.refillDur {
		bucket.tokens = rl.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false
	}

	bucket.tokens--
	return true
}

// rateLimit rejects requests from clients that exhausted their bucket.
// The client key is the remote IP without the port.
func rateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiter.Allow(ip) {
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"yumexpress-be/internal/utils"

	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Login / register (Strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// Mood filter calls an external classifier
	limitAI = rate.Limit(5)
	burstAI = 10

	// General (Default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Internal / trusted services
	limitInternal = rate.Limit(100)
	burstInternal = 200
)

const (
	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per caller identity and tier.
type RateLimiter struct {
	internalKey string

	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewRateLimiter(internalKey string) *RateLimiter {
	return &RateLimiter{
		internalKey: internalKey,
		visitors:    make(map[string]*visitor),
	}
}

// Run evicts idle visitors until ctx is cancelled.
func (l *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.cleanup(time.Now())
		}
	}
}

func (l *RateLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(l.visitors, key)
		}
	}
}

func (l *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// Middleware rejects callers that exceed the quota of their tier with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := l.resolveRateTier(r)

		key := callerIdentity(r) + ":" + tier

		if !l.getVisitor(key, limit, burst).Allow() {
			utils.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// callerIdentity keys visitors by client IP. The limiter wraps the router
// ahead of authentication, so no account id is available here.
func callerIdentity(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

func (l *RateLimiter) resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if l.internalKey != "" && r.Header.Get("X-Service-Auth") == l.internalKey {
		return limitInternal, burstInternal, "internal"
	}

	if strings.HasPrefix(r.URL.Path, "/auth/") {
		return limitStrict, burstStrict, "strict"
	}

	if strings.HasPrefix(r.URL.Path, "/ai/") {
		return limitAI, burstAI, "ai"
	}

	return limitGeneral, burstGeneral, "general"
}

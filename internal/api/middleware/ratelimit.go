package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines rate limiting configuration
type RateLimitConfig struct {
	// Per-IP limits
	IPRPS   float64
	IPBurst int

	// Cleanup interval
	CleanupInterval time.Duration

	// TTL for inactive limiters
	InactiveTTL time.Duration
}

// DefaultRateLimitConfig returns default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		IPRPS:           50,
		IPBurst:         100,
		CleanupInterval: 5 * time.Minute,
		InactiveTTL:     30 * time.Minute,
	}
}

// ipLimiter tracks rate limiting for one client address
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a token bucket per client address
type RateLimiter struct {
	limiters map[string]*ipLimiter
	mu       sync.Mutex
	config   RateLimitConfig
	now      func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	def := DefaultRateLimitConfig()
	if config.IPRPS <= 0 {
		config.IPRPS = def.IPRPS
	}
	if config.IPBurst <= 0 {
		config.IPBurst = def.IPBurst
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = def.CleanupInterval
	}
	if config.InactiveTTL <= 0 {
		config.InactiveTTL = def.InactiveTTL
	}
	return &RateLimiter{
		limiters: make(map[string]*ipLimiter),
		config:   config,
		now:      time.Now,
	}
}

// Middleware rejects requests over the limit with 429
func (m *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(1))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"RATE_LIMITED","message":"rate limit exceeded"}}` + "\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Allow consumes one token of the client's bucket
func (m *RateLimiter) Allow(client string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	l, ok := m.limiters[client]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(rate.Limit(m.config.IPRPS), m.config.IPBurst)}
		m.limiters[client] = l
	}
	l.lastSeen = now
	return l.limiter.AllowN(now, 1)
}

// Run drops idle limiters until stop is closed
func (m *RateLimiter) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanupInactive()
		case <-stop:
			return
		}
	}
}

func (m *RateLimiter) cleanupInactive() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.config.InactiveTTL)
	for key, l := range m.limiters {
		if l.lastSeen.Before(cutoff) {
			delete(m.limiters, key)
		}
	}
}

// Tracked returns the number of client buckets held
func (m *RateLimiter) Tracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.limiters)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

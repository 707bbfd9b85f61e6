package httpx

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/clientdesk/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters. Field tags let the
// profiles be filled from RATELIMIT_<PROFILE>_* environment variables.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int `env:"REQUESTS"`
	// Window is the time window for rate limiting
	Window time.Duration `env:"WINDOW"`
	// Burst allows for temporary bursts above the rate limit
	Burst int `env:"BURST"`
}

// PerSecond is the sustained refill rate of the bucket.
func (c RateLimitConfig) PerSecond() float64 {
	if c.Window <= 0 {
		return 0
	}
	return float64(c.RequestsPerWindow) / c.Window.Seconds()
}

// Default profiles.
var (
	// StrictLimit for signup and signin (brute force prevention).
	// Allows 5 requests per minute, with all 5 available as a burst.
	StrictLimit = RateLimitConfig{
		RequestsPerWindow: 5,
		Window:            time.Minute,
		Burst:             5,
	}

	// LenientLimit for pages, health checks and authenticated reads.
	LenientLimit = RateLimitConfig{
		RequestsPerWindow: 100,
		Window:            time.Minute,
		Burst:             100,
	}
)

// Decision is the outcome of a single Limiter.Allow call.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter is a keyed token bucket.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Config() RateLimitConfig
}

// LimiterFactory builds the Limiter backing a named profile.
type LimiterFactory func(profile string, cfg RateLimitConfig) Limiter

// MemoryLimiters is the LimiterFactory for a single instance: buckets live
// in process memory.
func MemoryLimiters(_ string, cfg RateLimitConfig) Limiter {
	return NewMemoryLimiter(cfg)
}

// KeyExtractor is a function that extracts a unique key from the request
// for rate limiting purposes (e.g., IP address, client ID)
type KeyExtractor func(*http.Request) string

// IPKeyExtractor returns the peer address of the connection. Forwarding
// headers are ignored; use TrustedProxyIPKeyExtractor behind a proxy.
func IPKeyExtractor(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// TrustedProxyIPKeyExtractor reads X-Forwarded-For and X-Real-IP, but only
// when the peer is inside one of the trusted prefixes. The forwarded chain is
// walked from the right and the first untrusted hop is the client. With no
// trusted prefixes it behaves like IPKeyExtractor.
func TrustedProxyIPKeyExtractor(trusted []netip.Prefix) KeyExtractor {
	isTrusted := func(s string) bool {
		addr, err := netip.ParseAddr(strings.TrimSpace(s))
		if err != nil {
			return false
		}
		addr = addr.Unmap()
		for _, p := range trusted {
			if p.Contains(addr) {
				return true
			}
		}
		return false
	}

	return func(r *http.Request) string {
		peer := IPKeyExtractor(r)
		if !isTrusted(peer) {
			return peer
		}

		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			hops := strings.Split(xff, ",")
			for i := len(hops) - 1; i >= 0; i-- {
				hop := strings.TrimSpace(hops[i])
				if hop != "" && !isTrusted(hop) {
					return hop
				}
			}
			if first := strings.TrimSpace(hops[0]); first != "" {
				return first
			}
		}

		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
		return peer
	}
}

// ParseTrustedProxies parses a list of CIDRs or bare addresses.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// ClientIDKeyExtractor extracts the authenticated client ID from the
// request context. Returns empty string for anonymous requests.
func ClientIDKeyExtractor(r *http.Request) string {
	return ClientIDFromContext(r.Context())
}

// CompositeKeyExtractor combines multiple key extractors with a separator.
// Example: CompositeKeyExtractor(":", ClientIDKeyExtractor, IPKeyExtractor)
// would produce keys like "01JN...:192.168.1.1"
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		var parts []string
		for _, extractor := range extractors {
			if key := extractor(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// MemoryLimiter keeps one x/time/rate limiter per key.
type MemoryLimiter struct {
	cfg      RateLimitConfig
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

// NewMemoryLimiter creates an in-process limiter for cfg.
func NewMemoryLimiter(cfg RateLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{
		cfg:         cfg,
		rate:        rate.Limit(cfg.PerSecond()),
		burst:       cfg.Burst,
		lastCleanup: time.Now(),
	}
}

func (rl *MemoryLimiter) Config() RateLimitConfig { return rl.cfg }

// Allow consumes one token for key.
func (rl *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	limiter := rl.getLimiter(key)
	if limiter.Allow() {
		return Decision{Allowed: true}, nil
	}

	// Peek at when the next token lands without consuming it.
	reservation := limiter.Reserve()
	delay := reservation.Delay()
	reservation.Cancel()

	return Decision{Allowed: false, RetryAfter: delay}, nil
}

// getLimiter retrieves or creates a rate limiter for the given key
func (rl *MemoryLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	actual, _ := rl.limiters.LoadOrStore(key, limiter)

	rl.maybeCleanup()

	return actual.(*rate.Limiter)
}

// maybeCleanup drops limiters whose bucket has refilled, i.e. keys that
// have gone quiet, so ephemeral IPs do not accumulate forever.
func (rl *MemoryLimiter) maybeCleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastCleanup) < 5*time.Minute {
		return
	}
	rl.lastCleanup = time.Now()

	rl.limiters.Range(func(key, value any) bool {
		limiter := value.(*rate.Limiter)
		if limiter.Tokens() >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit creates a rate limiting middleware backed by limiter. The
// keyExtractor determines how requests are grouped.
//
// Limiter errors fail open: the request is served and the error logged.
func RateLimit(limiter Limiter, keyExtractor KeyExtractor) Middleware {
	config := limiter.Config()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			key := keyExtractor(r)
			if key == "" {
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			d, err := limiter.Allow(ctx, key)
			if err != nil {
				log.Error("rate limit: limiter unavailable, allowing request", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			if !d.Allowed {
				retryAfter := max(int(math.Ceil(d.RetryAfter.Seconds())), 1)

				w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
				w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", config.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", config.Window.String())

				log.Warn("rate limit exceeded",
					"endpoint", r.URL.Path,
					"retry_after", retryAfter,
				)

				WriteError(w, http.StatusTooManyRequests,
					"rate_limit_exceeded", "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP limits by client IP address only. clientIP resolves the
// address, normally IPKeyExtractor or TrustedProxyIPKeyExtractor.
func RateLimitByIP(limiter Limiter, clientIP KeyExtractor) Middleware {
	return RateLimit(limiter, clientIP)
}

// RateLimitByClient limits by authenticated client ID plus IP. Anonymous
// requests fall back to the IP alone.
func RateLimitByClient(limiter Limiter, clientIP KeyExtractor) Middleware {
	return RateLimit(limiter, CompositeKeyExtractor(":",
		ClientIDKeyExtractor,
		clientIP,
	))
}

package http

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"helicharter-portal/internal/config"
)

// RateLimiter limits requests per client IP
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	proxies  []netip.Prefix
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per IP with the given burst
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		idle:     10 * time.Minute,
	}
}

// TrustProxies lists the peers (IPs or CIDRs) whose X-Forwarded-For header is
// believed. Call it before serving.
func (rl *RateLimiter) TrustProxies(entries []string) error {
	proxies := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		p, err := config.ParseProxy(strings.TrimSpace(e))
		if err != nil {
			return err
		}
		proxies = append(proxies, p)
	}
	rl.proxies = proxies
	return nil
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Sweep forgets visitors idle for longer than ten minutes
func (rl *RateLimiter) Sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idle {
			delete(rl.visitors, ip)
		}
	}
}

// Limit wraps a handler with the per-IP limit
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(rl.clientIP(r), time.Now()) {
			w.Header().Set("Retry-After", "60")
			respondError(w, r, http.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
			return
		}
		next(w, r)
	}
}

// clientIP is the peer address, or for a trusted proxy the right-most
// X-Forwarded-For hop that is not itself a trusted proxy
func (rl *RateLimiter) clientIP(r *http.Request) string {
	peer := remoteIP(r)
	if !rl.trusted(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if _, err := netip.ParseAddr(hop); err != nil {
			return peer
		}
		if !rl.trusted(hop) {
			return hop
		}
		peer = hop
	}
	return peer
}

func (rl *RateLimiter) trusted(ip string) bool {
	if len(rl.proxies) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range rl.proxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package api

import (
	"net/netip"
	"strings"

	"github.com/okian/wagegap/pkg/logger"
)

const defaultRateLimitBurst = 20

// Option configures the API server.
type Option func(*Server)

// WithAllowedOrigins sets the CORS origins. "*" allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		var out []string
		for _, o := range origins {
			for _, part := range strings.Split(o, ",") {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, p)
				}
			}
		}
		if len(out) > 0 {
			s.allowedOrigins = out
		}
	}
}

// WithRateLimit enables per-client token bucket limiting. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.rateLimitRPS = rps
		if burst > 0 {
			s.rateLimitBurst = burst
		}
	}
}

// WithTrustedProxies lists the proxy addresses or CIDRs whose X-Forwarded-For
// header is believed when keying the rate limiter. Entries may be comma separated;
// invalid ones are skipped.
func WithTrustedProxies(proxies ...string) Option {
	return func(s *Server) {
		for _, p := range proxies {
			for _, part := range strings.Split(p, ",") {
				if prefix, ok := parseProxy(strings.TrimSpace(part)); ok {
					s.trustedProxies = append(s.trustedProxies, prefix)
				}
			}
		}
	}
}

func parseProxy(v string) (netip.Prefix, bool) {
	if v == "" {
		return netip.Prefix{}, false
	}
	if strings.Contains(v, "/") {
		p, err := netip.ParsePrefix(v)
		if err != nil {
			return netip.Prefix{}, false
		}
		return p.Masked(), true
	}
	addr, err := netip.ParseAddr(v)
	if err != nil {
		return netip.Prefix{}, false
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), true
}

// WithLogger sets the request logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMiddleware appends middlewares applied inside the built-in chain.
func WithMiddleware(mws ...Middleware) Option {
	return func(s *Server) {
		s.middlewares = append(s.middlewares, mws...)
	}
}

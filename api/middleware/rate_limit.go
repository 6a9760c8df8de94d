package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/nishantzaveri/jewelbooks-backend/api/responses"
	pkgerrors "github.com/nishantzaveri/jewelbooks-backend/pkg/errors"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimitPolicy defines the fixed-window throttling parameters for the
// vendor API surface.
type RateLimitPolicy struct {
	window      time.Duration
	vendorLimit int
}

// NewRateLimitPolicy builds a policy with the supplied window and per-vendor
// limit.
func NewRateLimitPolicy(window time.Duration, vendorLimit int) RateLimitPolicy {
	return RateLimitPolicy{window: window, vendorLimit: vendorLimit}
}

func (p RateLimitPolicy) enabled() bool {
	return p.window > 0 && p.vendorLimit > 0
}

// RateLimit enforces a per-vendor fixed-window counter. Requests that carry
// no vendor scope fall back to a per-IP counter so the limit cannot be
// bypassed by stripping the header.
func RateLimit(policy RateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			scope := "ip:" + clientIP(r)
			if vendorID := VendorIDFromContext(ctx); vendorID != "" {
				scope = "vendor:" + vendorID
			}

			allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(policy.vendorLimit), policy.window)
			if err != nil {
				responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !allowed {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"scope":          scope,
						"attempts":       count,
						"limit":          policy.vendorLimit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "api.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package auth

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pulsekit/pulseboard/internal/metrics"
	"github.com/pulsekit/pulseboard/internal/models"
)

// SessionCookieName is the cookie that carries the session ID.
const SessionCookieName = "sessionId"

// CookieWriter writes and clears the session cookie. Secure is set only
// in production so that plain-HTTP local development keeps working.
type CookieWriter struct {
	Secure bool
}

// SetSessionCookie attaches the session cookie to the response. The
// cookie expires when the session does.
func (c *CookieWriter) SetSessionCookie(w http.ResponseWriter, sessionID string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie overwrites the session cookie with an expired empty
// one so the browser drops it.
func (c *CookieWriter) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionIDFromRequest extracts the session ID from the request cookie.
// Returns "" when the cookie is absent.
func SessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

type contextKey string

const principalContextKey contextKey = "auth.principal"

// ContextWithPrincipal stores the authenticated principal on the context.
func ContextWithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext returns the principal set by the guard, or nil on
// an unauthenticated request.
func PrincipalFromContext(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalContextKey).(*models.Principal)
	return p
}

// Guard is the authentication middleware. Requests without a valid
// session are rejected through the injected responder so that error
// bodies stay uniform with the rest of the API.
type Guard struct {
	service *Service
	respond func(w http.ResponseWriter, r *http.Request, err error)
}

// NewGuard creates a guard around the auth service. respond renders the
// error for rejected requests.
func NewGuard(service *Service, respond func(w http.ResponseWriter, r *http.Request, err error)) *Guard {
	return &Guard{service: service, respond: respond}
}

// RequireSession validates the session cookie and puts the principal on
// the request context before calling the next handler.
func (g *Guard) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := g.service.Principal(r.Context(), SessionIDFromRequest(r))
		if err != nil {
			metrics.RecordSessionValidation(false)
			g.respond(w, r, err)
			return
		}
		metrics.RecordSessionValidation(true)
		next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
	})
}

// RateLimiter limits requests per client IP using a token bucket per IP.
// Idle buckets are dropped by a background cleaner.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
	done     chan struct{}
	stopOnce sync.Once
}

type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter creates a per-IP limiter allowing requests per window
// with a burst of the same size, and starts its cleanup loop.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     rate.Limit(float64(requests) / window.Seconds()),
		burst:    requests,
		done:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether the client IP may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastAccess = time.Now()
	return entry.limiter.Allow()
}

// Stop terminates the cleanup loop.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-10 * time.Minute)
			rl.mu.Lock()
			for ip, entry := range rl.limiters {
				if entry.lastAccess.Before(cutoff) {
					delete(rl.limiters, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// ClientIP extracts the client address for rate limiting, preferring the
// first X-Forwarded-For hop when present.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package admin

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Guard enforces request admission for a capability.
//
// Implementations must be fast and must not block; they must not do I/O.
type Guard interface {
	// Middleware returns a net/http middleware that enforces this guard.
	//
	// Denied requests must respond with HTTP 403.
	Middleware() func(http.Handler) http.Handler
}

type guardFunc func(r *http.Request) bool

func (g guardFunc) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			panic("admin: guard: nil next handler")
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if g == nil || !g(r) {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// DenyAll returns a guard that denies all requests with HTTP 403.
func DenyAll() Guard {
	return guardFunc(func(*http.Request) bool { return false })
}

// AllowAll returns a guard that allows all requests.
func AllowAll() Guard {
	return guardFunc(func(*http.Request) bool { return true })
}

// DefaultTokenHeader is the default header used by token-based guards when not overridden.
const DefaultTokenHeader = "X-Access-Token"

type TokenOption func(*tokenConfig)

type tokenConfig struct {
	header string
}

// WithTokenHeader overrides the token header name for token-based guards.
//
// Empty/blank names are ignored (default is DefaultTokenHeader).
func WithTokenHeader(name string) TokenOption {
	return func(c *tokenConfig) {
		name = strings.TrimSpace(name)
		if name != "" {
			c.header = name
		}
	}
}

// Tokens returns a guard that validates requests using a static token list.
//
// Semantics:
//   - nil/empty tokens => deny-all (fail-closed)
//   - blank tokens are ignored; if none remain => deny-all
//   - the header must be present exactly once
func Tokens(tokens []string, opts ...TokenOption) Guard {
	cfg := tokenConfig{header: DefaultTokenHeader}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	var set [][]byte
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			set = append(set, []byte(t))
		}
	}
	header := http.CanonicalHeaderKey(cfg.header)
	return guardFunc(func(r *http.Request) bool {
		vs := r.Header[header]
		if len(vs) != 1 || vs[0] == "" {
			return false
		}
		got := []byte(vs[0])
		ok := 0
		for _, t := range set {
			ok |= subtle.ConstantTimeCompare(got, t)
		}
		return ok == 1
	})
}

// Check returns a guard backed by a custom fast predicate.
//
// fn must be fast and must not block; it must not do I/O.
// fn == nil is an assembly error and will panic.
func Check(fn func(r *http.Request) bool) Guard {
	if fn == nil {
		panic("admin: Check: nil func")
	}
	return guardFunc(fn)
}

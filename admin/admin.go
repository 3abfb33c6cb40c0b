package admin

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// New assembles and returns the admin subtree handler.
//
// Security & control:
//   - Nothing is mounted unless explicitly enabled via options.
//   - Every enabled capability must have a non-nil Guard (explicit).
//
// Assembly errors are fail-fast and will panic.
func New(opts ...Option) http.Handler {
	b := newBuilder()
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b.build()
}

// Option configures admin assembly.
type Option func(*Builder)

// WithLogger sets the logger that reports recovered handler panics. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if b != nil && l != nil {
			b.logger = l
		}
	}
}

// Builder collects capabilities and builds the final admin handler.
//
// It is intentionally not exposed; users configure admin via Options.
type Builder struct {
	logger *slog.Logger
	paths  map[string]http.Handler // path -> handler (one capability per path)
}

func newBuilder() *Builder {
	return &Builder{
		logger: slog.Default(),
		paths:  make(map[string]http.Handler),
	}
}

func (b *Builder) build() http.Handler {
	mux := http.NewServeMux()
	for path, h := range b.paths {
		mux.Handle(path, h)
	}
	return recoverPanics(b.logger, mux)
}

// recoverPanics keeps the server alive when a handler (or a tweak observer it triggers)
// panics. http.ErrAbortHandler is re-panicked to preserve net/http semantics.
func recoverPanics(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}
			logger.Error("admin: handler panicked",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", p,
				"stack", string(debug.Stack()),
			)
			if !sw.wroteHeader {
				http.Error(sw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(sw, r)
	})
}

// statusWriter tracks whether the response has started.
type statusWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(p)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

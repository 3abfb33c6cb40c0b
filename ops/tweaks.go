package ops

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/evan-idocoding/tweaks/store"
	"github.com/evan-idocoding/tweaks/value"
)

type tweaksConfig struct {
	format Format

	guards []func(id string) bool
	guard  func(id string) bool
}

// Option configures tweak handlers.
type Option func(*tweaksConfig)

// WithDefaultFormat sets the default response format.
//
// This default can be overridden per request by URL query:
//   - ?format=json
//   - ?format=text
//
// Default is FormatText.
func WithDefaultFormat(f Format) Option {
	return func(c *tweaksConfig) { c.format = f }
}

// WithGuard appends an identifier guard.
//
// All guards are combined with AND: a tweak is visible only if all guards allow its
// identifier. This applies to both read and write handlers.
func WithGuard(fn func(id string) bool) Option {
	return func(c *tweaksConfig) {
		if fn != nil {
			c.guards = append(c.guards, fn)
		}
	}
}

// WithAllowCategories restricts tweaks to the named categories.
//
// Safety note: if no non-empty category is provided, this option denies all tweaks.
func WithAllowCategories(categories ...string) Option {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return WithGuard(func(id string) bool {
		cat, _, _, ok := store.SplitIdentifier(id)
		if !ok {
			return false
		}
		_, ok = set[cat]
		return ok
	})
}

// WithAllowIdentifiers restricts tweaks to the provided explicit set.
//
// Safety note: if no non-empty identifier is provided, this option denies all tweaks.
func WithAllowIdentifiers(ids ...string) Option {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return WithGuard(func(id string) bool {
		_, ok := set[id]
		return ok
	})
}

func applyOptions(opts []Option) tweaksConfig {
	cfg := tweaksConfig{format: FormatText}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.format != FormatText && cfg.format != FormatJSON {
		cfg.format = FormatText
	}
	if len(cfg.guards) > 0 {
		guards := cfg.guards
		cfg.guard = func(id string) bool {
			for _, g := range guards {
				if !g(id) {
					return false
				}
			}
			return true
		}
	}
	return cfg
}

func (c tweaksConfig) allowed(id string) bool { return c.guard == nil || c.guard(id) }

// SnapshotHandler returns a handler that outputs every tweak of s.
//
// Behavior:
//   - GET/HEAD only; other methods return 405.
//   - Tweaks rejected by a guard are left out.
func SnapshotHandler(s *store.Store, opts ...Option) http.Handler {
	if s == nil {
		panic("ops: nil store.Store")
	}
	cfg := applyOptions(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format := formatFromRequest(r, cfg.format)
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeSnapshot(w, r, format, http.StatusMethodNotAllowed, snapshotResponse{Error: "method not allowed"})
			return
		}
		snap := s.Snapshot()
		if cfg.guard != nil {
			snap = filterSnapshot(snap, cfg.guard)
		}
		writeSnapshot(w, r, format, http.StatusOK, snapshotResponse{OK: true, Tweaks: &snap})
	})
}

// LookupHandler returns a handler that outputs a single tweak.
//
// Input:
//   - GET/HEAD only
//   - URL query: ?id=<tweak identifier>
func LookupHandler(s *store.Store, opts ...Option) http.Handler {
	if s == nil {
		panic("ops: nil store.Store")
	}
	cfg := applyOptions(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format := formatFromRequest(r, cfg.format)
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeLookup(w, r, format, http.StatusMethodNotAllowed, lookupResponse{Error: "method not allowed"})
			return
		}
		tw, code, msg := resolve(r, s, cfg)
		if tw == nil {
			writeLookup(w, r, format, code, lookupResponse{Error: msg})
			return
		}
		it := tw.Item()
		writeLookup(w, r, format, http.StatusOK, lookupResponse{OK: true, Item: &it})
	})
}

// SetHandler returns a handler that sets the current value of a tweak from text.
//
// Input:
//   - POST only
//   - URL query: ?id=<tweak identifier>&value=<text>
//
// The text is parsed as the kind of the tweak default (see value.Parse). Values outside the
// possible values are rejected with 400 and leave the tweak unchanged.
func SetHandler(s *store.Store, opts ...Option) http.Handler {
	if s == nil {
		panic("ops: nil store.Store")
	}
	cfg := applyOptions(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format := formatFromRequest(r, cfg.format)
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			writeWrite(w, format, http.StatusMethodNotAllowed, writeResponse{Error: "method not allowed"})
			return
		}
		tw, code, msg := resolve(r, s, cfg)
		if tw == nil {
			writeWrite(w, format, code, writeResponse{Error: msg})
			return
		}
		raw, ok := getQueryRaw(r, "value")
		if !ok {
			writeWrite(w, format, http.StatusBadRequest, writeResponse{Error: "missing value"})
			return
		}

		old := tw.Item()
		err := func() error {
			if tw.IsAction() {
				return tw.SetCurrentValue(value.None())
			}
			v, err := value.Parse(tw.DefaultValue().Kind(), raw)
			if err != nil {
				return err
			}
			return tw.SetCurrentValue(v)
		}()
		if err != nil {
			writeWrite(w, format, mapWriteErrorToStatus(err), writeResponse{
				Error: err.Error(),
				ID:    tw.Identifier(),
				Old:   &old,
			})
			return
		}
		newIt := tw.Item()
		writeWrite(w, format, http.StatusOK, writeResponse{OK: true, ID: tw.Identifier(), Old: &old, New: &newIt})
	})
}

// ResetHandler returns a handler that reverts tweaks to their defaults.
//
// Input:
//   - POST only
//   - URL query: ?id=<tweak identifier> resets one tweak; without id every tweak allowed by
//     the guards is reset.
func ResetHandler(s *store.Store, opts ...Option) http.Handler {
	if s == nil {
		panic("ops: nil store.Store")
	}
	cfg := applyOptions(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format := formatFromRequest(r, cfg.format)
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			writeWrite(w, format, http.StatusMethodNotAllowed, writeResponse{Error: "method not allowed"})
			return
		}

		if _, ok := getQueryRaw(r, "id"); !ok {
			n := 0
			for _, tw := range s.Tweaks() {
				if tw.IsAction() || !cfg.allowed(tw.Identifier()) {
					continue
				}
				if err := tw.Reset(); err == nil {
					n++
				}
			}
			writeWrite(w, format, http.StatusOK, writeResponse{OK: true, Reset: n})
			return
		}

		tw, code, msg := resolve(r, s, cfg)
		if tw == nil {
			writeWrite(w, format, code, writeResponse{Error: msg})
			return
		}
		old := tw.Item()
		if err := tw.Reset(); err != nil {
			writeWrite(w, format, mapWriteErrorToStatus(err), writeResponse{Error: err.Error(), ID: tw.Identifier(), Old: &old})
			return
		}
		newIt := tw.Item()
		writeWrite(w, format, http.StatusOK, writeResponse{OK: true, ID: tw.Identifier(), Old: &old, New: &newIt, Reset: 1})
	})
}

// PerformHandler returns a handler that runs an action tweak.
//
// Input:
//   - POST only
//   - URL query: ?id=<tweak identifier>
//
// The action runs synchronously on the request goroutine.
func PerformHandler(s *store.Store, opts ...Option) http.Handler {
	if s == nil {
		panic("ops: nil store.Store")
	}
	cfg := applyOptions(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format := formatFromRequest(r, cfg.format)
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			writeWrite(w, format, http.StatusMethodNotAllowed, writeResponse{Error: "method not allowed"})
			return
		}
		tw, code, msg := resolve(r, s, cfg)
		if tw == nil {
			writeWrite(w, format, code, writeResponse{Error: msg})
			return
		}
		if err := tw.Perform(); err != nil {
			writeWrite(w, format, mapWriteErrorToStatus(err), writeResponse{Error: err.Error(), ID: tw.Identifier()})
			return
		}
		writeWrite(w, format, http.StatusOK, writeResponse{OK: true, ID: tw.Identifier(), Performed: true})
	})
}

// resolve finds the tweak named by ?id=. On failure it returns the status and message to
// report.
func resolve(r *http.Request, s *store.Store, cfg tweaksConfig) (*store.Tweak, int, string) {
	id, ok := getQueryRequired(r, "id")
	if !ok {
		return nil, http.StatusBadRequest, "missing id"
	}
	if _, _, _, ok := store.SplitIdentifier(id); !ok {
		return nil, http.StatusBadRequest, "invalid id"
	}
	if !cfg.allowed(id) {
		return nil, http.StatusForbidden, "tweak not allowed"
	}
	tw := s.TweakWithIdentifier(id)
	if tw == nil {
		return nil, http.StatusNotFound, "tweak not found"
	}
	return tw, http.StatusOK, ""
}

type snapshotResponse struct {
	OK     bool            `json:"ok"`
	Error  string          `json:"error,omitempty"`
	Tweaks *store.Snapshot `json:"tweaks,omitempty"`
}

type lookupResponse struct {
	OK    bool        `json:"ok"`
	Error string      `json:"error,omitempty"`
	Item  *store.Item `json:"item,omitempty"`
}

type writeResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	ID  string      `json:"id,omitempty"`
	Old *store.Item `json:"old,omitempty"`
	New *store.Item `json:"new,omitempty"`

	Reset     int  `json:"reset,omitempty"`
	Performed bool `json:"performed,omitempty"`
}

func writeSnapshot(w http.ResponseWriter, r *http.Request, f Format, code int, resp snapshotResponse) {
	w.Header().Set("Cache-Control", "no-store")
	switch f {
	case FormatJSON:
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		if r.Method == http.MethodHead {
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(code)
		if r.Method == http.MethodHead {
			return
		}
		if !resp.OK || resp.Tweaks == nil {
			writeTextError(w, resp.Error)
			return
		}
		var b strings.Builder
		for _, it := range resp.Tweaks.Items {
			appendItemLines(&b, "", it)
		}
		_, _ = w.Write([]byte(b.String()))
	}
}

func writeLookup(w http.ResponseWriter, r *http.Request, f Format, code int, resp lookupResponse) {
	w.Header().Set("Cache-Control", "no-store")
	switch f {
	case FormatJSON:
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		if r.Method == http.MethodHead {
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(code)
		if r.Method == http.MethodHead {
			return
		}
		if !resp.OK || resp.Item == nil {
			writeTextError(w, resp.Error)
			return
		}
		var b strings.Builder
		appendItemLines(&b, "", *resp.Item)
		_, _ = w.Write([]byte(b.String()))
	}
}

func writeWrite(w http.ResponseWriter, f Format, code int, resp writeResponse) {
	w.Header().Set("Cache-Control", "no-store")
	switch f {
	case FormatJSON:
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(code)
		if !resp.OK {
			writeTextError(w, resp.Error)
			return
		}
		_, _ = w.Write([]byte(renderWriteText(resp)))
	}
}

// appendItemLines renders one tweak, one field per line.
// Format: tweak\t<id>\t<field>\t<value>\n
func appendItemLines(b *strings.Builder, prefix string, it store.Item) {
	write := func(field, v string) {
		if v == "" && field != "value" {
			return
		}
		b.WriteString("tweak\t")
		b.WriteString(escapeTextField(it.Identifier))
		b.WriteByte('\t')
		b.WriteString(prefix)
		b.WriteString(field)
		b.WriteByte('\t')
		b.WriteString(escapeTextField(v))
		b.WriteByte('\n')
	}
	write("kind", it.Kind)
	write("value", it.Value)
	write("default", it.DefaultValue)
	write("source", it.Source.String())
	write("possible", it.PossibleValues)
	write("min", it.Minimum)
	write("max", it.Maximum)
	write("step", it.Step)
	write("precision", it.Precision)
}

func renderWriteText(resp writeResponse) string {
	var b strings.Builder
	if resp.Old != nil {
		appendItemLines(&b, "old.", *resp.Old)
	}
	if resp.New != nil {
		appendItemLines(&b, "new.", *resp.New)
	}
	if resp.Performed {
		b.WriteString("tweak\t" + escapeTextField(resp.ID) + "\tperformed\ttrue\n")
	}
	if resp.ID == "" {
		b.WriteString("tweaks\treset\t" + strconv.Itoa(resp.Reset) + "\n")
	}
	return b.String()
}

func filterSnapshot(s store.Snapshot, guard func(string) bool) store.Snapshot {
	out := store.Snapshot{Items: make([]store.Item, 0, len(s.Items))}
	for _, it := range s.Items {
		if guard(it.Identifier) {
			out.Items = append(out.Items, it)
		}
	}
	return out
}

func mapWriteErrorToStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, store.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, value.ErrTypeMismatch):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrInvalidOperation):
		return http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

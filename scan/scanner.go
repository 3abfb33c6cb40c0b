package scan

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/evan-idocoding/tweaks/store"
	"github.com/evan-idocoding/tweaks/value"
)

type config struct {
	logger  *slog.Logger
	records []Record
	fixed   bool
}

// Option configures a Scanner.
type Option func(*config)

// WithLogger sets the logger used to report skipped and conflicting declarations.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithRecords makes the scanner read recs instead of the process-wide declaration table.
func WithRecords(recs ...Record) Option {
	return func(c *config) {
		c.records = append([]Record(nil), recs...)
		c.fixed = true
	}
}

// Report summarizes what a scanner did.
type Report struct {
	// Materialized counts tweaks created in the store.
	Materialized int
	// Skipped holds one error per record that could not be decoded or created.
	Skipped []error
	// Duplicates holds one error per record whose identifier was already taken by a
	// different declaration. Each wraps store.ErrDuplicateIdentifier.
	Duplicates []error
}

// Scanner turns declaration records into tweaks of a store.
//
// Scan walks the declarations once per Scanner; later calls return the first report.
// Materialize handles records that appear afterwards (inline declarations).
type Scanner struct {
	store  *store.Store
	logger *slog.Logger

	records []Record
	fixed   bool

	once sync.Once

	mu      sync.Mutex
	seen    map[string]decoded
	flagged map[string]struct{}
	report  Report
}

// New creates a Scanner that materializes into s.
func New(s *store.Store, opts ...Option) *Scanner {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if s == nil {
		s = store.Default()
	}
	return &Scanner{
		store:   s,
		logger:  cfg.logger,
		records: cfg.records,
		fixed:   cfg.fixed,
		seen:    make(map[string]decoded),
		flagged: make(map[string]struct{}),
	}
}

var (
	defaultOnce sync.Once
	defaultSc   *Scanner
)

// Default returns the process-wide Scanner, bound to store.Default() and the process-wide
// declaration table.
func Default() *Scanner {
	defaultOnce.Do(func() { defaultSc = New(store.Default()) })
	return defaultSc
}

// Store returns the store the scanner materializes into.
func (sc *Scanner) Store() *store.Store { return sc.store }

// Scan materializes every declared record. Only the first call does any work.
func (sc *Scanner) Scan() Report {
	sc.once.Do(func() {
		recs := sc.records
		if !sc.fixed {
			recs = Declared()
		}
		for _, rec := range recs {
			_, _ = sc.Materialize(rec)
		}
		sc.logger.Debug("tweaks: declarations scanned", "records", len(recs))
	})
	return sc.Report()
}

// Report returns what the scanner did so far.
func (sc *Scanner) Report() Report {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return Report{
		Materialized: sc.report.Materialized,
		Skipped:      append([]error(nil), sc.report.Skipped...),
		Duplicates:   append([]error(nil), sc.report.Duplicates...),
	}
}

// Lookup scans if needed and returns the tweak declared under category, collection and
// name, or nil.
func (sc *Scanner) Lookup(category, collection, name string) *store.Tweak {
	sc.Scan()
	return sc.store.TweakWithIdentifier(store.Identifier(category, collection, name))
}

// Materialize creates the tweak described by rec, along with its category and collection
// when missing, and returns it.
//
// When the identifier is already present the existing tweak is returned. If rec describes
// a different tweak than the first declaration, the error wraps store.ErrDuplicateIdentifier
// and the first tweak is still returned. Records that cannot be decoded yield an error
// wrapping ErrUnrecognizedMetadata, along with the tweak already registered under the
// identifier, if any.
func (sc *Scanner) Materialize(rec Record) (*store.Tweak, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	id := rec.Identifier()
	d, err := decode(rec)
	existing := sc.store.TweakWithIdentifier(id)
	if err != nil {
		sc.skip(rec, err)
		return existing, err
	}
	if existing != nil {
		return existing, sc.check(rec, id, existing, d)
	}

	col, err := sc.collection(rec.Category, rec.Collection)
	if err != nil {
		sc.skip(rec, err)
		return nil, err
	}
	var t *store.Tweak
	if fn, ok := d.def.AsAction(); ok {
		t, err = store.NewAction(id, rec.Name, fn)
	} else {
		t, err = store.NewTweak(id,
			store.WithName(rec.Name),
			store.WithDefault(d.def),
			store.WithPossibleValues(d.possible),
		)
	}
	if err != nil {
		sc.skip(rec, err)
		return nil, err
	}
	if err := col.AddTweak(t); err != nil {
		if errors.Is(err, store.ErrDuplicateIdentifier) {
			if prev := sc.store.TweakWithIdentifier(id); prev != nil {
				return prev, sc.check(rec, id, prev, d)
			}
		}
		sc.skip(rec, err)
		return nil, err
	}
	sc.seen[id] = d
	sc.report.Materialized++
	return t, nil
}

func (sc *Scanner) collection(category, collection string) (*store.Collection, error) {
	cat := sc.store.TweakCategoryWithName(category)
	if cat == nil {
		cat = store.NewCategory(category)
		if err := sc.store.AddTweakCategory(cat); err != nil {
			if cat = sc.store.TweakCategoryWithName(category); cat == nil {
				return nil, err
			}
		}
	}
	col := cat.TweakCollectionWithName(collection)
	if col == nil {
		col = store.NewCollection(collection)
		if err := cat.AddTweakCollection(col); err != nil {
			if col = cat.TweakCollectionWithName(collection); col == nil {
				return nil, err
			}
		}
	}
	return col, nil
}

// check compares a repeated declaration with the first one. Identical declarations (the
// same call site evaluated twice) are not conflicts; a conflicting one is reported once.
func (sc *Scanner) check(rec Record, id string, t *store.Tweak, d decoded) error {
	first, ok := sc.seen[id]
	if !ok {
		first = decoded{def: t.DefaultValue(), possible: t.PossibleValues()}
	}
	if sameDeclaration(first, d) {
		return nil
	}
	err := fmt.Errorf("%w: %v: %q already declared with default %v", store.ErrDuplicateIdentifier, rec, id, first.def)
	key := declarationKey(id, rec.Signature, d)
	if _, ok := sc.flagged[key]; ok {
		return err
	}
	sc.flagged[key] = struct{}{}
	sc.report.Duplicates = append(sc.report.Duplicates, err)
	sc.logger.Warn("tweaks: conflicting declaration, keeping first",
		"id", id,
		"default", d.def.String(),
		"firstDefault", first.def.String(),
	)
	return err
}

func (sc *Scanner) skip(rec Record, err error) {
	key := "skip\x00" + err.Error()
	if _, ok := sc.flagged[key]; ok {
		return
	}
	sc.flagged[key] = struct{}{}
	sc.report.Skipped = append(sc.report.Skipped, err)
	sc.logger.Warn("tweaks: skipping declaration",
		"category", rec.Category,
		"collection", rec.Collection,
		"name", rec.Name,
		"signature", rec.Signature,
		"err", err,
	)
}

func sameDeclaration(a, b decoded) bool {
	if a.def.Kind() != b.def.Kind() {
		return false
	}
	if a.def.Kind() == value.KindAction {
		return true
	}
	if !value.Equal(a.def, b.def) {
		return false
	}
	return value.EqualConstraints(a.possible, b.possible)
}

// declarationKey identifies a conflicting declaration so that it is reported once.
func declarationKey(id, sig string, d decoded) string {
	var b strings.Builder
	b.WriteString(id + "\x00" + sig + "\x00" + d.def.Kind().String() + ":" + d.def.String())
	switch c := d.possible.(type) {
	case value.NumericRange:
		b.WriteString("\x00range:" + c.Min().Kind().String() + ":" + c.Min().String() + "," + c.Max().Kind().String() + ":" + c.Max().String())
	case value.Choices:
		b.WriteString("\x00choices")
		for _, v := range c {
			b.WriteString("\x00" + v.Kind().String() + ":" + v.String())
		}
	case value.Mapping:
		b.WriteString("\x00mapping")
		for _, k := range c.Keys() {
			v, _ := c.Lookup(k)
			b.WriteString("\x00" + k + "=" + v.Kind().String() + ":" + v.String())
		}
	}
	return b.String()
}

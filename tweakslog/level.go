package tweakslog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/evan-idocoding/tweaks/bind"
	"github.com/evan-idocoding/tweaks/scan"
	"github.com/evan-idocoding/tweaks/store"
	"github.com/evan-idocoding/tweaks/value"
)

// Levels are the possible values of a level tweak, in display order.
var Levels = value.Choices{
	value.String("debug"),
	value.String("info"),
	value.String("warn"),
	value.String("error"),
}

// LevelVar registers a level tweak and binds it to a slog.LevelVar.
//
// The tweak is a string tweak limited to debug / info / warn / error. defaultLevel is
// mapped to one of them. The LevelVar follows every change of the tweak for as long as it
// is referenced.
func LevelVar(sc *scan.Scanner, category, collection, name string, defaultLevel slog.Level) (*store.Tweak, *slog.LevelVar, error) {
	if sc == nil {
		sc = scan.Default()
	}
	sc.Scan()
	tw, err := sc.Materialize(scan.Record{
		Category:   category,
		Collection: collection,
		Name:       name,
		Value:      levelToName(defaultLevel),
		Bounds:     Levels,
		Signature:  scan.SigObject,
	})
	if tw == nil {
		return nil, nil, err
	}
	if _, ok := tw.PossibleValues().(value.Choices); !ok {
		return nil, nil, fmt.Errorf("%w: %q is not a level tweak", store.ErrDuplicateIdentifier, tw.Identifier())
	}

	lv := new(slog.LevelVar)
	if _, err := bind.Bind(tw, lv, func(lv *slog.LevelVar, s string) {
		lv.Set(nameToLevel(s))
	}); err != nil {
		return nil, nil, err
	}
	return tw, lv, nil
}

// Set sets a level tweak from operator input. Input is case-insensitive and accepts the
// aliases "warning" and "err".
func Set(tw *store.Tweak, s string) error {
	name, ok := normalizeLevel(s)
	if !ok {
		return fmt.Errorf("%w: invalid log level %q", store.ErrOutOfRange, s)
	}
	return tw.SetCurrentValue(value.String(name))
}

func normalizeLevel(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "warning":
		s = "warn"
	case "err":
		s = "error"
	}
	switch s {
	case "debug", "info", "warn", "error":
		return s, true
	default:
		return "", false
	}
}

func levelToName(l slog.Level) string {
	// slog: Debug=-4, Info=0, Warn=4, Error=8
	if l < slog.LevelInfo {
		return "debug"
	}
	if l < slog.LevelWarn {
		return "info"
	}
	if l < slog.LevelError {
		return "warn"
	}
	return "error"
}

func nameToLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

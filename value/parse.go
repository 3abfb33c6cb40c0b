package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Parse converts operator input into a Value of the given kind.
//
// Bool values are parsed in a slightly lenient way: case-insensitive true/false, t/f, 1/0,
// yes/no, y/n, on/off. Strings are taken verbatim. Arrays and dictionaries are read as YAML
// flow collections ("[1, 2]", "{a: 1}"). Actions have no textual form and fail with
// ErrTypeMismatch.
func Parse(kind Kind, text string) (Value, error) {
	switch kind {
	case KindNone:
		if strings.TrimSpace(text) == "" {
			return None(), nil
		}
	case KindBool:
		if b, ok := parseBoolLoose(text); ok {
			return Bool(b), nil
		}
		return None(), fmt.Errorf("%w: %q is not a bool", ErrTypeMismatch, text)
	case KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return None(), fmt.Errorf("%w: %q is not an int: %v", ErrTypeMismatch, text, err)
		}
		return Int(i), nil
	case KindUint:
		u, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return None(), fmt.Errorf("%w: %q is not a uint: %v", ErrTypeMismatch, text, err)
		}
		return Uint(u), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return None(), fmt.Errorf("%w: %q is not a float: %v", ErrTypeMismatch, text, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return None(), fmt.Errorf("%w: %q must be finite", ErrTypeMismatch, text)
		}
		return Float(f), nil
	case KindString:
		return String(text), nil
	case KindArray, KindDict:
		var x any
		if err := yaml.Unmarshal([]byte(text), &x); err != nil {
			return None(), fmt.Errorf("%w: %q is not a %s: %v", ErrTypeMismatch, text, kind, err)
		}
		v, err := Of(x)
		if err != nil {
			return None(), err
		}
		if v.kind != kind {
			return None(), fmt.Errorf("%w: %q is not a %s", ErrTypeMismatch, text, kind)
		}
		return v, nil
	}
	return None(), fmt.Errorf("%w: %s values cannot be parsed from text", ErrTypeMismatch, kind)
}

func parseBoolLoose(s string) (bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, false
	}
	s = strings.ToLower(s)
	switch s {
	case "true", "t", "1", "yes", "y", "on":
		return true, true
	case "false", "f", "0", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

package tweaks

import "github.com/evan-idocoding/tweaks/value"

// Option constrains an inline tweak.
type Option struct {
	bounds any
}

// Range limits a numeric tweak to [min, max].
func Range(min, max any) Option {
	return Option{bounds: [2]any{min, max}}
}

// Choices limits a tweak to a fixed set of values.
func Choices(vs ...any) Option {
	return Option{bounds: append([]any(nil), vs...)}
}

// Mapping limits a string tweak to the keys of m. keys gives the display order; when
// omitted keys are sorted.
func Mapping(m map[string]any, keys ...string) Option {
	fields := make(map[string]value.Value, len(m))
	for k, x := range m {
		v, err := value.Of(x)
		if err != nil {
			// Unsupported values make the declaration unrecognizable.
			return Option{bounds: m}
		}
		fields[k] = v
	}
	return Option{bounds: value.NewMapping(fields, keys...)}
}

func boundsOf(opts []Option) any {
	var b any
	for _, o := range opts {
		if o.bounds != nil {
			b = o.bounds
		}
	}
	return b
}

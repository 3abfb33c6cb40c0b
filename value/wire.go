package value

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Wire is the persistent envelope of a Value.
//
// Scalars keep their exact textual form in Data so that int, uint and float survive a
// round trip without the YAML decoder guessing their type. Strings are stored Go-quoted;
// plain YAML scalars lose leading and trailing whitespace.
type Wire struct {
	Kind   string          `yaml:"kind" json:"kind"`
	Data   string          `yaml:"data,omitempty" json:"data,omitempty"`
	Items  []Wire          `yaml:"items,omitempty" json:"items,omitempty"`
	Fields map[string]Wire `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// ToWire converts v to its envelope. Actions fail with ErrNotPersistable.
func ToWire(v Value) (Wire, error) {
	w := Wire{Kind: v.kind.String()}
	switch v.kind {
	case KindNone:
	case KindBool, KindInt, KindUint, KindFloat:
		w.Data = v.String()
	case KindString:
		w.Data = strconv.Quote(v.String())
	case KindAction:
		return Wire{}, ErrNotPersistable
	case KindArray:
		w.Items = make([]Wire, len(v.items))
		for i, it := range v.items {
			iw, err := ToWire(it)
			if err != nil {
				return Wire{}, fmt.Errorf("index %d: %w", i, err)
			}
			w.Items[i] = iw
		}
	case KindDict:
		w.Fields = make(map[string]Wire, len(v.fields))
		for k, it := range v.fields {
			iw, err := ToWire(it)
			if err != nil {
				return Wire{}, fmt.Errorf("key %q: %w", k, err)
			}
			w.Fields[k] = iw
		}
	}
	return w, nil
}

// FromWire is the inverse of ToWire.
func FromWire(w Wire) (Value, error) {
	kind, ok := ParseKind(w.Kind)
	if !ok {
		return None(), fmt.Errorf("%w: unknown kind %q", ErrInvalidEncoding, w.Kind)
	}
	switch kind {
	case KindNone:
		return None(), nil
	case KindBool:
		b, err := strconv.ParseBool(w.Data)
		if err != nil {
			return None(), fmt.Errorf("%w: bool %q", ErrInvalidEncoding, w.Data)
		}
		return Bool(b), nil
	case KindInt:
		i, err := strconv.ParseInt(w.Data, 10, 64)
		if err != nil {
			return None(), fmt.Errorf("%w: int %q", ErrInvalidEncoding, w.Data)
		}
		return Int(i), nil
	case KindUint:
		u, err := strconv.ParseUint(w.Data, 10, 64)
		if err != nil {
			return None(), fmt.Errorf("%w: uint %q", ErrInvalidEncoding, w.Data)
		}
		return Uint(u), nil
	case KindFloat:
		f, err := strconv.ParseFloat(w.Data, 64)
		if err != nil {
			return None(), fmt.Errorf("%w: float %q", ErrInvalidEncoding, w.Data)
		}
		return Float(f), nil
	case KindString:
		str, err := strconv.Unquote(w.Data)
		if err != nil {
			return None(), fmt.Errorf("%w: string %s", ErrInvalidEncoding, w.Data)
		}
		return String(str), nil
	case KindArray:
		items := make([]Value, len(w.Items))
		for i, iw := range w.Items {
			it, err := FromWire(iw)
			if err != nil {
				return None(), fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = it
		}
		return Value{kind: KindArray, items: items}, nil
	case KindDict:
		fields := make(map[string]Value, len(w.Fields))
		for k, iw := range w.Fields {
			it, err := FromWire(iw)
			if err != nil {
				return None(), fmt.Errorf("key %q: %w", k, err)
			}
			fields[k] = it
		}
		return Value{kind: KindDict, fields: fields}, nil
	}
	return None(), fmt.Errorf("%w: %s is not persistable", ErrInvalidEncoding, kind)
}

// Marshal encodes v for a blob store.
func Marshal(v Value) ([]byte, error) {
	w, err := ToWire(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(w)
}

// Unmarshal decodes bytes produced by Marshal.
func Unmarshal(data []byte) (Value, error) {
	var w Wire
	if err := yaml.Unmarshal(data, &w); err != nil {
		return None(), fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return FromWire(w)
}

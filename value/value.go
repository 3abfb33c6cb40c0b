package value

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindAction
	KindArray
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindAction:
		return "action"
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k := KindNone; k <= KindDict; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KindNone, false
}

// IsNumeric reports whether k is one of int, uint or float.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindUint || k == KindFloat
}

// Value is a tagged union holding one tweak value.
//
// The zero Value is none. Values are immutable: arrays and dictionaries are copied on the
// way in and on the way out.
type Value struct {
	kind Kind

	b bool
	i int64
	u uint64
	f float64
	s string

	action func()
	items  []Value
	fields map[string]Value
}

// None returns the absent value.
func None() Value { return Value{} }

func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Int(i int64) Value       { return Value{kind: KindInt, i: i} }
func Uint(u uint64) Value     { return Value{kind: KindUint, u: u} }
func Float(f float64) Value   { return Value{kind: KindFloat, f: f} }
func String(s string) Value   { return Value{kind: KindString, s: s} }
func Array(vs ...Value) Value { return Value{kind: KindArray, items: append([]Value{}, vs...)} }

// Action wraps a parameterless callable. A nil fn yields none.
func Action(fn func()) Value {
	if fn == nil {
		return Value{}
	}
	return Value{kind: KindAction, action: fn}
}

// Dict returns a dictionary value holding a copy of m.
func Dict(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindDict, fields: cp}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNone() bool { return v.kind == KindNone }

// Persistable reports whether v (and everything nested in it) can be stored.
func (v Value) Persistable() bool {
	switch v.kind {
	case KindAction:
		return false
	case KindArray:
		for _, it := range v.items {
			if !it.Persistable() {
				return false
			}
		}
	case KindDict:
		for _, it := range v.fields {
			if !it.Persistable() {
				return false
			}
		}
	}
	return true
}

func (v Value) AsBool() (bool, bool)     { return v.b, v.kind == KindBool }
func (v Value) AsInt() (int64, bool)     { return v.i, v.kind == KindInt }
func (v Value) AsUint() (uint64, bool)   { return v.u, v.kind == KindUint }
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }
func (v Value) AsAction() (func(), bool) { return v.action, v.kind == KindAction }

// AsArray returns a copy of the elements of an array value.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return append([]Value{}, v.items...), true
}

// AsDict returns a copy of the fields of a dictionary value.
func (v Value) AsDict() (map[string]Value, bool) {
	if v.kind != KindDict {
		return nil, false
	}
	cp := make(map[string]Value, len(v.fields))
	for k, f := range v.fields {
		cp[k] = f
	}
	return cp, true
}

// Len returns the element count of arrays and dictionaries, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindDict:
		return len(v.fields)
	}
	return 0
}

// Float64 returns the numeric value of v as a float64.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindUint:
		return float64(v.u), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// Interface returns v as a plain Go value: nil, bool, int64, uint64, float64, string,
// func(), []any or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindUint:
		return v.u
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindAction:
		return v.action
	case KindArray:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			out[i] = it.Interface()
		}
		return out
	case KindDict:
		out := make(map[string]any, len(v.fields))
		for k, it := range v.fields {
			out[k] = it.Interface()
		}
		return out
	}
	return nil
}

// String returns the textual representation of v. It is also the fallback used by Coerce
// when the target is a string.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindAction:
		return "<action>"
	case KindArray:
		parts := make([]string, len(v.items))
		for i, it := range v.items {
			parts[i] = it.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDict:
		keys := sortedKeys(v.fields)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.fields[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}

// Equal reports whether a and b hold the same variant and contents.
// Actions are never equal to anything.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNone:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindUint:
		return a.u == b.u
	case KindFloat:
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for k, av := range a.fields {
			bv, ok := b.fields[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// Of lifts a Go value into a Value.
//
// Supported inputs: nil, Value, bool, every int/uint/float kind (including named types such
// as time.Duration), string, func(), slices and arrays of supported values, and maps with
// string keys.
func Of(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return None(), nil
	case Value:
		return t, nil
	case func():
		return Action(t), nil
	case []Value:
		return Array(t...), nil
	case map[string]Value:
		return Dict(t), nil
	}
	return ofReflect(reflect.ValueOf(x))
}

func ofReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Func:
		if fn, ok := rv.Interface().(func()); ok {
			return Action(fn), nil
		}
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return None(), nil
		}
		if rv.Kind() == reflect.Interface {
			return Of(rv.Elem().Interface())
		}
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			it, err := Of(rv.Index(i).Interface())
			if err != nil {
				return None(), fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = it
		}
		return Value{kind: KindArray, items: items}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		fields := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			it, err := Of(iter.Value().Interface())
			if err != nil {
				return None(), fmt.Errorf("key %q: %w", iter.Key().String(), err)
			}
			fields[iter.Key().String()] = it
		}
		return Value{kind: KindDict, fields: fields}, nil
	case reflect.Invalid:
		return None(), nil
	}
	return None(), fmt.Errorf("%w: unsupported Go type %s", ErrTypeMismatch, rv.Type())
}

// MustOf is like Of but panics on unsupported input. It is meant for literals in tests and
// package-level declarations.
func MustOf(x any) Value {
	v, err := Of(x)
	if err != nil {
		panic(err)
	}
	return v
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

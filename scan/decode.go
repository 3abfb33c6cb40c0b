package scan

import (
	"fmt"
	"math"
	"reflect"

	"github.com/evan-idocoding/tweaks/store"
	"github.com/evan-idocoding/tweaks/value"
)

func identifier(r Record) string { return store.Identifier(r.Category, r.Collection, r.Name) }

// decoded is a record turned into store terms.
type decoded struct {
	def      value.Value
	possible value.Constraint
}

// decode selects the value variant from the record signature.
func decode(r Record) (decoded, error) {
	if r.Category == "" || r.Collection == "" || r.Name == "" {
		return decoded{}, fmt.Errorf("%w: %v: empty category, collection or name", ErrUnrecognizedMetadata, r)
	}
	def, err := decodePayload(r.Signature, r.Value)
	if err != nil {
		return decoded{}, fmt.Errorf("%w: %v: %v", ErrUnrecognizedMetadata, r, err)
	}
	if r.Signature == SigAction {
		if r.Bounds != nil {
			return decoded{}, fmt.Errorf("%w: %v: action with bounds", ErrUnrecognizedMetadata, r)
		}
		return decoded{def: def}, nil
	}
	possible, err := decodeBounds(r.Signature, r.Bounds)
	if err != nil {
		return decoded{}, fmt.Errorf("%w: %v: bounds: %v", ErrUnrecognizedMetadata, r, err)
	}
	return decoded{def: def, possible: possible}, nil
}

func decodePayload(sig string, x any) (value.Value, error) {
	if v, ok := x.(value.Value); ok {
		if sig == SigAction {
			if v.Kind() != value.KindAction {
				return value.None(), fmt.Errorf("signature %q expects an action, got %s", sig, v.Kind())
			}
			return v, nil
		}
		x = v.Interface()
	}
	switch sig {
	case SigBool, SigChar:
		switch t := x.(type) {
		case bool:
			return value.Bool(t), nil
		case int8:
			return value.Bool(t != 0), nil
		}
	case SigShort, SigInt, SigLong, SigLongLong:
		rv := reflect.ValueOf(x)
		switch {
		case isInt(rv):
			return value.Int(rv.Int()), nil
		case isUint(rv) && rv.Uint() <= 1<<63-1:
			return value.Int(int64(rv.Uint())), nil
		}
	case SigUnsignedChar, SigUnsignedShort, SigUnsignedInt, SigUnsignedLong, SigUnsignedLL:
		rv := reflect.ValueOf(x)
		switch {
		case isUint(rv):
			return value.Uint(rv.Uint()), nil
		case isInt(rv) && rv.Int() >= 0:
			return value.Uint(uint64(rv.Int())), nil
		}
	case SigFloat, SigDouble:
		rv := reflect.ValueOf(x)
		switch {
		case rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64:
			return value.Float(rv.Float()), nil
		case isInt(rv):
			return value.Float(float64(rv.Int())), nil
		case isUint(rv):
			return value.Float(float64(rv.Uint())), nil
		}
	case SigCString, SigConstCString:
		switch t := x.(type) {
		case string:
			return value.String(t), nil
		case []byte:
			return value.String(string(t)), nil
		}
	case SigObject:
		rv := reflect.ValueOf(x)
		switch rv.Kind() {
		case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
			v, err := value.Of(x)
			if err != nil {
				return value.None(), err
			}
			if !v.Persistable() {
				return value.None(), fmt.Errorf("signature %q payload holds an action", sig)
			}
			return v, nil
		}
	case SigAction:
		if fn, ok := x.(func()); ok && fn != nil {
			return value.Action(fn), nil
		}
	default:
		return value.None(), fmt.Errorf("unknown signature %q", sig)
	}
	return value.None(), fmt.Errorf("signature %q does not match payload %T", sig, x)
}

func decodeBounds(sig string, x any) (value.Constraint, error) {
	switch t := x.(type) {
	case nil:
		return nil, nil
	case value.NumericRange:
		return t, nil
	case value.Choices:
		return t, nil
	case value.Mapping:
		return t, nil
	case [2]any:
		lo, err := decodeBound(sig, t[0])
		if err != nil {
			return nil, fmt.Errorf("min: %w", err)
		}
		hi, err := decodeBound(sig, t[1])
		if err != nil {
			return nil, fmt.Errorf("max: %w", err)
		}
		return value.NewRange(lo, hi)
	}
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make(value.Choices, rv.Len())
		for i := range out {
			v, err := value.Of(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case reflect.Map:
		v, err := value.Of(x)
		if err != nil {
			return nil, err
		}
		m, ok := v.AsDict()
		if !ok {
			return nil, fmt.Errorf("mapping keys must be strings, got %T", x)
		}
		return value.NewMapping(m), nil
	}
	return nil, fmt.Errorf("unsupported bounds %T", x)
}

// decodeBound decodes a range bound. Bounds need not share the default's Go type: any
// numeric literal is accepted and converted to the default's variant when that is exact.
func decodeBound(sig string, x any) (value.Value, error) {
	if v, err := decodePayload(sig, x); err == nil {
		return v, nil
	}
	v, ok := x.(value.Value)
	if !ok {
		var err error
		if v, err = value.Of(x); err != nil {
			return value.None(), err
		}
	}
	if !v.Kind().IsNumeric() {
		return value.None(), fmt.Errorf("bound %T is not numeric", x)
	}
	f, _ := v.Float64()
	if v.Kind() == value.KindFloat && f == math.Trunc(f) {
		switch {
		case f >= math.MinInt64 && f < math.MaxInt64:
			if exact, err := decodePayload(sig, int64(f)); err == nil {
				return exact, nil
			}
		case f >= 0 && f < math.MaxUint64:
			if exact, err := decodePayload(sig, uint64(f)); err == nil {
				return exact, nil
			}
		}
	}
	return v, nil
}

func isInt(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

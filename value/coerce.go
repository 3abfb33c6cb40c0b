package value

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var actionType = reflect.TypeOf((func())(nil))

// Coerce converts v to the caller's static type T.
//
// Conversion rules:
//   - bool, int, uint and float targets accept any numeric or bool value (bool is 0/1,
//     float to int truncates toward zero) and strings that parse as such.
//   - string targets accept every value through its textual form (Value.String).
//   - func() targets accept actions; any/interface{} targets receive Value.Interface.
//   - slice and map[string] targets accept arrays and dictionaries, element-wise.
//   - Value targets receive v unchanged.
//
// Unconvertible pairs (including overflow of a sized integer) fail with ErrTypeMismatch.
func Coerce[T any](v Value) (T, error) {
	var out T
	if p, ok := any(&out).(*Value); ok {
		*p = v
		return out, nil
	}
	if err := coerceInto(reflect.ValueOf(&out).Elem(), v); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func coerceInto(dst reflect.Value, v Value) error {
	if dst.Type() == reflect.TypeOf(Value{}) {
		dst.Set(reflect.ValueOf(v))
		return nil
	}
	switch dst.Kind() {
	case reflect.Bool:
		b, err := toBool(v)
		if err != nil {
			return err
		}
		dst.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := toInt(v)
		if err != nil {
			return err
		}
		if dst.OverflowInt(i) {
			return fmt.Errorf("%w: %d overflows %s", ErrTypeMismatch, i, dst.Type())
		}
		dst.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := toUint(v)
		if err != nil {
			return err
		}
		if dst.OverflowUint(u) {
			return fmt.Errorf("%w: %d overflows %s", ErrTypeMismatch, u, dst.Type())
		}
		dst.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := toFloat(v)
		if err != nil {
			return err
		}
		dst.SetFloat(f)
		return nil
	case reflect.String:
		dst.SetString(v.String())
		return nil
	case reflect.Interface:
		if dst.NumMethod() != 0 {
			break
		}
		if x := v.Interface(); x != nil {
			dst.Set(reflect.ValueOf(x))
		} else {
			dst.Set(reflect.Zero(dst.Type()))
		}
		return nil
	case reflect.Func:
		fn, ok := v.AsAction()
		if !ok || dst.Type() != actionType {
			break
		}
		dst.Set(reflect.ValueOf(fn))
		return nil
	case reflect.Slice:
		items, ok := v.AsArray()
		if !ok {
			break
		}
		out := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, it := range items {
			if err := coerceInto(out.Index(i), it); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		dst.Set(out)
		return nil
	case reflect.Map:
		fields, ok := v.AsDict()
		if !ok || dst.Type().Key().Kind() != reflect.String {
			break
		}
		out := reflect.MakeMapWithSize(dst.Type(), len(fields))
		for k, it := range fields {
			ev := reflect.New(dst.Type().Elem()).Elem()
			if err := coerceInto(ev, it); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(dst.Type().Key()), ev)
		}
		dst.Set(out)
		return nil
	}
	return fmt.Errorf("%w: cannot convert %s to %s", ErrTypeMismatch, v.kind, dst.Type())
}

func toBool(v Value) (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindInt:
		return v.i != 0, nil
	case KindUint:
		return v.u != 0, nil
	case KindFloat:
		return v.f != 0, nil
	case KindString:
		if b, ok := parseBoolLoose(v.s); ok {
			return b, nil
		}
	}
	return false, fmt.Errorf("%w: cannot convert %s %q to bool", ErrTypeMismatch, v.kind, v.String())
}

func toInt(v Value) (int64, error) {
	switch v.kind {
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindInt:
		return v.i, nil
	case KindUint:
		if v.u <= math.MaxInt64 {
			return int64(v.u), nil
		}
	case KindFloat:
		if t := math.Trunc(v.f); !math.IsNaN(t) && t >= math.MinInt64 && t < math.MaxInt64 {
			return int64(t), nil
		}
	case KindString:
		s := strings.TrimSpace(v.s)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return toInt(Float(f))
		}
	}
	return 0, fmt.Errorf("%w: cannot convert %s %q to int", ErrTypeMismatch, v.kind, v.String())
}

func toUint(v Value) (uint64, error) {
	switch v.kind {
	case KindUint:
		return v.u, nil
	case KindString:
		if u, err := strconv.ParseUint(strings.TrimSpace(v.s), 10, 64); err == nil {
			return u, nil
		}
	}
	i, err := toInt(v)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%w: cannot convert %s %q to uint", ErrTypeMismatch, v.kind, v.String())
	}
	return uint64(i), nil
}

func toFloat(v Value) (float64, error) {
	switch v.kind {
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindInt, KindUint, KindFloat:
		f, _ := v.Float64()
		return f, nil
	case KindString:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64); err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: cannot convert %s %q to float", ErrTypeMismatch, v.kind, v.String())
}

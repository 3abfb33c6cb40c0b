package manifest

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/evan-idocoding/tweaks/value"
)

// evalValue evaluates an attribute expression. A missing attribute yields none.
func evalValue(expr hcl.Expression) (value.Value, error) {
	if expr == nil {
		return value.None(), nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return value.None(), errors.New(diags.Error())
	}
	return fromCty(v)
}

// fromCty converts a cty value into a Value. Whole numbers become ints (uints when they do
// not fit an int64), other numbers become floats.
func fromCty(v cty.Value) (value.Value, error) {
	if v.IsNull() {
		return value.None(), nil
	}
	if !v.IsKnown() {
		return value.None(), fmt.Errorf("value is not known")
	}
	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return value.Bool(v.True()), nil
	case ty == cty.String:
		return value.String(v.AsString()), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return value.Int(i), nil
			}
			if u, acc := bf.Uint64(); acc == big.Exact {
				return value.Uint(u), nil
			}
		}
		f, _ := bf.Float64()
		return value.Float(f), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var items []value.Value
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			item, err := fromCty(ev)
			if err != nil {
				return value.None(), fmt.Errorf("index %d: %w", len(items), err)
			}
			items = append(items, item)
		}
		return value.Array(items...), nil
	case ty.IsMapType() || ty.IsObjectType():
		fields := make(map[string]value.Value)
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			item, err := fromCty(ev)
			if err != nil {
				return value.None(), fmt.Errorf("key %q: %w", kv.AsString(), err)
			}
			fields[kv.AsString()] = item
		}
		return value.Dict(fields), nil
	}
	return value.None(), fmt.Errorf("unsupported type %s", ty.FriendlyName())
}

// convert forces v to kind. Values of other scalar kinds are coerced; none stays none.
func convert(v value.Value, kind value.Kind) (value.Value, error) {
	if v.IsNone() || v.Kind() == kind {
		return v, nil
	}
	switch kind {
	case value.KindBool:
		b, err := value.Coerce[bool](v)
		return value.Bool(b), err
	case value.KindInt:
		i, err := value.Coerce[int64](v)
		return value.Int(i), err
	case value.KindUint:
		u, err := value.Coerce[uint64](v)
		return value.Uint(u), err
	case value.KindFloat:
		f, err := value.Coerce[float64](v)
		return value.Float(f), err
	case value.KindString:
		return value.String(v.String()), nil
	}
	return value.None(), fmt.Errorf("%w: cannot convert %s to %s", value.ErrTypeMismatch, v.Kind(), kind)
}

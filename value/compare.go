package value

import (
	"cmp"
	"fmt"
)

// Compare orders a and b, returning -1, 0 or +1.
//
// Numeric values compare as numbers across int, uint and float. Strings compare
// lexicographically. Any other pairing fails with ErrTypeMismatch.
func Compare(a, b Value) (int, error) {
	switch {
	case a.kind.IsNumeric() && b.kind.IsNumeric():
		return compareNumeric(a, b), nil
	case a.kind == KindString && b.kind == KindString:
		return cmp.Compare(a.s, b.s), nil
	default:
		return 0, fmt.Errorf("%w: cannot compare %s with %s", ErrTypeMismatch, a.kind, b.kind)
	}
}

func compareNumeric(a, b Value) int {
	switch {
	case a.kind == KindInt && b.kind == KindInt:
		return cmp.Compare(a.i, b.i)
	case a.kind == KindUint && b.kind == KindUint:
		return cmp.Compare(a.u, b.u)
	case a.kind == KindInt && b.kind == KindUint:
		if a.i < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.i), b.u)
	case a.kind == KindUint && b.kind == KindInt:
		return -compareNumeric(b, a)
	}
	af, _ := a.Float64()
	bf, _ := b.Float64()
	return cmp.Compare(af, bf)
}

package scan

import (
	"fmt"
	"reflect"

	"github.com/evan-idocoding/tweaks/value"
)

// Type signatures of declaration records, in Objective-C type encoding so that records
// generated by code generators for mixed codebases decode unchanged.
const (
	SigBool          = "B"
	SigChar          = "c" // BOOL on platforms where it is a signed char
	SigShort         = "s"
	SigInt           = "i"
	SigLong          = "l"
	SigLongLong      = "q"
	SigUnsignedChar  = "C"
	SigUnsignedShort = "S"
	SigUnsignedInt   = "I"
	SigUnsignedLong  = "L"
	SigUnsignedLL    = "Q"
	SigFloat         = "f"
	SigDouble        = "d"
	SigCString       = "*"
	SigConstCString  = "r*"
	SigObject        = "@"
	// SigAction is the reserved sentinel of action records.
	SigAction = "@?"
)

// Record is one tweak declaration.
//
// Value is the default payload, decoded according to Signature. Bounds is optional:
//   - [2]any{min, max} or value.NumericRange: a numeric range
//   - []any (or any slice) or value.Choices: a fixed set of allowed values
//   - map[string]any (or any string-keyed map) or value.Mapping: a dictionary whose keys
//     are the allowed values
type Record struct {
	Category   string
	Collection string
	Name       string

	Value     any
	Bounds    any
	Signature string
}

// Identifier returns the store identifier the record materializes under.
func (r Record) Identifier() string { return identifier(r) }

func (r Record) String() string {
	return fmt.Sprintf("%s/%s/%s (%s)", r.Category, r.Collection, r.Name, r.Signature)
}

// SignatureOf returns the signature of a Go default value: "B" for bools, "q" for signed
// and "Q" for unsigned integers, "f"/"d" for float32/float64, "@?" for func(), and "@" for
// strings, slices, maps and values. Unsupported values yield "".
func SignatureOf(x any) string {
	switch t := x.(type) {
	case nil:
		return ""
	case value.Value:
		switch t.Kind() {
		case value.KindBool:
			return SigBool
		case value.KindInt:
			return SigLongLong
		case value.KindUint:
			return SigUnsignedLL
		case value.KindFloat:
			return SigDouble
		case value.KindAction:
			return SigAction
		case value.KindString, value.KindArray, value.KindDict:
			return SigObject
		}
		return ""
	case func():
		return SigAction
	}
	switch reflect.TypeOf(x).Kind() {
	case reflect.Bool:
		return SigBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return SigLongLong
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return SigUnsignedLL
	case reflect.Float32:
		return SigFloat
	case reflect.Float64:
		return SigDouble
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return SigObject
	}
	return ""
}

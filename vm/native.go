package vm

import "reflect"

// nativeCategory is the classification of an arbitrary Go value before it
// is wrapped. Each category maps to exactly one construction rule.
type nativeCategory uint8

const (
	nativeUnsupported nativeCategory = iota
	nativeNil
	nativeValue
	nativeValueList
	nativeTemplate
	nativeString
	nativeBool
	nativeInt
	nativeUint
	nativeFloat
	nativeSequence
)

// FromNative wraps an arbitrary Go value.
//
// Strings, booleans and every integer or floating point width become the
// matching scalar kind (numbers are widened to float64). A []Value becomes a
// List that aliases the slice. Any other array or slice becomes a fresh List
// whose elements are wrapped one by one with FromNative. Templates keep their
// reference and an existing Value is returned unchanged. nil, nil pointers,
// nil slices and every other type yield No.
func FromNative(x any) Value {
	cat, rv := classifyNative(x)
	switch cat {
	case nativeValue:
		return x.(Value)
	case nativeValueList:
		return FromList(x.([]Value))
	case nativeTemplate:
		return FromTemplate(x.(Template))
	case nativeString:
		return FromString(rv.String())
	case nativeBool:
		return FromBool(rv.Bool())
	case nativeInt:
		return FromNumber(float64(rv.Int()))
	case nativeUint:
		return FromNumber(float64(rv.Uint()))
	case nativeFloat:
		return FromNumber(rv.Float())
	case nativeSequence:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = FromNative(rv.Index(i).Interface())
		}
		return FromList(items)
	}
	return No
}

// classifyNative assigns x to a single category. Concrete package types are
// matched first; everything else is decided by its reflect.Kind, so named
// types (type Celsius float64) classify by their underlying type.
func classifyNative(x any) (nativeCategory, reflect.Value) {
	switch t := x.(type) {
	case nil:
		return nativeNil, reflect.Value{}
	case Value:
		return nativeValue, reflect.Value{}
	case []Value:
		if t == nil {
			return nativeNil, reflect.Value{}
		}
		return nativeValueList, reflect.Value{}
	case Template:
		if isNilRef(reflect.ValueOf(t)) {
			return nativeNil, reflect.Value{}
		}
		return nativeTemplate, reflect.Value{}
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.String:
		return nativeString, rv
	case reflect.Bool:
		return nativeBool, rv
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return nativeInt, rv
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return nativeUint, rv
	case reflect.Float32, reflect.Float64:
		return nativeFloat, rv
	case reflect.Array:
		return nativeSequence, rv
	case reflect.Slice:
		if rv.IsNil() {
			return nativeNil, rv
		}
		return nativeSequence, rv
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		if rv.IsNil() {
			return nativeNil, rv
		}
	}
	return nativeUnsupported, rv
}

// isNilRef reports whether rv is a nil pointer-like value stored in a
// non-nil interface.
func isNilRef(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

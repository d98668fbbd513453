package vm

import "reflect"

// Value is a Rant runtime value.
//
// A Value holds exactly one of six kinds. Only the field belonging to the
// current kind is populated; all other fields stay at their zero value, so two
// Values of the same kind never carry stale payloads from another kind.
//
// The zero Value is No. Values are never mutated after construction: every
// conversion, operator and Clone returns a new Value.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	list []Value
	tmpl Template
}

// No is the absent value. It is returned wherever an operation has no
// defined result. It is the zero Value; test for it with IsNo, since Values
// are not comparable with ==.
var No Value

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// FromBool creates a Boolean value.
func FromBool(b bool) Value {
	return Value{kind: BooleanKind, b: b}
}

// FromNumber creates a Number value.
func FromNumber(n float64) Value {
	return Value{kind: NumberKind, n: n}
}

// FromString creates a String value.
func FromString(s string) Value {
	return Value{kind: StringKind, s: s}
}

// FromList creates a List value that takes ownership of items.
// A nil slice yields No rather than an empty list; pass a non-nil empty
// slice for ().
func FromList(items []Value) Value {
	if items == nil {
		return No
	}
	return Value{kind: ListKind, list: items}
}

// FromTemplate creates a Template value referencing t.
// A nil template, including a typed nil pointer, yields No.
func FromTemplate(t Template) Value {
	if t == nil || isNilRef(reflect.ValueOf(t)) {
		return No
	}
	return Value{kind: TemplateKind, tmpl: t}
}

// ---------------------------------------------------------------------------
// Type checking
// ---------------------------------------------------------------------------

// Kind returns the kind of value v currently holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNo returns true if v is the absent value.
func (v Value) IsNo() bool {
	return v.kind == NoKind
}

// IsBool returns true if v is a Boolean.
func (v Value) IsBool() bool {
	return v.kind == BooleanKind
}

// IsNumber returns true if v is a Number.
func (v Value) IsNumber() bool {
	return v.kind == NumberKind
}

// IsString returns true if v is a String.
func (v Value) IsString() bool {
	return v.kind == StringKind
}

// IsList returns true if v is a List.
func (v Value) IsList() bool {
	return v.kind == ListKind
}

// IsTemplate returns true if v is a Template.
func (v Value) IsTemplate() bool {
	return v.kind == TemplateKind
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Native returns the Go payload of v: bool, float64, string, []Value or
// Template depending on the kind. No returns nil.
func (v Value) Native() any {
	switch v.kind {
	case BooleanKind:
		return v.b
	case NumberKind:
		return v.n
	case StringKind:
		return v.s
	case ListKind:
		return v.list
	case TemplateKind:
		return v.tmpl
	}
	return nil
}

// Bool returns the boolean payload. ok is false if v is not a Boolean.
func (v Value) Bool() (b bool, ok bool) {
	return v.b, v.kind == BooleanKind
}

// Float64 returns the number payload. ok is false if v is not a Number.
func (v Value) Float64() (n float64, ok bool) {
	return v.n, v.kind == NumberKind
}

// Text returns the string payload. ok is false if v is not a String.
func (v Value) Text() (s string, ok bool) {
	return v.s, v.kind == StringKind
}

// List returns the elements of a List, or nil for any other kind.
// The returned slice is shared with v and must not be modified.
func (v Value) List() []Value {
	return v.list
}

// Template returns the template reference, or nil for any other kind.
func (v Value) Template() Template {
	return v.tmpl
}

// Len returns the number of elements of a List, and 0 for any other kind.
func (v Value) Len() int {
	return len(v.list)
}

// ---------------------------------------------------------------------------
// Cloning
// ---------------------------------------------------------------------------

// Clone returns a copy of v.
//
// For a List the outer sequence is copied into a new slice, so appending to
// or replacing elements of either list does not affect the other. Elements
// themselves are copied as plain Values, which means nested lists still share
// their backing storage with the source. Templates keep their identity.
func (v Value) Clone() Value {
	if v.kind != ListKind {
		return v
	}
	items := make([]Value, len(v.list))
	copy(items, v.list)
	return Value{kind: ListKind, list: items}
}

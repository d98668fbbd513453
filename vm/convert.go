package vm

import "strings"

// kindPair keys the conversion and operator tables.
type kindPair struct {
	from, to Kind
}

type conversion func(v Value) Value

// conversions is the complete directed conversion matrix. Same-kind
// conversions are handled by ConvertTo before the lookup; any pair missing
// from this table converts to No.
var conversions = map[kindPair]conversion{
	{BooleanKind, StringKind}:  renderToString,
	{NumberKind, StringKind}:   renderToString,
	{ListKind, StringKind}:     renderToString,
	{TemplateKind, StringKind}: templateToString,

	{BooleanKind, NumberKind}: boolToNumber,
	{StringKind, NumberKind}:  stringToNumber,

	{NumberKind, BooleanKind}: numberToBool,
	{StringKind, BooleanKind}: stringToBool,

	{NoKind, ListKind}:       wrapInList,
	{BooleanKind, ListKind}:  wrapInList,
	{NumberKind, ListKind}:   wrapInList,
	{StringKind, ListKind}:   wrapInList,
	{TemplateKind, ListKind}: wrapInList,
}

// ConvertTo converts v to kind k. Converting to the current kind returns a
// Clone. When the language defines no conversion for the pair, the result is
// No; callers treat that as "conversion failed".
func (v Value) ConvertTo(k Kind) Value {
	if v.kind == k {
		return v.Clone()
	}
	if conv, ok := conversions[kindPair{v.kind, k}]; ok {
		return conv(v)
	}
	return No
}

// CanConvert reports whether a conversion rule exists from one kind to
// another. A rule existing does not guarantee success: String to Number and
// String to Boolean still yield No for unparsable text.
func CanConvert(from, to Kind) bool {
	if from == to {
		return from.Valid()
	}
	_, ok := conversions[kindPair{from, to}]
	return ok
}

func renderToString(v Value) Value {
	return FromString(v.String())
}

func templateToString(v Value) Value {
	return FromString(v.tmpl.Code())
}

func boolToNumber(v Value) Value {
	if v.b {
		return FromNumber(1)
	}
	return FromNumber(0)
}

func stringToNumber(v Value) Value {
	n, ok := ParseNumber(v.s)
	if !ok {
		return No
	}
	return FromNumber(n)
}

func numberToBool(v Value) Value {
	return FromBool(v.n != 0)
}

func stringToBool(v Value) Value {
	switch strings.ToLower(strings.TrimSpace(v.s)) {
	case "true":
		return FromBool(true)
	case "false":
		return FromBool(false)
	}
	return No
}

func wrapInList(v Value) Value {
	return FromList([]Value{v})
}

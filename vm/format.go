package vm

import (
	"math"
	"strconv"
	"strings"
)

// Numbers with a magnitude in [plainMin, plainMax) render in plain decimal
// notation; everything else uses an exponent.
const (
	plainMin = 1e-4
	plainMax = 1e15
)

// String renders v as text. Rendering is total: every value, including No,
// has a textual form.
//
//	no                  No
//	true, false         Boolean
//	3.5, 1E+15          Number
//	verbatim text       String
//	(a, b, c)           List
//	$'code'             Template
func (v Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)
	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case BooleanKind:
		sb.WriteString(strconv.FormatBool(v.b))
	case NumberKind:
		sb.WriteString(FormatNumber(v.n))
	case StringKind:
		sb.WriteString(v.s)
	case ListKind:
		sb.WriteByte('(')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.writeTo(sb)
		}
		sb.WriteByte(')')
	case TemplateKind:
		sb.WriteString("$'")
		sb.WriteString(v.tmpl.Code())
		sb.WriteByte('\'')
	default:
		sb.WriteString("no")
	}
}

// FormatNumber renders a number the way Rant prints it: the shortest
// decimal that round-trips, in plain notation for ordinary magnitudes and in
// exponent form (1E+15, 1E-05) for very large or very small ones.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	abs := math.Abs(n)
	if abs != 0 && (abs < plainMin || abs >= plainMax) {
		return strconv.FormatFloat(n, 'E', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// ParseNumber parses text as a decimal floating point number. Surrounding
// white space is ignored, as are the spellings produced by FormatNumber for
// infinities and NaN. Hexadecimal forms and digit separators are rejected.
// Values too large for float64 parse as ±Infinity.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "_xXpP") {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return n, true
		}
		return 0, false
	}
	return n, true
}

package vm

import (
	"math"
	"testing"
)

func TestConvertSameKindClones(t *testing.T) {
	for _, v := range sampleValues() {
		got := v.ConvertTo(v.Kind())
		if got.Kind() != v.Kind() {
			t.Errorf("ConvertTo(%s, own kind).Kind() = %v, want %v", v, got.Kind(), v.Kind())
		}
		if got.String() != v.String() {
			t.Errorf("ConvertTo(%s, own kind) = %q, want %q", v, got.String(), v.String())
		}
	}

	items := []Value{FromNumber(1)}
	list := FromList(items)
	got := list.ConvertTo(ListKind)
	got.List()[0] = FromNumber(2)
	if list.String() != "(1)" {
		t.Errorf("ConvertTo(list, list) shares its sequence with the source: %s", list)
	}
}

func TestConvertToString(t *testing.T) {
	tests := []struct {
		in   Value
		want string
	}{
		{FromBool(true), "true"},
		{FromBool(false), "false"},
		{FromNumber(3.5), "3.5"},
		{FromNumber(-10), "-10"},
		{FromNumber(1e20), "1E+20"},
		{FromTemplate(SourceTemplate("[num:1;10]")), "[num:1;10]"},
		{FromList([]Value{}), "()"},
		{FromList([]Value{FromNumber(1), FromString("a"), FromBool(true)}), "(1, a, true)"},
		{FromList([]Value{No, FromTemplate(SourceTemplate("x"))}), "(no, $'x')"},
	}

	for _, tt := range tests {
		got := tt.in.ConvertTo(StringKind)
		s, ok := got.Text()
		if !ok {
			t.Errorf("ConvertTo(%s, string).Kind() = %v, want string", tt.in, got.Kind())
			continue
		}
		if s != tt.want {
			t.Errorf("ConvertTo(%s, string) = %q, want %q", tt.in, s, tt.want)
		}
	}
}

func TestConvertToNumber(t *testing.T) {
	tests := []struct {
		in   Value
		want float64
		ok   bool
	}{
		{FromBool(true), 1, true},
		{FromBool(false), 0, true},
		{FromString("3.5"), 3.5, true},
		{FromString("  42 "), 42, true},
		{FromString("-1e3"), -1000, true},
		{FromString("Infinity"), math.Inf(1), true},
		{FromString("1e400"), math.Inf(1), true},
		{FromString("abc"), 0, false},
		{FromString(""), 0, false},
		{FromString("0x10"), 0, false},
		{FromString("1_000"), 0, false},
		{No, 0, false},
		{FromList([]Value{FromNumber(1)}), 0, false},
		{FromTemplate(SourceTemplate("1")), 0, false},
	}

	for _, tt := range tests {
		got := tt.in.ConvertTo(NumberKind)
		n, ok := got.Float64()
		if ok != tt.ok {
			t.Errorf("ConvertTo(%s, number).Kind() = %v, want ok=%v", tt.in, got.Kind(), tt.ok)
			continue
		}
		if !ok && !got.IsNo() {
			t.Errorf("ConvertTo(%s, number) = %s, want no", tt.in, got)
		}
		if ok && n != tt.want {
			t.Errorf("ConvertTo(%s, number) = %v, want %v", tt.in, n, tt.want)
		}
	}
}

func TestConvertToBoolean(t *testing.T) {
	tests := []struct {
		in   Value
		want Value
	}{
		{FromNumber(0), FromBool(false)},
		{FromNumber(math.Copysign(0, -1)), FromBool(false)},
		{FromNumber(0.001), FromBool(true)},
		{FromNumber(-3), FromBool(true)},
		{FromNumber(math.NaN()), FromBool(true)},
		{FromString("TRUE"), FromBool(true)},
		{FromString("  false "), FromBool(false)},
		{FromString("True"), FromBool(true)},
		{FromString("yes"), No},
		{FromString("1"), No},
		{No, No},
		{FromList([]Value{FromBool(true)}), No},
		{FromTemplate(SourceTemplate("true")), No},
	}

	for _, tt := range tests {
		got := tt.in.ConvertTo(BooleanKind)
		if got.Kind() != tt.want.Kind() || got.String() != tt.want.String() {
			t.Errorf("ConvertTo(%q, boolean) = %v %s, want %v %s", tt.in.String(), got.Kind(), got, tt.want.Kind(), tt.want)
		}
	}
}

func TestConvertToListWraps(t *testing.T) {
	for _, v := range sampleValues() {
		if v.IsList() {
			continue
		}
		got := v.ConvertTo(ListKind)
		if !got.IsList() || got.Len() != 1 {
			t.Errorf("ConvertTo(%s, list) = %v %s, want single-element list", v, got.Kind(), got)
			continue
		}
		if want := "(" + v.String() + ")"; got.String() != want {
			t.Errorf("ConvertTo(%s, list) = %s, want %s", v, got, want)
		}
	}
}

func TestConvertUndefinedPairs(t *testing.T) {
	defined := map[[2]Kind]bool{
		{BooleanKind, StringKind}:  true,
		{NumberKind, StringKind}:   true,
		{TemplateKind, StringKind}: true,
		{ListKind, StringKind}:     true,
		{BooleanKind, NumberKind}:  true,
		{StringKind, NumberKind}:   true,
		{NumberKind, BooleanKind}:  true,
		{StringKind, BooleanKind}:  true,
	}

	for _, v := range sampleValues() {
		for _, k := range Kinds() {
			if k == v.Kind() || k == ListKind || defined[[2]Kind{v.Kind(), k}] {
				continue
			}
			if got := v.ConvertTo(k); !got.IsNo() {
				t.Errorf("ConvertTo(%s, %v) = %v %s, want no", v, k, got.Kind(), got)
			}
			if CanConvert(v.Kind(), k) {
				t.Errorf("CanConvert(%v, %v) = true, want false", v.Kind(), k)
			}
		}
		if got := v.ConvertTo(Kind(200)); !got.IsNo() {
			t.Errorf("ConvertTo(%s, invalid kind) = %s, want no", v, got)
		}
	}
}

func TestConvertRoundTrips(t *testing.T) {
	if got := FromString("3.5").ConvertTo(NumberKind).ConvertTo(StringKind).String(); got != "3.5" {
		t.Errorf("\"3.5\" -> number -> string = %q, want 3.5", got)
	}

	for _, b := range []bool{true, false} {
		got := FromBool(b).ConvertTo(StringKind).ConvertTo(BooleanKind)
		if v, ok := got.Bool(); !ok || v != b {
			t.Errorf("%v -> string -> boolean = %s, want %v", b, got, b)
		}
	}

	// Non-canonical numeric text does not survive the round trip.
	if got := FromString(" 03.50 ").ConvertTo(NumberKind).ConvertTo(StringKind).String(); got != "3.5" {
		t.Errorf("\" 03.50 \" -> number -> string = %q, want 3.5", got)
	}
}

func TestCanConvert(t *testing.T) {
	if !CanConvert(StringKind, NumberKind) {
		t.Error("CanConvert(string, number) = false, want true")
	}
	if !CanConvert(NoKind, ListKind) {
		t.Error("CanConvert(no, list) = false, want true")
	}
	if CanConvert(StringKind, TemplateKind) {
		t.Error("CanConvert(string, template) = true, want false")
	}
	if !CanConvert(TemplateKind, TemplateKind) {
		t.Error("CanConvert(template, template) = false, want true")
	}
}

package main

import (
	"testing"

	"github.com/chazu/rant/vm"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		src      string
		wantKind vm.Kind
		wantText string
	}{
		{"no", vm.NoKind, "no"},
		{"true", vm.BooleanKind, "true"},
		{"false", vm.BooleanKind, "false"},
		{"3.5", vm.NumberKind, "3.5"},
		{" -2 ", vm.NumberKind, "-2"},
		{"1E+15", vm.NumberKind, "1E+15"},
		{"hello world", vm.StringKind, "hello world"},
		{`"no"`, vm.StringKind, "no"},
		{`"tab\there"`, vm.StringKind, "tab\there"},
		{`"3"`, vm.StringKind, "3"},
		{"", vm.StringKind, ""},
		{"+", vm.StringKind, "+"},
		{"$'[rep:3]{a}'", vm.TemplateKind, "$'[rep:3]{a}'"},
		{`$'it\'s'`, vm.TemplateKind, "$'it's'"},
		{"()", vm.ListKind, "()"},
		{"( )", vm.ListKind, "()"},
		{"(1, a, true)", vm.ListKind, "(1, a, true)"},
		{`(1, "x, y", (no, ()))`, vm.ListKind, "(1, x, y, (no, ()))"},
		{"(red green, $'b')", vm.ListKind, "(red green, $'b')"},
	}

	for _, tt := range tests {
		v, err := ParseLiteral(tt.src)
		if err != nil {
			t.Errorf("ParseLiteral(%q) error: %v", tt.src, err)
			continue
		}
		if v.Kind() != tt.wantKind {
			t.Errorf("ParseLiteral(%q).Kind() = %v, want %v", tt.src, v.Kind(), tt.wantKind)
		}
		if v.String() != tt.wantText {
			t.Errorf("ParseLiteral(%q) = %q, want %q", tt.src, v.String(), tt.wantText)
		}
	}
}

func TestParseLiteralErrors(t *testing.T) {
	for _, src := range []string{
		"(1, 2",
		"(1 2) x",
		`"unterminated`,
		"$'open",
		"(1,",
		`"bad \q escape"`,
	} {
		if v, err := ParseLiteral(src); err == nil {
			t.Errorf("ParseLiteral(%q) = %s, want error", src, v)
		}
	}
}

func TestFormatLiteralRoundTrip(t *testing.T) {
	values := []vm.Value{
		vm.No,
		vm.FromBool(true),
		vm.FromNumber(-1.25),
		vm.FromString("no"),
		vm.FromString(`say "hi", (then) leave`),
		vm.FromTemplate(vm.SourceTemplate("don't")),
		vm.FromList([]vm.Value{vm.FromString("1"), vm.FromNumber(1), vm.FromList([]vm.Value{})}),
	}

	for _, v := range values {
		src := FormatLiteral(v)
		got, err := ParseLiteral(src)
		if err != nil {
			t.Errorf("ParseLiteral(FormatLiteral(%s)) error: %v", v, err)
			continue
		}
		if got.Kind() != v.Kind() || got.String() != v.String() {
			t.Errorf("round trip of %s via %q = %v %s", v, src, got.Kind(), got)
		}
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"show 1", []string{"show", "1"}},
		{`eval "a b" * 3`, []string{"eval", `"a b"`, "*", "3"}},
		{"set xs (1, 2, (3, 4))", []string{"set", "xs", "(1, 2, (3, 4))"}},
		{"show $'a b'", []string{"show", "$'a b'"}},
		{`show "q\"uote"`, []string{"show", `"q\"uote"`}},
		{"  spaced   out ", []string{"spaced", "out"}},
	}

	for _, tt := range tests {
		got, err := splitArgs(tt.line)
		if err != nil {
			t.Errorf("splitArgs(%q) error: %v", tt.line, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("splitArgs(%q) = %q, want %q", tt.line, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitArgs(%q)[%d] = %q, want %q", tt.line, i, got[i], tt.want[i])
			}
		}
	}

	for _, bad := range []string{`show "open`, "show (1, 2"} {
		if _, err := splitArgs(bad); err == nil {
			t.Errorf("splitArgs(%q) should fail", bad)
		}
	}
}

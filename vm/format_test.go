package vm

import (
	"math"
	"testing"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{No, "no"},
		{FromBool(true), "true"},
		{FromBool(false), "false"},
		{FromString("verbatim  text"), "verbatim  text"},
		{FromNumber(42), "42"},
		{FromTemplate(SourceTemplate("[case:upper]hi")), "$'[case:upper]hi'"},
		{FromList([]Value{}), "()"},
		{FromList([]Value{FromNumber(1), FromString("a"), FromBool(true)}), "(1, a, true)"},
		{FromList([]Value{FromList([]Value{}), FromList([]Value{No, FromNumber(2)})}), "((), (no, 2))"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "-0"},
		{1, "1"},
		{-7, "-7"},
		{3.5, "3.5"},
		{0.1, "0.1"},
		{1.0 / 3.0, "0.3333333333333333"},
		{123456789, "123456789"},
		{1e14, "100000000000000"},
		{1e15, "1E+15"},
		{1.5e20, "1.5E+20"},
		{0.0001, "0.0001"},
		{0.00001, "1E-05"},
		{0.000001, "1E-06"},
		{-2.5e-7, "-2.5E-07"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestParseNumberReadsFormatNumber(t *testing.T) {
	for _, n := range []float64{0, 3.5, -12, 1e15, 2.5e-7, 1.0 / 3.0, math.Inf(1), math.Inf(-1)} {
		got, ok := ParseNumber(FormatNumber(n))
		if !ok || got != n {
			t.Errorf("ParseNumber(FormatNumber(%v)) = %v, %v", n, got, ok)
		}
	}
	if got, ok := ParseNumber("NaN"); !ok || !math.IsNaN(got) {
		t.Errorf("ParseNumber(NaN) = %v, %v, want NaN", got, ok)
	}
}

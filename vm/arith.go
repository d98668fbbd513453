package vm

import (
	"math"
	"strings"
)

// Operator is a binary arithmetic operator.
type Operator uint8

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv

	numOperators = iota
)

// MaxRepeatLength caps the byte length of a String × Number result. A repeat
// that would exceed it yields No.
const MaxRepeatLength = 64 << 20

var operatorSymbols = [numOperators]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
}

func (op Operator) String() string {
	if op >= numOperators {
		return "?"
	}
	return operatorSymbols[op]
}

// ParseOperator looks up an operator by its symbol. The typographic forms
// − × ÷ are accepted too.
func ParseOperator(sym string) (Operator, bool) {
	switch sym {
	case "+":
		return OpAdd, true
	case "-", "−":
		return OpSub, true
	case "*", "×":
		return OpMul, true
	case "/", "÷":
		return OpDiv, true
	}
	return 0, false
}

type binaryFunc func(a, b Value) Value

// operatorTables holds, per operator, every (left kind, right kind) pair the
// language defines. Pairs not listed yield No.
var operatorTables = [numOperators]map[kindPair]binaryFunc{
	OpAdd: {
		{NumberKind, NumberKind}: addNumbers,
		{StringKind, NumberKind}: appendNumber,
		{StringKind, StringKind}: concatStrings,
	},
	OpSub: {
		{NumberKind, NumberKind}: subNumbers,
	},
	OpMul: {
		{NumberKind, NumberKind}: mulNumbers,
		{StringKind, NumberKind}: repeatString,
	},
	OpDiv: {
		{NumberKind, NumberKind}: divNumbers,
	},
}

// Apply evaluates a op b. The result is No when op is unknown or the
// operator is not defined for the operand kinds.
func Apply(op Operator, a, b Value) Value {
	if op >= numOperators {
		return No
	}
	if fn, ok := operatorTables[op][kindPair{a.kind, b.kind}]; ok {
		return fn(a, b)
	}
	return No
}

// Defined reports whether op has a rule for the given operand kinds.
func Defined(op Operator, left, right Kind) bool {
	if op >= numOperators {
		return false
	}
	_, ok := operatorTables[op][kindPair{left, right}]
	return ok
}

// Add returns v + w.
func (v Value) Add(w Value) Value { return Apply(OpAdd, v, w) }

// Sub returns v - w.
func (v Value) Sub(w Value) Value { return Apply(OpSub, v, w) }

// Mul returns v * w.
func (v Value) Mul(w Value) Value { return Apply(OpMul, v, w) }

// Div returns v / w. Division by zero follows IEEE 754.
func (v Value) Div(w Value) Value { return Apply(OpDiv, v, w) }

func addNumbers(a, b Value) Value { return FromNumber(a.n + b.n) }
func subNumbers(a, b Value) Value { return FromNumber(a.n - b.n) }
func mulNumbers(a, b Value) Value { return FromNumber(a.n * b.n) }
func divNumbers(a, b Value) Value { return FromNumber(a.n / b.n) }

func appendNumber(a, b Value) Value {
	return FromString(a.s + FormatNumber(b.n))
}

func concatStrings(a, b Value) Value {
	return FromString(a.s + b.s)
}

// repeatString repeats the left text trunc(b) times. Non-positive and NaN
// counts give the empty string.
func repeatString(a, b Value) Value {
	count := math.Trunc(b.n)
	if math.IsNaN(count) || count <= 0 || a.s == "" {
		return FromString("")
	}
	if count > float64(MaxRepeatLength/len(a.s)) {
		return No
	}
	return FromString(strings.Repeat(a.s, int(count)))
}

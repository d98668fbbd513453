package vm

import (
	"errors"
	"fmt"
	"strings"
)

// ParamType is the value type a function parameter accepts.
type ParamType uint8

const (
	ParamAny ParamType = iota
	ParamBoolean
	ParamNumber
	ParamString
	ParamList
	ParamTemplate
)

func (t ParamType) String() string {
	if t == ParamAny {
		return "any"
	}
	k, ok := t.Kind()
	if !ok {
		return "invalid"
	}
	return k.String()
}

// Kind returns the value kind arguments are converted to. ParamAny has no
// kind and reports false.
func (t ParamType) Kind() (Kind, bool) {
	switch t {
	case ParamBoolean:
		return BooleanKind, true
	case ParamNumber:
		return NumberKind, true
	case ParamString:
		return StringKind, true
	case ParamList:
		return ListKind, true
	case ParamTemplate:
		return TemplateKind, true
	}
	return NoKind, false
}

// Parameter describes one parameter of a callable function.
type Parameter interface {
	// Name is the parameter name shown in signatures and help.
	Name() string
	// Type is the accepted value type.
	Type() ParamType
	// IsVariadic reports whether the parameter takes all remaining arguments.
	IsVariadic() bool
	// Description is a one-line explanation for documentation.
	Description() string
}

// Param is the plain Parameter implementation.
type Param struct {
	ParamName string
	ParamType ParamType
	Variadic  bool
	Doc       string
}

func (p Param) Name() string        { return p.ParamName }
func (p Param) Type() ParamType     { return p.ParamType }
func (p Param) IsVariadic() bool    { return p.Variadic }
func (p Param) Description() string { return p.Doc }

// Function describes a callable function for documentation and argument
// binding.
type Function struct {
	Name        string
	Description string
	Params      []Parameter
}

// ErrArgument is wrapped by every argument binding failure.
var ErrArgument = errors.New("bad argument")

// Coerce converts an argument to the parameter's declared type. ParamAny
// passes the argument through unchanged.
func Coerce(p Parameter, v Value) Value {
	k, ok := p.Type().Kind()
	if !ok {
		return v
	}
	return v.ConvertTo(k)
}

// Signature renders the call signature, e.g. "rep(text: string, n: number)".
// A variadic parameter is marked with "...".
func (f Function) Signature() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name())
		if p.IsVariadic() {
			sb.WriteString("...")
		}
		sb.WriteString(": ")
		sb.WriteString(p.Type().String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// variadic returns the index of the variadic parameter, or -1. Only the last
// parameter may be variadic.
func (f Function) variadic() int {
	if n := len(f.Params); n > 0 && f.Params[n-1].IsVariadic() {
		return n - 1
	}
	return -1
}

// Bind checks the argument count against the parameters and coerces each
// argument to its declared type. A variadic last parameter receives all the
// remaining arguments, each coerced individually.
//
// An argument that is not No but coerces to No cannot be represented in the
// declared type and is reported as an error wrapping ErrArgument.
func (f Function) Bind(args []Value) ([]Value, error) {
	fixed := len(f.Params)
	if v := f.variadic(); v >= 0 {
		fixed = v
		if len(args) < fixed {
			return nil, fmt.Errorf("%s: expected at least %d arguments, got %d: %w", f.Name, fixed, len(args), ErrArgument)
		}
	} else if len(args) != fixed {
		return nil, fmt.Errorf("%s: expected %d arguments, got %d: %w", f.Name, fixed, len(args), ErrArgument)
	}

	bound := make([]Value, len(args))
	for i, arg := range args {
		p := f.Params[min(i, len(f.Params)-1)]
		out := Coerce(p, arg)
		if out.IsNo() && !arg.IsNo() {
			return nil, fmt.Errorf("%s: argument %q: cannot convert %s %q to %s: %w",
				f.Name, p.Name(), arg.Kind(), arg.String(), p.Type(), ErrArgument)
		}
		bound[i] = out
	}
	return bound, nil
}

// FormatFunctionHelp formats a function for display in help output.
func FormatFunctionHelp(f Function) string {
	var s string

	s += f.Signature() + "\n"

	if f.Description != "" {
		s += "\n" + f.Description + "\n"
	} else {
		s += "\n(no documentation)\n"
	}

	if len(f.Params) > 0 {
		s += "\nParameters:\n"
		for _, p := range f.Params {
			s += "  " + p.Name()
			if p.IsVariadic() {
				s += "..."
			}
			s += " (" + p.Type().String() + ")"
			if doc := p.Description(); doc != "" {
				s += "  " + doc
			}
			s += "\n"
		}
	}

	return s
}

package vm

// Template is a compiled Rant template as seen by the value system.
// Only the source text is visible here; compilation and execution live
// outside this package.
type Template interface {
	Code() string
}

// SourceTemplate is a Template that carries nothing but its source text.
// It stands in for a compiled template when values are decoded from storage
// or built by tools that have no compiler at hand.
type SourceTemplate string

// Code returns the template source.
func (t SourceTemplate) Code() string {
	return string(t)
}

// Package dist implements the wire format for Rant values. Values are
// encoded as CBOR with integer keys so that they can be persisted, hashed
// and exchanged between processes.
package dist

import "github.com/chazu/rant/vm"

// WireValue is the on-the-wire form of a vm.Value. Only the field matching
// Kind is set. Templates travel as their source text in Text.
type WireValue struct {
	Kind   vm.Kind     `cbor:"1,keyasint"`
	Bool   bool        `cbor:"2,keyasint,omitempty"`
	Number float64     `cbor:"3,keyasint"`
	Text   string      `cbor:"4,keyasint,omitempty"`
	List   []WireValue `cbor:"5,keyasint,omitempty"`
}

// Envelope wraps a value with the format version it was written with.
type Envelope struct {
	Version byte      `cbor:"1,keyasint"`
	Value   WireValue `cbor:"2,keyasint"`
}

// FormatVersion is the current Envelope version.
const FormatVersion byte = 1

// TemplateResolver turns template source text back into a Template. A
// compiler can be plugged in here; without one, templates decode as
// vm.SourceTemplate.
type TemplateResolver func(code string) (vm.Template, error)

// SourceResolver is the default TemplateResolver.
func SourceResolver(code string) (vm.Template, error) {
	return vm.SourceTemplate(code), nil
}

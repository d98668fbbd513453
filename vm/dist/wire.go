package dist

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/chazu/rant/vm"
	"github.com/fxamacker/cbor/v2"
)

var (
	// ErrUnknownKind is returned when a wire value carries a kind this
	// version does not know.
	ErrUnknownKind = errors.New("dist: unknown value kind")

	// ErrVersion is returned for envelopes written by a newer format.
	ErrVersion = errors.New("dist: unsupported format version")
)

// cborEncMode uses canonical mode so that equal values always encode to the
// same bytes, which Hash relies on.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("dist: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// ToWire converts a value to its wire form.
func ToWire(v vm.Value) WireValue {
	w := WireValue{Kind: v.Kind()}
	switch v.Kind() {
	case vm.BooleanKind:
		w.Bool, _ = v.Bool()
	case vm.NumberKind:
		w.Number, _ = v.Float64()
	case vm.StringKind:
		w.Text, _ = v.Text()
	case vm.TemplateKind:
		w.Text = v.Template().Code()
	case vm.ListKind:
		items := v.List()
		w.List = make([]WireValue, len(items))
		for i, item := range items {
			w.List[i] = ToWire(item)
		}
	}
	return w
}

// FromWire rebuilds a value from its wire form. resolve may be nil, in
// which case SourceResolver is used.
func FromWire(w WireValue, resolve TemplateResolver) (vm.Value, error) {
	if resolve == nil {
		resolve = SourceResolver
	}
	switch w.Kind {
	case vm.NoKind:
		return vm.No, nil
	case vm.BooleanKind:
		return vm.FromBool(w.Bool), nil
	case vm.NumberKind:
		return vm.FromNumber(w.Number), nil
	case vm.StringKind:
		return vm.FromString(w.Text), nil
	case vm.TemplateKind:
		t, err := resolve(w.Text)
		if err != nil {
			return vm.No, fmt.Errorf("dist: resolve template: %w", err)
		}
		return vm.FromTemplate(t), nil
	case vm.ListKind:
		// An empty list decodes with a nil List field; it must stay a list.
		items := make([]vm.Value, len(w.List))
		for i, item := range w.List {
			v, err := FromWire(item, resolve)
			if err != nil {
				return vm.No, err
			}
			items[i] = v
		}
		return vm.FromList(items), nil
	}
	return vm.No, fmt.Errorf("%w: %d", ErrUnknownKind, w.Kind)
}

// Marshal serializes a value to CBOR bytes.
func Marshal(v vm.Value) ([]byte, error) {
	return cborEncMode.Marshal(Envelope{Version: FormatVersion, Value: ToWire(v)})
}

// Unmarshal deserializes a value from CBOR bytes.
func Unmarshal(data []byte, resolve TemplateResolver) (vm.Value, error) {
	var env Envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return vm.No, fmt.Errorf("dist: unmarshal value: %w", err)
	}
	if env.Version == 0 || env.Version > FormatVersion {
		return vm.No, fmt.Errorf("%w: %d", ErrVersion, env.Version)
	}
	return FromWire(env.Value, resolve)
}

// Hash returns the content hash of a value: the SHA-256 of its canonical
// wire encoding. Templates hash by their source text.
func Hash(v vm.Value) ([32]byte, error) {
	data, err := cborEncMode.Marshal(ToWire(v))
	if err != nil {
		return [32]byte{}, fmt.Errorf("dist: hash value: %w", err)
	}
	return sha256.Sum256(data), nil
}

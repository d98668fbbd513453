package vm

import "strings"

// Kind identifies which of the six value variants a Value holds.
type Kind uint8

const (
	NoKind Kind = iota
	BooleanKind
	NumberKind
	StringKind
	ListKind
	TemplateKind

	numKinds = iota
)

var kindNames = [numKinds]string{
	NoKind:       "no",
	BooleanKind:  "boolean",
	NumberKind:   "number",
	StringKind:   "string",
	ListKind:     "list",
	TemplateKind: "template",
}

// Kinds returns every valid kind in declaration order. Each call returns a
// fresh slice.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Valid reports whether k is one of the six declared kinds.
func (k Kind) Valid() bool {
	return k < numKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return "invalid"
	}
	return kindNames[k]
}

// ParseKind looks up a kind by name, ignoring case and surrounding space.
// "bool" and "pattern" are accepted as aliases.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "bool":
		return BooleanKind, true
	case "pattern":
		return TemplateKind, true
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return NoKind, false
}

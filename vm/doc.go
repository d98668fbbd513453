// Package vm implements the Rant runtime value system.
//
// This package contains:
//   - The tagged Value representation (no, boolean, number, string, list, template)
//   - Classification of native Go values into Values
//   - The directed conversion matrix between kinds
//   - Binary arithmetic over kind pairs
//   - Canonical text rendering
//   - Parameter metadata used to describe callable functions
//
// Every operation is total: when no rule applies the result is the No value,
// never a panic or an error.
package vm

package imap

import (
	"strings"
)

// Functions

// BuildList renders a value back into protocol list syntax: an
// atom is emitted verbatim, a list parenthesizes the space-joined
// renderings of its elements. Atoms are expected to be already
// escaped by the caller.
//
// The supplied value must not contain reference cycles. Values
// built via NewAtom and NewList or returned by ParseList satisfy
// this by construction.
func BuildList(v Value) string {

	if !v.IsList {
		return v.Atom
	}

	parts := make([]string, len(v.List))
	for i, elem := range v.List {
		parts[i] = BuildList(elem)
	}

	return "(" + strings.Join(parts, " ") + ")"
}

package imap

// Structs

// Value is one node of parsed response data: either a single
// atom of text or an ordered list of nested values. Values are
// built bottom-up from a finite token stream and therefore
// never contain reference cycles.
type Value struct {
	Atom   string
	List   []Value
	IsList bool
}

// Functions

// NewAtom wraps a piece of text in an atom value.
func NewAtom(text string) Value {

	return Value{
		Atom: text,
	}
}

// NewList bundles the supplied values into a list value
// preserving their order.
func NewList(elems ...Value) Value {

	if elems == nil {
		elems = []Value{}
	}

	return Value{
		List:   elems,
		IsList: true,
	}
}

// Package designator defines composable addresses naming a sub-part of a value
// or a specific port of a function.
//
// Designators are immutable values compared structurally with Equal. A chain of
// designators is read head-first: Peek returns the head and Tail the remainder.
package designator

// Designator names a part of something
type Designator interface {
	// Peek returns the first element of a chain, or the designator itself if atomic
	Peek() Designator
	// Tail returns the chain without its first element, or Identity if nothing remains
	Tail() Designator
	// Equal reports structural equality
	Equal(other Designator) bool
	// String returns the canonical textual form, see Parse
	String() string
}

// Identity designates the whole value
type Identity struct{}

func (Identity) Peek() Designator { return Identity{} }

func (Identity) Tail() Designator { return Identity{} }

func (Identity) Equal(other Designator) bool {
	_, ok := other.(Identity)
	return ok
}

func (Identity) String() string { return identitySymbol }

// IsIdentity reports whether d designates the whole value
func IsIdentity(d Designator) bool {
	if d == nil {
		return true
	}
	_, ok := d.(Identity)
	return ok
}

// NthInput designates input port Index of a function
type NthInput struct {
	Index int
}

func (d NthInput) Peek() Designator { return d }

func (d NthInput) Tail() Designator { return Identity{} }

func (d NthInput) Equal(other Designator) bool {
	o, ok := other.(NthInput)
	return ok && o.Index == d.Index
}

func (d NthInput) String() string { return portString(inputPrefix, d.Index) }

// NthOutput designates output port Index of a function
type NthOutput struct {
	Index int
}

func (d NthOutput) Peek() Designator { return d }

func (d NthOutput) Tail() Designator { return Identity{} }

func (d NthOutput) Equal(other Designator) bool {
	o, ok := other.(NthOutput)
	return ok && o.Index == d.Index
}

func (d NthOutput) String() string { return portString(outputPrefix, d.Index) }

package designator

import "strings"

// Composed is an ordered chain of designators read head-first
type Composed struct {
	parts []Designator
}

// Compose builds a chain out of parts, listed head-first.
// Nested chains are flattened and Identity elements dropped, so composition is
// associative. A chain of one element collapses to that element and an empty
// chain is Identity.
func Compose(parts ...Designator) Designator {
	flat := make([]Designator, 0, len(parts))
	for _, part := range parts {
		switch actual := part.(type) {
		case nil, Identity:
		case Composed:
			flat = append(flat, actual.parts...)
		case *Composed:
			if actual != nil {
				flat = append(flat, actual.parts...)
			}
		default:
			flat = append(flat, part)
		}
	}
	switch len(flat) {
	case 0:
		return Identity{}
	case 1:
		return flat[0]
	}
	return Composed{parts: flat}
}

// Prepend builds a chain from an existing tail plus new head elements, heads listed head-first
func Prepend(tail Designator, heads ...Designator) Designator {
	parts := make([]Designator, 0, len(heads)+1)
	parts = append(parts, heads...)
	parts = append(parts, tail)
	return Compose(parts...)
}

func (c Composed) Peek() Designator {
	if len(c.parts) == 0 {
		return Identity{}
	}
	return c.parts[0]
}

func (c Composed) Tail() Designator {
	if len(c.parts) < 2 {
		return Identity{}
	}
	return Compose(c.parts[1:]...)
}

// Parts returns a copy of the chain elements, head first
func (c Composed) Parts() []Designator {
	result := make([]Designator, len(c.parts))
	copy(result, c.parts)
	return result
}

func (c Composed) Equal(other Designator) bool {
	o, ok := other.(Composed)
	if !ok {
		return false
	}
	if len(o.parts) != len(c.parts) {
		return false
	}
	for i, part := range c.parts {
		if !part.Equal(o.parts[i]) {
			return false
		}
	}
	return true
}

func (c Composed) String() string {
	if len(c.parts) == 0 {
		return identitySymbol
	}
	items := make([]string, len(c.parts))
	for i, part := range c.parts {
		items[i] = part.String()
	}
	return strings.Join(items, separator)
}

// Equal compares two designators, treating nil as Identity
func Equal(a, b Designator) bool {
	if a == nil {
		a = Identity{}
	}
	if b == nil {
		b = Identity{}
	}
	return a.Equal(b)
}

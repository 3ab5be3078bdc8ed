package lineage

import (
	"fmt"
	"reflect"

	"github.com/viant/provenance/designator"
)

// Named is implemented by owners that have a display name
type Named interface {
	Name() string
}

// DesignatedObject pairs a designator with the entity it designates, e.g. input 0 of a function
type DesignatedObject struct {
	Designator designator.Designator
	Owner      interface{}
}

// Equal reports whether both objects designate the same part of the same owner
func (o DesignatedObject) Equal(other DesignatedObject) bool {
	return sameOwner(o.Owner, other.Owner) && designator.Equal(o.Designator, other.Designator)
}

func (o DesignatedObject) String() string {
	d := o.Designator
	if d == nil {
		d = designator.Identity{}
	}
	return ownerName(o.Owner) + ":" + d.String()
}

func ownerName(owner interface{}) string {
	switch actual := owner.(type) {
	case nil:
		return ""
	case Named:
		return actual.Name()
	case fmt.Stringer:
		return actual.String()
	case string:
		return actual
	default:
		return fmt.Sprintf("%T", owner)
	}
}

// DesignatorLink is one answer unit: a quality and the objects reached at that quality
type DesignatorLink struct {
	Quality Quality
	Objects []DesignatedObject
}

// NewLink creates a designator link
func NewLink(quality Quality, objects ...DesignatedObject) DesignatorLink {
	return DesignatorLink{Quality: quality, Objects: objects}
}

func (l DesignatorLink) String() string {
	return fmt.Sprintf("%v:%v", l.Objects, l.Quality)
}

// sameOwner compares owners by identity; owners of non-comparable types never match
func sameOwner(a, b interface{}) bool {
	if !isComparable(a) || !isComparable(b) {
		return false
	}
	return a == b
}

// isComparable checks the dynamic value: a struct holding a slice in an interface field is not comparable
func isComparable(owner interface{}) bool {
	if owner == nil {
		return true
	}
	return reflect.ValueOf(owner).Comparable()
}

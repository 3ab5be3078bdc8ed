package lineage

import (
	"github.com/viant/provenance/designator"
)

// tracerKey identifies a designated object; the canonical form of a designator is unique
type tracerKey struct {
	designator string
	owner      interface{}
}

// Tracer creates the nodes of one query run and deduplicates object nodes
// by (designator, owner). A Tracer must not be shared between concurrent queries.
type Tracer struct {
	graph *Graph
	cache map[tracerKey]NodeID
}

// NewTracer creates a tracer with its own graph
func NewTracer(opts ...Option) *Tracer {
	return &Tracer{
		graph: NewGraph(opts...),
		cache: map[tracerKey]NodeID{},
	}
}

// Graph returns the graph built by the tracer
func (t *Tracer) Graph() *Graph {
	return t.graph
}

// ObjectNode returns the node designating d of owner, creating it on first request.
// Owners are compared by identity; owners holding non-comparable values are never cached.
func (t *Tracer) ObjectNode(d designator.Designator, owner interface{}) NodeID {
	if d == nil {
		d = designator.Identity{}
	}
	object := DesignatedObject{Designator: d, Owner: owner}
	if !isComparable(owner) {
		t.graph.logger.Debug("lineage: owner is not comparable, node not cached", "object", object.String())
		return t.graph.add(ObjectNode, object)
	}
	key := tracerKey{designator: d.String(), owner: owner}
	if id, ok := t.cache[key]; ok {
		return id
	}
	id := t.graph.add(ObjectNode, object)
	t.cache[key] = id
	return id
}

// AndNode creates a fresh conjunction node
func (t *Tracer) AndNode() NodeID {
	return t.graph.add(AndNode, DesignatedObject{})
}

// OrNode creates a fresh disjunction node
func (t *Tracer) OrNode() NodeID {
	return t.graph.add(OrNode, DesignatedObject{})
}

// AddChild appends a quality-labeled edge, see Graph.AddChild
func (t *Tracer) AddChild(parent, child NodeID, quality Quality) error {
	return t.graph.AddChild(parent, child, quality)
}

// Answer attaches a designator link below root and records the reached objects as leaves.
// A link naming several objects is attached through an And node.
func (t *Tracer) Answer(root NodeID, link DesignatorLink, leaves *[]NodeID) {
	switch len(link.Objects) {
	case 0:
		return
	case 1:
		object := link.Objects[0]
		child := t.ObjectNode(object.Designator, object.Owner)
		if err := t.AddChild(root, child, link.Quality); err != nil {
			return
		}
		*leaves = append(*leaves, child)
		return
	}
	and := t.AndNode()
	if err := t.AddChild(root, and, link.Quality); err != nil {
		return
	}
	for _, object := range link.Objects {
		child := t.ObjectNode(object.Designator, object.Owner)
		if err := t.AddChild(and, child, Exact); err != nil {
			continue
		}
		*leaves = append(*leaves, child)
	}
}

package graphutil

import (
	"github.com/viant/provenance/dag"
)

// expansion records where an original node ended up in the flattened graph
type expansion struct {
	node    dag.NodeID // duplicate of a non-nested node, None for nested ones
	entries []dag.Pin  // per input port
	exits   []dag.Pin  // per output port
}

// scope flattens the nodes of one source graph; nested nodes open a child scope
type scope struct {
	source   *dag.Graph
	expanded map[dag.NodeID]*expansion
}

type flattener struct {
	out     *dag.Graph
	pending []pending
}

type pending struct {
	scope *scope
	node  dag.NodeID
}

// Flatten creates a copy of a single-rooted graph where nested nodes are exploded:
// an edge into input j of a nested node is rerouted to a copy of the inner node
// behind its associated input j, and every associated output continues into
// whatever the nested node output fed. Shared nodes stay shared.
func Flatten(g *dag.Graph, root dag.NodeID) (*dag.Graph, dag.NodeID) {
	f := &flattener{out: dag.New(dag.WithLogger(g.Logger()))}
	if g.Node(root) == nil {
		return f.out, dag.None
	}
	top := newScope(g)
	rootExp := f.expand(top, root)
	f.drain()
	return f.out, rootOf(rootExp)
}

func rootOf(exp *expansion) dag.NodeID {
	if exp.node != dag.None {
		return exp.node
	}
	if len(exp.entries) > 0 {
		return exp.entries[0].Node
	}
	if len(exp.exits) > 0 {
		return exp.exits[0].Node
	}
	return dag.None
}

func newScope(source *dag.Graph) *scope {
	return &scope{source: source, expanded: map[dag.NodeID]*expansion{}}
}

// expand returns the expansion of a node, creating it and queueing its links on first visit
func (f *flattener) expand(s *scope, id dag.NodeID) *expansion {
	if exp, ok := s.expanded[id]; ok {
		return exp
	}
	node := s.source.Node(id)
	exp := &expansion{node: dag.None}
	s.expanded[id] = exp
	if node.Kind == dag.Nested && node.Inner != nil {
		inner := newScope(node.Inner)
		for _, pin := range node.AssociatedInputs {
			innerExp := f.expand(inner, pin.Node)
			exp.entries = append(exp.entries, innerExp.entries[pin.Index])
		}
		for _, pin := range node.AssociatedOutputs {
			innerExp := f.expand(inner, pin.Node)
			exp.exits = append(exp.exits, innerExp.exits[pin.Index])
		}
	} else {
		dup := s.source.Duplicate(id, f.out)
		exp.node = dup
		for i := 0; i < node.InputArity; i++ {
			exp.entries = append(exp.entries, dag.Pin{Node: dup, Index: i})
		}
		for i := 0; i < node.OutputArity; i++ {
			exp.exits = append(exp.exits, dag.Pin{Node: dup, Index: i})
		}
	}
	f.pending = append(f.pending, pending{scope: s, node: id})
	return exp
}

// drain wires links of expanded nodes until no node is left to visit
func (f *flattener) drain() {
	for len(f.pending) > 0 {
		last := len(f.pending) - 1
		item := f.pending[last]
		f.pending = f.pending[:last]
		source := item.scope.source
		from := item.scope.expanded[item.node]
		for port := 0; port < source.OutputArity(item.node); port++ {
			if port >= len(from.exits) {
				break
			}
			exit := from.exits[port]
			for _, link := range source.OutputLinks(item.node, port) {
				to := f.expand(item.scope, link.Target.Node)
				if link.Target.Index >= len(to.entries) {
					continue
				}
				connect(f.out, exit.Node, exit.Index, to.entries[link.Target.Index], link.Label)
			}
		}
	}
}

package graphutil

import (
	"github.com/viant/provenance/dag"
)

type squashItem struct {
	parent dag.NodeID // node of the output graph
	port   int        // output port of parent
	target dag.Pin    // pin of the source graph
	label  string
}

type visitKey struct {
	source dag.NodeID
	parent dag.NodeID
}

// Squash creates a copy of a single-rooted graph where only the root, And/Or nodes
// and leaves are kept. Other nodes are elided and their children attached to the
// nearest kept ancestor. A combinator whose kept parent has the same kind is merged
// into that parent. When several elided paths reach the same kept node, their labels
// are combined with the configured LabelMerge.
func Squash(g *dag.Graph, root dag.NodeID, opts ...Option) (*dag.Graph, dag.NodeID) {
	o := newOptions(opts)
	out := dag.New(dag.WithLogger(g.Logger()))
	if g.Node(root) == nil {
		return out, dag.None
	}
	newRoot := g.Duplicate(root, out)
	copies := map[dag.NodeID]dag.NodeID{root: newRoot}
	copyOf := func(id dag.NodeID) dag.NodeID {
		if dup, ok := copies[id]; ok {
			return dup
		}
		dup := g.Duplicate(id, out)
		copies[id] = dup
		return dup
	}

	var stack, batch []squashItem
	for port := 0; port < g.OutputArity(root); port++ {
		for _, link := range g.OutputLinks(root, port) {
			batch = append(batch, squashItem{parent: newRoot, port: port, target: link.Target, label: link.Label})
		}
	}
	stack = pushReversed(stack, batch)
	visited := map[visitKey]bool{}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		target := g.Node(item.target.Node)
		if !target.Kind.IsCombinator() && target.IsLeaf() {
			mergeConnect(out, item.parent, item.port, dag.Pin{Node: copyOf(target.ID), Index: item.target.Index}, item.label, o.merge)
			continue
		}
		outParent, outPort, materialized := item.parent, item.port, false
		if target.Kind.IsCombinator() && out.Node(item.parent).Kind != target.Kind {
			dup := copyOf(target.ID)
			mergeConnect(out, item.parent, item.port, dag.Pin{Node: dup, Index: item.target.Index}, item.label, o.merge)
			outParent, materialized = dup, true
		}
		key := visitKey{source: target.ID, parent: outParent}
		if visited[key] {
			continue
		}
		visited[key] = true
		batch = batch[:0]
		for port := 0; port < target.OutputArity; port++ {
			for _, link := range target.OutputLinks(port) {
				next := squashItem{parent: outParent, port: outPort, target: link.Target, label: o.merge(item.label, link.Label)}
				if materialized {
					next.port, next.label = port, link.Label
				}
				batch = append(batch, next)
			}
		}
		stack = pushReversed(stack, batch)
	}
	return out, newRoot
}

// pushReversed pushes items so that they are popped in their original order
func pushReversed(stack, items []squashItem) []squashItem {
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, items[i])
	}
	return stack
}

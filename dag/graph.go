// Package dag provides a generic composable graph: nodes with input/output
// ports, links between them, combinator markers and nested nodes whose
// behaviour is itself a graph.
//
// Nodes live in an arena owned by a Graph; a NodeID is an index into that arena,
// so identity is unique per graph and graphs never share nodes.
// A Graph is not safe for concurrent mutation.
package dag

import (
	"fmt"
	"log/slog"
)

// Graph is an arena of nodes
type Graph struct {
	nodes  []*Node
	logger *slog.Logger
}

// Option configures a graph
type Option func(*Graph)

// WithLogger sets the logger used to report rejected edges
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

// New creates an empty graph
func New(opts ...Option) *Graph {
	ret := &Graph{}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

// Logger returns graph logger
func (g *Graph) Logger() *slog.Logger {
	return g.logger
}

// Len returns number of nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns a node by ID or nil
func (g *Graph) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Nodes returns all nodes in creation order
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// AddNode adds a node with one input and one output
func (g *Graph) AddNode(kind Kind, label string) NodeID {
	return g.AddNodeWithArity(kind, label, 1, 1)
}

// AddNodeWithArity adds a node with the given arity
func (g *Graph) AddNodeWithArity(kind Kind, label string, inputArity, outputArity int) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &Node{
		ID:          id,
		Kind:        kind,
		Label:       label,
		InputArity:  inputArity,
		OutputArity: outputArity,
		outputs:     make([][]Link, outputArity),
	})
	return id
}

// AddNested adds a nested node; its arity follows the associated pins
func (g *Graph) AddNested(label string, inner *Graph, inputs, outputs []Pin) (NodeID, error) {
	if inner == nil {
		return None, fmt.Errorf("nested node %q: %w: inner graph", label, ErrNodeNotFound)
	}
	for _, pin := range inputs {
		node := inner.Node(pin.Node)
		if node == nil {
			return None, fmt.Errorf("nested node %q: %w: %d", label, ErrNodeNotFound, pin.Node)
		}
		if pin.Index < 0 || pin.Index >= node.InputArity {
			return None, fmt.Errorf("nested node %q: %w: input %d of %d", label, ErrPort, pin.Index, pin.Node)
		}
	}
	for _, pin := range outputs {
		node := inner.Node(pin.Node)
		if node == nil {
			return None, fmt.Errorf("nested node %q: %w: %d", label, ErrNodeNotFound, pin.Node)
		}
		if pin.Index < 0 || pin.Index >= node.OutputArity {
			return None, fmt.Errorf("nested node %q: %w: output %d of %d", label, ErrPort, pin.Index, pin.Node)
		}
	}
	id := g.AddNodeWithArity(Nested, label, len(inputs), len(outputs))
	node := g.nodes[id]
	node.Inner = inner
	node.AssociatedInputs = append([]Pin{}, inputs...)
	node.AssociatedOutputs = append([]Pin{}, outputs...)
	return id, nil
}

// OutputArity returns the number of output ports of a node
func (g *Graph) OutputArity(id NodeID) int {
	if node := g.Node(id); node != nil {
		return node.OutputArity
	}
	return 0
}

// OutputLinks returns links leaving output port of a node
func (g *Graph) OutputLinks(id NodeID, port int) []Link {
	if node := g.Node(id); node != nil {
		return node.OutputLinks(port)
	}
	return nil
}

// IsLeaf reports whether a node has no outgoing links
func (g *Graph) IsLeaf(id NodeID) bool {
	if node := g.Node(id); node != nil {
		return node.IsLeaf()
	}
	return true
}

// Connect links output port of from to input port of to
func (g *Graph) Connect(from NodeID, outPort int, to NodeID, inPort int) error {
	return g.ConnectWithLabel(from, outPort, to, inPort, "")
}

// ConnectWithLabel links output port of from to input port of to with an edge label.
// Connecting the same ports twice is a no-op; a self loop is rejected and logged.
func (g *Graph) ConnectWithLabel(from NodeID, outPort int, to NodeID, inPort int, label string) error {
	return g.link(from, outPort, to, inPort, label, nil)
}

// MergeLink links ports like ConnectWithLabel. When the ports are already linked,
// the existing label is replaced by merge(existing, label).
func (g *Graph) MergeLink(from NodeID, outPort int, to NodeID, inPort int, label string, merge func(existing, next string) string) error {
	return g.link(from, outPort, to, inPort, label, merge)
}

func (g *Graph) link(from NodeID, outPort int, to NodeID, inPort int, label string, merge func(existing, next string) string) error {
	source, target := g.Node(from), g.Node(to)
	if source == nil {
		return fmt.Errorf("connect: %w: %d", ErrNodeNotFound, from)
	}
	if target == nil {
		return fmt.Errorf("connect: %w: %d", ErrNodeNotFound, to)
	}
	if from == to {
		g.logger.Warn("attempting to connect a node to itself", "node", from, "label", source.Label)
		return fmt.Errorf("connect %d: %w", from, ErrSelfLoop)
	}
	if outPort < 0 || outPort >= source.OutputArity {
		return fmt.Errorf("connect %d: %w: output %d of %d", from, ErrPort, outPort, source.OutputArity)
	}
	if inPort < 0 || inPort >= target.InputArity {
		return fmt.Errorf("connect %d: %w: input %d of %d", to, ErrPort, inPort, target.InputArity)
	}
	pin := Pin{Node: to, Index: inPort}
	links := source.outputs[outPort]
	for i := range links {
		if links[i].Target == pin {
			if merge != nil {
				links[i].Label = merge(links[i].Label, label)
			}
			return nil
		}
	}
	source.outputs[outPort] = append(source.outputs[outPort], Link{Target: pin, Label: label})
	return nil
}

// Duplicate copies a node of g into another graph without any links.
// The inner graph of a nested node is deep-copied.
func (g *Graph) Duplicate(id NodeID, into *Graph) NodeID {
	node := g.Node(id)
	if node == nil {
		return None
	}
	dupID := into.AddNodeWithArity(node.Kind, node.Label, node.InputArity, node.OutputArity)
	dup := into.nodes[dupID]
	dup.Payload = node.Payload
	if node.Kind == Nested {
		if node.Inner != nil {
			dup.Inner = node.Inner.Clone()
		}
		dup.AssociatedInputs = append([]Pin{}, node.AssociatedInputs...)
		dup.AssociatedOutputs = append([]Pin{}, node.AssociatedOutputs...)
	}
	return dupID
}

// Clone deep copies the graph, node IDs are preserved
func (g *Graph) Clone() *Graph {
	ret := New(WithLogger(g.logger))
	for _, node := range g.nodes {
		g.Duplicate(node.ID, ret)
	}
	for _, node := range g.nodes {
		dup := ret.nodes[node.ID]
		for port, links := range node.outputs {
			dup.outputs[port] = append([]Link{}, links...)
		}
	}
	return ret
}

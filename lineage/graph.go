// Package lineage builds traceability graphs answering backward queries:
// which part of which input produced this part of this output.
//
// A Graph is an arena of nodes owned by a single query run. Nodes are created
// through a Tracer, which returns the same node for the same designated object,
// so the result stays a DAG instead of exploding into a tree.
package lineage

import (
	"fmt"
	"log/slog"
)

// Graph is the arena holding the nodes of one lineage graph
type Graph struct {
	nodes           []*Node
	logger          *slog.Logger
	checkDuplicates bool
}

// Option configures a lineage graph and its tracer
type Option func(*Graph)

// WithLogger sets the logger used to report malformed edges
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

// WithCheckDuplicates makes AddChild ignore a second edge to the same child.
// When the second edge is stronger, the existing edge is upgraded.
func WithCheckDuplicates(check bool) Option {
	return func(g *Graph) {
		g.checkDuplicates = check
	}
}

// NewGraph creates an empty lineage graph
func NewGraph(opts ...Option) *Graph {
	ret := &Graph{}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
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

// Logger returns graph logger
func (g *Graph) Logger() *slog.Logger {
	return g.logger
}

func (g *Graph) add(kind NodeKind, object DesignatedObject) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &Node{ID: id, Kind: kind, Object: object, graph: g})
	return id
}

// AddChild appends a quality-labeled edge from parent to child
func (g *Graph) AddChild(parent, child NodeID, quality Quality) error {
	p, c := g.Node(parent), g.Node(child)
	if p == nil {
		return fmt.Errorf("add child: %w: %d", ErrNodeNotFound, parent)
	}
	if c == nil {
		return fmt.Errorf("add child: %w: %d", ErrNodeNotFound, child)
	}
	if parent == child {
		g.logger.Warn("attempting to connect a node to itself", "node", parent, "object", p.String())
		return fmt.Errorf("add child %d: %w", parent, ErrSelfLoop)
	}
	if g.checkDuplicates {
		for i, edge := range p.children {
			if edge.Node != child {
				continue
			}
			if quality > edge.Quality {
				p.children[i].Quality = quality
			}
			return nil
		}
	}
	p.children = append(p.children, LabeledEdge{Node: child, Quality: quality})
	return nil
}

// Roots returns nodes no other node links to, in creation order
func (g *Graph) Roots() []NodeID {
	linked := make([]bool, len(g.nodes))
	for _, node := range g.nodes {
		for _, edge := range node.children {
			linked[edge.Node] = true
		}
	}
	var result []NodeID
	for i, isLinked := range linked {
		if !isLinked {
			result = append(result, NodeID(i))
		}
	}
	return result
}

// Leaves returns the distinct leaves reachable from root, in discovery order
func (g *Graph) Leaves(root NodeID) []NodeID {
	var result []NodeID
	visited := map[NodeID]bool{}
	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := g.Node(id)
		if node == nil || visited[id] {
			continue
		}
		visited[id] = true
		if node.IsLeaf() {
			result = append(result, id)
			continue
		}
		for i := len(node.children) - 1; i >= 0; i-- {
			stack = append(stack, node.children[i].Node)
		}
	}
	return result
}

// PathQuality returns the weakest quality along consecutive nodes of a path.
// It returns false when two consecutive nodes are not linked.
func (g *Graph) PathQuality(path ...NodeID) (Quality, bool) {
	result := Exact
	for i := 1; i < len(path); i++ {
		parent := g.Node(path[i-1])
		if parent == nil {
			return Unknown, false
		}
		found := false
		for _, edge := range parent.children {
			if edge.Node == path[i] {
				result = Weakest(result, edge.Quality)
				found = true
				break
			}
		}
		if !found {
			return Unknown, false
		}
	}
	return result, true
}

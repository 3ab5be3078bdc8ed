package lineage

import (
	"github.com/minio/highwayhash"
	"github.com/viant/provenance/dag"
	"github.com/viant/provenance/graphutil"
	"gopkg.in/yaml.v3"
)

// ToDAG converts the graph reachable from root into a dag.Graph.
// Object nodes become Plain nodes carrying the DesignatedObject as payload, edges
// carry the quality name as label. Shared nodes stay shared.
func (g *Graph) ToDAG(root NodeID) (*dag.Graph, dag.NodeID) {
	out := dag.New(dag.WithLogger(g.logger))
	if g.Node(root) == nil {
		return out, dag.None
	}
	converted := map[NodeID]dag.NodeID{}
	convert := func(id NodeID) (dag.NodeID, bool) {
		if ret, ok := converted[id]; ok {
			return ret, false
		}
		node := g.nodes[id]
		var ret dag.NodeID
		switch node.Kind {
		case AndNode:
			ret = out.AddNode(dag.And, node.String())
		case OrNode:
			ret = out.AddNode(dag.Or, node.String())
		default:
			ret = out.AddNode(dag.Plain, node.String())
			out.Node(ret).Payload = node.Object
		}
		converted[id] = ret
		return ret, true
	}
	newRoot, _ := convert(root)
	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		from := converted[id]
		for _, edge := range g.nodes[id].children {
			to, created := convert(edge.Node)
			if created {
				stack = append(stack, edge.Node)
			}
			if err := out.ConnectWithLabel(from, 0, to, 0, edge.Quality.String()); err != nil {
				g.logger.Debug("lineage: edge dropped", "from", id, "to", edge.Node, "error", err)
			}
		}
	}
	return out, newRoot
}

// Simplify converts the graph reachable from root and flattens and squashes it.
// Labels of elided paths keep their weakest quality.
func (g *Graph) Simplify(root NodeID) (*dag.Graph, dag.NodeID) {
	converted, newRoot := g.ToDAG(root)
	return graphutil.Simplify(converted, newRoot, graphutil.WithLabelMerge(MergeQualityLabels))
}

// ExplainedNode is a node of an explanation
type ExplainedNode struct {
	ID    int    `yaml:"id"`
	Kind  string `yaml:"kind"`
	Label string `yaml:"label,omitempty"`
}

// ExplainedEdge is an edge of an explanation; a label that is not a quality name is kept as Label
type ExplainedEdge struct {
	Source  int     `yaml:"source"`
	Target  int     `yaml:"target"`
	Quality Quality `yaml:"quality,omitempty"`
	Label   string  `yaml:"label,omitempty"`
}

// Explanation is a portable form of a lineage graph, nodes numbered in discovery order from the root
type Explanation struct {
	Root  int             `yaml:"root"`
	Nodes []ExplainedNode `yaml:"nodes"`
	Edges []ExplainedEdge `yaml:"edges,omitempty"`
}

// Exporter sends an explanation to a storage backend
type Exporter interface {
	Export(explanation *Explanation) error
}

// YAML encodes the explanation
func (e *Explanation) YAML() ([]byte, error) {
	return yaml.Marshal(e)
}

var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns highwayhash-64 of the yaml encoding; equal explanations share a hash
func (e *Explanation) Hash() (uint64, error) {
	hash, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	encoder := yaml.NewEncoder(hash)
	if err = encoder.Encode(e); err != nil {
		return 0, err
	}
	if err = encoder.Close(); err != nil {
		return 0, err
	}
	return hash.Sum64(), nil
}

// Explain builds an explanation of the graph reachable from root
func Explain(g *dag.Graph, root dag.NodeID) *Explanation {
	ret := &Explanation{}
	if g.Node(root) == nil {
		return ret
	}
	numbers := map[dag.NodeID]int{}
	var queue []dag.NodeID
	visit := func(id dag.NodeID) int {
		if n, ok := numbers[id]; ok {
			return n
		}
		n := len(numbers)
		numbers[id] = n
		node := g.Node(id)
		ret.Nodes = append(ret.Nodes, ExplainedNode{ID: n, Kind: node.Kind.String(), Label: node.Label})
		queue = append(queue, id)
		return n
	}
	ret.Root = visit(root)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for port := 0; port < g.OutputArity(id); port++ {
			for _, link := range g.OutputLinks(id, port) {
				edge := ExplainedEdge{Source: numbers[id], Target: visit(link.Target.Node)}
				if quality, err := ParseQuality(link.Label); err == nil {
					edge.Quality = quality
				} else {
					edge.Label = link.Label
				}
				ret.Edges = append(ret.Edges, edge)
			}
		}
	}
	return ret
}

// Explain simplifies the graph reachable from root and builds its explanation
func (g *Graph) Explain(root NodeID) *Explanation {
	simple, simpleRoot := g.Simplify(root)
	return Explain(simple, simpleRoot)
}

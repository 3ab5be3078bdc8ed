package lineage

// NodeID identifies a node within one Graph; IDs are assigned in increasing order
type NodeID int

// NodeKind distinguishes lineage nodes
type NodeKind int

const (
	// ObjectNode designates a part of an object
	ObjectNode NodeKind = iota
	// AndNode combines children that all hold
	AndNode
	// OrNode combines alternative children
	OrNode
)

func (k NodeKind) String() string {
	switch k {
	case ObjectNode:
		return "object"
	case AndNode:
		return "and"
	case OrNode:
		return "or"
	default:
		return "unknown"
	}
}

// LabeledEdge is a child link annotated with its quality
type LabeledEdge struct {
	Node    NodeID
	Quality Quality
}

// Node is a node of a lineage graph
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Object   DesignatedObject // set on ObjectNode only
	children []LabeledEdge
	graph    *Graph
}

// Children returns child edges in insertion order
func (n *Node) Children() []LabeledEdge {
	return n.children
}

// IsLeaf reports whether the node has no child
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Equal reports node identity: same graph and same ID
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.graph == other.graph && n.ID == other.ID
}

func (n *Node) String() string {
	switch n.Kind {
	case ObjectNode:
		return n.Object.String()
	default:
		return n.Kind.String()
	}
}

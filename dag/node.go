package dag

// NodeID identifies a node within one Graph; it is the node index in the graph arena
type NodeID int

// None is returned when no node applies
const None NodeID = -1

// Kind distinguishes structural roles of nodes
type Kind int

const (
	// Plain is an ordinary node
	Plain Kind = iota
	// And marks that all children must be combined
	And
	// Or marks alternative children
	Or
	// Nested is a node whose behaviour is an inner graph
	Nested
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case And:
		return "and"
	case Or:
		return "or"
	case Nested:
		return "nested"
	default:
		return "unknown"
	}
}

// IsCombinator reports whether k is And or Or
func (k Kind) IsCombinator() bool {
	return k == And || k == Or
}

// Pin references a port of a node
type Pin struct {
	Node  NodeID
	Index int
}

// Link is an outgoing edge from an output port to a target input pin
type Link struct {
	Target Pin
	Label  string // optional edge annotation
}

// Node is a unit with input/output arity and links per output port
type Node struct {
	ID          NodeID
	Kind        Kind
	Label       string
	Payload     interface{}
	InputArity  int
	OutputArity int

	// Inner, AssociatedInputs and AssociatedOutputs are only set on Nested nodes.
	// AssociatedInputs[i] is the inner pin fed by input i, AssociatedOutputs[i]
	// the inner pin exposed as output i.
	Inner             *Graph
	AssociatedInputs  []Pin
	AssociatedOutputs []Pin

	outputs [][]Link
}

// AssociatedInput returns the inner pin behind input i
func (n *Node) AssociatedInput(i int) (Pin, bool) {
	if i < 0 || i >= len(n.AssociatedInputs) {
		return Pin{Node: None}, false
	}
	return n.AssociatedInputs[i], true
}

// AssociatedOutput returns the inner pin behind output i
func (n *Node) AssociatedOutput(i int) (Pin, bool) {
	if i < 0 || i >= len(n.AssociatedOutputs) {
		return Pin{Node: None}, false
	}
	return n.AssociatedOutputs[i], true
}

// OutputLinks returns links of output port i
func (n *Node) OutputLinks(i int) []Link {
	if i < 0 || i >= len(n.outputs) {
		return nil
	}
	return n.outputs[i]
}

// IsLeaf reports whether the node has no outgoing links
func (n *Node) IsLeaf() bool {
	for _, links := range n.outputs {
		if len(links) > 0 {
			return false
		}
	}
	return true
}

package dag

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrSelfLoop is returned when a node is connected to itself.
	ErrSelfLoop = errors.New("node cannot be connected to itself")

	// ErrNodeNotFound is returned when a node ID does not belong to the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrPort is returned when a port index is outside the node arity.
	ErrPort = errors.New("port out of range")
)

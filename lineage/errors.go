package lineage

import "errors"

// Sentinel errors for lineage graph operations.
var (
	// ErrSelfLoop is returned when a node is added as its own child.
	ErrSelfLoop = errors.New("node cannot be its own child")

	// ErrNodeNotFound is returned when a node ID does not belong to the graph.
	ErrNodeNotFound = errors.New("lineage node not found")
)

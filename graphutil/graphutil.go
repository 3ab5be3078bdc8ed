// Package graphutil transforms single-rooted lineage graphs into compact explanations.
//
// Every transformation builds a fresh dag.Graph and never mutates its input.
package graphutil

import (
	"github.com/viant/provenance/dag"
)

// LabelMerge combines the label of an elided path prefix with the label of the next edge
type LabelMerge func(prefix, next string) string

type options struct {
	merge LabelMerge
}

// Option configures a transformation
type Option func(*options)

// WithLabelMerge sets how edge labels are combined when Squash elides nodes
func WithLabelMerge(merge LabelMerge) Option {
	return func(o *options) {
		o.merge = merge
	}
}

func newOptions(opts []Option) *options {
	ret := &options{merge: keepNearest}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func keepNearest(prefix, next string) string {
	if next != "" {
		return next
	}
	return prefix
}

// Simplify applies Flatten then Squash
func Simplify(g *dag.Graph, root dag.NodeID, opts ...Option) (*dag.Graph, dag.NodeID) {
	flat, flatRoot := Flatten(g, root)
	return Squash(flat, flatRoot, opts...)
}

// IsLeaf reports whether a node has no outgoing links
func IsLeaf(g *dag.Graph, id dag.NodeID) bool {
	return g.IsLeaf(id)
}

func connect(g *dag.Graph, from dag.NodeID, outPort int, to dag.Pin, label string) {
	if err := g.ConnectWithLabel(from, outPort, to.Node, to.Index, label); err != nil {
		g.Logger().Debug("graphutil: edge dropped", "from", from, "to", to.Node, "error", err)
	}
}

// mergeConnect links like connect, combining labels when the ports are already linked
func mergeConnect(g *dag.Graph, from dag.NodeID, outPort int, to dag.Pin, label string, merge LabelMerge) {
	if err := g.MergeLink(from, outPort, to.Node, to.Index, label, merge); err != nil {
		g.Logger().Debug("graphutil: edge dropped", "from", from, "to", to.Node, "error", err)
	}
}

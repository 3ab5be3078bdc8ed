package circuit

import (
	"fmt"
	"reflect"

	"github.com/viant/provenance/designator"
	"github.com/viant/provenance/lineage"
)

type trace struct {
	circuit  *Circuit
	query    lineage.Query
	tracer   *lineage.Tracer
	expanded map[lineage.NodeID]bool
}

// Trace answers a query about part d of an output of the named function.
// Parts of function inputs fed by other functions are followed upstream until
// circuit inputs are reached. Each call builds its own lineage graph.
func (c *Circuit) Trace(q lineage.Query, name string, output int, d designator.Designator) (*lineage.Graph, lineage.NodeID, error) {
	e, ok := c.entries[name]
	if !ok {
		return nil, -1, fmt.Errorf("trace: %w: %v", ErrUnknownFunction, name)
	}
	if output < 0 || output >= e.fn.OutputArity() {
		return nil, -1, fmt.Errorf("trace %v: %w: output %d of %d", name, ErrPort, output, e.fn.OutputArity())
	}
	if d == nil {
		d = designator.Identity{}
	}
	tracer := lineage.NewTracer(lineage.WithLogger(c.logger), lineage.WithCheckDuplicates(c.checkDuplicates))
	root := tracer.ObjectNode(designator.Prepend(d, designator.NthOutput{Index: output}), e.fn)
	t := &trace{circuit: c, query: q, tracer: tracer, expanded: map[lineage.NodeID]bool{}}
	err := t.expand(e, output, d, root, 0)
	c.logger.Debug("traced", "function", name, "output", output, "designator", d.String(), "nodes", tracer.Graph().Len())
	if err == nil && c.exporter != nil {
		if err = c.exporter.Export(tracer.Graph().Explain(root)); err != nil {
			err = fmt.Errorf("trace %v: %w", name, err)
		}
	}
	return tracer.Graph(), root, err
}

func (t *trace) expand(e *entry, output int, d designator.Designator, node lineage.NodeID, depth int) error {
	if t.expanded[node] {
		return nil
	}
	t.expanded[node] = true
	if depth >= t.circuit.maxDepth {
		t.circuit.logger.Warn("trace depth exceeded", "function", e.name, "depth", depth)
		return fmt.Errorf("trace %v: %w: %d", e.name, ErrDepthExceeded, t.circuit.maxDepth)
	}
	var leaves []lineage.NodeID
	e.fn.AnswerQuery(t.query, output, d, node, t.tracer, &leaves)
	for _, leaf := range leaves {
		object := t.tracer.Graph().Node(leaf).Object
		if !ownedBy(object.Owner, e.fn) {
			continue
		}
		top, rest := head(object.Designator)
		input, ok := top.(designator.NthInput)
		if !ok || input.Index < 0 || input.Index >= len(e.feeds) {
			continue
		}
		feed := e.feeds[input.Index]
		if feed == nil {
			continue
		}
		upstream := t.circuit.entries[feed.Function]
		child := t.tracer.ObjectNode(designator.Prepend(rest, designator.NthOutput{Index: feed.Port}), upstream.fn)
		if err := t.tracer.AddChild(leaf, child, lineage.Exact); err != nil {
			return err
		}
		if err := t.expand(upstream, feed.Port, rest, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func ownedBy(owner interface{}, fn Function) bool {
	candidate, ok := owner.(Function)
	if !ok || !reflect.ValueOf(fn).Comparable() || !reflect.ValueOf(candidate).Comparable() {
		return false
	}
	return candidate == fn
}

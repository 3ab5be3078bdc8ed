package circuit

import (
	"context"
	"fmt"

	"github.com/viant/provenance/designator"
	"github.com/viant/provenance/lineage"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Request is a query about part of a function output
type Request struct {
	Query      lineage.Query
	Function   string
	Output     int
	Designator designator.Designator
}

// Result is the lineage graph answering a request
type Result struct {
	Graph *lineage.Graph
	Root  lineage.NodeID
}

// TraceAll runs requests concurrently against an evaluated circuit; results follow request order.
// Every request gets its own tracer, so nothing is shared between queries.
// The circuit must not be modified or re-evaluated while TraceAll runs.
func (c *Circuit) TraceAll(ctx context.Context, requests []Request) ([]Result, error) {
	results := make([]Result, len(requests))
	g, groupCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(c.parallelism))
	var acquireErr error
	for i, request := range requests {
		if acquireErr = sem.Acquire(groupCtx, 1); acquireErr != nil {
			break
		}
		i, request := i, request // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			defer sem.Release(1)
			graph, root, err := c.Trace(request.Query, request.Function, request.Output, request.Designator)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = Result{Graph: graph, Root: root}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if acquireErr != nil {
		return nil, acquireErr
	}
	return results, nil
}

package circuit

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/provenance/config"
	"github.com/viant/provenance/designator"
	"github.com/viant/provenance/lineage"
)

// newTextCircuit builds fork -> (substring, size) over a text input
func newTextCircuit(t *testing.T, opts ...Option) *Circuit {
	c := New(opts...)
	require.NoError(t, c.Add("fork", NewDefaultFork()))
	require.NoError(t, c.Add("word", NewSubstring(6, 11)))
	require.NoError(t, c.Add("size", NewGetSize()))
	require.NoError(t, c.Connect("fork", 0, "word", 0))
	require.NoError(t, c.Connect("fork", 1, "size", 0))
	return c
}

func labels(graph *lineage.Graph, ids []lineage.NodeID) []string {
	var result []string
	for _, id := range ids {
		result = append(result, graph.Node(id).String())
	}
	return result
}

func TestCircuit_Add(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("fork", NewFork(3)))
	assert.ErrorIs(t, c.Add("fork", NewGetSize()), ErrDuplicateFunction)
	fn, ok := c.Function("fork")
	require.True(t, ok)
	assert.Equal(t, 3, fn.OutputArity())
	_, ok = c.Function("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"fork"}, c.Names())
}

func TestCircuit_Connect(t *testing.T) {
	var buf bytes.Buffer
	c := newTextCircuit(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.NoError(t, c.Add("other", NewFork(1)))

	var testCases = []struct {
		description string
		from        string
		outPort     int
		to          string
		inPort      int
		expect      error
	}{
		{description: "unknown source", from: "missing", to: "word", expect: ErrUnknownFunction},
		{description: "unknown target", from: "fork", to: "missing", expect: ErrUnknownFunction},
		{description: "self loop", from: "other", to: "other", expect: ErrSelfLoop},
		{description: "output out of range", from: "fork", outPort: 2, to: "other", expect: ErrPort},
		{description: "input out of range", from: "fork", to: "other", inPort: 1, expect: ErrPort},
		{description: "input already fed", from: "other", to: "word", expect: ErrInputTaken},
	}
	for _, testCase := range testCases {
		err := c.Connect(testCase.from, testCase.outPort, testCase.to, testCase.inPort)
		assert.ErrorIs(t, err, testCase.expect, testCase.description)
	}
	assert.Contains(t, buf.String(), "level=WARN")

	feed, ok := c.Feed("word", 0)
	require.True(t, ok)
	assert.Equal(t, Connector{Function: "fork", Port: 0}, feed)
	_, ok = c.Feed("fork", 0)
	assert.False(t, ok)
}

func TestCircuit_Evaluate(t *testing.T) {
	c := newTextCircuit(t)
	outputs, err := c.Evaluate(map[string][]interface{}{"fork": {"hello world"}})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"world"}, outputs["word"])
	assert.Equal(t, []interface{}{11}, outputs["size"])
	assert.Equal(t, []interface{}{"hello world", "hello world"}, outputs["fork"])

	_, err = c.Evaluate(nil)
	assert.ErrorIs(t, err, ErrArity)

	_, err = c.Evaluate(map[string][]interface{}{"fork": {42}})
	assert.ErrorIs(t, err, ErrInputType)

	cyclic := New()
	require.NoError(t, cyclic.Add("a", NewFork(1)))
	require.NoError(t, cyclic.Add("b", NewFork(1)))
	require.NoError(t, cyclic.Connect("a", 0, "b", 0))
	require.NoError(t, cyclic.Connect("b", 0, "a", 0))
	_, err = cyclic.Evaluate(nil)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestCircuit_Trace(t *testing.T) {
	c := newTextCircuit(t)
	_, err := c.Evaluate(map[string][]interface{}{"fork": {"hello world"}})
	require.NoError(t, err)

	graph, root, err := c.Trace(lineage.NewQuery(), "word", 0, designator.Identity{})
	require.NoError(t, err)
	assert.Equal(t, "Substring 6-11:out[0]", graph.Node(root).String())
	leaves := graph.Leaves(root)
	assert.Equal(t, []string{"Fork:in[0]"}, labels(graph, leaves))

	path := []lineage.NodeID{root}
	for id := root; !graph.Node(id).IsLeaf(); {
		id = graph.Node(id).Children()[0].Node
		path = append(path, id)
	}
	assert.Equal(t, []string{
		"Substring 6-11:out[0]",
		"Substring 6-11:in[0]/[6:11]",
		"Fork:out[0]/[6:11]",
		"Fork:in[0]",
	}, labels(graph, path))
	quality, ok := graph.PathQuality(path...)
	require.True(t, ok)
	assert.Equal(t, lineage.Over, quality)

	graph, root, err = c.Trace(lineage.NewQuery(), "size", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fork:in[0]"}, labels(graph, graph.Leaves(root)))

	graph, root, err = c.Trace(lineage.NewQuery(), "fork", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fork:in[0]"}, labels(graph, graph.Leaves(root)))
	quality, ok = graph.PathQuality(root, graph.Leaves(root)[0])
	require.True(t, ok)
	assert.Equal(t, lineage.Exact, quality)

	_, _, err = c.Trace(lineage.NewQuery(), "missing", 0, nil)
	assert.ErrorIs(t, err, ErrUnknownFunction)
	_, _, err = c.Trace(lineage.NewQuery(), "word", 1, nil)
	assert.ErrorIs(t, err, ErrPort)
}

func TestCircuit_TraceUnevaluated(t *testing.T) {
	c := newTextCircuit(t)
	graph, root, err := c.Trace(lineage.NewQuery(), "word", 0, designator.Range{Start: 0, End: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fork:in[0]"}, labels(graph, graph.Leaves(root)))
	assert.Equal(t, lineage.Over, graph.Node(root).Children()[0].Quality)
}

// newChain builds n substrings, each fed by the previous one
func newChain(t *testing.T, n int, opts ...Option) (*Circuit, []string) {
	c := New(opts...)
	names := []string{"s0", "s1", "s2", "s3", "s4"}[:n]
	for i, name := range names {
		require.NoError(t, c.Add(name, NewSubstring(0, 100)))
		if i > 0 {
			require.NoError(t, c.Connect(names[i-1], 0, name, 0))
		}
	}
	_, err := c.Evaluate(map[string][]interface{}{"s0": {"abcdef"}})
	require.NoError(t, err)
	return c, names
}

func TestCircuit_TraceDepth(t *testing.T) {
	t.Run("within bound", func(t *testing.T) {
		c, names := newChain(t, 3)
		graph, root, err := c.Trace(lineage.NewQuery(), names[2], 0, nil)
		require.NoError(t, err)
		leaves := graph.Leaves(root)
		require.Len(t, leaves, 1)
		s0, _ := c.Function("s0")
		assert.Same(t, s0, graph.Node(leaves[0]).Object.Owner)
		assert.Equal(t, "in[0]/[0:6]", graph.Node(leaves[0]).Object.Designator.String())
	})
	t.Run("bound exceeded", func(t *testing.T) {
		var buf bytes.Buffer
		c, names := newChain(t, 3, WithMaxDepth(2), WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
		_, _, err := c.Trace(lineage.NewQuery(), names[2], 0, nil)
		assert.ErrorIs(t, err, ErrDepthExceeded)
		assert.Contains(t, buf.String(), "level=WARN")
	})
	t.Run("bound from config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.MaxDepth = 1
		c, names := newChain(t, 2, WithConfig(cfg))
		_, _, err := c.Trace(lineage.NewQuery(), names[1], 0, nil)
		assert.ErrorIs(t, err, ErrDepthExceeded)
		_, _, err = c.Trace(lineage.NewQuery(), names[0], 0, nil)
		assert.NoError(t, err)
	})
}

func TestCircuit_TraceCycle(t *testing.T) {
	c := New(WithMaxDepth(16))
	require.NoError(t, c.Add("a", NewFork(1)))
	require.NoError(t, c.Add("b", NewFork(1)))
	require.NoError(t, c.Connect("a", 0, "b", 0))
	require.NoError(t, c.Connect("b", 0, "a", 0))
	graph, root, err := c.Trace(lineage.NewQuery(), "a", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, graph.Len())
	assert.Empty(t, graph.Leaves(root))
}

func TestCircuit_Reset(t *testing.T) {
	c := newTextCircuit(t)
	_, err := c.Evaluate(map[string][]interface{}{"fork": {"hello world"}})
	require.NoError(t, err)
	c.Reset()
	fn, _ := c.Function("word")
	assert.False(t, fn.(*Substring).Evaluated())
}

func TestCircuit_TraceAll(t *testing.T) {
	c := newTextCircuit(t, WithParallelism(2))
	_, err := c.Evaluate(map[string][]interface{}{"fork": {"hello world"}})
	require.NoError(t, err)

	requests := []Request{
		{Query: lineage.NewQuery(), Function: "word", Designator: designator.Range{Start: 0, End: 2}},
		{Query: lineage.NewQuery(), Function: "size"},
		{Query: lineage.NewQuery(), Function: "fork", Output: 1},
	}
	results, err := c.TraceAll(context.Background(), requests)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Substring 6-11:out[0]/[0:2]", results[0].Graph.Node(results[0].Root).String())
	assert.Equal(t, "Size:out[0]", results[1].Graph.Node(results[1].Root).String())
	assert.Equal(t, "Fork:out[1]", results[2].Graph.Node(results[2].Root).String())
	for _, result := range results {
		assert.Equal(t, []string{"Fork:in[0]"}, labels(result.Graph, result.Graph.Leaves(result.Root)))
	}

	_, err = c.TraceAll(context.Background(), append(requests, Request{Function: "missing"}))
	assert.ErrorIs(t, err, ErrUnknownFunction)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.TraceAll(ctx, requests)
	assert.ErrorIs(t, err, context.Canceled)
}

// tagged is a pass-through function whose value may hold non-comparable data
type tagged struct {
	tag interface{}
}

func (p tagged) InputArity() int { return 1 }

func (p tagged) OutputArity() int { return 1 }

func (p tagged) Evaluate(inputs []interface{}) ([]interface{}, error) {
	if err := checkArity(p, inputs); err != nil {
		return nil, err
	}
	return inputs, nil
}

func (p tagged) AnswerQuery(q lineage.Query, output int, d designator.Designator, root lineage.NodeID, tracer *lineage.Tracer, leaves *[]lineage.NodeID) {
	answerInput(lineage.Exact, p, d, root, tracer, leaves)
}

func (p tagged) Reset() {}

func (p tagged) String() string { return "Tagged" }

func TestCircuit_TraceValueFunction(t *testing.T) {
	var testCases = []struct {
		description string
		tag         interface{}
		expect      []string
	}{
		{description: "comparable value is followed upstream", tag: 1, expect: []string{"Fork:in[0]"}},
		{description: "value holding a slice stays a leaf", tag: []int{1}, expect: []string{"Tagged:in[0]"}},
	}
	for _, testCase := range testCases {
		c := New()
		require.NoError(t, c.Add("fork", NewFork(1)), testCase.description)
		require.NoError(t, c.Add("tagged", tagged{tag: testCase.tag}), testCase.description)
		require.NoError(t, c.Connect("fork", 0, "tagged", 0), testCase.description)
		var graph *lineage.Graph
		var root lineage.NodeID
		var err error
		require.NotPanics(t, func() {
			graph, root, err = c.Trace(lineage.NewQuery(), "tagged", 0, nil)
		}, testCase.description)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, labels(graph, graph.Leaves(root)), testCase.description)
	}
}

type recordingExporter struct {
	exported []*lineage.Explanation
}

func (r *recordingExporter) Export(explanation *lineage.Explanation) error {
	r.exported = append(r.exported, explanation)
	return nil
}

func TestCircuit_TraceExport(t *testing.T) {
	t.Run("exporter option", func(t *testing.T) {
		exporter := &recordingExporter{}
		c := newTextCircuit(t, WithExporter(exporter))
		_, err := c.Evaluate(map[string][]interface{}{"fork": {"hello world"}})
		require.NoError(t, err)
		_, _, err = c.Trace(lineage.NewQuery(), "word", 0, nil)
		require.NoError(t, err)
		require.Len(t, exporter.exported, 1)
		assert.Equal(t, []lineage.ExplainedNode{
			{ID: 0, Kind: "plain", Label: "Substring 6-11:out[0]"},
			{ID: 1, Kind: "plain", Label: "Fork:in[0]"},
		}, exporter.exported[0].Nodes)
		assert.Equal(t, []lineage.ExplainedEdge{{Source: 0, Target: 1, Quality: lineage.Over}}, exporter.exported[0].Edges)

		_, _, err = c.Trace(lineage.NewQuery(), "missing", 0, nil)
		assert.Error(t, err)
		assert.Len(t, exporter.exported, 1, "failed traces are not exported")
	})
	t.Run("export url from config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.ExportURL = t.TempDir()
		c := newTextCircuit(t, WithConfig(cfg))
		graph, root, err := c.Trace(lineage.NewQuery(), "size", 0, nil)
		require.NoError(t, err)
		location, err := lineage.NewURLExporter(cfg.ExportURL).Location(graph.Explain(root))
		require.NoError(t, err)
		assert.FileExists(t, location)
	})
}

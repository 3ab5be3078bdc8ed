package circuit

import (
	"fmt"
	"log/slog"

	"github.com/viant/provenance/config"
	"github.com/viant/provenance/lineage"
)

// Connector identifies the function output feeding an input
type Connector struct {
	Function string
	Port     int
}

type entry struct {
	name  string
	fn    Function
	feeds []*Connector // per input, nil when the input is a circuit input
}

// Circuit wires named functions output to input
type Circuit struct {
	entries         map[string]*entry
	order           []string
	logger          *slog.Logger
	maxDepth        int
	checkDuplicates bool
	parallelism     int
	exporter        lineage.Exporter
}

// New creates an empty circuit
func New(opts ...Option) *Circuit {
	ret := &Circuit{entries: map[string]*entry{}}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.maxDepth <= 0 {
		ret.maxDepth = config.DefaultMaxDepth
	}
	if ret.parallelism <= 0 {
		ret.parallelism = config.DefaultParallelism
	}
	return ret
}

// Add registers a function under a unique name
func (c *Circuit) Add(name string, fn Function) error {
	if _, ok := c.entries[name]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateFunction, name)
	}
	c.entries[name] = &entry{name: name, fn: fn, feeds: make([]*Connector, fn.InputArity())}
	c.order = append(c.order, name)
	return nil
}

// Function returns a function by name
func (c *Circuit) Function(name string) (Function, bool) {
	if e, ok := c.entries[name]; ok {
		return e.fn, true
	}
	return nil, false
}

// Names returns function names in the order they were added
func (c *Circuit) Names() []string {
	return append([]string{}, c.order...)
}

// Connect feeds input inPort of function to with output outPort of function from
func (c *Circuit) Connect(from string, outPort int, to string, inPort int) error {
	source, ok := c.entries[from]
	if !ok {
		return fmt.Errorf("connect: %w: %v", ErrUnknownFunction, from)
	}
	target, ok := c.entries[to]
	if !ok {
		return fmt.Errorf("connect: %w: %v", ErrUnknownFunction, to)
	}
	if from == to {
		c.logger.Warn("attempting to connect a function to itself", "function", from)
		return fmt.Errorf("connect %v: %w", from, ErrSelfLoop)
	}
	if outPort < 0 || outPort >= source.fn.OutputArity() {
		return fmt.Errorf("connect %v: %w: output %d of %d", from, ErrPort, outPort, source.fn.OutputArity())
	}
	if inPort < 0 || inPort >= len(target.feeds) {
		return fmt.Errorf("connect %v: %w: input %d of %d", to, ErrPort, inPort, len(target.feeds))
	}
	if feed := target.feeds[inPort]; feed != nil {
		return fmt.Errorf("connect %v input %d: %w: by %v", to, inPort, ErrInputTaken, feed.Function)
	}
	target.feeds[inPort] = &Connector{Function: from, Port: outPort}
	return nil
}

// Feed returns the connector feeding an input, or false for a circuit input
func (c *Circuit) Feed(name string, inPort int) (Connector, bool) {
	e, ok := c.entries[name]
	if !ok || inPort < 0 || inPort >= len(e.feeds) || e.feeds[inPort] == nil {
		return Connector{}, false
	}
	return *e.feeds[inPort], true
}

// Reset forgets the evaluation of every function
func (c *Circuit) Reset() {
	for _, name := range c.order {
		c.entries[name].fn.Reset()
	}
}

// Evaluate computes every function in dependency order.
// inputs supplies, per function name, values of inputs no function feeds; the slice is
// indexed by input port. It returns the outputs of every function.
func (c *Circuit) Evaluate(inputs map[string][]interface{}) (map[string][]interface{}, error) {
	order, err := c.sort()
	if err != nil {
		return nil, err
	}
	outputs := make(map[string][]interface{}, len(order))
	for _, name := range order {
		e := c.entries[name]
		args := make([]interface{}, len(e.feeds))
		for i, feed := range e.feeds {
			if feed != nil {
				args[i] = outputs[feed.Function][feed.Port]
				continue
			}
			supplied := inputs[name]
			if i >= len(supplied) {
				return nil, fmt.Errorf("%v: %w: input %d was not supplied", name, ErrArity, i)
			}
			args[i] = supplied[i]
		}
		values, err := e.fn.Evaluate(args)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %v: %w", name, err)
		}
		if len(values) != e.fn.OutputArity() {
			return nil, fmt.Errorf("%v: %w: expected %d outputs, but had %d", name, ErrArity, e.fn.OutputArity(), len(values))
		}
		c.logger.Debug("evaluated", "function", name, "outputs", len(values))
		outputs[name] = values
	}
	return outputs, nil
}

// sort orders functions so that every function comes after the functions feeding it
func (c *Circuit) sort() ([]string, error) {
	pending := make(map[string]int, len(c.order))
	downstream := map[string][]string{}
	for _, name := range c.order {
		for _, feed := range c.entries[name].feeds {
			if feed == nil {
				continue
			}
			pending[name]++
			downstream[feed.Function] = append(downstream[feed.Function], name)
		}
	}
	var ready, result []string
	for _, name := range c.order {
		if pending[name] == 0 {
			ready = append(ready, name)
		}
	}
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		result = append(result, name)
		for _, next := range downstream[name] {
			if pending[next]--; pending[next] == 0 {
				ready = append(ready, next)
			}
		}
	}
	if len(result) != len(c.order) {
		return nil, fmt.Errorf("%w: %d of %d functions ordered", ErrCycle, len(result), len(c.order))
	}
	return result, nil
}

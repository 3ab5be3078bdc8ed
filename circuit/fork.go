package circuit

import (
	"github.com/viant/provenance/designator"
	"github.com/viant/provenance/lineage"
)

// Fork copies its single input to each of its outputs
type Fork struct {
	arity int
}

// NewFork creates a fork with n outputs, n is at least 1
func NewFork(n int) *Fork {
	if n < 1 {
		n = 1
	}
	return &Fork{arity: n}
}

// NewDefaultFork creates a fork with two outputs
func NewDefaultFork() *Fork {
	return NewFork(2)
}

func (f *Fork) InputArity() int { return 1 }

func (f *Fork) OutputArity() int { return f.arity }

func (f *Fork) Evaluate(inputs []interface{}) ([]interface{}, error) {
	if err := checkArity(f, inputs); err != nil {
		return nil, err
	}
	outputs := make([]interface{}, f.arity)
	for i := range outputs {
		outputs[i] = inputs[0]
	}
	return outputs, nil
}

// AnswerQuery links every output to input 0; no value is transformed, so the claim is exact
func (f *Fork) AnswerQuery(q lineage.Query, output int, d designator.Designator, root lineage.NodeID, tracer *lineage.Tracer, leaves *[]lineage.NodeID) {
	_, tail := head(d)
	answerInput(lineage.Exact, f, tail, root, tracer, leaves)
}

func (f *Fork) Reset() {}

func (f *Fork) String() string {
	return "Fork"
}

// Package circuit defines functions that can both compute values and explain
// them: every function answers backward lineage queries about its own outputs.
// Functions are wired into a Circuit, which evaluates them in dependency order
// and traces a query back to the circuit inputs.
package circuit

import (
	"fmt"

	"github.com/viant/provenance/designator"
	"github.com/viant/provenance/lineage"
)

// Function computes outputs from inputs and answers lineage queries about them
type Function interface {
	InputArity() int
	OutputArity() int
	// Evaluate computes outputs and records what is needed to answer queries
	Evaluate(inputs []interface{}) ([]interface{}, error)
	// AnswerQuery attaches to root the parts of the inputs that output designated by d depends on.
	// Every reached object is appended to leaves.
	AnswerQuery(q lineage.Query, output int, d designator.Designator, root lineage.NodeID, tracer *lineage.Tracer, leaves *[]lineage.NodeID)
	// Reset forgets the last evaluation
	Reset()
}

// Evaluation holds the state a function keeps between Evaluate and AnswerQuery
type Evaluation struct {
	evaluated bool
	length    int
}

// Done marks the function evaluated over an input of the given length
func (e *Evaluation) Done(length int) {
	e.evaluated = true
	e.length = length
}

// Evaluated reports whether the function was evaluated since the last reset
func (e *Evaluation) Evaluated() bool {
	return e.evaluated
}

// Length returns the input length cached by the last evaluation
func (e *Evaluation) Length() int {
	return e.length
}

// Reset returns to the unevaluated state
func (e *Evaluation) Reset() {
	e.evaluated = false
	e.length = 0
}

func checkArity(fn Function, inputs []interface{}) error {
	if len(inputs) != fn.InputArity() {
		return fmt.Errorf("%v: %w: expected %d, but had %d", fn, ErrArity, fn.InputArity(), len(inputs))
	}
	return nil
}

// answerInput attaches a single link to input 0 of owner, keeping the tail of d
func answerInput(quality lineage.Quality, owner Function, tail designator.Designator, root lineage.NodeID, tracer *lineage.Tracer, leaves *[]lineage.NodeID, heads ...designator.Designator) {
	heads = append([]designator.Designator{designator.NthInput{Index: 0}}, heads...)
	object := lineage.DesignatedObject{Designator: designator.Prepend(tail, heads...), Owner: owner}
	tracer.Answer(root, lineage.NewLink(quality, object), leaves)
}

func head(d designator.Designator) (designator.Designator, designator.Designator) {
	if d == nil {
		return designator.Identity{}, designator.Identity{}
	}
	top, tail := d.Peek(), d.Tail()
	if top == nil {
		top = designator.Identity{}
	}
	if tail == nil {
		tail = designator.Identity{}
	}
	return top, tail
}

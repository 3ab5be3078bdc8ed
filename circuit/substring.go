package circuit

import (
	"fmt"

	"github.com/viant/provenance/designator"
	"github.com/viant/provenance/lineage"
)

// Substring extracts runes [start, end) of its input, bounds clamped to the input length
type Substring struct {
	Evaluation
	start int
	end   int
}

// NewSubstring creates a substring function
func NewSubstring(start, end int) *Substring {
	return &Substring{start: start, end: end}
}

// SetBounds changes the extracted range; the previous evaluation is forgotten
func (s *Substring) SetBounds(start, end int) {
	s.start, s.end = start, end
	s.Evaluation.Reset()
}

// Bounds returns the requested range
func (s *Substring) Bounds() (int, int) {
	return s.start, s.end
}

func (s *Substring) InputArity() int { return 1 }

func (s *Substring) OutputArity() int { return 1 }

func (s *Substring) Evaluate(inputs []interface{}) ([]interface{}, error) {
	if err := checkArity(s, inputs); err != nil {
		return nil, err
	}
	var text string
	switch actual := inputs[0].(type) {
	case string:
		text = actual
	case fmt.Stringer:
		text = actual.String()
	default:
		return nil, fmt.Errorf("%v: %w: %T", s, ErrInputType, inputs[0])
	}
	runes := []rune(text)
	s.Done(len(runes))
	bounds := s.clamped()
	return []interface{}{string(runes[bounds.Start:bounds.End])}, nil
}

// clamped returns the requested range clipped to the evaluated length
func (s *Substring) clamped() designator.Range {
	return designator.Range{Start: s.start, End: s.end}.Clamp(s.Length())
}

// AnswerQuery maps a part of the output back onto the input.
// The claim is never exact: after clamping the range may cover runes the output does not show.
// Mapped ranges never leave the extracted window of the input.
func (s *Substring) AnswerQuery(q lineage.Query, output int, d designator.Designator, root lineage.NodeID, tracer *lineage.Tracer, leaves *[]lineage.NodeID) {
	top, tail := head(d)
	if !s.Evaluated() {
		answerInput(lineage.Over, s, tail, root, tracer, leaves)
		return
	}
	window := s.clamped()
	switch actual := top.(type) {
	case designator.Identity:
		answerInput(lineage.Over, s, tail, root, tracer, leaves, window)
	case designator.Range:
		mapped := designator.Range{Start: actual.Start, End: min(actual.End, s.Length())}
		answerInput(lineage.Over, s, tail, root, tracer, leaves, mapped.Clamp(window.Len()).Shift(window.Start))
	}
}

func (s *Substring) String() string {
	return fmt.Sprintf("Substring %d-%d", s.start, s.end)
}

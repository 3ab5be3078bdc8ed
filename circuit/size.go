package circuit

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/viant/provenance/designator"
	"github.com/viant/provenance/lineage"
)

// GetSize outputs the number of elements of a slice, array or map, or the rune count of a string
type GetSize struct {
	Evaluation
}

// NewGetSize creates a size function
func NewGetSize() *GetSize {
	return &GetSize{}
}

func (g *GetSize) InputArity() int { return 1 }

func (g *GetSize) OutputArity() int { return 1 }

func (g *GetSize) Evaluate(inputs []interface{}) ([]interface{}, error) {
	if err := checkArity(g, inputs); err != nil {
		return nil, err
	}
	var size int
	switch actual := inputs[0].(type) {
	case string:
		size = utf8.RuneCountInString(actual)
	case nil:
		return nil, fmt.Errorf("%v: %w: nil", g, ErrInputType)
	default:
		value := reflect.ValueOf(actual)
		switch value.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			size = value.Len()
		default:
			return nil, fmt.Errorf("%v: %w: %T", g, ErrInputType, inputs[0])
		}
	}
	g.Done(size)
	return []interface{}{size}, nil
}

// AnswerQuery links the size to the whole input, whatever the evaluation state
func (g *GetSize) AnswerQuery(q lineage.Query, output int, d designator.Designator, root lineage.NodeID, tracer *lineage.Tracer, leaves *[]lineage.NodeID) {
	top, tail := head(d)
	if !designator.IsIdentity(top) {
		return
	}
	answerInput(lineage.Over, g, tail, root, tracer, leaves)
}

func (g *GetSize) String() string {
	return "Size"
}

package designator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	identitySymbol = "."
	separator      = "/"
	inputPrefix    = "in"
	outputPrefix   = "out"
)

// ErrMalformed is returned when a designator string cannot be parsed
var ErrMalformed = errors.New("malformed designator")

func portString(prefix string, index int) string {
	return prefix + "[" + strconv.Itoa(index) + "]"
}

// Parse parses the canonical string form of a designator.
//
// Supported elements, joined with "/" head-first:
//   - "."       Identity
//   - "in[0]"   NthInput
//   - "out[1]"  NthOutput
//   - "[2:5]"   Range
func Parse(text string) (Designator, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == identitySymbol {
		return Identity{}, nil
	}
	tokens := strings.Split(text, separator)
	parts := make([]Designator, 0, len(tokens))
	for _, token := range tokens {
		part, err := parseElement(strings.TrimSpace(token))
		if err != nil {
			return nil, fmt.Errorf("%w: %q in %q", ErrMalformed, token, text)
		}
		parts = append(parts, part)
	}
	return Compose(parts...), nil
}

func parseElement(token string) (Designator, error) {
	switch {
	case token == identitySymbol:
		return Identity{}, nil
	case strings.HasPrefix(token, inputPrefix+"["):
		index, err := parseIndex(strings.TrimPrefix(token, inputPrefix))
		if err != nil {
			return nil, err
		}
		return NthInput{Index: index}, nil
	case strings.HasPrefix(token, outputPrefix+"["):
		index, err := parseIndex(strings.TrimPrefix(token, outputPrefix))
		if err != nil {
			return nil, err
		}
		return NthOutput{Index: index}, nil
	case strings.HasPrefix(token, "["):
		body, ok := brackets(token)
		if !ok {
			return nil, ErrMalformed
		}
		bounds := strings.Split(body, ":")
		if len(bounds) != 2 {
			return nil, ErrMalformed
		}
		start, err := strconv.Atoi(bounds[0])
		if err != nil {
			return nil, err
		}
		end, err := strconv.Atoi(bounds[1])
		if err != nil {
			return nil, err
		}
		return Range{Start: start, End: end}, nil
	}
	return nil, ErrMalformed
}

func parseIndex(token string) (int, error) {
	body, ok := brackets(token)
	if !ok {
		return 0, ErrMalformed
	}
	index, err := strconv.Atoi(body)
	if err != nil {
		return 0, err
	}
	if index < 0 {
		return 0, ErrMalformed
	}
	return index, nil
}

func brackets(token string) (string, bool) {
	if !strings.HasPrefix(token, "[") || !strings.HasSuffix(token, "]") {
		return "", false
	}
	return token[1 : len(token)-1], true
}

package lineage

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Quality is the precision of a dependency claim
type Quality int

// Qualities ordered from weakest to strongest
const (
	// Unknown means no claim
	Unknown Quality = iota
	// Under means the real dependency set may be larger than claimed
	Under
	// Over means the real dependency set is a subset of what is claimed
	Over
	// Exact means the claim is provably exact
	Exact
)

func (q Quality) String() string {
	switch q {
	case Exact:
		return "EXACT"
	case Over:
		return "OVER"
	case Under:
		return "UNDER"
	default:
		return "UNKNOWN"
	}
}

// ParseQuality parses the String form of a quality, case-insensitive
func ParseQuality(text string) (Quality, error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "EXACT":
		return Exact, nil
	case "OVER":
		return Over, nil
	case "UNDER":
		return Under, nil
	case "UNKNOWN", "":
		return Unknown, nil
	}
	return Unknown, fmt.Errorf("unsupported quality: %q", text)
}

// MarshalYAML encodes quality as its name
func (q Quality) MarshalYAML() (interface{}, error) {
	return q.String(), nil
}

// UnmarshalYAML decodes quality from its name
func (q *Quality) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseQuality(node.Value)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// Weakest returns the weaker of two qualities
func Weakest(a, b Quality) Quality {
	if a < b {
		return a
	}
	return b
}

// MergeQualityLabels combines edge labels holding quality names, keeping the weakest
func MergeQualityLabels(prefix, next string) string {
	if prefix == "" {
		return next
	}
	if next == "" {
		return prefix
	}
	a, errA := ParseQuality(prefix)
	b, errB := ParseQuality(next)
	if errA != nil || errB != nil {
		return next
	}
	return Weakest(a, b).String()
}

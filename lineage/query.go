package lineage

// QueryKind identifies what a traceability query asks
type QueryKind int

const (
	// Provenance asks which parts of the inputs produced a part of an output
	Provenance QueryKind = iota
)

func (k QueryKind) String() string {
	if k == Provenance {
		return "provenance"
	}
	return "unknown"
}

// Query is a traceability query submitted against a function output
type Query struct {
	Kind QueryKind
}

// NewQuery creates a provenance query
func NewQuery() Query {
	return Query{Kind: Provenance}
}

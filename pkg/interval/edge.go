package interval

import "fmt"

// Edge selects which endpoints of an interval are included.
type Edge uint8

const (
	// ClosedOpenEdge is [a, b), the default edge.
	ClosedOpenEdge Edge = iota
	// ClosedEdge is [a, b].
	ClosedEdge
	// OpenClosedEdge is (a, b].
	OpenClosedEdge
	// OpenEdge is (a, b).
	OpenEdge
)

// ParseEdge interprets one of "[]", "[)", "(]" or "()".
func ParseEdge(s string) (Edge, error) {
	switch s {
	case "[)":
		return ClosedOpenEdge, nil
	case "[]":
		return ClosedEdge, nil
	case "(]":
		return OpenClosedEdge, nil
	case "()":
		return OpenEdge, nil
	}
	return 0, fmt.Errorf("edge %q must be '[]', '[)', '(]' or '()': %w", s, ErrInvalidArgument)
}

// MakeEdge returns the edge for the given inclusivity flags.
func MakeEdge(includeStart, includeEnd bool) Edge {
	switch {
	case includeStart && includeEnd:
		return ClosedEdge
	case includeStart:
		return ClosedOpenEdge
	case includeEnd:
		return OpenClosedEdge
	default:
		return OpenEdge
	}
}

func (e Edge) IncludeStart() bool { return e == ClosedEdge || e == ClosedOpenEdge }
func (e Edge) IncludeEnd() bool   { return e == ClosedEdge || e == OpenClosedEdge }

func (e Edge) String() string {
	switch e {
	case ClosedEdge:
		return "[]"
	case ClosedOpenEdge:
		return "[)"
	case OpenClosedEdge:
		return "(]"
	case OpenEdge:
		return "()"
	}
	return fmt.Sprintf("Edge(%d)", uint8(e))
}

package interval

import (
	"errors"
	"fmt"
	"strings"
)

// ParseFunc parses a single value of the domain.
type ParseFunc[T any] func(s string) (T, error)

// Parse reads a set in the format produced by String, e.g.
// "[1, 3)∪(5, inf)" or "(empty)". Members may be given in any order and may
// overlap; the result is normalized.
func (d Domain[T]) Parse(s string, parseValue ParseFunc[T]) (Set[T], error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "(empty)" {
		return d.Empty(), nil
	}

	var errm error
	units := []Interval[T]{}
	for _, part := range strings.Split(s, "∪") {
		u, err := d.parseInterval(strings.TrimSpace(part), parseValue)
		if err != nil {
			errm = errors.Join(errm, err)
			continue
		}
		units = append(units, u)
	}
	if errm != nil {
		return Set[T]{}, errm
	}
	return d.FromIntervals(units...), nil
}

func (d Domain[T]) parseInterval(s string, parseValue ParseFunc[T]) (Interval[T], error) {
	if len(s) < 2 {
		return Interval[T]{}, fmt.Errorf("interval %q: %w", s, ErrInvalidArgument)
	}
	edge, err := ParseEdge(string(s[0]) + string(s[len(s)-1]))
	if err != nil {
		return Interval[T]{}, fmt.Errorf("interval %q: %w", s, err)
	}
	startStr, endStr, found := strings.Cut(s[1:len(s)-1], ",")
	if !found {
		return Interval[T]{}, fmt.Errorf("interval %q: missing ',': %w", s, ErrInvalidArgument)
	}
	start, err := parseEndpoint(strings.TrimSpace(startStr), parseValue)
	if err != nil {
		return Interval[T]{}, fmt.Errorf("interval %q: %w", s, err)
	}
	end, err := parseEndpoint(strings.TrimSpace(endStr), parseValue)
	if err != nil {
		return Interval[T]{}, fmt.Errorf("interval %q: %w", s, err)
	}
	u, ok := d.Interval(start, end, edge.IncludeStart(), edge.IncludeEnd())
	if !ok {
		return Interval[T]{}, fmt.Errorf("interval %q is empty: %w", s, ErrInvalidArgument)
	}
	return u, nil
}

func parseEndpoint[T any](s string, parseValue ParseFunc[T]) (Endpoint[T], error) {
	switch s {
	case "-inf":
		return NegInf[T](), nil
	case "inf", "+inf":
		return PosInf[T](), nil
	}
	v, err := parseValue(s)
	if err != nil {
		return Endpoint[T]{}, fmt.Errorf("value %q: %w", s, errors.Join(ErrInvalidArgument, err))
	}
	return Value(v), nil
}

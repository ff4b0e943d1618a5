package interval

import (
	"fmt"
	"time"

	"golang.org/x/exp/constraints"
)

// CompareFunc returns a negative number when a < b, zero when a == b and a
// positive number when a > b. It must describe a total order.
type CompareFunc[T any] func(a, b T) int

// FormatFunc renders a single value for String output.
type FormatFunc[T any] func(v T) string

// Domain is the ordered value space intervals are built over. All sets that
// are combined with each other must come from domains with the same order.
type Domain[T any] struct {
	compare CompareFunc[T]
	format  FormatFunc[T]
}

type DomainOption[T any] func(*Domain[T])

// WithFormat overrides how values are rendered by String.
func WithFormat[T any](f FormatFunc[T]) DomainOption[T] {
	return func(d *Domain[T]) {
		d.format = f
	}
}

// NewDomain returns a domain ordered by cmp.
func NewDomain[T any](cmp CompareFunc[T], opts ...DomainOption[T]) Domain[T] {
	d := Domain[T]{compare: cmp}
	for _, o := range opts {
		o(&d)
	}
	return d
}

// Ordered returns the domain of a builtin ordered type using < and >.
// Floating point NaN sorts below every other value and equal to itself, so
// the order stays total.
func Ordered[T constraints.Ordered]() Domain[T] {
	return Domain[T]{compare: compareOrdered[T]}
}

// Time returns the domain of time instants, rendered as RFC 3339.
func Time() Domain[time.Time] {
	return Domain[time.Time]{
		compare: time.Time.Compare,
		format:  func(v time.Time) string { return v.Format(time.RFC3339Nano) },
	}
}

func compareOrdered[T constraints.Ordered](a, b T) int {
	aNaN, bNaN := isNaN(a), isNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func isNaN[T constraints.Ordered](v T) bool {
	return v != v
}

// Compare orders two values of the domain.
func (d Domain[T]) Compare(a, b T) int { return d.compare(a, b) }

func (d Domain[T]) formatValue(v T) string {
	if d.format == nil {
		return fmt.Sprint(v)
	}
	return d.format(v)
}

func (d Domain[T]) formatEndpoint(e Endpoint[T]) string {
	switch e.kind {
	case negInf:
		return "-inf"
	case posInf:
		return "inf"
	}
	return d.formatValue(e.value)
}

// Interval is the smart constructor: it returns false when the requested
// range is empty. Unbounded endpoints are never included.
func (d Domain[T]) Interval(start, end Endpoint[T], includeStart, includeEnd bool) (Interval[T], bool) {
	if !start.IsBounded() {
		includeStart = false
	}
	if !end.IsBounded() {
		includeEnd = false
	}
	c := compareEndpoints(d.compare, start, end)
	if includeStart && includeEnd {
		if c > 0 {
			return Interval[T]{}, false
		}
	} else if c >= 0 {
		return Interval[T]{}, false
	}
	return Interval[T]{
		d:            d,
		start:        start,
		end:          end,
		includeStart: includeStart,
		includeEnd:   includeEnd,
	}, true
}

// New builds the set holding the interval between start and end, or the
// empty set when the range is degenerate.
func (d Domain[T]) New(start, end Endpoint[T], edge Edge) Set[T] {
	u, ok := d.Interval(start, end, edge.IncludeStart(), edge.IncludeEnd())
	if !ok {
		return d.Empty()
	}
	return Set[T]{d: d, units: []Interval[T]{u}}
}

// Range builds [start, end) style sets from a textual edge such as "(]".
func (d Domain[T]) Range(start, end T, edge string) (Set[T], error) {
	e, err := ParseEdge(edge)
	if err != nil {
		return Set[T]{}, err
	}
	return d.New(Value(start), Value(end), e), nil
}

func (d Domain[T]) Closed(start, end T) Set[T] {
	return d.New(Value(start), Value(end), ClosedEdge)
}

func (d Domain[T]) Open(start, end T) Set[T] {
	return d.New(Value(start), Value(end), OpenEdge)
}

func (d Domain[T]) ClosedOpen(start, end T) Set[T] {
	return d.New(Value(start), Value(end), ClosedOpenEdge)
}

func (d Domain[T]) OpenClosed(start, end T) Set[T] {
	return d.New(Value(start), Value(end), OpenClosedEdge)
}

// AtLeast is [start, inf).
func (d Domain[T]) AtLeast(start T) Set[T] {
	return d.New(Value(start), PosInf[T](), ClosedOpenEdge)
}

// GreaterThan is (start, inf).
func (d Domain[T]) GreaterThan(start T) Set[T] {
	return d.New(Value(start), PosInf[T](), OpenEdge)
}

// AtMost is (-inf, end].
func (d Domain[T]) AtMost(end T) Set[T] {
	return d.New(NegInf[T](), Value(end), OpenClosedEdge)
}

// LessThan is (-inf, end).
func (d Domain[T]) LessThan(end T) Set[T] {
	return d.New(NegInf[T](), Value(end), OpenEdge)
}

// All is (-inf, inf).
func (d Domain[T]) All() Set[T] {
	return d.New(NegInf[T](), PosInf[T](), OpenEdge)
}

// Empty returns the empty set of the domain.
func (d Domain[T]) Empty() Set[T] {
	return Set[T]{d: d}
}

// Singleton is [v, v].
func (d Domain[T]) Singleton(v T) Set[T] {
	return d.New(Value(v), Value(v), ClosedEdge)
}

// FromIntervals returns the normalized union of the given intervals in any
// order.
func (d Domain[T]) FromIntervals(units ...Interval[T]) Set[T] {
	s := d.Empty()
	for _, u := range units {
		s = s.Union(Set[T]{d: d, units: []Interval[T]{u}})
	}
	return s
}

// The functions below are shortcuts over Ordered for builtin types.

func Closed[T constraints.Ordered](start, end T) Set[T] {
	return Ordered[T]().Closed(start, end)
}

func Open[T constraints.Ordered](start, end T) Set[T] {
	return Ordered[T]().Open(start, end)
}

func ClosedOpen[T constraints.Ordered](start, end T) Set[T] {
	return Ordered[T]().ClosedOpen(start, end)
}

func OpenClosed[T constraints.Ordered](start, end T) Set[T] {
	return Ordered[T]().OpenClosed(start, end)
}

func AtLeast[T constraints.Ordered](start T) Set[T] {
	return Ordered[T]().AtLeast(start)
}

func GreaterThan[T constraints.Ordered](start T) Set[T] {
	return Ordered[T]().GreaterThan(start)
}

func AtMost[T constraints.Ordered](end T) Set[T] {
	return Ordered[T]().AtMost(end)
}

func LessThan[T constraints.Ordered](end T) Set[T] {
	return Ordered[T]().LessThan(end)
}

func All[T constraints.Ordered]() Set[T] {
	return Ordered[T]().All()
}

func Empty[T constraints.Ordered]() Set[T] {
	return Ordered[T]().Empty()
}

func Singleton[T constraints.Ordered](v T) Set[T] {
	return Ordered[T]().Singleton(v)
}

// Range is Ordered[T]().Range.
func Range[T constraints.Ordered](start, end T, edge string) (Set[T], error) {
	return Ordered[T]().Range(start, end, edge)
}

// MustRange is like Range but panics on an invalid edge.
func MustRange[T constraints.Ordered](start, end T, edge string) Set[T] {
	s, err := Range(start, end, edge)
	if err != nil {
		panic(err)
	}
	return s
}

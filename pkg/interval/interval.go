package interval

import "strings"

// Interval is a single non-empty contiguous range. It is only produced by
// Domain.Interval, which rejects degenerate ranges, and never changes after
// construction.
type Interval[T any] struct {
	d            Domain[T]
	start        Endpoint[T]
	end          Endpoint[T]
	includeStart bool
	includeEnd   bool
}

func (r Interval[T]) Start() Endpoint[T] { return r.start }
func (r Interval[T]) End() Endpoint[T]   { return r.end }
func (r Interval[T]) IncludeStart() bool { return r.includeStart }
func (r Interval[T]) IncludeEnd() bool   { return r.includeEnd }
func (r Interval[T]) Edge() Edge         { return MakeEdge(r.includeStart, r.includeEnd) }

// Contains reports whether v lies inside the interval.
func (r Interval[T]) Contains(v T) bool {
	p := Value(v)
	c := compareEndpoints(r.d.compare, r.start, p)
	if c > 0 || (c == 0 && !r.includeStart) {
		return false
	}
	c = compareEndpoints(r.d.compare, p, r.end)
	return c < 0 || (c == 0 && r.includeEnd)
}

// Equal compares endpoints and inclusivity.
func (r Interval[T]) Equal(o Interval[T]) bool {
	cmp := r.d.compare
	if cmp == nil {
		cmp = o.d.compare
	}
	return r.includeStart == o.includeStart &&
		r.includeEnd == o.includeEnd &&
		compareEndpoints(cmp, r.start, o.start) == 0 &&
		compareEndpoints(cmp, r.end, o.end) == 0
}

// IsSingleton reports whether the interval is [v, v].
func (r Interval[T]) IsSingleton() bool {
	return r.includeStart && r.includeEnd && compareEndpoints(r.d.compare, r.start, r.end) == 0
}

func (r Interval[T]) String() string {
	var sb strings.Builder
	r.writeTo(&sb)
	return sb.String()
}

func (r Interval[T]) writeTo(sb *strings.Builder) {
	if r.includeStart {
		sb.WriteByte('[')
	} else {
		sb.WriteByte('(')
	}
	sb.WriteString(r.d.formatEndpoint(r.start))
	sb.WriteString(", ")
	sb.WriteString(r.d.formatEndpoint(r.end))
	if r.includeEnd {
		sb.WriteByte(']')
	} else {
		sb.WriteByte(')')
	}
}

// startsBefore orders intervals by start; at an equal start the one that
// includes the start sorts first.
func startsBefore[T any](cmp CompareFunc[T], a, b Interval[T]) bool {
	c := compareEndpoints(cmp, a.start, b.start)
	if c != 0 {
		return c < 0
	}
	return a.includeStart && !b.includeStart
}

// entirelyBefore reports whether a ends before b starts without sharing a
// point. a and b may still be mergeable when they touch.
func entirelyBefore[T any](cmp CompareFunc[T], a, b Interval[T]) bool {
	c := compareEndpoints(cmp, a.end, b.start)
	return c < 0 || (c == 0 && !(a.includeEnd && b.includeStart))
}

// sumUnits returns the union of e1 and e2 when it is a single interval.
// ok is false when the two must be kept apart.
func sumUnits[T any](d Domain[T], e1, e2 Interval[T]) (Interval[T], bool) {
	if startsBefore(d.compare, e2, e1) {
		e1, e2 = e2, e1
	}

	c := compareEndpoints(d.compare, e1.end, e2.start)
	if c < 0 || (c == 0 && !e1.includeEnd && !e2.includeStart) {
		return Interval[T]{}, false
	}

	endPoint := e1
	c = compareEndpoints(d.compare, e1.end, e2.end)
	if c < 0 || (c == 0 && e2.includeEnd) {
		endPoint = e2
	}
	return d.Interval(e1.start, endPoint.end, e1.includeStart, endPoint.includeEnd)
}

// mulUnits returns the intersection of e1 and e2; ok is false when it is
// empty.
func mulUnits[T any](d Domain[T], e1, e2 Interval[T]) (Interval[T], bool) {
	if startsBefore(d.compare, e2, e1) {
		e1, e2 = e2, e1
	}

	if entirelyBefore(d.compare, e1, e2) {
		return Interval[T]{}, false
	}

	endPoint := e2
	c := compareEndpoints(d.compare, e1.end, e2.end)
	if c < 0 || (c == 0 && !e1.includeEnd) {
		endPoint = e1
	}
	return d.Interval(e2.start, endPoint.end, e2.includeStart, endPoint.includeEnd)
}

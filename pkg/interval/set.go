package interval

import (
	"iter"
	"sort"
	"strings"
)

// Set is a finite union of intervals. Its members are kept in canonical form:
// sorted by start, pairwise disjoint, never empty and never mergeable with
// their neighbours, so two sets are equal exactly when their members are.
//
// A Set is immutable; every operation returns a new value and it is safe to
// share between goroutines. The zero value is the empty set.
type Set[T any] struct {
	d Domain[T]
	// units must stay canonical; every method relies on it.
	units []Interval[T]
}

// Domain returns the domain the set was built from.
func (s Set[T]) Domain() Domain[T] { return s.d }

// domainWith picks the order to use when combining s with o. The empty zero
// value carries no order of its own.
func (s Set[T]) domainWith(o Set[T]) Domain[T] {
	if s.d.compare == nil {
		return o.d
	}
	return s.d
}

func (s Set[T]) IsEmpty() bool { return len(s.units) == 0 }

// Len returns the number of disjoint intervals in the set.
func (s Set[T]) Len() int { return len(s.units) }

// Intervals returns a copy of the members in ascending order.
func (s Set[T]) Intervals() []Interval[T] {
	return append([]Interval[T]{}, s.units...)
}

// At returns the i-th member as a set of its own. Like slice indexing it
// panics when i is outside [0, Len()).
func (s Set[T]) At(i int) Set[T] {
	return Set[T]{d: s.d, units: []Interval[T]{s.units[i]}}
}

// All iterates over the members in ascending order.
func (s Set[T]) All() iter.Seq2[int, Interval[T]] {
	return func(yield func(int, Interval[T]) bool) {
		for i, u := range s.units {
			if !yield(i, u) {
				return
			}
		}
	}
}

// Contains reports whether v is an element of the set.
func (s Set[T]) Contains(v T) bool {
	p := Value(v)
	// first member that does not end before v
	i := sort.Search(len(s.units), func(k int) bool {
		c := compareEndpoints(s.d.compare, s.units[k].end, p)
		return c > 0 || (c == 0 && s.units[k].includeEnd)
	})
	return i < len(s.units) && s.units[i].Contains(v)
}

// Equal reports whether both sets hold the same elements.
func (s Set[T]) Equal(o Set[T]) bool {
	if len(s.units) != len(o.units) {
		return false
	}
	for i := range s.units {
		if !s.units[i].Equal(o.units[i]) {
			return false
		}
	}
	return true
}

func (s Set[T]) String() string {
	if s.IsEmpty() {
		return "(empty)"
	}
	var sb strings.Builder
	for i, u := range s.units {
		if i > 0 {
			sb.WriteString("∪")
		}
		u.writeTo(&sb)
	}
	return sb.String()
}

// MarshalText renders the set the same way as String.
func (s Set[T]) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Union returns the set of elements in s or o.
func (s Set[T]) Union(o Set[T]) Set[T] {
	d := s.domainWith(o)
	switch {
	case o.IsEmpty():
		return Set[T]{d: d, units: s.units}
	case s.IsEmpty():
		return Set[T]{d: d, units: o.units}
	}

	// left is rewritten while sweeping, right is only read
	left := append([]Interval[T]{}, s.units...)
	right := o.units
	out := make([]Interval[T], 0, len(left)+len(right))

	l, r := 0, 0
	for l < len(left) && r < len(right) {
		lu, ru := left[l], right[r]

		sum, ok := sumUnits(d, lu, ru)
		if ok {
			left[l] = sum
			r++

			// the merged member may now reach the following left members
			for l+1 < len(left) {
				next, ok := sumUnits(d, left[l], left[l+1])
				if !ok {
					break
				}
				left[l+1] = next
				l++
			}
			continue
		}

		// not mergeable: the one that starts first is final
		if startsBefore(d.compare, lu, ru) {
			out = append(out, lu)
			l++
		} else {
			out = append(out, ru)
			r++
		}
	}
	out = append(out, left[l:]...)
	out = append(out, right[r:]...)

	return Set[T]{d: d, units: out}
}

// Intersect returns the set of elements in both s and o.
func (s Set[T]) Intersect(o Set[T]) Set[T] {
	d := s.domainWith(o)
	result := d.Empty()
	for _, ru := range o.units {
		result = result.Union(s.intersectUnit(d, ru))
	}
	return result
}

// intersectUnit intersects every member with u. The pieces keep the order
// and disjointness of the members, so no normalization is needed.
func (s Set[T]) intersectUnit(d Domain[T], u Interval[T]) Set[T] {
	var out []Interval[T]
	for _, lu := range s.units {
		if m, ok := mulUnits(d, lu, u); ok {
			out = append(out, m)
		}
	}
	return Set[T]{d: d, units: out}
}

// Difference returns the elements of s that are not in o.
func (s Set[T]) Difference(o Set[T]) Set[T] {
	d := s.domainWith(o)
	if s.IsEmpty() || o.IsEmpty() {
		return Set[T]{d: d, units: s.units}
	}

	out := make([]Interval[T], 0, len(s.units))
	first := 0
	for _, in := range s.units {
		cur, ok := in, true
		for k := first; ok && k < len(o.units); k++ {
			rm := o.units[k]
			if entirelyBefore(d.compare, rm, cur) {
				// rm is also before every later member of s
				first = k + 1
				continue
			}
			if entirelyBefore(d.compare, cur, rm) {
				break
			}
			// rm overlaps cur: keep what lies left of it, continue with what
			// lies right of it
			if left, ok := d.Interval(cur.start, rm.start, cur.includeStart, !rm.includeStart); ok {
				out = append(out, left)
			}
			cur, ok = d.Interval(rm.end, cur.end, !rm.includeEnd, cur.includeEnd)
		}
		if ok {
			out = append(out, cur)
		}
	}
	return Set[T]{d: d, units: out}
}

// SymmetricDifference returns the elements in exactly one of s and o.
func (s Set[T]) SymmetricDifference(o Set[T]) Set[T] {
	return s.Difference(o).Union(o.Difference(s))
}

// Complement returns every element of the domain that is not in s.
func (s Set[T]) Complement() Set[T] {
	out := make([]Interval[T], 0, len(s.units)+1)

	nextStart, nextIncludeStart := NegInf[T](), false
	for _, u := range s.units {
		if gap, ok := s.d.Interval(nextStart, u.start, nextIncludeStart, !u.includeStart); ok {
			out = append(out, gap)
		}
		nextStart, nextIncludeStart = u.end, !u.includeEnd
	}
	if gap, ok := s.d.Interval(nextStart, PosInf[T](), nextIncludeStart, false); ok {
		out = append(out, gap)
	}
	return Set[T]{d: s.d, units: out}
}

// Union returns the union of all given sets.
func Union[T any](sets ...Set[T]) Set[T] {
	var out Set[T]
	for _, s := range sets {
		out = out.Union(s)
	}
	return out
}

// Intersect returns the intersection of all given sets; with no arguments
// it returns the empty set.
func Intersect[T any](sets ...Set[T]) Set[T] {
	if len(sets) == 0 {
		return Set[T]{}
	}
	out := sets[0]
	for _, s := range sets[1:] {
		out = out.Intersect(s)
	}
	return out
}

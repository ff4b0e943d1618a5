package interval

// IsSubset reports whether every element of s is in o.
func (s Set[T]) IsSubset(o Set[T]) bool { return s.Union(o).Equal(o) }

// IsSuperset reports whether every element of o is in s.
func (s Set[T]) IsSuperset(o Set[T]) bool { return s.Union(o).Equal(s) }

func (s Set[T]) IsProperSubset(o Set[T]) bool   { return !s.Equal(o) && s.IsSubset(o) }
func (s Set[T]) IsProperSuperset(o Set[T]) bool { return !s.Equal(o) && s.IsSuperset(o) }

// ContainsSet is IsSuperset.
func (s Set[T]) ContainsSet(o Set[T]) bool { return s.IsSuperset(o) }

// Overlaps reports whether s and o share at least one element.
func (s Set[T]) Overlaps(o Set[T]) bool {
	d := s.domainWith(o)
	i, j := 0, 0
	for i < len(s.units) && j < len(o.units) {
		a, b := s.units[i], o.units[j]
		switch {
		case entirelyBefore(d.compare, a, b):
			i++
		case entirelyBefore(d.compare, b, a):
			j++
		default:
			return true
		}
	}
	return false
}

func (s Set[T]) IsDisjoint(o Set[T]) bool { return !s.Overlaps(o) }

// IsBoundedBelow is true for the empty set and for sets whose first member
// has a finite start.
func (s Set[T]) IsBoundedBelow() bool {
	return s.IsEmpty() || !s.units[0].start.IsNegInf()
}

// IsBoundedAbove is true for the empty set and for sets whose last member
// has a finite end.
func (s Set[T]) IsBoundedAbove() bool {
	return s.IsEmpty() || !s.units[len(s.units)-1].end.IsPosInf()
}

func (s Set[T]) IsBounded() bool { return s.IsBoundedBelow() && s.IsBoundedAbove() }

// Inf returns the greatest lower bound. ok is false when the set is empty or
// unbounded below.
func (s Set[T]) Inf() (v T, ok bool) {
	if s.IsEmpty() {
		return v, false
	}
	return s.units[0].start.Get()
}

// Sup returns the least upper bound. ok is false when the set is empty or
// unbounded above.
func (s Set[T]) Sup() (v T, ok bool) {
	if s.IsEmpty() {
		return v, false
	}
	return s.units[len(s.units)-1].end.Get()
}

// Min returns the smallest element, which only exists when the set is
// left-closed.
func (s Set[T]) Min() (v T, ok bool) {
	if !s.LeftClosed() {
		return v, false
	}
	return s.Inf()
}

// Max returns the largest element, which only exists when the set is
// right-closed.
func (s Set[T]) Max() (v T, ok bool) {
	if !s.RightClosed() {
		return v, false
	}
	return s.Sup()
}

// LeftClosed reports whether the first member includes its start. It is
// false for the empty set and for sets unbounded below.
func (s Set[T]) LeftClosed() bool {
	return !s.IsEmpty() && s.units[0].includeStart
}

// LeftOpen is the negation of LeftClosed for non-empty sets.
func (s Set[T]) LeftOpen() bool {
	return !s.IsEmpty() && !s.units[0].includeStart
}

func (s Set[T]) RightClosed() bool {
	return !s.IsEmpty() && s.units[len(s.units)-1].includeEnd
}

func (s Set[T]) RightOpen() bool {
	return !s.IsEmpty() && !s.units[len(s.units)-1].includeEnd
}

// IsInterval reports whether the set is empty or a single interval.
func (s Set[T]) IsInterval() bool { return len(s.units) <= 1 }

// IsSingleton reports whether the set holds exactly one element.
func (s Set[T]) IsSingleton() bool {
	return len(s.units) == 1 && s.units[0].IsSingleton()
}

// Hull returns the smallest interval enclosing s. The hull of the empty set
// is empty.
func (s Set[T]) Hull() Set[T] {
	if s.IsInterval() {
		return s
	}
	first, last := s.units[0], s.units[len(s.units)-1]
	u, _ := s.d.Interval(first.start, last.end, first.includeStart, last.includeEnd)
	return Set[T]{d: s.d, units: []Interval[T]{u}}
}

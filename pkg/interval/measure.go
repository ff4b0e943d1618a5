package interval

import (
	"fmt"
	"time"

	"golang.org/x/exp/constraints"
)

// Number is any builtin type whose differences are of the same type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Measure returns the total length of s, summing sub(end, start) over the
// members with add. The empty set measures zero; a set that is not bounded on
// both sides returns ErrNotBounded.
func Measure[T, D any](s Set[T], zero D, sub func(end, start T) D, add func(a, b D) D) (D, error) {
	if s.IsEmpty() {
		return zero, nil
	}
	if !s.IsBounded() {
		return zero, fmt.Errorf("measure %s: %w", s, ErrNotBounded)
	}
	total := zero
	for i, u := range s.units {
		l := sub(u.end.value, u.start.value)
		if i == 0 {
			total = l
			continue
		}
		total = add(total, l)
	}
	return total, nil
}

// MeasureNumber is Measure over builtin numbers.
func MeasureNumber[T Number](s Set[T], zero T) (T, error) {
	return Measure(s, zero,
		func(end, start T) T { return end - start },
		func(a, b T) T { return a + b },
	)
}

// MeasureTime returns the total duration covered by a set of instants.
func MeasureTime(s Set[time.Time], zero time.Duration) (time.Duration, error) {
	return Measure(s, zero,
		time.Time.Sub,
		func(a, b time.Duration) time.Duration { return a + b },
	)
}

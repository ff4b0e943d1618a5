// Package iterint enumerates the integers contained in an interval set.
package iterint

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/henderiw/unioninterval/pkg/interval"
	"golang.org/x/exp/constraints"
)

// Real is any builtin numeric type.
type Real interface {
	constraints.Integer | constraints.Float
}

var ints = interval.Ordered[int64]()

const two63 float64 = 1 << 63

// Range is a view over the integers of a set. The set is normalized to
// half-open integer members [a, b) on construction, so two views over sets
// with the same integers are equal. A member ending at math.MaxInt64 stays
// closed since its half-open end does not exist.
//
// Endpoints that do not fit in an int64 are recorded as an error, which Err,
// All, Backward, Values and Len return.
type Range struct {
	base    interval.Set[int64]
	reverse bool
	err     error
}

// New returns a view that iterates in ascending order.
func New[T Real](s interval.Set[T]) Range {
	base, err := normalize(s)
	return Range{base: base, err: err}
}

// Reverse returns a view that iterates in descending order.
func Reverse[T Real](s interval.Set[T]) Range {
	base, err := normalize(s)
	return Range{base: base, reverse: true, err: err}
}

func normalize[T Real](s interval.Set[T]) (interval.Set[int64], error) {
	var errm error
	out := ints.Empty()
	for _, u := range s.Intervals() {
		start := interval.NegInf[int64]()
		if v, ok := u.Start().Get(); ok {
			lo, ok, err := lowest(v, u.IncludeStart())
			if err != nil {
				errm = errors.Join(errm, fmt.Errorf("start of %s: %w", u, err))
				continue
			}
			if !ok {
				continue
			}
			start = interval.Value(lo)
		}
		end, edge := interval.PosInf[int64](), interval.ClosedOpenEdge
		if v, ok := u.End().Get(); ok {
			hi, ok, err := highest(v, u.IncludeEnd())
			if err != nil {
				errm = errors.Join(errm, fmt.Errorf("end of %s: %w", u, err))
				continue
			}
			if !ok {
				continue
			}
			if hi == math.MaxInt64 {
				end, edge = interval.Value(hi), interval.ClosedEdge
			} else {
				end = interval.Value(hi + 1)
			}
		}
		out = out.Union(ints.New(start, end, edge))
	}
	return out, errm
}

// lowest returns the smallest integer of a member starting at v. ok is false
// when no int64 lies above an open start.
func lowest[T Real](v T, closed bool) (n int64, ok bool, err error) {
	if isInteger[T]() {
		if !fits(v) {
			return 0, false, outOfRange(v)
		}
		n = int64(v)
		if closed {
			return n, true, nil
		}
		if n == math.MaxInt64 {
			return 0, false, nil
		}
		return n + 1, true, nil
	}
	f := math.Floor(float64(v))
	if closed {
		f = math.Ceil(float64(v))
	}
	if math.IsNaN(f) || f < -two63 || f >= two63 {
		return 0, false, outOfRange(v)
	}
	n = int64(f)
	if !closed {
		// floats below 2^63 are at most 2^63-1024
		n++
	}
	return n, true, nil
}

// highest returns the largest integer of a member ending at v. ok is false
// when no int64 lies below an open end.
func highest[T Real](v T, closed bool) (n int64, ok bool, err error) {
	if isInteger[T]() {
		if !closed && !isSigned[T]() && uint64(v) == 1<<63 {
			return math.MaxInt64, true, nil
		}
		if !fits(v) {
			return 0, false, outOfRange(v)
		}
		n = int64(v)
		if closed {
			return n, true, nil
		}
		if n == math.MinInt64 {
			return 0, false, nil
		}
		return n - 1, true, nil
	}
	f := math.Ceil(float64(v))
	if closed {
		f = math.Floor(float64(v))
	}
	switch {
	case math.IsNaN(f) || f < -two63 || f > two63 || (closed && f == two63):
		return 0, false, outOfRange(v)
	case f == two63:
		return math.MaxInt64, true, nil
	}
	n = int64(f)
	if closed {
		return n, true, nil
	}
	if n == math.MinInt64 {
		return 0, false, nil
	}
	return n - 1, true, nil
}

func outOfRange[T Real](v T) error {
	return fmt.Errorf("%v does not fit in int64: %w", v, interval.ErrInvalidArgument)
}

func isInteger[T Real]() bool { return T(1)/T(2) == 0 }

func isSigned[T Real]() bool {
	var zero T
	return zero-1 < zero
}

// fits reports whether an integer value converts to int64 unchanged.
func fits[T Real](v T) bool {
	return isSigned[T]() || uint64(v) <= math.MaxInt64
}

// Err returns the conversion errors of the endpoints that do not fit in an
// int64. Set holds the members that did convert.
func (r Range) Err() error { return r.err }

// Set returns the normalized integer set behind the view.
func (r Range) Set() interval.Set[int64] { return r.base }

func (r Range) IsReverse() bool { return r.reverse }

// Reversed returns the same integers in the opposite direction.
func (r Range) Reversed() Range {
	return Range{base: r.base, reverse: !r.reverse, err: r.err}
}

// Equal reports whether both views yield the same sequence.
func (r Range) Equal(o Range) bool {
	return r.reverse == o.reverse && r.base.Equal(o.base)
}

func (r Range) String() string {
	if r.reverse {
		return "reversed " + r.base.String()
	}
	return r.base.String()
}

// All iterates in the direction of the view. It fails with
// interval.ErrNotBounded when the side iteration starts from is unbounded,
// so the sequence may be endless; use Values for a checked, finite result.
func (r Range) All() (iter.Seq[int64], error) {
	if r.reverse {
		return r.descending()
	}
	return r.ascending()
}

// Backward iterates against the direction of the view.
func (r Range) Backward() (iter.Seq[int64], error) {
	if r.reverse {
		return r.ascending()
	}
	return r.descending()
}

// Values collects every integer of a bounded view.
func (r Range) Values() ([]int64, error) {
	if r.err != nil {
		return nil, r.err
	}
	if !r.base.IsBounded() {
		return nil, fmt.Errorf("values of %s: %w", r.base, interval.ErrNotBounded)
	}
	seq, err := r.All()
	if err != nil {
		return nil, err
	}
	values := []int64{}
	for v := range seq {
		values = append(values, v)
	}
	return values, nil
}

// Len returns the number of integers in a bounded view.
func (r Range) Len() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if !r.base.IsBounded() {
		return 0, fmt.Errorf("len of %s: %w", r.base, interval.ErrNotBounded)
	}
	var n uint64
	for _, u := range r.base.Intervals() {
		a, _ := u.Start().Get()
		b, _ := u.End().Get()
		// b >= a, so the wrapped difference is exact
		w := uint64(b - a)
		if u.IncludeEnd() {
			if w == math.MaxUint64 {
				return 0, fmt.Errorf("len of %s does not fit in int64: %w", r.base, interval.ErrInvalidArgument)
			}
			w++
		}
		if w > math.MaxInt64-n {
			return 0, fmt.Errorf("len of %s does not fit in int64: %w", r.base, interval.ErrInvalidArgument)
		}
		n += w
	}
	return int64(n), nil
}

func (r Range) ascending() (iter.Seq[int64], error) {
	if r.err != nil {
		return nil, r.err
	}
	if !r.base.IsBoundedBelow() {
		return nil, fmt.Errorf("iterate %s upwards: %w", r.base, interval.ErrNotBounded)
	}
	units := r.base.Intervals()
	return func(yield func(int64) bool) {
		for _, u := range units {
			v, _ := u.Start().Get()
			last, bounded := u.End().Get()
			if bounded && !u.IncludeEnd() {
				last--
			}
			for !bounded || v <= last {
				if !yield(v) || v == math.MaxInt64 {
					return
				}
				v++
			}
		}
	}, nil
}

func (r Range) descending() (iter.Seq[int64], error) {
	if r.err != nil {
		return nil, r.err
	}
	if !r.base.IsBoundedAbove() {
		return nil, fmt.Errorf("iterate %s downwards: %w", r.base, interval.ErrNotBounded)
	}
	units := r.base.Intervals()
	return func(yield func(int64) bool) {
		for i := len(units) - 1; i >= 0; i-- {
			u := units[i]
			v, _ := u.End().Get()
			if !u.IncludeEnd() {
				v--
			}
			first, bounded := u.Start().Get()
			for ; !bounded || v >= first; v-- {
				if !yield(v) || v == math.MinInt64 {
					return
				}
			}
		}
	}, nil
}

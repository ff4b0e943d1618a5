package interval

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	tjassert "github.com/tj/assert"
)

// samples covers touching, nested, unbounded and empty shapes.
var samples = []string{
	"(empty)",
	"(-inf, inf)",
	"[1, 5]",
	"[1, 5)",
	"(1, 5]",
	"(5, 9)",
	"[5, 5]",
	"(-inf, 3]",
	"(3, inf)",
	"[0, 2)∪(2, 4]∪[6, 8)",
	"(-inf, 1)∪[4, 6]∪(9, inf)",
	"[2, 3]∪[7, 7]",
}

func sampleSets(t *testing.T) []Set[int] {
	sets := make([]Set[int], 0, len(samples))
	for _, s := range samples {
		sets = append(sets, mustParse(t, s))
	}
	return sets
}

// assertCanonical checks that members are sorted, disjoint and not
// mergeable with each other.
func assertCanonical(t *testing.T, s Set[int]) {
	t.Helper()
	for i := 1; i < len(s.units); i++ {
		prev, cur := s.units[i-1], s.units[i]
		if !startsBefore(ints.compare, prev, cur) {
			t.Errorf("%s: member %d does not start after member %d", s, i, i-1)
		}
		if _, ok := sumUnits(ints, prev, cur); ok {
			t.Errorf("%s: members %d and %d are mergeable", s, i-1, i)
		}
	}
}

func TestAlgebraLaws(t *testing.T) {
	sets := sampleSets(t)
	for _, a := range sets {
		tjassert.True(t, a.Union(a).Equal(a), "idempotent union %s", a)
		tjassert.True(t, a.Intersect(a).Equal(a), "idempotent intersection %s", a)
		tjassert.True(t, a.Complement().Complement().Equal(a), "involution %s", a)
		tjassert.True(t, a.Difference(a).IsEmpty(), "a - a %s", a)

		for _, b := range sets {
			name := fmt.Sprintf("%s | %s", a, b)
			u, i, d := a.Union(b), a.Intersect(b), a.Difference(b)
			assertCanonical(t, u)
			assertCanonical(t, i)
			assertCanonical(t, d)

			tjassert.True(t, u.Equal(b.Union(a)), "commutative union %s", name)
			tjassert.True(t, i.Equal(b.Intersect(a)), "commutative intersection %s", name)
			tjassert.True(t, d.Equal(a.Intersect(b.Complement())), "difference %s", name)
			tjassert.True(t, u.Complement().Equal(a.Complement().Intersect(b.Complement())), "de morgan union %s", name)
			tjassert.True(t, i.Complement().Equal(a.Complement().Union(b.Complement())), "de morgan intersection %s", name)
			tjassert.Equal(t, a.IsSubset(b), i.Equal(a), "subset %s", name)
			tjassert.Equal(t, a.Overlaps(b), !i.IsEmpty(), "overlaps %s", name)

			for _, c := range sets {
				tjassert.True(t, u.Union(c).Equal(a.Union(b.Union(c))), "associative union %s | %s", name, c)
				tjassert.True(t, i.Intersect(c).Equal(a.Intersect(b.Intersect(c))), "associative intersection %s | %s", name, c)
			}
		}
	}
}

func TestMeasureConsistency(t *testing.T) {
	bound := Closed(-10, 20)
	for _, s := range sampleSets(t) {
		in := s.Intersect(bound)
		out := bound.Difference(s)
		mIn, err := MeasureNumber(in, 0)
		tjassert.NoError(t, err)
		mOut, err := MeasureNumber(out, 0)
		tjassert.NoError(t, err)
		tjassert.Equal(t, 30, mIn+mOut, "%s", s)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, s := range samples {
		got := mustParse(t, s).String()
		if diff := cmp.Diff(s, got); diff != "" {
			t.Errorf("-want, +got:\n%s", diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"MissingComma":  "[1 5]",
		"BadEdge":       "{1, 5}",
		"BadValue":      "[1, x]",
		"EmptyInterval": "[5, 1]",
		"TooShort":      "[",
		"OneBadMember":  "[1, 2]∪[3, y)",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ints.Parse(in, func(s string) (int, error) {
				var v int
				_, err := fmt.Sscan(s, &v)
				return v, err
			})
			tjassert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
		})
	}
}

func TestTimeDomain(t *testing.T) {
	start := time.Date(2020, 12, 30, 11, 22, 33, 0, time.UTC)
	d := Time()

	day := d.ClosedOpen(start, start.Add(24*time.Hour))
	tjassert.True(t, day.Contains(start))
	tjassert.True(t, day.Contains(start.Add(time.Hour)))
	tjassert.False(t, day.Contains(start.Add(24*time.Hour)))
	tjassert.False(t, day.Contains(start.Add(-time.Second)))

	tjassert.True(t, d.ClosedOpen(start, start).IsEmpty())
	tjassert.False(t, d.Closed(start, start).IsEmpty())

	m, err := MeasureTime(d.Closed(start, start.Add(time.Second)), 0)
	tjassert.NoError(t, err)
	tjassert.Equal(t, time.Second, m)

	_, err = MeasureTime(d.AtLeast(start), 0)
	tjassert.True(t, errors.Is(err, ErrNotBounded), "got %v", err)

	tjassert.Equal(t, "[2020-12-30T11:22:33Z, 2020-12-31T11:22:33Z)", day.String())

	parsed, err := d.Parse(day.String(), func(s string) (time.Time, error) {
		return time.Parse(time.RFC3339Nano, s)
	})
	tjassert.NoError(t, err)
	tjassert.True(t, parsed.Equal(day))
}

func TestCustomDomain(t *testing.T) {
	// descending order turns the usual bounds around
	desc := NewDomain[int](func(a, b int) int { return b - a }, WithFormat[int](func(v int) string { return fmt.Sprintf("#%d", v) }))
	s := desc.Closed(10, 1)
	tjassert.True(t, s.Contains(5))
	tjassert.False(t, s.Contains(11))
	tjassert.Equal(t, "[#10, #1]", s.String())
	tjassert.True(t, desc.Closed(1, 10).IsEmpty())
}

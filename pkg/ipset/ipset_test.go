package ipset

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/henderiw/unioninterval/pkg/interval"
	"github.com/tj/assert"
	"go4.org/netipx"
)

func TestRanges(t *testing.T) {
	cases := map[string]struct {
		set            string
		expectedRanges []string
		expectedCount  int64
		expectedErr    error
	}{
		"Closed": {
			set:            "[10.0.0.10, 10.0.0.20]",
			expectedRanges: []string{"10.0.0.10-10.0.0.20"},
			expectedCount:  11,
		},
		"Open": {
			set:            "(10.0.0.0, 10.0.0.4)",
			expectedRanges: []string{"10.0.0.1-10.0.0.3"},
			expectedCount:  3,
		},
		"AdjacentOpen": {
			set:            "(10.0.0.1, 10.0.0.2)",
			expectedRanges: []string{},
			expectedCount:  0,
		},
		"Union": {
			set:            "[10.0.0.0, 10.0.0.255)∪[192.168.0.1, 192.168.0.1]",
			expectedRanges: []string{"10.0.0.0-10.0.0.254", "192.168.0.1-192.168.0.1"},
			expectedCount:  256,
		},
		"IPv6": {
			set:            "[2001:db8::, 2001:db8::ff]",
			expectedRanges: []string{"2001:db8::-2001:db8::ff"},
			expectedCount:  256,
		},
		"Unbounded": {
			set:         "[10.0.0.0, inf)",
			expectedErr: interval.ErrNotBounded,
		},
		"MixedFamilies": {
			set:         "[10.0.0.0, 2001:db8::]",
			expectedErr: interval.ErrInvalidArgument,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := Parse(tc.set)
			assert.NoError(t, err)

			ranges, err := Ranges(s)
			if tc.expectedErr != nil {
				assert.True(t, errors.Is(err, tc.expectedErr), "got %v", err)
				return
			}
			assert.NoError(t, err)

			got := []string{}
			for _, r := range ranges {
				got = append(got, r.String())
			}
			if diff := cmp.Diff(tc.expectedRanges, got); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}

			n, err := Count(s)
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedCount, n.Int64())
		})
	}
}

func TestPrefixes(t *testing.T) {
	pool := FromPrefix(netip.MustParsePrefix("10.0.0.0/24"))
	upper := FromPrefix(netip.MustParsePrefix("10.0.0.128/25"))

	prefixes, err := Prefixes(pool.Difference(upper))
	assert.NoError(t, err)
	assert.Equal(t, []netip.Prefix{netip.MustParsePrefix("10.0.0.0/25")}, prefixes)

	// host bits are ignored
	assert.True(t, FromPrefix(netip.MustParsePrefix("10.0.0.7/24")).Equal(pool))
}

func TestIPSetRoundTrip(t *testing.T) {
	var b netipx.IPSetBuilder
	b.AddPrefix(netip.MustParsePrefix("10.0.0.0/30"))
	b.AddPrefix(netip.MustParsePrefix("10.0.0.4/30"))
	b.AddRange(netipx.MustParseIPRange("10.0.1.5-10.0.1.9"))
	ipset, err := b.IPSet()
	assert.NoError(t, err)

	s := FromIPSet(ipset)
	assert.Equal(t, "[10.0.0.0, 10.0.0.7]∪[10.0.1.5, 10.0.1.9]", s.String())

	back, err := ToIPSet(s)
	assert.NoError(t, err)
	assert.True(t, back.Equal(ipset))

	assert.True(t, FromIPSet(nil).IsEmpty())
}

func TestFindFree(t *testing.T) {
	cases := map[string]struct {
		pool        string
		used        []string
		expected    string
		expectedErr bool
	}{
		"Empty": {
			pool:     "10.0.0.10-10.0.0.20",
			expected: "10.0.0.10",
		},
		"Claimed": {
			pool:     "10.0.0.10-10.0.0.20",
			used:     []string{"10.0.0.10-10.0.0.11", "10.0.0.13-10.0.0.13"},
			expected: "10.0.0.12",
		},
		"Full": {
			pool:        "10.0.0.10-10.0.0.20",
			used:        []string{"10.0.0.0-10.0.0.255"},
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			pool, err := ParseRange(tc.pool)
			assert.NoError(t, err)
			used := Domain().Empty()
			for _, u := range tc.used {
				r, err := ParseRange(u)
				assert.NoError(t, err)
				used = used.Union(r)
			}
			addr, err := FindFree(pool, used)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, addr.String())
		})
	}
}

func TestParseRangeError(t *testing.T) {
	_, err := ParseRange("10.0.0.20-10.0.0.10")
	assert.Error(t, err)
}

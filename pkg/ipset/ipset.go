// Package ipset builds interval sets over IP addresses and converts them to
// and from netipx ranges, prefixes and IP sets.
package ipset

import (
	"fmt"
	"math/big"
	"net/netip"

	"github.com/henderiw/unioninterval/pkg/interval"
	"go4.org/netipx"
)

type Set = interval.Set[netip.Addr]

var addrs = interval.NewDomain[netip.Addr](netip.Addr.Compare, interval.WithFormat[netip.Addr](netip.Addr.String))

// Domain orders addresses the way netip does: IPv4 before IPv6.
func Domain() interval.Domain[netip.Addr] { return addrs }

// Parse reads a set such as "[10.0.0.1, 10.0.0.9]∪(10.0.1.0, 10.0.2.0)".
func Parse(s string) (Set, error) {
	return addrs.Parse(s, netip.ParseAddr)
}

// ParseRange reads a netipx range "from-to" into a closed interval.
func ParseRange(s string) (Set, error) {
	r, err := netipx.ParseIPRange(s)
	if err != nil {
		return Set{}, fmt.Errorf("ip range %s is invalid: %w", s, err)
	}
	return FromRange(r), nil
}

func FromRange(r netipx.IPRange) Set {
	if !r.IsValid() {
		return addrs.Empty()
	}
	return addrs.Closed(r.From(), r.To())
}

func FromPrefix(p netip.Prefix) Set {
	return FromRange(netipx.RangeOfPrefix(p.Masked()))
}

func FromIPSet(ipset *netipx.IPSet) Set {
	out := addrs.Empty()
	if ipset == nil {
		return out
	}
	for _, r := range ipset.Ranges() {
		out = out.Union(FromRange(r))
	}
	return out
}

// Ranges returns the closed address ranges of s. Open ends are moved to the
// neighbouring address, so (10.0.0.0, 10.0.0.4) becomes 10.0.0.1-10.0.0.3.
func Ranges(s Set) ([]netipx.IPRange, error) {
	if !s.IsBounded() {
		return nil, fmt.Errorf("ip set %s: %w", s, interval.ErrNotBounded)
	}
	ranges := make([]netipx.IPRange, 0, s.Len())
	for _, u := range s.Intervals() {
		from, _ := u.Start().Get()
		to, _ := u.End().Get()
		if from.BitLen() != to.BitLen() {
			return nil, fmt.Errorf("ip set %s mixes address families in %s: %w", s, u, interval.ErrInvalidArgument)
		}
		if !u.IncludeStart() {
			from = from.Next()
		}
		if !u.IncludeEnd() {
			to = to.Prev()
		}
		// nothing left between two adjacent addresses
		if !from.IsValid() || !to.IsValid() || to.Less(from) {
			continue
		}
		ranges = append(ranges, netipx.IPRangeFrom(from, to))
	}
	return ranges, nil
}

func ToIPSet(s Set) (*netipx.IPSet, error) {
	ranges, err := Ranges(s)
	if err != nil {
		return nil, err
	}
	var b netipx.IPSetBuilder
	for _, r := range ranges {
		b.AddRange(r)
	}
	return b.IPSet()
}

// Prefixes returns the smallest list of prefixes covering exactly s.
func Prefixes(s Set) ([]netip.Prefix, error) {
	ipset, err := ToIPSet(s)
	if err != nil {
		return nil, err
	}
	return ipset.Prefixes(), nil
}

// Count returns the number of addresses in s.
func Count(s Set) (*big.Int, error) {
	ranges, err := Ranges(s)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for _, r := range ranges {
		total.Add(total, numIPs(r.From(), r.To()))
	}
	return total, nil
}

// FindFree returns the lowest address of pool that is not in used.
func FindFree(pool, used Set) (netip.Addr, error) {
	ranges, err := Ranges(pool.Difference(used))
	if err != nil {
		return netip.Addr{}, err
	}
	if len(ranges) == 0 {
		return netip.Addr{}, fmt.Errorf("no free address in %s", pool)
	}
	return ranges[0].From(), nil
}

func numIPs(startIP, endIP netip.Addr) *big.Int {
	diff := new(big.Int).Sub(ipToInt(endIP), ipToInt(startIP))
	return diff.Add(diff, big.NewInt(1)) // include the start IP
}

func ipToInt(ip netip.Addr) *big.Int {
	bytes := ip.As16()
	return new(big.Int).SetBytes(bytes[:])
}

// Package vlantable allocates VLAN ID ranges to named owners.
package vlantable

import (
	"fmt"
	"sync"

	"github.com/henderiw/unioninterval/pkg/interval"
	"github.com/henderiw/unioninterval/pkg/iterint"
	"github.com/henderiw/unioninterval/pkg/windowtable"
	"k8s.io/apimachinery/pkg/labels"
)

type VLANTable interface {
	Get(name string) (interval.Set[int64], error)
	Claim(name string, ids interval.Set[int64], l labels.Set) error
	ClaimID(name string, id int64, l labels.Set) error
	ClaimDynamic(name string, l labels.Set) (int64, error)
	ClaimSize(name string, size int64, l labels.Set) (interval.Set[int64], error)
	Release(name string) error
	Update(name string, ids interval.Set[int64], l labels.Set) error

	Count() int
	Has(name string) bool

	IsFree(id int64) bool
	FindFree() (int64, error)
	Free() interval.Set[int64]

	GetAll() windowtable.Entries[int64]
	GetByLabel(selector labels.Selector) windowtable.Entries[int64]
}

const (
	untaggedVLAN = 0
	defaultVLAN  = 1
	maxVLAN      = 4095
)

var (
	ids = interval.Ordered[int64]()
	// claims are kept as half-open integer ranges, so is the pool
	pool = ids.ClosedOpen(untaggedVLAN, maxVLAN+1)
)

func initEntries() windowtable.Entries[int64] {
	return windowtable.Entries[int64]{
		windowtable.NewEntry("untagged", ids.ClosedOpen(untaggedVLAN, untaggedVLAN+1), labels.Set{"type": "untagged", "status": "reserved"}),
		windowtable.NewEntry("default", ids.ClosedOpen(defaultVLAN, defaultVLAN+1), labels.Set{"type": "default", "status": "reserved"}),
		windowtable.NewEntry("reserved", ids.ClosedOpen(maxVLAN, maxVLAN+1), labels.Set{"type": "reserved", "status": "reserved"}),
	}
}

func New(opts ...windowtable.Option) (VLANTable, error) {
	t, err := windowtable.NewTable[int64](
		initEntries(),
		func(name string, w interval.Set[int64]) error {
			if !w.IsSubset(pool) {
				return fmt.Errorf("VLAN ids %s do not fit in %s", w, pool)
			}
			switch {
			case w.Contains(untaggedVLAN):
				return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be added to the database", untaggedVLAN)
			case w.Contains(defaultVLAN):
				return fmt.Errorf("VLAN %d is the default VLAN, cannot be added to the database", defaultVLAN)
			case w.Contains(maxVLAN):
				return fmt.Errorf("VLAN %d is reserved, cannot be added to the database", maxVLAN)
			}
			return nil
		},
		append(opts, windowtable.WithExclusive())...,
	)
	if err != nil {
		return nil, err
	}
	return &vlanTable{table: t}, nil
}

type vlanTable struct {
	// m serializes find-then-claim sequences
	m     sync.Mutex
	table windowtable.Table[int64]
}

func (r *vlanTable) Get(name string) (interval.Set[int64], error) {
	e, err := r.table.Get(name)
	if err != nil {
		return interval.Set[int64]{}, err
	}
	return e.Window(), nil
}

func (r *vlanTable) Claim(name string, s interval.Set[int64], l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	// store the integers only, so [10, 12) and [10, 11] are the same claim
	claim := iterint.New(s)
	if err := claim.Err(); err != nil {
		return err
	}
	return r.table.Claim(name, claim.Set(), l)
}

func (r *vlanTable) ClaimID(name string, id int64, l labels.Set) error {
	return r.Claim(name, ids.Singleton(id), l)
}

func (r *vlanTable) ClaimDynamic(name string, l labels.Set) (int64, error) {
	r.m.Lock()
	defer r.m.Unlock()

	id, err := r.findFree()
	if err != nil {
		return -1, err
	}
	if err := r.table.Claim(name, ids.ClosedOpen(id, id+1), l); err != nil {
		return -1, err
	}
	return id, nil
}

// ClaimSize claims the lowest size free ids, which need not be consecutive.
func (r *vlanTable) ClaimSize(name string, size int64, l labels.Set) (interval.Set[int64], error) {
	r.m.Lock()
	defer r.m.Unlock()

	if size <= 0 {
		return interval.Set[int64]{}, fmt.Errorf("size %d must be positive", size)
	}

	claim := ids.Empty()
	remaining := size
	for _, u := range r.free().Intervals() {
		if remaining == 0 {
			break
		}
		// free ids are normalized to [a, b)
		a, _ := u.Start().Get()
		b, _ := u.End().Get()
		take := min(remaining, b-a)
		claim = claim.Union(ids.ClosedOpen(a, a+take))
		remaining -= take
	}
	if remaining > 0 {
		return interval.Set[int64]{}, fmt.Errorf("could not find free entries that fit in size %d", size)
	}
	if err := r.table.Claim(name, claim, l); err != nil {
		return interval.Set[int64]{}, err
	}
	return claim, nil
}

func (r *vlanTable) Release(name string) error {
	return r.table.Release(name)
}

func (r *vlanTable) Update(name string, s interval.Set[int64], l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	claim := iterint.New(s)
	if err := claim.Err(); err != nil {
		return err
	}
	return r.table.Update(name, claim.Set(), l)
}

func (r *vlanTable) Count() int {
	return r.table.Count()
}

func (r *vlanTable) Has(name string) bool {
	return r.table.Has(name)
}

func (r *vlanTable) IsFree(id int64) bool {
	return r.Free().Contains(id)
}

func (r *vlanTable) FindFree() (int64, error) {
	return r.findFree()
}

func (r *vlanTable) findFree() (int64, error) {
	seq, err := iterint.New(r.free()).All()
	if err != nil {
		return -1, err
	}
	for id := range seq {
		return id, nil
	}
	return -1, fmt.Errorf("no free entry found")
}

// Free returns the VLAN ids nobody has claimed, as [a, b) ranges.
func (r *vlanTable) Free() interval.Set[int64] {
	return r.free()
}

func (r *vlanTable) free() interval.Set[int64] {
	return iterint.New(r.table.FindFree(pool, nil)).Set()
}

func (r *vlanTable) GetAll() windowtable.Entries[int64] {
	return r.table.GetAll()
}

func (r *vlanTable) GetByLabel(selector labels.Selector) windowtable.Entries[int64] {
	return r.table.GetByLabel(selector)
}

// Package windowtable keeps named, labeled interval sets such as maintenance
// windows or reserved ranges, and answers which entries cover a value, which
// overlap a window and what is left free within a bound.
package windowtable

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-logr/logr"
	"github.com/henderiw/unioninterval/pkg/interval"
	"k8s.io/apimachinery/pkg/labels"
)

type Table[T any] interface {
	Get(name string) (Entry[T], error)
	Claim(name string, window interval.Set[T], l labels.Set) error
	Release(name string) error
	Update(name string, window interval.Set[T], l labels.Set) error

	Iterate() *Iterator[T]

	Count() int
	Has(name string) bool

	GetAll() Entries[T]
	GetByLabel(selector labels.Selector) Entries[T]

	Lookup(v T) Entries[T]
	Overlapping(window interval.Set[T]) Entries[T]
	Coverage(selector labels.Selector) interval.Set[T]
	FindFree(bound interval.Set[T], selector labels.Selector) interval.Set[T]
}

// ValidationFn is called for every claim and update, but not for the
// initial entries.
type ValidationFn[T any] func(name string, window interval.Set[T]) error

type Option func(*options)

type options struct {
	logger    logr.Logger
	exclusive bool
}

// WithLogger sets the logger used to report changes to the table.
func WithLogger(l logr.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithExclusive rejects windows that overlap a window already in the table.
func WithExclusive() Option {
	return func(o *options) {
		o.exclusive = true
	}
}

func NewTable[T any](initEntries Entries[T], v ValidationFn[T], opts ...Option) (Table[T], error) {
	o := options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	r := &table[T]{
		m:          new(sync.RWMutex),
		table:      map[string]Entry[T]{},
		validateFn: v,
		exclusive:  o.exclusive,
		logger:     o.logger,
	}

	var errm error
	for _, e := range initEntries {
		if err := r.add(e.Name(), e.Window(), e.Labels(), true); err != nil {
			errm = errors.Join(errm, err)
		}
	}

	return r, errm
}

type table[T any] struct {
	m          *sync.RWMutex
	table      map[string]Entry[T]
	validateFn ValidationFn[T]
	exclusive  bool
	logger     logr.Logger
}

func (r *table[T]) validate(name string, window interval.Set[T], init bool) error {
	if name == "" {
		return fmt.Errorf("entry name cannot be empty")
	}
	if window.IsEmpty() {
		return fmt.Errorf("entry %s has an empty window", name)
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(name, window); err != nil {
			return err
		}
	}
	return nil
}

func (r *table[T]) Get(name string) (Entry[T], error) {
	r.m.RLock()
	defer r.m.RUnlock()

	e, ok := r.table[name]
	if !ok {
		return nil, fmt.Errorf("no match found for: %s", name)
	}
	return e, nil
}

func (r *table[T]) Claim(name string, window interval.Set[T], l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(name, window, l, false)
}

func (r *table[T]) Release(name string) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(name)
}

func (r *table[T]) Update(name string, window interval.Set[T], l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.update(name, window, l)
}

func (r *table[T]) Iterate() *Iterator[T] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.iterate()
}

func (r *table[T]) iterate() *Iterator[T] {
	keys := make([]string, 0, len(r.table))
	// the iterator keeps its own copy so it stays valid after the lock is
	// released
	snapshot := make(map[string]Entry[T], len(r.table))
	for key, e := range r.table {
		keys = append(keys, key)
		snapshot[key] = e
	}
	sort.Strings(keys)

	return &Iterator[T]{current: -1, keys: keys, table: snapshot}
}

func (r *table[T]) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.table)
}

func (r *table[T]) Has(name string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.table[name]
	return ok
}

func (r *table[T]) GetAll() Entries[T] {
	return r.filter(func(Entry[T]) bool { return true })
}

func (r *table[T]) GetByLabel(selector labels.Selector) Entries[T] {
	return r.filter(func(e Entry[T]) bool {
		return selector.Matches(e.Labels())
	})
}

// Lookup returns the entries whose window contains v.
func (r *table[T]) Lookup(v T) Entries[T] {
	return r.filter(func(e Entry[T]) bool {
		return e.Window().Contains(v)
	})
}

// Overlapping returns the entries whose window shares a point with window.
func (r *table[T]) Overlapping(window interval.Set[T]) Entries[T] {
	return r.filter(func(e Entry[T]) bool {
		return e.Window().Overlaps(window)
	})
}

// Coverage returns the union of the windows matching selector; a nil
// selector matches everything.
func (r *table[T]) Coverage(selector labels.Selector) interval.Set[T] {
	if selector == nil {
		selector = labels.Everything()
	}
	return r.GetByLabel(selector).Union()
}

// FindFree returns the part of bound that no matching window covers.
func (r *table[T]) FindFree(bound interval.Set[T], selector labels.Selector) interval.Set[T] {
	return bound.Difference(r.Coverage(selector))
}

func (r *table[T]) filter(match func(Entry[T]) bool) Entries[T] {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := Entries[T]{}
	iter := r.iterate()
	for iter.Next() {
		if match(iter.Value()) {
			entries = append(entries, iter.Value())
		}
	}
	return entries
}

func (r *table[T]) checkExclusive(name string, window interval.Set[T]) error {
	if !r.exclusive {
		return nil
	}
	for other, e := range r.table {
		if other == name {
			continue
		}
		if e.Window().Overlaps(window) {
			return fmt.Errorf("entry %s window %s overlaps with entry %s window %s", name, window, other, e.Window())
		}
	}
	return nil
}

func (r *table[T]) add(name string, window interval.Set[T], l labels.Set, init bool) error {
	if err := r.validate(name, window, init); err != nil {
		return err
	}
	if _, ok := r.table[name]; ok {
		return fmt.Errorf("entry %s already exists", name)
	}
	if err := r.checkExclusive(name, window); err != nil {
		return err
	}
	r.table[name] = NewEntry(name, window, l)
	r.logger.V(1).Info("claimed", "name", name, "window", window.String(), "labels", l.String())
	return nil
}

func (r *table[T]) update(name string, window interval.Set[T], l labels.Set) error {
	if err := r.validate(name, window, false); err != nil {
		return err
	}
	if _, ok := r.table[name]; !ok {
		return fmt.Errorf("entry %s not found", name)
	}
	if err := r.checkExclusive(name, window); err != nil {
		return err
	}
	r.table[name] = NewEntry(name, window, l)
	r.logger.V(1).Info("updated", "name", name, "window", window.String(), "labels", l.String())
	return nil
}

func (r *table[T]) delete(name string) error {
	if _, ok := r.table[name]; !ok {
		return fmt.Errorf("entry %s not found", name)
	}
	delete(r.table, name)
	r.logger.V(1).Info("released", "name", name)
	return nil
}

package windowtable

import (
	"github.com/henderiw/unioninterval/pkg/interval"
	"k8s.io/apimachinery/pkg/labels"
)

// Entry is a named window with its labels.
type Entry[T any] interface {
	Name() string
	Window() interval.Set[T]
	Labels() labels.Set
}

type entry[T any] struct {
	name   string
	window interval.Set[T]
	labels labels.Set
}

type Entries[T any] []Entry[T]

func (r entry[T]) Name() string            { return r.name }
func (r entry[T]) Window() interval.Set[T] { return r.window }
func (r entry[T]) Labels() labels.Set      { return r.labels }

func NewEntry[T any](name string, window interval.Set[T], l labels.Set) Entry[T] {
	if l == nil {
		l = labels.Set{}
	}
	return entry[T]{
		name:   name,
		window: window,
		labels: l,
	}
}

// Names returns the entry names in order.
func (r Entries[T]) Names() []string {
	names := make([]string, 0, len(r))
	for _, e := range r {
		names = append(names, e.Name())
	}
	return names
}

// Union returns the union of all windows.
func (r Entries[T]) Union() interval.Set[T] {
	var s interval.Set[T]
	for _, e := range r {
		s = s.Union(e.Window())
	}
	return s
}

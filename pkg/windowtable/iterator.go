package windowtable

type Iterator[T any] struct {
	current int
	keys    []string
	table   map[string]Entry[T]
}

func (r *Iterator[T]) Value() Entry[T] {
	return r.table[r.keys[r.current]]
}

func (r *Iterator[T]) Name() string {
	return r.keys[r.current]
}

func (r *Iterator[T]) Next() bool {
	r.current++
	return r.current < len(r.keys)
}

// OverlapsPrevious reports whether the current window shares a point with the
// window of the previous name.
func (r *Iterator[T]) OverlapsPrevious() bool {
	if r.current < 1 {
		return false
	}
	prev := r.table[r.keys[r.current-1]]
	return r.Value().Window().Overlaps(prev.Window())
}

package interval

type endpointKind uint8

const (
	negInf endpointKind = iota
	bounded
	posInf
)

// Endpoint is one side of an interval: either a concrete value or one of the
// two unbounded markers. NegInf sorts below every value and PosInf above.
type Endpoint[T any] struct {
	kind  endpointKind
	value T
}

// NegInf returns the unbounded-below endpoint.
func NegInf[T any]() Endpoint[T] { return Endpoint[T]{kind: negInf} }

// PosInf returns the unbounded-above endpoint.
func PosInf[T any]() Endpoint[T] { return Endpoint[T]{kind: posInf} }

// Value returns a bounded endpoint at v.
func Value[T any](v T) Endpoint[T] { return Endpoint[T]{kind: bounded, value: v} }

func (e Endpoint[T]) IsNegInf() bool  { return e.kind == negInf }
func (e Endpoint[T]) IsPosInf() bool  { return e.kind == posInf }
func (e Endpoint[T]) IsBounded() bool { return e.kind == bounded }

// Get returns the concrete value; ok is false for the unbounded markers.
func (e Endpoint[T]) Get() (T, bool) {
	return e.value, e.kind == bounded
}

// compareEndpoints orders a and b. cmp is only consulted when both are bounded.
func compareEndpoints[T any](cmp CompareFunc[T], a, b Endpoint[T]) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	if a.kind != bounded {
		return 0
	}
	return cmp(a.value, b.value)
}

package storage

import (
	"cmp"
	"unsafe"

	"github.com/oss-dyod/coredb/coltype"
	"github.com/oss-dyod/coredb/coreerr"
	"github.com/oss-dyod/coredb/predicate"
)

// ValueSegment owns a dense, append-only sequence of elements of one
// column type. It is the uncompressed representation; compression
// replaces it in place with a DictionarySegment.
type ValueSegment[T cmp.Ordered] struct {
	typ    coltype.ValueType
	values []T
}

func NewValueSegment[T cmp.Ordered](typ coltype.ValueType) *ValueSegment[T] {
	return &ValueSegment[T]{typ: typ}
}

func (v *ValueSegment[T]) Size() int               { return len(v.values) }
func (v *ValueSegment[T]) Type() coltype.ValueType { return v.typ }

// Values exposes the backing sequence for fast paths (bulk scans,
// dictionary construction).
func (v *ValueSegment[T]) Values() []T { return v.values }

func (v *ValueSegment[T]) At(i int) (any, error) {
	if i < 0 || i >= len(v.values) {
		return nil, coreerr.New(coreerr.OutOfRange, "index %d out of range (size %d)", i, len(v.values))
	}
	return v.values[i], nil
}

func (v *ValueSegment[T]) Append(val any) error {
	t, ok := val.(T)
	if !ok {
		return coreerr.New(coreerr.TypeMismatch, "value %v (%T) does not match column type %s", val, val, v.typ)
	}
	v.values = append(v.values, t)
	return nil
}

func (v *ValueSegment[T]) EstimateMemoryUsage() int {
	return cap(v.values) * elementSize[T]()
}

func (v *ValueSegment[T]) ScanPositions(pred predicate.Condition, literal any, offsets []int) ([]int, error) {
	lit, ok := literal.(T)
	if !ok {
		return nil, coreerr.New(coreerr.TypeMismatch, "search literal %v (%T) does not match column type %s", literal, literal, v.typ)
	}
	cmpv, err := compareFn[T](pred)
	if err != nil {
		return nil, err
	}
	matches := func(a T) bool { return cmpv(a, lit) }

	out := make([]int, 0, len(offsets))
	if isDenseRange(offsets, len(v.values)) {
		return scanDense(v.values, matches, out), nil
	}
	return scanSparse(v.values, matches, offsets, out), nil
}

func elementSize[T any]() int {
	return int(unsafe.Sizeof(*new(T)))
}

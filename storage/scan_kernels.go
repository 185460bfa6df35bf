package storage

import (
	"cmp"

	"github.com/oss-dyod/coredb/coreerr"
	"github.com/oss-dyod/coredb/predicate"
)

// compareFn returns the scalar comparator for pred. Equality and
// inequality on floats use Go's native IEEE comparison, under which a NaN
// never equals anything, including itself - this is exactly the "NaNs
// never match" rule the scan is required to honor, with no special case
// needed.
func compareFn[T cmp.Ordered](pred predicate.Condition) (func(a, b T) bool, error) {
	switch pred {
	case predicate.Equals:
		return func(a, b T) bool { return a == b }, nil
	case predicate.NotEquals:
		return func(a, b T) bool { return a != b }, nil
	case predicate.LessThan:
		return func(a, b T) bool { return a < b }, nil
	case predicate.LessThanEquals:
		return func(a, b T) bool { return a <= b }, nil
	case predicate.GreaterThan:
		return func(a, b T) bool { return a > b }, nil
	case predicate.GreaterThanEquals:
		return func(a, b T) bool { return a >= b }, nil
	default:
		return nil, coreerr.New(coreerr.PreconditionViolation, "unsupported predicate %v", pred)
	}
}

// scanDense evaluates cmpv against every element of arr and appends
// matching positions to out, unrolled by 8 in the tail-free portion of the
// array. Used for the shape-A fast path, where the full [0, size) range is
// scanned.
func scanDense[T any](arr []T, cmpv func(T) bool, out []int) []int {
	n := len(arr)
	i := 0

	for ; i+7 < n; i += 8 {
		a0, a1, a2, a3 := arr[i+0], arr[i+1], arr[i+2], arr[i+3]
		a4, a5, a6, a7 := arr[i+4], arr[i+5], arr[i+6], arr[i+7]

		if cmpv(a0) {
			out = append(out, i+0)
		}
		if cmpv(a1) {
			out = append(out, i+1)
		}
		if cmpv(a2) {
			out = append(out, i+2)
		}
		if cmpv(a3) {
			out = append(out, i+3)
		}
		if cmpv(a4) {
			out = append(out, i+4)
		}
		if cmpv(a5) {
			out = append(out, i+5)
		}
		if cmpv(a6) {
			out = append(out, i+6)
		}
		if cmpv(a7) {
			out = append(out, i+7)
		}
	}

	for ; i < n; i++ {
		if cmpv(arr[i]) {
			out = append(out, i)
		}
	}

	return out
}

// scanSparse evaluates cmpv against arr at exactly the given offsets, in
// the order supplied. Used for the shape-B path, where only a subset of
// positions (the consumed reference segment's position list, restricted
// to the current chunk) is relevant.
func scanSparse[T any](arr []T, cmpv func(T) bool, offsets []int, out []int) []int {
	for _, i := range offsets {
		if cmpv(arr[i]) {
			out = append(out, i)
		}
	}
	return out
}

// isDenseRange reports whether offsets is exactly [0, n).
func isDenseRange(offsets []int, n int) bool {
	if len(offsets) != n {
		return false
	}
	for i, v := range offsets {
		if v != i {
			return false
		}
	}
	return true
}

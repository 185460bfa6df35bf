// Package storage implements the table/chunk/segment hierarchy: value
// segments, dictionary segments, reference segments, chunks, and tables.
package storage

import (
	"github.com/oss-dyod/coredb/coltype"
	"github.com/oss-dyod/coredb/predicate"
)

// Segment is the per-column payload inside a chunk: a value segment, a
// dictionary segment, or a reference segment. All three report Size and
// Type; only value segments accept Append.
type Segment interface {
	Size() int
	Type() coltype.ValueType
	// At returns the boxed value at position i, wrapped in the tagged
	// union type (one of int32, int64, float32, float64, string).
	At(i int) (any, error)
	// Append converts from the tagged-union type to the segment's element
	// type. Dictionary and reference segments reject every call.
	Append(v any) error
	// EstimateMemoryUsage returns an approximate byte footprint.
	EstimateMemoryUsage() int
}

// Scanner is implemented by the segment shapes a filter operator may scan
// directly: value segments and dictionary segments. Reference segments
// never appear as a base chunk's column payload, so they do not implement
// it.
type Scanner interface {
	Segment
	// ScanPositions evaluates pred against the segment's values at the
	// given local offsets (supplied in the order they must be consumed)
	// and returns the subset that matches, in the same relative order.
	ScanPositions(pred predicate.Condition, literal any, offsets []int) ([]int, error)
}

// Package rowid holds the primitive identifiers that tie chunks, columns,
// and dictionary codes together. They are distinct nominal types so a
// ChunkOffset can never be passed where a ColumnID is expected.
package rowid

import "math"

type ChunkID uint32

type ChunkOffset uint32

type ColumnID uint32

// ValueID is a code within a dictionary. InvalidValueID is the sentinel
// denoting "no such code" (e.g. a lower_bound past the end of the
// dictionary).
type ValueID uint32

const InvalidValueID ValueID = ValueID(math.MaxUint32)

// RowID is a physical row reference into a base (uncompressed or
// dictionary) chunk.
type RowID struct {
	ChunkID ChunkID
	Offset  ChunkOffset
}

// PosList is an ordered sequence of RowIDs. Once handed to a reference
// segment it is never mutated; callers that build one incrementally should
// treat it as owned until shared.
type PosList []RowID

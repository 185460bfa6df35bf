package storage

import (
	"github.com/oss-dyod/coredb/coreerr"
	"github.com/oss-dyod/coredb/rowid"
)

// Chunk is an ordered tuple of segments, one per column, all reporting
// equal size (I1).
type Chunk struct {
	segments []Segment
}

func NewChunk() *Chunk {
	return &Chunk{}
}

// AddSegment appends a segment during chunk construction.
func (c *Chunk) AddSegment(s Segment) {
	c.segments = append(c.segments, s)
}

// Append dispatches each value in row to the matching segment's Append,
// failing if the row width or any value's type does not match.
func (c *Chunk) Append(row []any) error {
	if len(row) != len(c.segments) {
		return coreerr.New(coreerr.PreconditionViolation, "row has %d values, chunk has %d columns", len(row), len(c.segments))
	}
	for i, v := range row {
		if err := c.segments[i].Append(v); err != nil {
			return err
		}
	}
	return nil
}

// Segment returns the segment at columnID, range-checked.
func (c *Chunk) Segment(columnID rowid.ColumnID) (Segment, error) {
	idx := int(columnID)
	if idx < 0 || idx >= len(c.segments) {
		return nil, coreerr.New(coreerr.OutOfRange, "column id %d out of range (%d columns)", columnID, len(c.segments))
	}
	return c.segments[idx], nil
}

// ColumnCount returns the number of segments in the chunk.
func (c *Chunk) ColumnCount() int { return len(c.segments) }

// Size is the size of the first segment, or zero if the chunk has no
// columns.
func (c *Chunk) Size() int {
	if len(c.segments) == 0 {
		return 0
	}
	return c.segments[0].Size()
}

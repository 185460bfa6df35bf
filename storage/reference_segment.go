package storage

import (
	"github.com/oss-dyod/coredb/coltype"
	"github.com/oss-dyod/coredb/coreerr"
	"github.com/oss-dyod/coredb/rowid"
)

// ReferenceSegment is a materialization-free view over a base table: a
// column id and a shared, immutable position list. It owns no values of
// its own.
type ReferenceSegment struct {
	table    *Table
	columnID rowid.ColumnID
	pos      rowid.PosList
}

func NewReferenceSegment(table *Table, columnID rowid.ColumnID, pos rowid.PosList) *ReferenceSegment {
	return &ReferenceSegment{table: table, columnID: columnID, pos: pos}
}

func (r *ReferenceSegment) Table() *Table            { return r.table }
func (r *ReferenceSegment) ColumnID() rowid.ColumnID { return r.columnID }
func (r *ReferenceSegment) PosList() rowid.PosList   { return r.pos }

func (r *ReferenceSegment) Size() int { return len(r.pos) }

func (r *ReferenceSegment) Type() coltype.ValueType {
	typ, err := r.table.ColumnType(r.columnID)
	if err != nil {
		// NewReferenceSegment does not check the column id; an id outside
		// the base table's schema makes Type panic here.
		panic(err)
	}
	return typ
}

func (r *ReferenceSegment) At(i int) (any, error) {
	if i < 0 || i >= len(r.pos) {
		return nil, coreerr.New(coreerr.OutOfRange, "index %d out of range (size %d)", i, len(r.pos))
	}
	rid := r.pos[i]
	chunk, err := r.table.Chunk(rid.ChunkID)
	if err != nil {
		return nil, err
	}
	seg, err := chunk.Segment(r.columnID)
	if err != nil {
		return nil, err
	}
	return seg.At(int(rid.Offset))
}

func (r *ReferenceSegment) Append(any) error {
	return coreerr.New(coreerr.PreconditionViolation, "reference segments are immutable")
}

func (r *ReferenceSegment) EstimateMemoryUsage() int {
	return len(r.pos) * rowIDSize
}

// rowIDSize is the size in bytes of a RowID (two uint32 fields).
const rowIDSize = 8

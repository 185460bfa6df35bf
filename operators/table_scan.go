package operators

import (
	"log/slog"

	"github.com/oss-dyod/coredb/coltype"
	"github.com/oss-dyod/coredb/coreerr"
	"github.com/oss-dyod/coredb/predicate"
	"github.com/oss-dyod/coredb/rowid"
	"github.com/oss-dyod/coredb/storage"
)

// TableScan is the filter operator: a predicate scan over a column that
// produces a view over the base table, represented as a single chunk of
// reference segments sharing one position list.
type TableScan struct {
	state executionState

	input     Operator
	columnID  rowid.ColumnID
	predicate predicate.Condition
	value     any
}

func NewTableScan(input Operator, columnID rowid.ColumnID, cond predicate.Condition, value any) *TableScan {
	return &TableScan{input: input, columnID: columnID, predicate: cond, value: value}
}

func (ts *TableScan) Execute() error {
	if _, err := ts.input.GetOutput(); err != nil {
		if err := ts.input.Execute(); err != nil {
			return err
		}
	}
	return ts.state.run(ts.onExecute)
}

func (ts *TableScan) GetOutput() (*storage.Table, error) {
	return ts.state.GetOutput()
}

func (ts *TableScan) onExecute() (*storage.Table, error) {
	inputTable, err := ts.input.GetOutput()
	if err != nil {
		return nil, err
	}

	baseTable, seed, err := resolveShape(inputTable, ts.columnID)
	if err != nil {
		return nil, err
	}

	colType, err := baseTable.ColumnType(ts.columnID)
	if err != nil {
		return nil, err
	}
	literal, err := coerceLiteral(ts.value, colType)
	if err != nil {
		return nil, err
	}

	var posList rowid.PosList
	if seed == nil {
		posList, err = scanBase(baseTable, ts.columnID, ts.predicate, literal)
	} else {
		posList, err = scanFiltered(baseTable, ts.columnID, seed, ts.predicate, literal)
	}
	if err != nil {
		return nil, err
	}

	outChunk := storage.NewChunk()
	for cid := 0; cid < baseTable.ColumnCount(); cid++ {
		outChunk.AddSegment(storage.NewReferenceSegment(baseTable, rowid.ColumnID(cid), posList))
	}

	slog.Debug("table scan", "column", ts.columnID, "predicate", ts.predicate, "matched", len(posList))

	return storage.NewReferenceTable(baseTable, outChunk), nil
}

// resolveShape distinguishes the two input shapes described by the filter
// operator's contract. Shape A (base input): the input table's first
// chunk's segment at columnID is not a reference segment - scan every
// chunk of inputTable itself. Shape B (filtered input): that segment is a
// reference segment - follow it to the base table and scan only the
// positions it lists. A nil seed return value signals shape A.
func resolveShape(t *storage.Table, columnID rowid.ColumnID) (base *storage.Table, seed rowid.PosList, err error) {
	if t.ChunkCount() == 1 {
		chunk, err := t.Chunk(0)
		if err != nil {
			return nil, nil, err
		}
		seg, err := chunk.Segment(columnID)
		if err != nil {
			return nil, nil, err
		}
		if refSeg, ok := seg.(*storage.ReferenceSegment); ok {
			return refSeg.Table(), refSeg.PosList(), nil
		}
	}
	return t, nil, nil
}

// coerceLiteral checks the search literal's tagged-union variant against
// the column's declared type, per the filter operator's "mismatch is
// fatal" contract.
func coerceLiteral(v any, colType coltype.ValueType) (any, error) {
	ok := false
	switch colType {
	case coltype.Int32:
		_, ok = v.(int32)
	case coltype.Int64:
		_, ok = v.(int64)
	case coltype.Float32:
		_, ok = v.(float32)
	case coltype.Float64:
		_, ok = v.(float64)
	case coltype.String:
		_, ok = v.(string)
	}
	if !ok {
		return nil, coreerr.New(coreerr.TypeMismatch, "search literal %v (%T) does not match column type %s", v, v, colType)
	}
	return v, nil
}

// scanBase scans every chunk of baseTable in ascending chunk order,
// emitting RowIDs in (chunk_id, offset) order.
func scanBase(baseTable *storage.Table, columnID rowid.ColumnID, pred predicate.Condition, literal any) (rowid.PosList, error) {
	var out rowid.PosList
	for cid := 0; cid < baseTable.ChunkCount(); cid++ {
		chunk, err := baseTable.Chunk(rowid.ChunkID(cid))
		if err != nil {
			return nil, err
		}
		seg, err := chunk.Segment(columnID)
		if err != nil {
			return nil, err
		}
		scanner, ok := seg.(storage.Scanner)
		if !ok {
			return nil, coreerr.New(coreerr.PreconditionViolation, "base chunk column %d is not a scannable segment", columnID)
		}

		offsets := make([]int, chunk.Size())
		for i := range offsets {
			offsets[i] = i
		}
		matched, err := scanner.ScanPositions(pred, literal, offsets)
		if err != nil {
			return nil, err
		}
		for _, off := range matched {
			out = append(out, rowid.RowID{ChunkID: rowid.ChunkID(cid), Offset: rowid.ChunkOffset(off)})
		}
	}
	return out, nil
}

// scanFiltered restricts the scan to seed's positions, processed in runs
// of equal chunk id so the result preserves seed's own order - required
// for chained scans to satisfy row-identity preservation.
func scanFiltered(baseTable *storage.Table, columnID rowid.ColumnID, seed rowid.PosList, pred predicate.Condition, literal any) (rowid.PosList, error) {
	var out rowid.PosList
	i := 0
	for i < len(seed) {
		chunkID := seed[i].ChunkID
		j := i
		var offsets []int
		for j < len(seed) && seed[j].ChunkID == chunkID {
			offsets = append(offsets, int(seed[j].Offset))
			j++
		}

		chunk, err := baseTable.Chunk(chunkID)
		if err != nil {
			return nil, err
		}
		seg, err := chunk.Segment(columnID)
		if err != nil {
			return nil, err
		}
		scanner, ok := seg.(storage.Scanner)
		if !ok {
			return nil, coreerr.New(coreerr.PreconditionViolation, "base chunk column %d is not a scannable segment", columnID)
		}

		matched, err := scanner.ScanPositions(pred, literal, offsets)
		if err != nil {
			return nil, err
		}
		for _, off := range matched {
			out = append(out, rowid.RowID{ChunkID: chunkID, Offset: rowid.ChunkOffset(off)})
		}
		i = j
	}
	return out, nil
}

package storage

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/oss-dyod/coredb/coltype"
	"github.com/oss-dyod/coredb/coreerr"
	"github.com/oss-dyod/coredb/rowid"
)

// TableConfig is the construction-time configuration for a Table.
type TableConfig struct {
	TargetChunkSize int
}

// Table owns an ordered sequence of chunks, a schema, and the target chunk
// size fixed at construction (I3). The chunk list and schema are guarded
// by a single structural mutex; full chunks and the immutable segments
// they hold need no further synchronization once a handle is obtained.
type Table struct {
	mu sync.Mutex

	id uuid.UUID

	chunks          []*Chunk
	columnNames     []string
	columnTypes     []coltype.ValueType
	targetChunkSize int
}

// NewTable constructs a table with one empty chunk, per I4.
func NewTable(cfg TableConfig) *Table {
	return &Table{
		id:              uuid.New(),
		chunks:          []*Chunk{NewChunk()},
		targetChunkSize: cfg.TargetChunkSize,
	}
}

// NewReferenceTable wraps a single chunk of reference segments into a
// table whose schema mirrors base's. It is the shape every filter operator
// output takes (I6); the row count it reports follows from the reference
// segments' shared position list, not from further appends - nothing ever
// appends to a reference table.
func NewReferenceTable(base *Table, chunk *Chunk) *Table {
	base.mu.Lock()
	names := slices.Clone(base.columnNames)
	types := slices.Clone(base.columnTypes)
	base.mu.Unlock()

	return &Table{
		id:              uuid.New(),
		chunks:          []*Chunk{chunk},
		columnNames:     names,
		columnTypes:     types,
		targetChunkSize: chunk.Size(),
	}
}

func (t *Table) ID() uuid.UUID { return t.id }

// AddColumn registers a new column and appends a matching empty value
// segment to the table's single chunk. Precondition: the table's row
// count is zero (I4).
func (t *Table) AddColumn(name string, typ coltype.ValueType) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.rowCountLocked() != 0 {
		return coreerr.New(coreerr.PreconditionViolation, "cannot add column %q to table with %d rows", name, t.rowCountLocked())
	}

	t.columnNames = append(t.columnNames, name)
	t.columnTypes = append(t.columnTypes, typ)

	if len(t.chunks) == 0 {
		t.chunks = append(t.chunks, NewChunk())
	}
	t.chunks[0].AddSegment(newValueSegmentFor(typ))
	return nil
}

// AddColumnByTag resolves tag (one of the schema type tag strings
// coltype.FromTag recognizes) before delegating to AddColumn. It is the
// entry point for schema descriptors that name column types as strings
// rather than constructing coltype.ValueType values directly.
func (t *Table) AddColumnByTag(name, tag string) error {
	typ, err := coltype.FromTag(tag)
	if err != nil {
		return coreerr.Wrap(coreerr.TypeMismatch, err, "column %q", name)
	}
	return t.AddColumn(name, typ)
}

// Append adds one row, rolling over to a fresh chunk first if the last
// chunk is already full.
func (t *Table) Append(row []any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	last := t.chunks[len(t.chunks)-1]
	if t.targetChunkSize > 0 && last.Size() >= t.targetChunkSize {
		last = t.newChunkLocked()
		t.chunks = append(t.chunks, last)
	}
	return last.Append(row)
}

// CreateNewChunk materializes one fresh chunk, with one empty value
// segment per declared column, and appends it to the table.
func (t *Table) CreateNewChunk() *Chunk {
	t.mu.Lock()
	defer t.mu.Unlock()
	c := t.newChunkLocked()
	t.chunks = append(t.chunks, c)
	return c
}

func (t *Table) newChunkLocked() *Chunk {
	c := NewChunk()
	for _, typ := range t.columnTypes {
		c.AddSegment(newValueSegmentFor(typ))
	}
	return c
}

// CompressChunk replaces every segment in the chunk at id with a
// dictionary segment built from it, parallelizing the per-column builds
// since each reads one segment and writes a fresh one with no shared
// state. Only a full chunk may be compressed (I5).
func (t *Table) CompressChunk(id rowid.ChunkID) error {
	t.mu.Lock()
	idx := int(id)
	if idx < 0 || idx >= len(t.chunks) {
		t.mu.Unlock()
		return coreerr.New(coreerr.OutOfRange, "chunk id %d out of range (%d chunks)", id, len(t.chunks))
	}
	chunk := t.chunks[idx]
	isLast := idx == len(t.chunks)-1
	full := !isLast || (t.targetChunkSize > 0 && chunk.Size() == t.targetChunkSize)
	columnTypes := slices.Clone(t.columnTypes)
	t.mu.Unlock()

	if !full {
		return coreerr.New(coreerr.PreconditionViolation, "chunk %d is not full", id)
	}

	start := time.Now()
	newSegments := make([]Segment, len(columnTypes))
	var g errgroup.Group
	for ci := range columnTypes {
		ci := ci
		g.Go(func() error {
			seg, err := chunk.Segment(rowid.ColumnID(ci))
			if err != nil {
				return err
			}
			compressed, err := compressSegment(seg, columnTypes[ci])
			if err != nil {
				return err
			}
			newSegments[ci] = compressed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	newChunk := NewChunk()
	for _, s := range newSegments {
		newChunk.AddSegment(s)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if idx >= len(t.chunks) || t.chunks[idx] != chunk {
		return coreerr.New(coreerr.PreconditionViolation, "chunk %d was replaced concurrently", id)
	}
	t.chunks[idx] = newChunk

	slog.Info("compressed chunk", "table", t.id, "chunk_id", id, "columns", len(newSegments), "elapsed", time.Since(start))
	return nil
}

func (t *Table) ColumnCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.columnNames)
}

func (t *Table) RowCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rowCountLocked()
}

func (t *Table) rowCountLocked() int {
	total := 0
	for _, c := range t.chunks {
		total += c.Size()
	}
	return total
}

func (t *Table) ChunkCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.chunks)
}

// ColumnIDByName linear-scans the schema; fails if absent.
func (t *Table) ColumnIDByName(name string) (rowid.ColumnID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, n := range t.columnNames {
		if n == name {
			return rowid.ColumnID(i), nil
		}
	}
	return 0, coreerr.New(coreerr.OutOfRange, "no column named %q", name)
}

func (t *Table) ColumnName(id rowid.ColumnID) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := int(id)
	if idx < 0 || idx >= len(t.columnNames) {
		return "", coreerr.New(coreerr.OutOfRange, "column id %d out of range (%d columns)", id, len(t.columnNames))
	}
	return t.columnNames[idx], nil
}

func (t *Table) ColumnType(id rowid.ColumnID) (coltype.ValueType, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := int(id)
	if idx < 0 || idx >= len(t.columnTypes) {
		return 0, coreerr.New(coreerr.OutOfRange, "column id %d out of range (%d columns)", id, len(t.columnTypes))
	}
	return t.columnTypes[idx], nil
}

// Chunk returns the chunk at id, range-checked. The returned handle may be
// a stale snapshot of a since-compressed chunk; per the table's
// concurrency model that is a legal view, not a race.
func (t *Table) Chunk(id rowid.ChunkID) (*Chunk, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := int(id)
	if idx < 0 || idx >= len(t.chunks) {
		return nil, coreerr.New(coreerr.OutOfRange, "chunk id %d out of range (%d chunks)", id, len(t.chunks))
	}
	return t.chunks[idx], nil
}

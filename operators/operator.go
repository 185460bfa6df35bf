// Package operators implements the minimal dataflow framework and the
// filter (table-scan) operator: nodes with zero, one, or two inputs and a
// lazily filled, cached output table.
package operators

import (
	"github.com/oss-dyod/coredb/coreerr"
	"github.com/oss-dyod/coredb/rowid"
	"github.com/oss-dyod/coredb/storage"
)

// Operator is a dataflow node: Execute computes its output once;
// GetOutput returns the cached result.
type Operator interface {
	Execute() error
	GetOutput() (*storage.Table, error)
}

// executionState is the (Unexecuted -> Executed) state machine shared by
// every concrete operator. Each node holds one as a field and delegates
// its Execute/GetOutput to it, without a base class to inherit from.
type executionState struct {
	executed bool
	output   *storage.Table
}

// run invokes onExecute, validates the result, and caches it. A second
// call after the node has already executed is a programming error.
func (s *executionState) run(onExecute func() (*storage.Table, error)) error {
	if s.executed {
		panic("operator already executed")
	}
	out, err := onExecute()
	if err != nil {
		return err
	}
	if err := validateOutput(out); err != nil {
		return err
	}
	s.output = out
	s.executed = true
	return nil
}

func (s *executionState) GetOutput() (*storage.Table, error) {
	if !s.executed {
		return nil, coreerr.New(coreerr.PreconditionViolation, "operator has not been executed")
	}
	return s.output, nil
}

// validateOutput enforces the one legal empty-chunk shape: an empty chunk
// may appear only when it is the sole chunk in the output.
func validateOutput(t *storage.Table) error {
	n := t.ChunkCount()
	for i := 0; i < n; i++ {
		chunk, err := t.Chunk(rowid.ChunkID(i))
		if err != nil {
			return err
		}
		if chunk.Size() == 0 && n != 1 {
			return coreerr.New(coreerr.PreconditionViolation, "empty chunk %d in a %d-chunk output", i, n)
		}
	}
	return nil
}

package operators

import "github.com/oss-dyod/coredb/storage"

// GetTable is the zero-input leaf operator: its output is a fixed,
// pre-existing base table. It exists so every operator tree is rooted in
// operator nodes, with no special case for "the input is a raw table".
type GetTable struct {
	state executionState
	table *storage.Table
}

func NewGetTable(t *storage.Table) *GetTable {
	return &GetTable{table: t}
}

func (g *GetTable) Execute() error {
	return g.state.run(func() (*storage.Table, error) { return g.table, nil })
}

func (g *GetTable) GetOutput() (*storage.Table, error) {
	return g.state.GetOutput()
}

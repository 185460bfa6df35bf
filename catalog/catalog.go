// Package catalog implements the process-wide name -> table collaborator
// described at the engine's embedding boundary. It is explicitly
// constructed rather than a package-level global, so tests can instantiate
// an isolated catalog per case.
package catalog

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/oss-dyod/coredb/coreerr"
	"github.com/oss-dyod/coredb/storage"
)

type Catalog struct {
	mu     sync.Mutex
	tables map[string]*storage.Table
}

func New() *Catalog {
	return &Catalog{tables: make(map[string]*storage.Table)}
}

// Add registers table under name; fails if the name is already taken.
func (c *Catalog) Add(name string, table *storage.Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.tables[name]; exists {
		return coreerr.New(coreerr.PreconditionViolation, "table %q already registered", name)
	}
	c.tables[name] = table
	return nil
}

// Drop removes name; fails if absent.
func (c *Catalog) Drop(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.tables[name]; !exists {
		return coreerr.New(coreerr.PreconditionViolation, "no table named %q", name)
	}
	delete(c.tables, name)
	return nil
}

// Get returns the table registered under name; fails if absent.
func (c *Catalog) Get(name string) (*storage.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, exists := c.tables[name]
	if !exists {
		return nil, coreerr.New(coreerr.PreconditionViolation, "no table named %q", name)
	}
	return t, nil
}

func (c *Catalog) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.tables[name]
	return exists
}

// Names returns the registered table names, order unspecified.
func (c *Catalog) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.tables))
	for n := range c.tables {
		names = append(names, n)
	}
	return names
}

// Print writes one line per table, in ascending name order.
func (c *Catalog) Print(w io.Writer) error {
	c.mu.Lock()
	names := make([]string, 0, len(c.tables))
	for n := range c.tables {
		names = append(names, n)
	}
	tables := make(map[string]*storage.Table, len(c.tables))
	for n, t := range c.tables {
		tables[n] = t
	}
	c.mu.Unlock()

	sort.Strings(names)

	for _, name := range names {
		t := tables[name]
		_, err := fmt.Fprintf(w, "Table Name: %s\t# Columns: %d\t# Rows: %d\t# Chunks: %d\n",
			name, t.ColumnCount(), t.RowCount(), t.ChunkCount())
		if err != nil {
			return err
		}
	}
	return nil
}

// Reset clears every registered table.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables = make(map[string]*storage.Table)
}

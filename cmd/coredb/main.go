package main

import (
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/oss-dyod/coredb/catalog"
	"github.com/oss-dyod/coredb/operators"
	"github.com/oss-dyod/coredb/predicate"
	"github.com/oss-dyod/coredb/rowid"
	"github.com/oss-dyod/coredb/storage"
)

func buildHealthChecksTable() *storage.Table {
	t := storage.NewTable(storage.TableConfig{TargetChunkSize: 4})

	if err := t.AddColumnByTag("created_at", "long"); err != nil {
		panic(err)
	}
	if err := t.AddColumnByTag("value", "long"); err != nil {
		panic(err)
	}

	rows := [][2]int64{
		{1000, 10}, {1001, 12}, {1002, 31}, {1003, 9},
		{1004, 54}, {1005, 2}, {1006, 17},
	}
	for _, r := range rows {
		if err := t.Append([]any{r[0], r[1]}); err != nil {
			panic(err)
		}
	}

	return t
}

func main() {
	cat := catalog.New()

	healthChecks := buildHealthChecksTable()
	if err := cat.Add("health_checks", healthChecks); err != nil {
		log.Fatal(err)
	}

	if err := healthChecks.CompressChunk(rowid.ChunkID(0)); err != nil {
		log.Printf("chunk 0 not compressed: %v", err)
	}

	scan := operators.NewTableScan(
		operators.NewGetTable(healthChecks),
		rowid.ColumnID(1),
		predicate.GreaterThan,
		int64(20),
	)
	if err := scan.Execute(); err != nil {
		log.Fatal(err)
	}
	result, err := scan.GetOutput()
	if err != nil {
		log.Fatal(err)
	}

	color.Green("scan matched %d rows out of %d", result.RowCount(), healthChecks.RowCount())

	if err := cat.Print(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

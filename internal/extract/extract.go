// Package extract reads the raw CSV area into in-memory tables. It is a thin
// I/O wrapper: discovery is by fixed file name (<table>.csv), a missing file
// or required column is fatal for the whole run, and numeric columns are
// coerced per the table contract so downstream sorting and key resolution are
// numeric rather than lexicographic.
package extract

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	csvparser "dwetl/internal/parser/csv"
	"dwetl/internal/schema"
	"dwetl/internal/table"
)

// All loads every raw table listed in schema.TableNames from dir and returns
// them keyed by table name. The returned tables are immutable snapshots for
// the rest of the run.
func All(dir string, opt csvparser.Options) (map[string]table.Table, error) {
	data := make(map[string]table.Table, len(schema.TableNames))
	p := csvparser.NewParser(opt)

	for _, name := range schema.TableNames {
		path := filepath.Join(dir, name+".csv")
		t, err := readTable(p, name, path)
		if err != nil {
			return nil, err
		}
		data[name] = t
		log.Printf("extract: table=%s rows=%d", name, t.Len())
	}
	return data, nil
}

func readTable(p *csvparser.Parser, name, path string) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cols, rows, skipped, err := p.Parse(f)
	if err != nil {
		return table.Table{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if skipped > 0 {
		log.Printf("extract: table=%s skipped=%d malformed rows", name, skipped)
	}

	t := table.New(cols, rows)
	contract, ok := schema.Contracts[name]
	if !ok {
		return t, nil
	}
	for _, fld := range contract.Fields {
		if fld.Required && !t.HasCol(fld.Name) {
			return table.Table{}, schema.MissingSourceError{Table: name, Column: fld.Name}
		}
	}
	coerce(t, contract)
	return t, nil
}

// coerce converts string cells in place to the contract's declared type.
// Timestamp columns stay as strings; the transform stage parses them with its
// own fallback policy. Values that fail to parse are left untouched so the
// cell-level fallback rules downstream can apply.
func coerce(t table.Table, c schema.Contract) {
	for _, fld := range c.Fields {
		if fld.Type != "int" && fld.Type != "float" {
			continue
		}
		for _, r := range t.Rows {
			s, ok := r[fld.Name].(string)
			if !ok {
				continue
			}
			switch fld.Type {
			case "int":
				if i, err := strconv.Atoi(s); err == nil {
					r[fld.Name] = i
				} else if fv, err := strconv.ParseFloat(s, 64); err == nil {
					// Nullable int columns round-trip through a float form
					// in some extracts ("3.0").
					r[fld.Name] = int(fv)
				}
			case "float":
				if fv, err := strconv.ParseFloat(s, 64); err == nil {
					r[fld.Name] = fv
				}
			}
		}
	}
}

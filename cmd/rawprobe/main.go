// Command rawprobe samples the raw CSV files in a directory and prints each
// file's header names with inferred types. It is a diagnostic used when
// onboarding a new raw extract: the output makes it obvious when a source
// system renamed or retyped a column before the pipeline fails on it.
//
// Example:
//
//	rawprobe -dir=RAW -rows=200
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func main() {
	dir := flag.String("dir", "RAW", "directory holding the raw CSV files")
	rows := flag.Int("rows", 100, "maximum data rows to sample per file")
	delim := flag.String("delimiter", ",", "field delimiter")
	flag.Parse()

	paths, err := filepath.Glob(filepath.Join(*dir, "*.csv"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "glob: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "no csv files in %s\n", *dir)
		os.Exit(1)
	}
	sort.Strings(paths)

	d := ','
	if *delim != "" {
		d = []rune(*delim)[0]
	}

	for _, path := range paths {
		if err := probeFile(path, d, *rows); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

func probeFile(path string, delim rune, maxRows int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = normalizeName(h)
	}

	samples := make([][]string, len(cols))
	for n := 0; n < maxRows; n++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		for i := range cols {
			if i < len(row) && row[i] != "" {
				samples[i] = append(samples[i], row[i])
			}
		}
	}

	fmt.Printf("%s\n", filepath.Base(path))
	for i, c := range cols {
		fmt.Printf("  %-24s %s\n", c, inferType(samples[i]))
	}
	return nil
}

// normalizeName produces a canonical snake_case column name: NFD
// decomposition with combining marks stripped (so "Categoría" and
// "categoria" collapse to the same key), lowercased, spaces to underscores.
func normalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	clean, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		clean = s
	}
	clean = strings.ToLower(clean)
	return strings.ReplaceAll(clean, " ", "_")
}

// inferType guesses a column type from sampled non-empty values. Order
// matters: every int parses as a float, so int is tried first.
func inferType(vals []string) string {
	if len(vals) == 0 {
		return "text (no samples)"
	}
	isInt, isFloat, isDate := true, true, true
	for _, v := range vals {
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			isFloat = false
		}
		if !parsesAsDate(v) {
			isDate = false
		}
	}
	switch {
	case isInt:
		return "int"
	case isFloat:
		return "float"
	case isDate:
		return "timestamp"
	default:
		return "text"
	}
}

func parsesAsDate(s string) bool {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02", time.RFC3339} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

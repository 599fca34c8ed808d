package main

import (
	"fmt"
	"log"
	"time"

	"dwetl/internal/config"
	"dwetl/internal/extract"
	"dwetl/internal/load"
	"dwetl/internal/metrics"
	csvparser "dwetl/internal/parser/csv"
	"dwetl/internal/transform"
)

// run executes a full extract → transform → load batch. The transformation
// fully materializes before any output is written, so a failed run never
// leaves a partial output set behind.
func run(p config.Pipeline) error {
	opt := csvparser.Options{
		HasHeader: true,
		Comma:     p.Parser.Options.Rune("comma", ','),
		TrimSpace: p.Parser.Options.Bool("trim_space", true),
		HeaderMap: p.Parser.Options.StringMap("header_map"),
	}

	start := time.Now()
	raw, err := extract.All(p.Extract.Dir, opt)
	metrics.RecordStep(p.Job, "extract", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	for name, t := range raw {
		metrics.RecordRows(p.Job, "extracted", name, int64(t.Len()))
	}

	start = time.Now()
	tables, err := transform.All(p.Job, raw)
	metrics.RecordStep(p.Job, "transform", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}

	start = time.Now()
	results, err := load.WriteTables(p.Load.Dir, transform.OutputOrder, tables)
	metrics.RecordStep(p.Job, "load", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	for _, r := range results {
		metrics.RecordRows(p.Job, "written", r.Table, int64(r.Rows))
		log.Printf("load: table=%s rows=%d checksum=%016x", r.Table, r.Rows, r.Checksum)
	}
	log.Printf("run complete: tables=%d out=%s", len(results), p.Load.Dir)
	return nil
}

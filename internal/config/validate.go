// This file adds a lightweight linter for Pipeline values. It performs static
// checks over a decoded Pipeline and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be
	// surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Pipeline. Path is a
// dotted path into the config (e.g. "extract.dir"); Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error where one is expected.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	if strings.TrimSpace(p.Extract.Dir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "extract.dir",
			Message:  "extract.dir must name the directory holding the raw CSV files",
		})
	}
	if strings.TrimSpace(p.Load.Dir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "load.dir",
			Message:  "load.dir must name the output directory",
		})
	}
	if p.Extract.Dir != "" && p.Extract.Dir == p.Load.Dir {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "load.dir",
			Message:  "output directory equals the raw directory; produced tables will sit next to the raw extracts",
		})
	}
	if comma := p.Parser.Options.String("comma", ","); len([]rune(comma)) != 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.comma",
			Message:  fmt.Sprintf("delimiter must be a single character, got %q", comma),
		})
	}

	return issues
}

package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fenilsonani/dupsweep/internal/cleaner"
	"github.com/fenilsonani/dupsweep/internal/duplicates"
	"github.com/fenilsonani/dupsweep/internal/scanner"
	"github.com/fenilsonani/dupsweep/pkg/utils"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// Report describes one run: what was scanned, which files were kept and
// what happened to the rest
type Report struct {
	RunID        string            `json:"run_id" yaml:"run_id"`
	Timestamp    string            `json:"timestamp" yaml:"timestamp"`
	Root         string            `json:"root" yaml:"root"`
	Recursive    bool              `json:"recursive" yaml:"recursive"`
	ScannedFiles int               `json:"scanned_files" yaml:"scanned_files"`
	ScannedSize  int64             `json:"scanned_size" yaml:"scanned_size"`
	ScanErrors   []string          `json:"scan_errors,omitempty" yaml:"scan_errors,omitempty"`
	Groups       []GroupReport     `json:"groups" yaml:"groups"`
	Outcome      string            `json:"outcome" yaml:"outcome"`
	DryRun       bool              `json:"dry_run" yaml:"dry_run"`
	PlannedSize  int64             `json:"planned_size" yaml:"planned_size"`
	Deleted      []string          `json:"deleted" yaml:"deleted"`
	DeletedSize  int64             `json:"deleted_size" yaml:"deleted_size"`
	Skipped      map[string]string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// GroupReport is one duplicate group after resolution
type GroupReport struct {
	Checksum   string   `json:"checksum" yaml:"checksum"`
	Kept       string   `json:"kept,omitempty" yaml:"kept,omitempty"`
	Candidates []string `json:"candidates" yaml:"candidates"`
	Size       int64    `json:"size" yaml:"size"`
}

// Build assembles a report. result may be nil when the run stopped before deletion.
func Build(runID string, scan *scanner.ScanResult, set *duplicates.Set, result *cleaner.Result) *Report {
	rep := &Report{
		RunID:        runID,
		Timestamp:    time.Now().Format(time.RFC3339),
		Root:         scan.Root,
		Recursive:    scan.Recursive,
		ScannedFiles: len(scan.Records),
		ScannedSize:  scan.TotalSize,
		PlannedSize:  set.ReclaimableSize(),
		Groups:       []GroupReport{},
		Deleted:      []string{},
	}

	for _, err := range scan.Errors {
		rep.ScanErrors = append(rep.ScanErrors, err.Error())
	}

	for _, g := range set.Groups() {
		gr := GroupReport{Checksum: g.Checksum, Size: g.Size(), Candidates: []string{}}
		if g.Kept != nil {
			gr.Kept = g.Kept.Path
		}
		for _, f := range g.Files {
			gr.Candidates = append(gr.Candidates, f.Path)
		}
		rep.Groups = append(rep.Groups, gr)
	}

	if result != nil {
		rep.Outcome = result.Outcome.String()
		rep.DryRun = result.DryRun
		rep.Deleted = append(rep.Deleted, result.DeletedFiles...)
		rep.DeletedSize = result.DeletedSize
		if len(result.SkippedReason) > 0 {
			rep.Skipped = result.SkippedReason
		}
	}

	return rep
}

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Report writes rep in the reporter's format
func (r *Reporter) Report(rep *Report) error {
	switch r.format {
	case FormatTable:
		return r.reportTable(rep)
	case FormatJSON:
		return r.reportJSON(rep)
	case FormatYAML:
		return r.reportYAML(rep)
	case FormatSummary:
		return r.reportSummary(rep)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportSummary generates a summary report
func (r *Reporter) reportSummary(rep *Report) error {
	fmt.Fprintf(r.writer, "=== Duplicate Summary ===\n")
	fmt.Fprintf(r.writer, "Scanned: %d files, %s in %s\n", rep.ScannedFiles, utils.FormatBytes(rep.ScannedSize), rep.Root)
	fmt.Fprintf(r.writer, "Duplicate groups: %d\n", len(rep.Groups))

	var candidates int
	for _, g := range rep.Groups {
		candidates += len(g.Candidates)
	}
	fmt.Fprintf(r.writer, "Duplicate copies: %d (%s)\n", candidates, utils.FormatBytes(rep.PlannedSize))

	if rep.Outcome != "" {
		fmt.Fprintf(r.writer, "Outcome: %s\n", rep.Outcome)
	}
	if len(rep.Deleted) > 0 {
		fmt.Fprintf(r.writer, "Removed: %d files, %s\n", len(rep.Deleted), utils.FormatBytes(rep.DeletedSize))
	}
	if len(rep.Skipped) > 0 {
		fmt.Fprintf(r.writer, "Skipped: %d files\n", len(rep.Skipped))
	}
	if len(rep.ScanErrors) > 0 {
		fmt.Fprintf(r.writer, "\nErrors: %d\n", len(rep.ScanErrors))
	}

	return nil
}

// reportTable generates a table report
func (r *Reporter) reportTable(rep *Report) error {
	separator := strings.Repeat("-", 100)

	fmt.Fprintf(r.writer, "%-8s | %-60s | %s\n", "Action", "Path", "Checksum")
	fmt.Fprintf(r.writer, "%s\n", separator)

	for _, g := range rep.Groups {
		checksum := g.Checksum
		if len(checksum) > 16 {
			checksum = checksum[:16]
		}

		if g.Kept != "" {
			fmt.Fprintf(r.writer, "%-8s | %-60s | %s\n", "keep", shortenPath(g.Kept), checksum)
		}
		for _, path := range g.Candidates {
			fmt.Fprintf(r.writer, "%-8s | %-60s | %s\n", "remove", shortenPath(path), checksum)
		}
	}

	fmt.Fprintf(r.writer, "%s\n", separator)
	fmt.Fprintf(r.writer, "Total: %d groups, %s reclaimable\n", len(rep.Groups), utils.FormatBytes(rep.PlannedSize))

	return nil
}

func shortenPath(path string) string {
	if len(path) > 60 {
		return "..." + path[len(path)-57:]
	}
	return path
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(rep *Report) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rep)
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(rep *Report) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(rep)
}

// SaveToFile saves the report to a file
func SaveToFile(rep *Report, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reporter := New(file, format)
	return reporter.Report(rep)
}

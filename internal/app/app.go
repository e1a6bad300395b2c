// Package app wires the scanner, grouper, resolver, cleaner and reporter into
// one duplicate sweep over a directory.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/dupsweep/internal/cleaner"
	"github.com/fenilsonani/dupsweep/internal/config"
	"github.com/fenilsonani/dupsweep/internal/duplicates"
	"github.com/fenilsonani/dupsweep/internal/prompt"
	"github.com/fenilsonani/dupsweep/internal/reporter"
	"github.com/fenilsonani/dupsweep/internal/resolver"
	"github.com/fenilsonani/dupsweep/internal/scanner"
	"github.com/fenilsonani/dupsweep/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Options carries everything a sweep needs besides the configuration
type Options struct {
	Config       *config.Config
	In           io.Reader
	Out          io.Writer
	Err          io.Writer
	Log          *logrus.Entry
	Fs           afero.Fs // nil means the OS filesystem
	ReportPath   string
	ManifestPath string
	ShowProgress bool
}

// Summary is what a finished sweep reports back to the command
type Summary struct {
	RunID   string
	Outcome cleaner.Outcome
	Report  *reporter.Report
}

// ExitCode maps a sweep result to the process exit status: 1 for errors and
// for a declined confirmation, 0 otherwise
func ExitCode(summary *Summary, err error) int {
	if err != nil {
		return 1
	}
	if summary != nil && summary.Outcome == cleaner.OutcomeDeclined {
		return 1
	}
	return 0
}

// Run scans the configured source, resolves every duplicate group and hands
// the candidates to the cleaner
func Run(opts Options) (*Summary, error) {
	cfg := *opts.Config
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.Err == nil {
		opts.Err = io.Discard
	}

	root, err := resolveSource(cfg.Source)
	if err != nil {
		return nil, err
	}
	cfg.Source = root

	fmt.Fprintf(opts.Out, "Scanning folder: %s\n", root)

	scnr := scanner.New(&cfg, log)
	if opts.Fs != nil {
		scnr.SetFs(opts.Fs)
	}

	var progress *ui.HashProgress
	if opts.ShowProgress {
		progress = ui.NewHashProgress(opts.Err)
		scnr.SetProgressCallback(progress.Callback())
	}

	scanResult, err := scnr.Scan(root, cfg.Recursive)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	set := duplicates.Find(scanResult.Records)
	log.WithFields(logrus.Fields{
		"files":  len(scanResult.Records),
		"groups": set.Len(),
	}).Debug("duplicates grouped")

	// One provider for every question so buffered input is never lost between stages
	answers := prompt.NewLineProvider(opts.In, opts.Out)

	clnr := cleaner.New(&cfg, answers, opts.Out, log)
	if opts.Fs != nil {
		clnr.SetFs(opts.Fs)
	}
	summary := &Summary{RunID: clnr.GetManifest().ID}

	chooser, err := newChooser(&cfg, answers, opts, set.Len())
	if err != nil {
		return nil, err
	}

	var result *cleaner.Result
	if err := resolver.New(chooser, log).Resolve(set); err != nil {
		if !errors.Is(err, resolver.ErrAborted) && !errors.Is(err, prompt.ErrInputClosed) {
			return nil, err
		}
		fmt.Fprintln(opts.Out, "Deletion cancelled")
		result = &cleaner.Result{Outcome: cleaner.OutcomeDeclined, DryRun: cfg.DryRun}
	} else {
		result, err = clnr.Delete(set, cfg.DryRun)
		if result == nil {
			return nil, err
		}
		if len(result.Errors) > 0 {
			fmt.Fprint(opts.Out, cleaner.FormatErrorSummary(result.Errors))
		}
		if err != nil {
			summary.Outcome = result.Outcome
			summary.Report = reporter.Build(summary.RunID, scanResult, set, result)
			return summary, fmt.Errorf("deletion stopped: %w", err)
		}
	}

	summary.Outcome = result.Outcome
	summary.Report = reporter.Build(summary.RunID, scanResult, set, result)

	if err := writeReports(&cfg, opts, summary, clnr); err != nil {
		return summary, err
	}

	return summary, nil
}

// newChooser picks how the file to keep is selected
func newChooser(cfg *config.Config, answers prompt.Provider, opts Options, groups int) (resolver.Chooser, error) {
	if cfg.KeepRule != "" && cfg.KeepRule != config.KeepAsk {
		return resolver.NewRuleChooser(cfg.KeepRule)
	}
	if cfg.TUI {
		return ui.NewKeepSelector(opts.In, opts.Out, groups), nil
	}
	return resolver.NewPromptChooser(answers, opts.Out), nil
}

// writeReports prints the report and saves the optional report and manifest files
func writeReports(cfg *config.Config, opts Options, summary *Summary, clnr *cleaner.Cleaner) error {
	if summary.Outcome == cleaner.OutcomeNoDuplicates {
		return nil
	}

	format := reporter.OutputFormat(cfg.Output)
	if format == "" {
		format = reporter.FormatSummary
	}

	fmt.Fprintln(opts.Out)
	if err := reporter.New(opts.Out, format).Report(summary.Report); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if opts.ReportPath != "" {
		if err := reporter.SaveToFile(summary.Report, opts.ReportPath, formatForPath(opts.ReportPath, format)); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Fprintf(opts.Out, "Report saved to: %s\n", opts.ReportPath)
	}

	if opts.ManifestPath != "" && summary.Outcome == cleaner.OutcomeDeleted {
		if err := clnr.SaveManifest(opts.ManifestPath); err != nil {
			return fmt.Errorf("failed to save manifest: %w", err)
		}
		fmt.Fprintf(opts.Out, "Manifest saved to: %s\n", opts.ManifestPath)
	}

	return nil
}

// formatForPath picks the report format from the file extension, falling back to fallback
func formatForPath(path string, fallback reporter.OutputFormat) reporter.OutputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return reporter.FormatJSON
	case ".yaml", ".yml":
		return reporter.FormatYAML
	default:
		return fallback
	}
}

// resolveSource returns the absolute scan root, defaulting to the working directory
func resolveSource(source string) (string, error) {
	if source == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("failed to resolve source %s: %w", source, err)
	}
	return abs, nil
}

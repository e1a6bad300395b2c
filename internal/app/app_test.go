package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fenilsonani/dupsweep/internal/cleaner"
	"github.com/fenilsonani/dupsweep/internal/config"
	"github.com/fenilsonani/dupsweep/internal/scanner"
	"github.com/fenilsonani/dupsweep/internal/testutil"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

func testConfig(root string) *config.Config {
	cfg := config.GetDefault()
	cfg.Source = root
	cfg.ProtectedPaths = nil
	return cfg
}

func run(t *testing.T, cfg *config.Config, input string) (*Summary, string, error) {
	t.Helper()
	var out bytes.Buffer
	log, _ := testutil.NullLogger()
	summary, err := Run(Options{
		Config: cfg,
		In:     strings.NewReader(input),
		Out:    &out,
		Log:    log,
	})
	return summary, out.String(), err
}

func TestRunKeepsChosenFile(t *testing.T) {
	f := testutil.NewSampleTree(t)

	summary, out, err := run(t, testConfig(f.RootDir), "0\ny\n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Outcome != cleaner.OutcomeDeleted {
		t.Errorf("Outcome = %v, want %v", summary.Outcome, cleaner.OutcomeDeleted)
	}
	if ExitCode(summary, err) != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode(summary, err))
	}

	f.AssertFileExists(f.Path("text.txt"))
	f.AssertFileNotExists(f.Path("text_copy.txt"))
	f.AssertFileExists(f.Path("text_different.txt"))
	f.AssertFileExists(f.Path("image.jpg"))
	f.AssertFileExists(f.Path("sub/recursive.txt"))

	for _, want := range []string{
		"Scanning folder: " + f.RootDir,
		"- Checksum: ",
		"What file do you want to keep?",
		"Index: ",
		"Removing " + f.Path("text_copy.txt"),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunRecursiveToggle(t *testing.T) {
	tests := []struct {
		name      string
		recursive bool
		wantCount int
	}{
		{"non-recursive", false, 1},
		{"recursive", true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testutil.NewSampleTree(t)
			cfg := testConfig(f.RootDir)
			cfg.Recursive = tt.recursive
			cfg.DryRun = true

			summary, out, err := run(t, cfg, "0\n")
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if got := strings.Count(out, "[DRY RUN] Would remove "); got != tt.wantCount {
				t.Errorf("dry run lines = %d, want %d\n%s", got, tt.wantCount, out)
			}

			mentionsNested := strings.Contains(out, f.Path("sub/recursive.txt"))
			if mentionsNested != tt.recursive {
				t.Errorf("nested file listed = %v, want %v", mentionsNested, tt.recursive)
			}

			if len(summary.Report.Groups) != 1 {
				t.Errorf("groups = %d, want 1", len(summary.Report.Groups))
			}
		})
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	f := testutil.NewSampleTree(t)
	cfg := testConfig(f.RootDir)
	cfg.DryRun = true
	cfg.Recursive = true

	summary, out, err := run(t, cfg, "1\n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Outcome != cleaner.OutcomeDryRun {
		t.Errorf("Outcome = %v, want %v", summary.Outcome, cleaner.OutcomeDryRun)
	}
	if strings.Contains(out, "(y/n)") {
		t.Errorf("dry run should not ask for confirmation:\n%s", out)
	}
	if strings.Contains(out, "Removing ") {
		t.Errorf("dry run should not remove anything:\n%s", out)
	}

	for _, rel := range []string{"image.jpg", "text.txt", "text_copy.txt", "text_different.txt", "sub/recursive.txt"} {
		f.AssertFileExists(f.Path(rel))
	}
}

func TestRunDeclined(t *testing.T) {
	f := testutil.NewSampleTree(t)

	summary, out, err := run(t, testConfig(f.RootDir), "0\nn\n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Outcome != cleaner.OutcomeDeclined {
		t.Errorf("Outcome = %v, want %v", summary.Outcome, cleaner.OutcomeDeclined)
	}
	if ExitCode(summary, err) != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode(summary, err))
	}
	if !strings.Contains(out, "Deletion cancelled") {
		t.Errorf("output should report the cancellation:\n%s", out)
	}

	f.AssertFileExists(f.Path("text.txt"))
	f.AssertFileExists(f.Path("text_copy.txt"))
}

func TestRunInputClosedDuringSelection(t *testing.T) {
	f := testutil.NewSampleTree(t)

	summary, _, err := run(t, testConfig(f.RootDir), "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Outcome != cleaner.OutcomeDeclined {
		t.Errorf("Outcome = %v, want %v", summary.Outcome, cleaner.OutcomeDeclined)
	}
	f.AssertFileExists(f.Path("text.txt"))
	f.AssertFileExists(f.Path("text_copy.txt"))
}

func TestRunRepromptsInvalidIndex(t *testing.T) {
	f := testutil.NewSampleTree(t)

	_, out, err := run(t, testConfig(f.RootDir), "5\nabc\n1\nmaybe\ny\n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if strings.Count(out, "Index: ") != 3 {
		t.Errorf("index prompt should be shown 3 times:\n%s", out)
	}
	if !strings.Contains(out, "Please answer y or n") {
		t.Errorf("confirmation should be repeated:\n%s", out)
	}

	f.AssertFileNotExists(f.Path("text.txt"))
	f.AssertFileExists(f.Path("text_copy.txt"))
}

func TestRunNoDuplicates(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFile("a.txt", []byte("alpha"))
	f.CreateFile("b.txt", []byte("bravo"))

	summary, out, err := run(t, testConfig(f.RootDir), "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Outcome != cleaner.OutcomeNoDuplicates {
		t.Errorf("Outcome = %v, want %v", summary.Outcome, cleaner.OutcomeNoDuplicates)
	}
	if ExitCode(summary, err) != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode(summary, err))
	}
	if !strings.Contains(out, "No duplicates found") {
		t.Errorf("output should report no duplicates:\n%s", out)
	}
}

func TestRunMissingSource(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	summary, _, err := run(t, testConfig(root), "")
	if err == nil {
		t.Fatal("expected an error for a missing source")
	}

	var rootErr *scanner.RootError
	if !errors.As(err, &rootErr) {
		t.Errorf("error = %v, want *scanner.RootError", err)
	}
	if ExitCode(summary, err) != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode(summary, err))
	}
}

func TestRunKeepRuleNewest(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFileWithAge("old.txt", []byte("same"), 48*time.Hour)
	f.CreateFileWithAge("new.txt", []byte("same"), time.Hour)

	cfg := testConfig(f.RootDir)
	cfg.KeepRule = config.KeepNewest

	_, out, err := run(t, cfg, "y\n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if strings.Contains(out, "Index: ") {
		t.Errorf("keep rule should not prompt for an index:\n%s", out)
	}
	f.AssertFileExists(f.Path("new.txt"))
	f.AssertFileNotExists(f.Path("old.txt"))
}

func TestRunWritesReportAndManifest(t *testing.T) {
	f := testutil.NewSampleTree(t)
	outDir := t.TempDir()
	reportPath := filepath.Join(outDir, "report.yaml")
	manifestPath := filepath.Join(outDir, "manifest.yaml")

	var out bytes.Buffer
	log, _ := testutil.NullLogger()
	summary, err := Run(Options{
		Config:       testConfig(f.RootDir),
		In:           strings.NewReader("0\ny\n"),
		Out:          &out,
		Log:          log,
		ReportPath:   reportPath,
		ManifestPath: manifestPath,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var report struct {
		RunID   string   `yaml:"run_id"`
		Deleted []string `yaml:"deleted"`
	}
	if err := yaml.Unmarshal(data, &report); err != nil {
		t.Fatalf("report is not YAML: %v", err)
	}
	if report.RunID != summary.RunID {
		t.Errorf("report run ID = %q, want %q", report.RunID, summary.RunID)
	}
	if len(report.Deleted) != 1 || report.Deleted[0] != f.Path("text_copy.txt") {
		t.Errorf("report deleted = %v", report.Deleted)
	}

	data, err = os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	var manifest cleaner.DeletionManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("manifest is not YAML: %v", err)
	}
	if manifest.ID != summary.RunID || manifest.Root != f.RootDir {
		t.Errorf("manifest ID/Root = %s/%s", manifest.ID, manifest.Root)
	}
}

func TestRunOnMemoryFilesystem(t *testing.T) {
	mem := afero.NewMemMapFs()
	for path, content := range map[string]string{
		"/photos/a.jpg":        "pixels",
		"/photos/b.jpg":        "pixels",
		"/photos/c.jpg":        "other pixels",
		"/photos/nested/d.jpg": "pixels",
	} {
		if err := afero.WriteFile(mem, path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := testConfig("/photos")
	cfg.KeepRule = config.KeepFirst

	var out bytes.Buffer
	log, _ := testutil.NullLogger()
	summary, err := Run(Options{
		Config: cfg,
		In:     strings.NewReader("y\n"),
		Out:    &out,
		Log:    log,
		Fs:     mem,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Outcome != cleaner.OutcomeDeleted {
		t.Errorf("Outcome = %v, want %v", summary.Outcome, cleaner.OutcomeDeleted)
	}
	for path, want := range map[string]bool{
		"/photos/a.jpg":        true,
		"/photos/b.jpg":        false,
		"/photos/c.jpg":        true,
		"/photos/nested/d.jpg": true,
	} {
		if exists, _ := afero.Exists(mem, path); exists != want {
			t.Errorf("%s exists = %v, want %v", path, exists, want)
		}
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"out.json", "json"},
		{"out.YAML", "yaml"},
		{"out.yml", "yaml"},
		{"out.txt", "table"},
	}

	for _, tt := range tests {
		if got := formatForPath(tt.path, "table"); string(got) != tt.want {
			t.Errorf("formatForPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(&Summary{Outcome: cleaner.OutcomeDryRun}, nil); got != 0 {
		t.Errorf("dry run exit code = %d, want 0", got)
	}
	if got := ExitCode(&Summary{Outcome: cleaner.OutcomeDeclined}, nil); got != 1 {
		t.Errorf("declined exit code = %d, want 1", got)
	}
	if got := ExitCode(nil, errors.New("boom")); got != 1 {
		t.Errorf("error exit code = %d, want 1", got)
	}
}

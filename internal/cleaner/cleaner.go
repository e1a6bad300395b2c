package cleaner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fenilsonani/dupsweep/internal/config"
	"github.com/fenilsonani/dupsweep/internal/duplicates"
	"github.com/fenilsonani/dupsweep/internal/prompt"
	"github.com/fenilsonani/dupsweep/internal/scanner"
	"github.com/fenilsonani/dupsweep/internal/security"
	"github.com/fenilsonani/dupsweep/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ErrUnresolved is returned when a group reaches the cleaner without a kept file
var ErrUnresolved = errors.New("duplicate group has no file marked to keep")

// Outcome is how a Delete call ended
type Outcome int

const (
	OutcomeNoDuplicates Outcome = iota
	OutcomeDryRun
	OutcomeDeclined
	OutcomeDeleted
)

// String returns the outcome name used in reports
func (o Outcome) String() string {
	switch o {
	case OutcomeNoDuplicates:
		return "no-duplicates"
	case OutcomeDryRun:
		return "dry-run"
	case OutcomeDeclined:
		return "declined"
	case OutcomeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Result represents the result of a Delete call
type Result struct {
	Outcome       Outcome
	DryRun        bool
	Planned       []string
	PlannedSize   int64
	DeletedFiles  []string
	DeletedSize   int64
	SkippedFiles  []string
	SkippedReason map[string]string
	Errors        []*DeletionError
}

func (r *Result) skip(path, reason string) {
	r.SkippedFiles = append(r.SkippedFiles, path)
	r.SkippedReason[path] = reason
}

// DefaultRetryDelays are the pauses between attempts when a file is busy
var DefaultRetryDelays = []time.Duration{
	100 * time.Millisecond,
	500 * time.Millisecond,
	2 * time.Second,
}

// Cleaner removes the deletion candidates of a resolved duplicate set
type Cleaner struct {
	fs          afero.Fs
	confirm     prompt.Provider
	out         io.Writer
	log         *logrus.Entry
	validator   *security.PathValidator
	manifest    *DeletionManifest
	retryDelays []time.Duration
}

// New creates a Cleaner. confirm answers the y/n question before anything is
// removed; every message for the operator goes to out.
func New(cfg *config.Config, confirm prompt.Provider, out io.Writer, log *logrus.Entry) *Cleaner {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Cleaner{
		fs:          afero.NewOsFs(),
		confirm:     confirm,
		out:         out,
		log:         log.WithField("component", "cleaner"),
		validator:   security.NewPathValidator(cfg.ProtectedPaths),
		manifest:    NewDeletionManifest(cfg.Source),
		retryDelays: DefaultRetryDelays,
	}
}

// SetFs replaces the filesystem files are removed from
func (c *Cleaner) SetFs(fs afero.Fs) {
	c.fs = fs
}

// SetRetryDelays sets the pauses between attempts on busy files
func (c *Cleaner) SetRetryDelays(delays []time.Duration) {
	c.retryDelays = delays
}

// Delete removes every file still held by the groups of set.
//
// With no groups it only reports that nothing was found. In dry-run mode it
// lists what would be removed and touches nothing. Otherwise it asks for a
// single confirmation; declining, or closing the input, leaves every file in
// place. Each file is checked again right before removal: files that vanished
// are logged and skipped, protected paths and special files are refused. The
// first failed removal stops the pass and is returned with the partial result.
func (c *Cleaner) Delete(set *duplicates.Set, dryRun bool) (*Result, error) {
	result := &Result{
		DeletedFiles:  []string{},
		SkippedFiles:  []string{},
		SkippedReason: make(map[string]string),
		Errors:        []*DeletionError{},
		DryRun:        dryRun,
	}

	if set.Len() == 0 {
		fmt.Fprintln(c.out, "No duplicates found")
		result.Outcome = OutcomeNoDuplicates
		return result, nil
	}

	if unresolved := set.Unresolved(); len(unresolved) > 0 {
		return nil, fmt.Errorf("%d of %d groups: %w", len(unresolved), set.Len(), ErrUnresolved)
	}

	candidates := set.Candidates()
	for _, file := range candidates {
		result.Planned = append(result.Planned, file.Path)
		result.PlannedSize += file.Size
	}

	// If dry-run, just report
	if dryRun {
		for _, file := range candidates {
			fmt.Fprintf(c.out, "[DRY RUN] Would remove %s\n", file.Path)
		}
		result.Outcome = OutcomeDryRun
		return result, nil
	}

	question := fmt.Sprintf("Remove %d duplicate files (%s)? (y/n): ", len(candidates), utils.FormatBytes(result.PlannedSize))
	ok, err := prompt.Confirm(c.confirm, c.out, question)
	if err != nil && !errors.Is(err, prompt.ErrInputClosed) {
		return nil, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		fmt.Fprintln(c.out, "Deletion cancelled")
		result.Outcome = OutcomeDeclined
		return result, nil
	}

	result.Outcome = OutcomeDeleted
	for _, group := range set.Groups() {
		for _, file := range group.Files {
			if delErr := c.deleteFileWithRetry(file, result); delErr != nil {
				result.Errors = append(result.Errors, delErr)
				return result, delErr
			}
		}
	}

	c.log.WithFields(logrus.Fields{
		"deleted": len(result.DeletedFiles),
		"skipped": len(result.SkippedFiles),
		"size":    result.DeletedSize,
	}).Info("deletion finished")

	return result, nil
}

// deleteFileWithRetry attempts to delete a file with retries for transient errors
func (c *Cleaner) deleteFileWithRetry(file scanner.FileRecord, result *Result) *DeletionError {
	var lastErr *DeletionError

	for attempt := 0; attempt <= len(c.retryDelays); attempt++ {
		lastErr = c.deleteFile(file, result)
		if lastErr == nil || !lastErr.Retryable {
			return lastErr
		}

		// On last attempt, don't sleep
		if attempt < len(c.retryDelays) {
			c.log.WithField("path", file.Path).Debugf("file busy, retrying in %s", c.retryDelays[attempt])
			time.Sleep(c.retryDelays[attempt])
		}
	}

	return lastErr
}

// deleteFile removes one candidate. A nil return with no entry in
// result.DeletedFiles means the file was skipped.
func (c *Cleaner) deleteFile(file scanner.FileRecord, result *Result) *DeletionError {
	if err := c.validator.ValidatePathForDeletion(file.Path); err != nil {
		delErr := &DeletionError{Path: file.Path, Reason: ErrorProtectedPath, Original: err}
		c.log.WithField("path", file.Path).Warn(err.Error())
		result.Errors = append(result.Errors, delErr)
		result.skip(file.Path, delErr.UserMessage())
		return nil
	}

	// Lstat so a file replaced by a symlink is not followed
	info, err := lstat(c.fs, file.Path)
	if err != nil {
		if os.IsNotExist(err) {
			c.log.WithField("path", file.Path).Warn("file vanished before removal, skipping")
			result.skip(file.Path, "File no longer exists")
			return nil
		}
		return CategorizeError(file.Path, err)
	}

	if err := checkRemovable(info); err != nil {
		delErr := &DeletionError{Path: file.Path, Reason: ErrorInvalidPath, Original: err}
		c.log.WithField("path", file.Path).Warnf("refusing to remove: %v", err)
		result.Errors = append(result.Errors, delErr)
		result.skip(file.Path, delErr.UserMessage())
		return nil
	}

	fmt.Fprintf(c.out, "Removing %s\n", file.Path)
	if err := c.fs.Remove(file.Path); err != nil {
		return CategorizeError(file.Path, err)
	}

	c.manifest.Add(file.Path, file.Size, file.Checksum)
	result.DeletedFiles = append(result.DeletedFiles, file.Path)
	result.DeletedSize += file.Size

	return nil
}

// GetManifest returns the deletion manifest
func (c *Cleaner) GetManifest() *DeletionManifest {
	return c.manifest
}

// SaveManifest saves the deletion manifest to a file
func (c *Cleaner) SaveManifest(path string) error {
	return c.manifest.Save(path)
}

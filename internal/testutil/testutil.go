// Package testutil provides test helpers and fixtures for dupsweep tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fenilsonani/dupsweep/internal/prompt"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// TestFixture holds the root of an isolated directory tree
type TestFixture struct {
	T       *testing.T
	RootDir string // Root temp directory (auto-cleaned)
}

// NewFixture creates a new test fixture rooted in a fresh temp directory
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	return &TestFixture{
		T:       t,
		RootDir: t.TempDir(),
	}
}

// NewSampleTree creates the classic layout used across the tests:
// text.txt and text_copy.txt share content, text_different.txt and image.jpg
// are unique, and sub/recursive.txt duplicates text.txt one level down.
func NewSampleTree(t *testing.T) *TestFixture {
	t.Helper()

	f := NewFixture(t)
	f.CreateFile("image.jpg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'})
	f.CreateFile("text.txt", []byte("hello duplicate world\n"))
	f.CreateFile("text_copy.txt", []byte("hello duplicate world\n"))
	f.CreateFile("text_different.txt", []byte("something else entirely\n"))
	f.CreateFile(filepath.Join("sub", "recursive.txt"), []byte("hello duplicate world\n"))
	return f
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file with specified content and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFileWithAge creates a file and sets its modification time to the past
func (f *TestFixture) CreateFileWithAge(relPath string, content []byte, age time.Duration) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	oldTime := time.Now().Add(-age)

	if err := os.Chtimes(fullPath, oldTime, oldTime); err != nil {
		f.T.Fatalf("failed to set file time for %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateDir creates a directory and returns its path
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateSymlink creates a symbolic link
func (f *TestFixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := filepath.Join(f.RootDir, linkPath)
	dir := filepath.Dir(fullLinkPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create symlink %s -> %s: %v", fullLinkPath, target, err)
	}

	return fullLinkPath
}

// CreateBrokenSymlink creates a symlink pointing to a non-existent target
func (f *TestFixture) CreateBrokenSymlink(linkPath string) string {
	f.T.Helper()
	return f.CreateSymlink(filepath.Join(f.RootDir, "does-not-exist"), linkPath)
}

// CreateNoPermissionFile creates a file with no permissions (000)
func (f *TestFixture) CreateNoPermissionFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	if err := os.Chmod(fullPath, 0000); err != nil {
		f.T.Fatalf("failed to chmod file %s: %v", fullPath, err)
	}

	f.T.Cleanup(func() {
		os.Chmod(fullPath, 0644)
	})

	return fullPath
}

// =============================================================================
// Path Helpers
// =============================================================================

// Path returns the full path for a relative path within the fixture
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// FileExists checks if a file exists
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// AssertFileExists fails the test if the file doesn't exist
func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the file exists
func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// =============================================================================
// Environment Helpers
// =============================================================================

// SkipIfRoot skips tests that rely on permission bits, which root ignores
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}

// NullLogger returns a logger entry that discards output and a hook that
// records every entry for assertions
func NullLogger() (*logrus.Entry, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(logger), hook
}

// =============================================================================
// Interactive Input Helpers
// =============================================================================

// Answers is a prompt.Provider that replays a fixed list of answers and
// records the questions it was asked
type Answers struct {
	Replies   []string
	Questions []string
}

// NewAnswers creates a scripted answer source
func NewAnswers(replies ...string) *Answers {
	return &Answers{Replies: replies}
}

// Ask returns the next scripted reply, or prompt.ErrInputClosed when none are left
func (a *Answers) Ask(question string) (string, error) {
	a.Questions = append(a.Questions, question)
	if len(a.Replies) == 0 {
		return "", prompt.ErrInputClosed
	}
	reply := a.Replies[0]
	a.Replies = a.Replies[1:]
	return reply, nil
}

// Remaining reports how many replies were not consumed
func (a *Answers) Remaining() int {
	return len(a.Replies)
}

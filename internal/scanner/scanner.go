package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenilsonani/dupsweep/internal/config"
	"github.com/fenilsonani/dupsweep/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Scanner enumerates regular files under a root and builds a FileRecord for each
type Scanner struct {
	fs             afero.Fs
	algorithm      utils.Algorithm
	skipUnreadable bool
	log            *logrus.Entry
	progress       ProgressCallback
}

// New creates a Scanner backed by the OS filesystem
func New(cfg *config.Config, log *logrus.Entry) *Scanner {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	algo, err := utils.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		// Validate rejects unknown algorithms, so this only happens with hand-built configs
		algo = utils.DefaultAlgorithm
	}

	return &Scanner{
		fs:             afero.NewOsFs(),
		algorithm:      algo,
		skipUnreadable: cfg.SkipUnreadable,
		log:            log.WithField("component", "scanner"),
	}
}

// SetFs replaces the filesystem the scanner reads from
func (s *Scanner) SetFs(fs afero.Fs) {
	s.fs = fs
}

// SetProgressCallback sets a callback invoked after every hashed file
func (s *Scanner) SetProgressCallback(cb ProgressCallback) {
	s.progress = cb
}

// Scan enumerates root (and its descendants when recursive) and hashes every
// regular file found. A missing or unreadable root is returned as *RootError.
// Unreadable files abort the scan with *HashError unless the scanner was
// configured to skip them, in which case they are collected in Errors.
func (s *Scanner) Scan(root string, recursive bool) (*ScanResult, error) {
	root, err := s.resolveRoot(root)
	if err != nil {
		return nil, &RootError{Path: root, Err: err}
	}

	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, &RootError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &RootError{Path: root, Err: ErrNotDirectory}
	}

	result := &ScanResult{
		Root:      root,
		Recursive: recursive,
		Records:   []FileRecord{},
		Errors:    []error{},
	}

	s.log.WithFields(logrus.Fields{
		"root":            root,
		"recursive":       recursive,
		"algorithm":       s.algorithm,
		"skip_unreadable": s.skipUnreadable,
	}).Debug("scan started")

	var paths []string
	if recursive {
		paths, err = s.walk(root, result)
	} else {
		paths, err = s.readDir(root)
	}
	if err != nil {
		return nil, err
	}

	for i, path := range paths {
		record, err := NewFileRecord(s.fs, path, s.algorithm)
		if err != nil {
			if !s.skipUnreadable {
				return nil, err
			}
			s.log.WithError(err).Warn("skipping unreadable file")
			result.Errors = append(result.Errors, err)
		} else {
			result.Records = append(result.Records, record)
			result.TotalSize += record.Size
		}

		if s.progress != nil {
			s.progress(i+1, len(paths), path)
		}
	}

	s.log.WithFields(logrus.Fields{
		"files":  len(result.Records),
		"errors": len(result.Errors),
	}).Debug("scan finished")

	return result, nil
}

// maxRootLinks bounds the symlink chain followed when resolving the root
const maxRootLinks = 40

// resolveRoot follows symlinks on the final element of root so that walk and
// readDir both start from the directory itself. Filesystems without link
// support return root unchanged.
func (s *Scanner) resolveRoot(root string) (string, error) {
	lstater, ok := s.fs.(afero.Lstater)
	if !ok {
		return root, nil
	}
	reader, ok := s.fs.(afero.LinkReader)
	if !ok {
		return root, nil
	}

	for i := 0; i < maxRootLinks; i++ {
		info, _, err := lstater.LstatIfPossible(root)
		if err != nil {
			// Stat in Scan reports the missing root
			return root, nil
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return root, nil
		}

		target, err := reader.ReadlinkIfPossible(root)
		if err != nil {
			return root, err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(root), target)
		}
		root = filepath.Clean(target)
	}

	return root, fmt.Errorf("too many levels of symbolic links")
}

// readDir lists the regular files directly inside root
func (s *Scanner) readDir(root string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil, &RootError{Path: root, Err: err}
	}

	paths := []string{}
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if s.isRegular(path, entry) {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// walk lists the regular files in root and every directory below it
func (s *Scanner) walk(root string, result *ScanResult) ([]string, error) {
	paths := []string{}

	err := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return &RootError{Path: root, Err: err}
			}
			walkErr := &HashError{Path: path, Err: err}
			if !s.skipUnreadable {
				return walkErr
			}
			s.log.WithError(walkErr).Warn("skipping unreadable path")
			result.Errors = append(result.Errors, walkErr)
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if s.isRegular(path, info) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

// isRegular reports whether path is a regular file, following symlinks.
// Broken links and special files are not regular.
func (s *Scanner) isRegular(path string, info os.FileInfo) bool {
	if info.Mode().IsRegular() {
		return true
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false
	}

	target, err := s.fs.Stat(path)
	if err != nil || !target.Mode().IsRegular() {
		return false
	}

	s.log.WithField("path", path).Warn("file is a symlink; keeping it over its target leaves a dangling link")
	return true
}

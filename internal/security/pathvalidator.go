package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator refuses deletions inside protected directories
type PathValidator struct {
	protectedPaths []string
}

// NewPathValidator creates a PathValidator protecting the given directories
func NewPathValidator(protected []string) *PathValidator {
	pv := &PathValidator{}
	for _, p := range protected {
		pv.AddProtectedPath(p)
	}
	return pv
}

// ValidatePathForDeletion checks a path right before it is removed.
// Only the parent directory is resolved: removing a symlink never touches its target.
func (pv *PathValidator) ValidatePathForDeletion(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	if filepath.Clean(path) != path {
		return fmt.Errorf("path contains suspicious elements: %s", path)
	}

	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path contains a NUL byte: %q", path)
	}

	parent := filepath.Dir(path)
	resolvedParent, err := filepath.EvalSymlinks(parent)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to resolve symlinks: %w", err)
		}
		// Parent may only exist on a non-OS filesystem; check it as written
		resolvedParent = parent
	}

	for _, candidate := range []string{path, filepath.Join(resolvedParent, filepath.Base(path))} {
		if err := pv.checkProtectedPaths(candidate); err != nil {
			return err
		}
	}

	return nil
}

// checkProtectedPaths rejects a protected path itself and anything below it.
// The filesystem root only protects itself.
func (pv *PathValidator) checkProtectedPaths(cleanPath string) error {
	for _, protected := range pv.protectedPaths {
		if cleanPath == protected {
			return fmt.Errorf("refusing to delete protected path: %s", cleanPath)
		}

		if protected == string(filepath.Separator) {
			continue
		}

		if strings.HasPrefix(cleanPath, protected+string(filepath.Separator)) {
			return fmt.Errorf("refusing to delete inside protected path %s: %s", protected, cleanPath)
		}
	}

	return nil
}

// IsProtectedPath checks if a path is a protected path or lies below one
func (pv *PathValidator) IsProtectedPath(path string) bool {
	return pv.checkProtectedPaths(filepath.Clean(path)) != nil
}

// AddProtectedPath adds a custom protected path
func (pv *PathValidator) AddProtectedPath(path string) {
	pv.protectedPaths = append(pv.protectedPaths, filepath.Clean(path))
}

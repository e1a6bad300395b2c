package cleaner

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
)

// ErrorReason categorizes why a deletion failed
type ErrorReason int

const (
	ErrorPermissionDenied ErrorReason = iota
	ErrorFileInUse
	ErrorFileNotFound
	ErrorIsDirectory
	ErrorInvalidPath
	ErrorProtectedPath
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorFileInUse:
		return "File is in use"
	case ErrorFileNotFound:
		return "File not found"
	case ErrorIsDirectory:
		return "Is a directory"
	case ErrorInvalidPath:
		return "Invalid path"
	case ErrorProtectedPath:
		return "Protected path"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// DeletionError represents a detailed deletion error
type DeletionError struct {
	Path      string
	Reason    ErrorReason
	Original  error
	Retryable bool
}

// Error implements the error interface
func (e *DeletionError) Error() string {
	return fmt.Sprintf("%s: %s (%v)", e.Path, e.Reason, e.Original)
}

// Unwrap exposes the underlying error
func (e *DeletionError) Unwrap() error {
	return e.Original
}

// UserMessage returns a user-friendly error message
func (e *DeletionError) UserMessage() string {
	switch e.Reason {
	case ErrorPermissionDenied:
		return fmt.Sprintf("⚠️  Permission denied: %s", e.Path)
	case ErrorFileInUse:
		return fmt.Sprintf("⚠️  File is being used: %s (close the application and try again)", e.Path)
	case ErrorFileNotFound:
		return fmt.Sprintf("ℹ️  Already deleted: %s", e.Path)
	case ErrorIsDirectory:
		return fmt.Sprintf("⚠️  Not a file anymore: %s", e.Path)
	case ErrorInvalidPath:
		return fmt.Sprintf("❌ Invalid or unsafe path: %s", e.Path)
	case ErrorProtectedPath:
		return fmt.Sprintf("🔒 Protected, not removed: %s", e.Path)
	default:
		return fmt.Sprintf("❌ Error deleting %s: %v", e.Path, e.Original)
	}
}

// CategorizeError analyzes an error and returns a categorized DeletionError
func CategorizeError(path string, err error) *DeletionError {
	if err == nil {
		return nil
	}

	delErr := &DeletionError{
		Path:     path,
		Original: err,
		Reason:   ErrorUnknown,
	}

	if errors.Is(err, os.ErrNotExist) {
		delErr.Reason = ErrorFileNotFound
		return delErr
	}

	if errors.Is(err, os.ErrPermission) {
		delErr.Reason = ErrorPermissionDenied
		return delErr
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EBUSY, syscall.ETXTBSY:
			delErr.Reason = ErrorFileInUse
			delErr.Retryable = true
		case syscall.EISDIR, syscall.ENOTEMPTY:
			delErr.Reason = ErrorIsDirectory
		}
	}

	return delErr
}

// GroupErrors groups deletion errors by reason
func GroupErrors(errors []*DeletionError) map[ErrorReason][]*DeletionError {
	grouped := make(map[ErrorReason][]*DeletionError)
	for _, err := range errors {
		grouped[err.Reason] = append(grouped[err.Reason], err)
	}
	return grouped
}

// FormatErrorSummary creates a user-friendly summary of errors
func FormatErrorSummary(errors []*DeletionError) string {
	if len(errors) == 0 {
		return ""
	}

	grouped := GroupErrors(errors)
	var b strings.Builder
	b.WriteString("\n⚠️  Issues encountered:\n")

	if perms, ok := grouped[ErrorPermissionDenied]; ok {
		fmt.Fprintf(&b, "   ├─ Permission denied: %d files\n", len(perms))
		b.WriteString("   │  └─ Tip: check ownership of the containing directory\n")
	}

	if busy, ok := grouped[ErrorFileInUse]; ok {
		fmt.Fprintf(&b, "   ├─ File in use: %d files\n", len(busy))
		b.WriteString("   │  └─ Tip: Close applications and retry\n")
	}

	if protected, ok := grouped[ErrorProtectedPath]; ok {
		fmt.Fprintf(&b, "   ├─ Protected paths: %d files\n", len(protected))
		b.WriteString("   │  └─ Tip: adjust protected_paths in the config file\n")
	}

	if invalid, ok := grouped[ErrorInvalidPath]; ok {
		fmt.Fprintf(&b, "   ├─ Unsafe paths: %d files\n", len(invalid))
	}

	if dirs, ok := grouped[ErrorIsDirectory]; ok {
		fmt.Fprintf(&b, "   ├─ Replaced by directories: %d items\n", len(dirs))
	}

	if unknown, ok := grouped[ErrorUnknown]; ok {
		fmt.Fprintf(&b, "   └─ Other errors: %d files\n", len(unknown))
	}

	return b.String()
}

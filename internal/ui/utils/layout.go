package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/dupsweep/internal/ui/styles"
)

const (
	// MinTerminalWidth is the minimum recommended terminal width
	MinTerminalWidth = 80
	// MinTerminalHeight is the minimum recommended terminal height
	MinTerminalHeight = 24
)

// TruncatePath shortens path to maxWidth, keeping the file name and as much
// of the trailing directories as fits
func TruncatePath(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}

	if maxWidth < 10 {
		return "..."
	}

	dir, file := filepath.Split(path)

	// If filename alone is too long, keep its tail
	if len(file) > maxWidth-4 {
		return "..." + file[len(file)-(maxWidth-4):]
	}

	sep := string(filepath.Separator)
	parts := strings.Split(strings.Trim(dir, sep), sep)

	// Add directories from the end while they fit
	kept := file
	for i := len(parts) - 1; i >= 0; i-- {
		candidate := parts[i] + sep + kept
		if len(candidate)+4 > maxWidth {
			break
		}
		kept = candidate
	}

	return "..." + sep + kept
}

// CalculatePageSize calculates the number of rows that fit below the header
// and above the status and help lines
func CalculatePageSize(terminalHeight int) int {
	const reservedLines = 8

	pageSize := terminalHeight - reservedLines
	if pageSize < 5 {
		pageSize = 5
	}

	return pageSize
}

// IsTerminalTooSmall checks if the terminal is below minimum recommended size
func IsTerminalTooSmall(width, height int) bool {
	return width < MinTerminalWidth || height < MinTerminalHeight
}

// GetSizeWarningBanner returns a warning banner if terminal is too small
func GetSizeWarningBanner(width, height int) string {
	if !IsTerminalTooSmall(width, height) {
		return ""
	}

	warning := "⚠️  Terminal too small! Recommended: 80x24 or larger"
	if width > 0 && height > 0 {
		warning += styles.DimStyle.Render(" (current: ") +
			styles.WarningStyle.Render(fmt.Sprintf("%dx%d", width, height)) +
			styles.DimStyle.Render(")")
	}

	return styles.WarningStyle.Render(warning) + "\n\n"
}

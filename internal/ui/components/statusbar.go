package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fenilsonani/dupsweep/internal/ui/styles"
	"github.com/fenilsonani/dupsweep/pkg/utils"
)

// StatusBar is the line at the bottom of the keep selector
type StatusBar struct {
	viewName string
	position int
	total    int
	files    int
	size     int64
}

// NewStatusBar creates a new status bar
func NewStatusBar(viewName string) *StatusBar {
	return &StatusBar{viewName: viewName}
}

// SetGroup sets which group is shown (1-based), out of how many, and its contents
func (s *StatusBar) SetGroup(position, total, files int, size int64) {
	s.position = position
	s.total = total
	s.files = files
	s.size = size
}

// Render renders the status bar with the given width
func (s *StatusBar) Render(width int) string {
	if width <= 0 {
		width = 80
	}

	var parts []string

	if s.viewName != "" {
		parts = append(parts, styles.BoldStyle.Render(s.viewName))
	}

	if s.total > 0 {
		parts = append(parts, fmt.Sprintf("group %d/%d", s.position, s.total))
	}

	if s.files > 0 {
		parts = append(parts, fmt.Sprintf("%d copies", s.files))
	}

	if s.size > 0 {
		parts = append(parts, styles.FileSizeStyle.Render(utils.FormatBytes(s.size)))
	}

	statusBarStyle := lipgloss.NewStyle().
		Foreground(styles.Text).
		Background(styles.BgDark).
		Padding(0, 1).
		Width(width)

	return statusBarStyle.Render(strings.Join(parts, " • "))
}

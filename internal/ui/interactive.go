package ui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/dupsweep/internal/duplicates"
	"github.com/fenilsonani/dupsweep/internal/resolver"
	"github.com/fenilsonani/dupsweep/internal/ui/models"
)

// KeepSelector chooses the file to keep with a full-screen selector, one
// group per program run
type KeepSelector struct {
	in       io.Reader
	out      io.Writer
	total    int
	position int
}

// NewKeepSelector creates a selector for a run that will show total groups
func NewKeepSelector(in io.Reader, out io.Writer, total int) *KeepSelector {
	return &KeepSelector{in: in, out: out, total: total}
}

// Choose runs the selector for group and returns the picked index.
// Quitting the selector returns resolver.ErrAborted.
func (s *KeepSelector) Choose(group *duplicates.Group) (int, error) {
	s.position++
	m := models.NewKeepViewModel(group, s.position, s.total)

	p := tea.NewProgram(m, tea.WithInput(s.in), tea.WithOutput(s.out), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return 0, fmt.Errorf("error running keep selector: %w", err)
	}

	return chosenIndex(final)
}

// chosenIndex extracts the result from the model a program finished with
func chosenIndex(final tea.Model) (int, error) {
	m, ok := final.(*models.KeepViewModel)
	if !ok {
		return 0, fmt.Errorf("unexpected model %T", final)
	}
	if m.Aborted() || m.Chosen() < 0 {
		return 0, resolver.ErrAborted
	}
	return m.Chosen(), nil
}

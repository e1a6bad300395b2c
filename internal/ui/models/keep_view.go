package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/dupsweep/internal/duplicates"
	"github.com/fenilsonani/dupsweep/internal/ui/components"
	"github.com/fenilsonani/dupsweep/internal/ui/styles"
	uiutils "github.com/fenilsonani/dupsweep/internal/ui/utils"
	"github.com/fenilsonani/dupsweep/pkg/utils"
)

type keepKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Keep key.Binding
	Help key.Binding
	Quit key.Binding
}

func (k keepKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Keep, k.Quit}
}

func (k keepKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Keep, k.Help, k.Quit},
	}
}

func newKeepKeyMap() keepKeyMap {
	return keepKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Keep: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "keep this file"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "abort"),
		),
	}
}

// KeepViewModel lets the operator pick the file to keep in one duplicate group
type KeepViewModel struct {
	group     *duplicates.Group
	position  int
	total     int
	cursor    int
	offset    int
	chosen    int
	aborted   bool
	keys      keepKeyMap
	help      help.Model
	statusBar *components.StatusBar
	width     int
	height    int
}

// NewKeepViewModel creates the view for group, which is number position
// (1-based) of total groups
func NewKeepViewModel(group *duplicates.Group, position, total int) *KeepViewModel {
	statusBar := components.NewStatusBar("dupsweep")
	statusBar.SetGroup(position, total, group.Len(), group.Size())

	return &KeepViewModel{
		group:     group,
		position:  position,
		total:     total,
		chosen:    -1,
		keys:      newKeepKeyMap(),
		help:      help.New(),
		statusBar: statusBar,
		width:     80,
		height:    24,
	}
}

// Chosen returns the index picked with enter, or -1 when none was picked
func (m *KeepViewModel) Chosen() int {
	return m.chosen
}

// Aborted reports whether the operator quit without choosing
func (m *KeepViewModel) Aborted() bool {
	return m.aborted
}

// Cursor returns the highlighted row
func (m *KeepViewModel) Cursor() int {
	return m.cursor
}

// Init initializes the keep view
func (m *KeepViewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *KeepViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scrollToCursor()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.group.Len()-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Keep):
			m.chosen = m.cursor
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		m.scrollToCursor()
	}

	return m, nil
}

// scrollToCursor keeps the cursor inside the visible page
func (m *KeepViewModel) scrollToCursor() {
	pageSize := uiutils.CalculatePageSize(m.height)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+pageSize {
		m.offset = m.cursor - pageSize + 1
	}
}

// View renders the group listing
func (m *KeepViewModel) View() string {
	if m.chosen >= 0 || m.aborted {
		return ""
	}

	var b strings.Builder

	if warning := uiutils.GetSizeWarningBanner(m.width, m.height); warning != "" {
		b.WriteString(warning)
	}

	b.WriteString(styles.TitleStyle.Render("Which file do you want to keep?"))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Checksum: " + m.group.Checksum))
	b.WriteString("\n\n")

	pageSize := uiutils.CalculatePageSize(m.height)
	end := m.offset + pageSize
	if end > m.group.Len() {
		end = m.group.Len()
	}

	// Room for cursor, index, size and modification time
	pathWidth := m.width - 40
	if pathWidth < 20 {
		pathWidth = 20
	}

	for i := m.offset; i < end; i++ {
		file := m.group.Files[i]
		path := uiutils.TruncatePath(file.Path, pathWidth)
		if i == m.cursor {
			path = styles.SelectedStyle.Render(path)
		} else {
			path = styles.FilePathStyle.Render(path)
		}

		fmt.Fprintf(&b, "%s %s %s  %s  %s\n",
			styles.Cursor(i == m.cursor),
			styles.IndexStyle.Render(fmt.Sprintf("%d:", i)),
			path,
			styles.FileSizeStyle.Render(utils.FormatBytes(file.Size)),
			styles.DimStyle.Render(file.ModTime.Format("2006-01-02 15:04")),
		)
	}

	if m.group.Len() > pageSize {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  showing %d-%d of %d", m.offset+1, end, m.group.Len())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar.Render(m.width))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

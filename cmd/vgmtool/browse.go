package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/vgm/command"
	"github.com/wippyai/vgm/vgmfile"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	loopStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// browseChrome is the number of screen lines not used by the command list.
const browseChrome = 5

type browseLine struct {
	text   string
	index  int
	offset int
}

type browseModel struct {
	path      string
	lines     []browseLine
	visible   []int
	filter    textinput.Model
	loopIndex int
	cursor    int
	top       int
	height    int
	filtering bool
}

func newBrowseModel(path string, f *vgmfile.File) *browseModel {
	offsets := streamOffsets(f)
	lines := make([]browseLine, len(f.Commands))
	for i, c := range f.Commands {
		lines[i] = browseLine{index: i, offset: offsets[i], text: command.Format(c)}
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter"
	ti.Width = 40

	m := &browseModel{
		path:      path,
		lines:     lines,
		filter:    ti,
		loopIndex: f.LoopIndex,
		height:    20,
	}
	m.applyFilter()
	return m
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-browseChrome, 1)
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.height)
		case "pgdown", " ":
			m.move(m.height)
		case "home", "g":
			m.move(-len(m.visible))
		case "end", "G":
			m.move(len(m.visible))
		case "l":
			m.jumpToLoop()
		case "/":
			m.filtering = true
			return m, m.filter.Focus()
		case "esc":
			m.filter.SetValue("")
			m.applyFilter()
		}
	}
	return m, nil
}

func (m *browseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter keeps the lines containing the filter text, case-insensitively.
func (m *browseModel) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, l := range m.lines {
		if needle == "" || strings.Contains(strings.ToLower(l.text), needle) {
			m.visible = append(m.visible, i)
		}
	}
	m.cursor = 0
	m.top = 0
}

func (m *browseModel) move(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.visible)-1)
	m.scroll()
}

func (m *browseModel) scroll() {
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+m.height {
		m.top = m.cursor - m.height + 1
	}
}

func (m *browseModel) jumpToLoop() {
	for i, idx := range m.visible {
		if m.lines[idx].index == m.loopIndex {
			m.cursor = i
			m.scroll()
			return
		}
	}
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("VGM Browser"))
	b.WriteString(" ")
	b.WriteString(m.path)
	b.WriteString(fmt.Sprintf("  %d/%d commands\n\n", len(m.visible), len(m.lines)))

	end := min(m.top+m.height, len(m.visible))
	for i := m.top; i < end; i++ {
		l := m.lines[m.visible[i]]
		marker := "  "
		if l.index == m.loopIndex {
			marker = loopStyle.Render("L ")
		}
		row := fmt.Sprintf("%6d  %s  %s", l.index, offsetStyle.Render(fmt.Sprintf("%08x", l.offset)), l.text)
		if i == m.cursor {
			row = selectedStyle.Render(fmt.Sprintf("%6d  %08x  %s", l.index, l.offset, l.text))
		}
		b.WriteString(marker)
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ move • pgup/pgdn page • / filter • l loop point • esc clear • q quit"))
	return b.String()
}

func runBrowse(t *tool, args []string) error {
	f, path, err := t.load(args)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newBrowseModel(path, f), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

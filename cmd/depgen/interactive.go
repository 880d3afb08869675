package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/depgen/codegen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	moduleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// listWidth is the width of the module list column.
const listWidth = 32

type viewerModel struct {
	res      *codegen.Result
	filename string
	ids      []string
	view     viewport.Model
	selected int
	ready    bool
}

func newViewerModel(filename string, res *codegen.Result) *viewerModel {
	return &viewerModel{
		res:      res,
		filename: filename,
		ids:      sortedIDs(res),
	}
}

func runInteractive(filename string, res *codegen.Result) error {
	p := tea.NewProgram(newViewerModel(filename, res), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *viewerModel) Init() tea.Cmd {
	return nil
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refresh()
			}
			return m, nil

		case "down", "j":
			if m.selected < len(m.ids)-1 {
				m.selected++
				m.refresh()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		width := max(msg.Width-listWidth-1, 10)
		height := max(msg.Height-4, 3)
		if !m.ready {
			m.view = viewport.New(width, height)
			m.ready = true
		} else {
			m.view.Width = width
			m.view.Height = height
		}
		m.refresh()
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *viewerModel) refresh() {
	if !m.ready || len(m.ids) == 0 {
		return
	}
	out := m.res.Outputs[m.ids[m.selected]]
	m.view.SetContent(out.Source)
	m.view.GotoTop()
}

func (m *viewerModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("depgen"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	var list strings.Builder
	for i, id := range m.ids {
		line := truncate(id, listWidth-2)
		if i == m.selected {
			list.WriteString(selectedStyle.Render("> " + line))
		} else {
			list.WriteString("  " + moduleStyle.Render(line))
		}
		list.WriteString("\n")
	}
	for _, err := range m.res.Errors {
		list.WriteString(errorStyle.Render(truncate("! "+err.Error(), listWidth)))
		list.WriteString("\n")
	}

	left := lipgloss.NewStyle().Width(listWidth).Render(list.String())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", m.view.View()))
	b.WriteString("\n")

	status := fmt.Sprintf("%d modules • %d errors", len(m.ids), len(m.res.Errors))
	if len(m.ids) > 0 && m.res.Outputs[m.ids[m.selected]].Cached {
		status += " • cached"
	}
	b.WriteString(helpStyle.Render(status + " • ↑/↓ module • pgup/pgdn scroll • q quit"))
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/tide/internal/formats"
	"github.com/wippyai/tide/internal/schemas"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	formatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectSchema modelState = iota
	stateEdit
)

// playModel edits a JSON document and shows it converted to another format
// on every keystroke.
type playModel struct {
	err      error
	schemas  []schemas.Schema
	opts     formats.Options
	editor   textarea.Model
	output   string
	selected int
	format   int
	state    modelState
}

func newPlayModel(reg *schemas.Registry, opts formats.Options) *playModel {
	ed := textarea.New()
	ed.SetWidth(72)
	ed.SetHeight(14)
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	return &playModel{
		schemas: reg.All(),
		opts:    opts,
		editor:  ed,
		format:  indexOf(formats.Names, formats.Binary),
		state:   stateSelectSchema,
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetWidth(max(msg.Width-4, 20))
		m.editor.SetHeight(max(msg.Height/2-4, 5))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.state == stateSelectSchema {
			return m.updateSelect(msg)
		}
		switch msg.String() {
		case "esc":
			m.editor.Blur()
			m.state = stateSelectSchema
			return m, nil
		case "tab":
			m.format = (m.format + 1) % len(formats.Names)
			m.refresh()
			return m, nil
		}
	}

	if m.state != stateEdit {
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *playModel) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.schemas)-1 {
			m.selected++
		}
	case "enter":
		if len(m.schemas) == 0 {
			return m, nil
		}
		opts := m.opts
		opts.Indent = true
		doc, err := m.schemas[m.selected].Sample(formats.JSON, opts)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.editor.SetValue(string(doc))
		m.state = stateEdit
		m.refresh()
		return m, m.editor.Focus()
	}
	return m, nil
}

// refresh converts the editor contents to the selected output format.
func (m *playModel) refresh() {
	s := m.schemas[m.selected]
	out, err := s.Convert([]byte(m.editor.Value()), formats.JSON, formats.Names[m.format], m.opts)
	m.err = err
	if err != nil {
		m.output = ""
		return
	}
	m.output = formats.ToText(formats.Names[m.format], out)
}

func (m *playModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tide playground"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectSchema:
		b.WriteString("Select a schema:\n\n")
		for i, s := range m.schemas {
			line := nameStyle.Render(s.Name()) + "  " + s.Description()
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + s.Name() + "  " + s.Description()))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter edit • q quit"))

	case stateEdit:
		s := m.schemas[m.selected]
		b.WriteString(fmt.Sprintf("Editing %s as %s\n\n", nameStyle.Render(s.Name()), formatStyle.Render(formats.JSON)))
		b.WriteString(m.editor.View())
		b.WriteString("\n\n")
		b.WriteString(formatStyle.Render(formats.Names[m.format]))
		b.WriteString(":\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.output))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("tab next format • esc back • ctrl+c quit"))
	}

	return b.String()
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Edit sample documents and watch them convert live",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(newPlayModel(state.registry, state.options()), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}

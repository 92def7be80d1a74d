package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/transientgo/transient/gen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	declStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	varianceStyle = lipgloss.NewStyle().
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

type interactiveModel struct {
	err      error
	srcFile  string
	outDir   string
	result   string
	preview  string
	entries  []declEntry
	outInput textinput.Model
	selected int
	state    modelState
}

type declEntry struct {
	decl    gen.Declaration
	mapping *gen.Mapping
	deriveE error
}

type modelState int

const (
	stateSelectDecl modelState = iota
	statePreview
	stateWriteOut
	stateShowResult
)

func newInteractiveModel(srcFile, outDir string) *interactiveModel {
	if outDir == "" {
		outDir = filepath.Dir(srcFile)
	}
	return &interactiveModel{
		srcFile: srcFile,
		outDir:  outDir,
		state:   stateSelectDecl,
	}
}

type parsedMsg struct {
	err     error
	entries []declEntry
}

type writtenMsg struct {
	err  error
	path string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.parseSource
}

func (m *interactiveModel) parseSource() tea.Msg {
	decls, err := gen.ParseFile(m.srcFile)
	if err != nil {
		return parsedMsg{err: err}
	}
	if len(decls) == 0 {
		return parsedMsg{err: fmt.Errorf("no transient declarations in %s", m.srcFile)}
	}

	entries := make([]declEntry, 0, len(decls))
	for _, decl := range decls {
		e := declEntry{decl: decl}
		e.mapping, e.deriveE = gen.Derive(decl)
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].decl.Name < entries[j].decl.Name })

	return parsedMsg{entries: entries}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateWriteOut || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectDecl && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectDecl && m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectDecl:
				m.preparePreview()

			case statePreview:
				m.prepareOutInput()
				m.state = stateWriteOut

			case stateWriteOut:
				return m, m.writeFile

			case stateShowResult:
				m.state = stateSelectDecl
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case statePreview:
				m.state = stateSelectDecl
				m.preview = ""
			case stateWriteOut:
				m.state = statePreview
			case stateShowResult:
				m.state = stateSelectDecl
				m.result = ""
				m.err = nil
			}
		}

	case parsedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries

	case writtenMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.result = "wrote " + msg.path
		}
		m.state = stateShowResult
	}

	if m.state == stateWriteOut {
		var cmd tea.Cmd
		m.outInput, cmd = m.outInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) preparePreview() {
	e := m.entries[m.selected]
	if e.deriveE != nil {
		m.err = e.deriveE
		m.state = stateShowResult
		return
	}
	src, err := e.mapping.Source()
	if err != nil {
		m.err = err
		m.state = stateShowResult
		return
	}
	m.preview = string(src)
	m.state = statePreview
}

func (m *interactiveModel) prepareOutInput() {
	ti := textinput.New()
	ti.Prompt = "file: "
	ti.SetValue(filepath.Join(m.outDir, outputName(m.entries[m.selected].decl.Name)))
	ti.Width = 60
	ti.Focus()
	m.outInput = ti
}

func (m *interactiveModel) writeFile() tea.Msg {
	path := strings.TrimSpace(m.outInput.Value())
	if path == "" {
		return writtenMsg{err: fmt.Errorf("empty output path")}
	}
	if err := os.WriteFile(path, []byte(m.preview), 0o644); err != nil {
		return writtenMsg{err: err}
	}
	return writtenMsg{path: path}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.entries) == 0 {
		return "Parsing " + m.srcFile + "..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("transientgen"))
	b.WriteString(" ")
	b.WriteString(m.srcFile)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectDecl:
		b.WriteString("Select a declaration:\n\n")
		for i, e := range m.entries {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatEntry(e)))
			} else {
				b.WriteString(cursor + m.formatEntry(e))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter preview • q quit"))

	case statePreview:
		e := m.entries[m.selected]
		b.WriteString(fmt.Sprintf("Generated source for %s:\n\n", declStyle.Render(e.decl.Name)))
		b.WriteString(m.preview)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter write file • esc back • q quit"))

	case stateWriteOut:
		b.WriteString("Write generated file:\n\n")
		b.WriteString(m.outInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter write • esc back"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatEntry(e declEntry) string {
	name := declStyle.Render(e.decl.Name)
	if e.deriveE != nil {
		return name + "  " + errorStyle.Render(e.deriveE.Error())
	}
	if e.mapping.Identity() {
		return name + "  " + varianceStyle.Render("identity")
	}
	return name + "  " + varianceStyle.Render(
		fmt.Sprintf("region %s, %s", e.mapping.Region, e.mapping.Variance))
}

func runInteractive(srcFile, outDir string) error {
	p := tea.NewProgram(newInteractiveModel(srcFile, outDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

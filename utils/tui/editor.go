// Package tui renders generated steps in the terminal and hosts the
// interactive workflow editor.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kris-hansen/hwflow/utils/editor"
)

type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeConnect
)

const (
	fieldLabel = iota
	fieldDescription
	fieldParameters
	fieldCount
)

const invalidParametersMessage = "Invalid JSON format for parameters"

// Model is the bubbletea model of the editor
type Model struct {
	doc    *editor.Document
	cursor int
	mode   mode

	inputs  [fieldCount]textinput.Model
	focused int
	editing string

	connectFrom string
	status      string
	statusErr   bool
	width       int
	quitting    bool
}

// NewModel wraps doc. The model edits doc in place.
func NewModel(doc *editor.Document) Model {
	m := Model{doc: doc}

	placeholders := [fieldCount]string{"Label", "Description", `{"voltage": "3.3V"}`}
	prompts := [fieldCount]string{"Label:       ", "Description: ", "Parameters:  "}
	for i := range m.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.Prompt = prompts[i]
		input.CharLimit = 0
		m.inputs[i] = input
	}
	return m
}

// Run starts the editor on the given terminal streams and returns when the user quits
func Run(doc *editor.Document, in io.Reader, out io.Writer) error {
	_, err := tea.NewProgram(NewModel(doc), tea.WithInput(in), tea.WithOutput(out)).Run()
	return err
}

// Document returns the document being edited
func (m Model) Document() *editor.Document {
	return m.doc
}

// Status returns the last status line shown to the user
func (m Model) Status() string {
	return m.status
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeConnect:
			return m.updateConnect(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "a":
		node := m.doc.AddNode()
		m.cursor = len(m.doc.Nodes) - 1
		m.setStatus(fmt.Sprintf("Added %s", node.ID), false)
	case "d", "x", "delete":
		if node := m.selected(); node != nil {
			id := node.ID
			if err := m.doc.DeleteNode(id); err != nil {
				m.setStatus(err.Error(), true)
				break
			}
			m.clampCursor()
			m.setStatus(fmt.Sprintf("Deleted %s", id), false)
		}
	case "e", "enter":
		if node := m.selected(); node != nil {
			return m.startEdit(node), textinput.Blink
		}
	case "c":
		if node := m.selected(); node != nil {
			m.mode = modeConnect
			m.connectFrom = node.ID
			m.setStatus(fmt.Sprintf("Connecting from %s: choose a target and press enter", node.ID), false)
		}
	case "s":
		m.setStatus(m.doc.Save(), false)
	}
	return m, nil
}

func (m Model) updateConnect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeBrowse
		m.connectFrom = ""
		m.setStatus("Connection cancelled", false)
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter", "c":
		if node := m.selected(); node != nil {
			edge := m.doc.Connect(m.connectFrom, node.ID)
			m.setStatus(fmt.Sprintf("Connected %s → %s", edge.Source, edge.Target), false)
		}
		m.mode = modeBrowse
		m.connectFrom = ""
	}
	return m, nil
}

func (m Model) startEdit(node *editor.Node) Model {
	m.mode = modeEdit
	m.editing = node.ID
	m.inputs[fieldLabel].SetValue(node.Label)
	m.inputs[fieldDescription].SetValue(node.Description)
	m.inputs[fieldParameters].SetValue(editor.FormatParameters(node.Parameters))
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
	}
	m.focus(fieldLabel)
	m.setStatus("", false)
	return m
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.setStatus("Edit cancelled", false)
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.focus((m.focused + 1) % fieldCount)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focus((m.focused + fieldCount - 1) % fieldCount)
		return m, nil
	case tea.KeyEnter:
		err := m.doc.UpdateNode(m.editing,
			m.inputs[fieldLabel].Value(),
			m.inputs[fieldDescription].Value(),
			m.inputs[fieldParameters].Value(),
		)
		if errors.Is(err, editor.ErrInvalidParameterFormat) {
			m.setStatus(invalidParametersMessage, true)
			m.focus(fieldParameters)
			return m, nil
		}
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.mode = modeBrowse
		m.setStatus(fmt.Sprintf("Updated %s", m.editing), false)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *Model) focus(field int) {
	m.focused = field
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.doc.Nodes) {
		m.cursor = len(m.doc.Nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() *editor.Node {
	if m.cursor < 0 || m.cursor >= len(m.doc.Nodes) {
		return nil
	}
	return &m.doc.Nodes[m.cursor]
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Workflow editor"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d steps, %d connections", len(m.doc.Nodes), len(m.doc.Edges))))
	b.WriteString("\n\n")

	if len(m.doc.Nodes) == 0 {
		b.WriteString(dimStyle.Render("No steps. Press a to add one."))
		b.WriteString("\n")
	}
	for i, node := range m.doc.Nodes {
		line := fmt.Sprintf("%s  %s  (%g, %g)  %s", node.ID, node.Label, node.Position.X, node.Position.Y, FormatParameterSummary(node.Parameters))
		switch {
		case i == m.cursor:
			b.WriteString(selectedStyle.Render("> " + line))
		case node.ID == m.connectFrom:
			b.WriteString(sourceStyle.Render("* " + line))
		default:
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if node.Description != "" {
			b.WriteString(dimStyle.Render("    " + node.Description))
			b.WriteString("\n")
		}
	}

	if len(m.doc.Edges) > 0 {
		b.WriteString("\n")
		for _, edge := range m.doc.Edges {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %s → %s", edge.Source, edge.Target)))
			b.WriteString("\n")
		}
	}

	if m.mode == modeEdit {
		var form strings.Builder
		for i := range m.inputs {
			form.WriteString(m.inputs[i].View())
			if i < fieldCount-1 {
				form.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(form.String()))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(statusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) helpLine() string {
	switch m.mode {
	case modeEdit:
		return "tab next field • enter apply • esc cancel"
	case modeConnect:
		return "↑/↓ choose target • enter connect • esc cancel"
	default:
		return "↑/↓ move • a add • e edit • d delete • c connect • s save • q quit"
	}
}

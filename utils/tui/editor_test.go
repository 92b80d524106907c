package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kris-hansen/hwflow/utils/editor"
	"github.com/kris-hansen/hwflow/utils/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func testDocument() *editor.Document {
	return editor.FromSteps([]workflow.Step{
		{ID: "a", Label: "Power on", Parameters: map[string]interface{}{"voltage": "5V"}},
		{ID: "b", Label: "Measure"},
		{ID: "c", Label: "Power off"},
	})
}

func TestAddAndDelete(t *testing.T) {
	doc := testDocument()
	m := send(t, NewModel(doc), runes("a"))

	require.Len(t, doc.Nodes, 4)
	assert.Equal(t, "New Step", doc.Nodes[3].Label)
	assert.Equal(t, 3, m.cursor)

	m = send(t, m, runes("d"))
	assert.Len(t, doc.Nodes, 3)
	assert.Equal(t, 2, m.cursor)
	assert.Contains(t, m.Status(), "Deleted step-")
}

func TestConnectAndDeleteRemovesEdges(t *testing.T) {
	doc := testDocument()
	m := NewModel(doc)

	// a -> b, then b -> c
	m = send(t, m, runes("c"), runes("j"), key(tea.KeyEnter))
	m = send(t, m, runes("c"), runes("j"), key(tea.KeyEnter))
	require.Len(t, doc.Edges, 2)
	assert.Equal(t, "a", doc.Edges[0].Source)
	assert.Equal(t, "b", doc.Edges[0].Target)
	assert.Equal(t, "b", doc.Edges[1].Source)
	assert.Equal(t, "c", doc.Edges[1].Target)

	m = send(t, m, runes("k"), runes("d"))
	assert.Len(t, doc.Nodes, 2)
	assert.Empty(t, doc.Edges)
	assert.Equal(t, modeBrowse, m.mode)
}

func TestConnectCancel(t *testing.T) {
	doc := testDocument()
	m := send(t, NewModel(doc), runes("c"), key(tea.KeyEsc))

	assert.Equal(t, modeBrowse, m.mode)
	assert.Empty(t, doc.Edges)
}

func TestEditRejectsInvalidParameters(t *testing.T) {
	doc := testDocument()
	m := send(t, NewModel(doc), runes("e"))
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "Power on", m.inputs[fieldLabel].Value())
	assert.Equal(t, `{"voltage":"5V"}`, m.inputs[fieldParameters].Value())

	m = send(t, m, runes(" 2"))
	m.inputs[fieldParameters].SetValue(`{"voltage": `)
	m = send(t, m, key(tea.KeyEnter))

	assert.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "Invalid JSON format for parameters", m.Status())
	assert.Equal(t, fieldParameters, m.focused)
	assert.Equal(t, "Power on", doc.Nodes[0].Label)
	assert.Equal(t, map[string]interface{}{"voltage": "5V"}, doc.Nodes[0].Parameters)

	m.inputs[fieldParameters].SetValue(`{"voltage": "12V"}`)
	m = send(t, m, key(tea.KeyEnter))

	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, "Power on 2", doc.Nodes[0].Label)
	assert.Equal(t, map[string]interface{}{"voltage": "12V"}, doc.Nodes[0].Parameters)
}

func TestEditCancel(t *testing.T) {
	doc := testDocument()
	m := send(t, NewModel(doc), runes("e"), runes("zzz"), key(tea.KeyEsc))

	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, "Power on", doc.Nodes[0].Label)
}

func TestSaveAndQuit(t *testing.T) {
	m := send(t, NewModel(testDocument()), runes("s"))
	assert.Equal(t, "Workflow saved!", m.Status())
	assert.Contains(t, m.View(), "Workflow saved!")

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "", next.View())
}

func TestViewEmptyDocument(t *testing.T) {
	m := NewModel(editor.New())
	view := m.View()
	assert.Contains(t, view, "No steps. Press a to add one.")

	m = send(t, m, runes("d"), runes("e"), runes("c"), runes("j"))
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, 0, m.cursor)
}

func TestRenderStepsTable(t *testing.T) {
	out := RenderStepsTable([]workflow.Step{
		{ID: "s1", Label: "Power on", Type: "power", Parameters: map[string]interface{}{"voltage": "5V", "current": "1A"}, Position: &workflow.Position{X: 250, Y: 100}},
		{ID: "s2", Label: "Measure"},
	})

	assert.Contains(t, out, "LABEL")
	assert.Contains(t, out, "Power on")
	assert.Contains(t, out, "current=1A, voltage=5V")
	assert.Contains(t, out, "(250, 100)")
	assert.Contains(t, out, "Measure")
}

func TestFormatParameterSummary(t *testing.T) {
	assert.Equal(t, "-", FormatParameterSummary(nil))
	assert.Equal(t, "a=1, b=x", FormatParameterSummary(map[string]interface{}{"b": "x", "a": 1}))
}

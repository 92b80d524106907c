package editor

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kris-hansen/hwflow/utils/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialIDs makes generated ids predictable
func sequentialIDs(d *Document) {
	n := 0
	d.newID = func() string {
		n++
		return fmt.Sprintf("%08d-0000-0000-0000-000000000000", n)
	}
}

func threeNodeDocument(t *testing.T) *Document {
	t.Helper()
	d := FromSteps([]workflow.Step{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B"},
		{ID: "c", Label: "C"},
	})
	sequentialIDs(d)
	d.Connect("a", "b")
	d.Connect("b", "c")
	d.Connect("c", "a")
	d.Connect("a", "c")
	return d
}

func TestFromStepsDefaults(t *testing.T) {
	legacy := workflow.Step{}
	require.NoError(t, legacy.UnmarshalJSON([]byte(`{"name": "Legacy"}`)))

	d := FromSteps([]workflow.Step{
		{ID: "s1", Label: "Power", Description: "Apply 5V", Parameters: map[string]interface{}{"v": "5"}, Position: &workflow.Position{X: 10, Y: 20}},
		legacy,
		{},
		{},
	})

	require.Len(t, d.Nodes, 4)
	assert.Equal(t, Node{
		ID:          "s1",
		Type:        NodeType,
		Position:    workflow.Position{X: 10, Y: 20},
		Label:       "Power",
		Description: "Apply 5V",
		Parameters:  map[string]interface{}{"v": "5"},
	}, d.Nodes[0])

	assert.Equal(t, "step-1", d.Nodes[1].ID)
	assert.Equal(t, "Legacy", d.Nodes[1].Label)
	assert.Equal(t, workflow.Position{X: 250, Y: 0}, d.Nodes[1].Position)

	assert.Equal(t, "Step 3", d.Nodes[2].Label)
	assert.Equal(t, "", d.Nodes[2].Description)
	assert.Equal(t, map[string]interface{}{}, d.Nodes[2].Parameters)
	assert.Equal(t, workflow.Position{X: 0, Y: 100}, d.Nodes[3].Position)
	assert.Empty(t, d.Edges)
}

func TestAddNode(t *testing.T) {
	d := New()
	sequentialIDs(d)

	for i := 0; i < 20; i++ {
		node := d.AddNode()
		assert.Equal(t, NewNodeLabel, node.Label)
		assert.Equal(t, "", node.Description)
		assert.Empty(t, node.Parameters)
		assert.GreaterOrEqual(t, node.Position.X, 0.0)
		assert.Less(t, node.Position.X, 500.0)
		assert.GreaterOrEqual(t, node.Position.Y, 0.0)
		assert.Less(t, node.Position.Y, 400.0)
	}
	assert.Len(t, d.Nodes, 20)
	assert.Equal(t, "step-00000001", d.Nodes[0].ID)
	assert.Equal(t, "step-00000002", d.Nodes[1].ID)
}

func TestUpdateNode(t *testing.T) {
	d := FromSteps([]workflow.Step{{ID: "s1", Label: "Old", Parameters: map[string]interface{}{"v": "5"}}})

	require.NoError(t, d.UpdateNode("s1", "New", "desc", `{"v": "12", "tolerance": 0.5}`))
	node, ok := d.Node("s1")
	require.True(t, ok)
	assert.Equal(t, "New", node.Label)
	assert.Equal(t, "desc", node.Description)
	assert.Equal(t, map[string]interface{}{"v": "12", "tolerance": 0.5}, node.Parameters)

	require.NoError(t, d.UpdateNode("s1", "New", "desc", "  "))
	node, _ = d.Node("s1")
	assert.Equal(t, map[string]interface{}{}, node.Parameters)
}

func TestUpdateNodeInvalidParametersLeavesNodeUnchanged(t *testing.T) {
	d := FromSteps([]workflow.Step{{ID: "s1", Label: "Keep", Parameters: map[string]interface{}{"v": "5"}}})

	for _, text := range []string{`{"v": `, `[1, 2]`, `null`, `"text"`} {
		err := d.UpdateNode("s1", "Changed", "Changed", text)
		assert.True(t, errors.Is(err, ErrInvalidParameterFormat), text)
	}

	node, _ := d.Node("s1")
	assert.Equal(t, "Keep", node.Label)
	assert.Equal(t, "", node.Description)
	assert.Equal(t, map[string]interface{}{"v": "5"}, node.Parameters)
}

func TestUpdateUnknownNode(t *testing.T) {
	err := New().UpdateNode("missing", "", "", "")
	assert.True(t, errors.Is(err, ErrNodeNotFound))
}

func TestDeleteNodeRemovesTouchingEdges(t *testing.T) {
	d := threeNodeDocument(t)

	require.NoError(t, d.DeleteNode("a"))

	require.Len(t, d.Nodes, 2)
	assert.Equal(t, "b", d.Nodes[0].ID)
	assert.Equal(t, "c", d.Nodes[1].ID)
	require.Len(t, d.Edges, 1)
	assert.Equal(t, "b", d.Edges[0].Source)
	assert.Equal(t, "c", d.Edges[0].Target)

	assert.True(t, errors.Is(d.DeleteNode("a"), ErrNodeNotFound))
}

func TestConnectDoesNotValidate(t *testing.T) {
	d := New()
	sequentialIDs(d)

	d.Connect("x", "x")
	d.Connect("x", "x")
	edge := d.Connect("ghost", "x")

	assert.Len(t, d.Edges, 3)
	assert.Equal(t, "00000003-0000-0000-0000-000000000000", edge.ID)
}

func TestSave(t *testing.T) {
	d := threeNodeDocument(t)
	assert.Equal(t, "Workflow saved!", d.Save())
	assert.Len(t, d.Nodes, 3)
	assert.Len(t, d.Edges, 4)
}

func TestStepsRoundTripThroughQuery(t *testing.T) {
	original := []workflow.Step{
		{ID: "s1", Label: "Power on", Description: "Apply 3.3V & check", Type: "power", Parameters: map[string]interface{}{"voltage": "3.3V", "limit": 0.5}},
		{ID: "s2", Label: "Soak", Parameters: map[string]interface{}{}},
	}

	query, err := workflow.EditQuery(FromSteps(original).Steps())
	require.NoError(t, err)

	hydrated := FromQuery(query)
	require.Len(t, hydrated.Nodes, 2)
	for i, step := range hydrated.Steps() {
		assert.Equal(t, original[i].ID, step.ID)
		assert.Equal(t, original[i].Label, step.Label)
		assert.Equal(t, original[i].Description, step.Description)
		assert.Equal(t, original[i].Type, step.Type)
		assert.Equal(t, original[i].Parameters, step.Parameters)
		assert.Equal(t, workflow.GridPosition(i), *step.Position)
	}
}

func TestFromQueryMalformed(t *testing.T) {
	d := FromQuery("steps=%7Bbroken")
	assert.Empty(t, d.Nodes)
	assert.Empty(t, d.Edges)

	d = FromParam("[{")
	assert.Empty(t, d.Nodes)

	// The returned document is usable
	d.AddNode()
	assert.Len(t, d.Nodes, 1)
}

func TestFormatParameters(t *testing.T) {
	assert.Equal(t, "{}", FormatParameters(nil))
	assert.Equal(t, `{"v":"5"}`, FormatParameters(map[string]interface{}{"v": "5"}))

	parsed, err := ParseParameters(FormatParameters(map[string]interface{}{"v": "5"}))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"v": "5"}, parsed)
}

func TestZeroValueDocument(t *testing.T) {
	var d Document

	var node Node
	require.NotPanics(t, func() { node = d.AddNode() })
	assert.True(t, strings.HasPrefix(node.ID, "step-"))
	assert.Len(t, node.ID, len("step-")+8)

	var edge Edge
	require.NotPanics(t, func() { edge = d.Connect(node.ID, node.ID) })
	assert.NotEmpty(t, edge.ID)

	require.NoError(t, d.UpdateNode(node.ID, "Renamed", "", `{"v": 1}`))
	require.NoError(t, d.DeleteNode(node.ID))
	assert.Empty(t, d.Nodes)
	assert.Empty(t, d.Edges)
}

func TestFromStepsDoesNotShareParameters(t *testing.T) {
	source := []workflow.Step{{ID: "s1", Parameters: map[string]interface{}{"v": "5"}}}
	d := FromSteps(source)

	d.Nodes[0].Parameters["v"] = "12"
	assert.Equal(t, "5", source[0].Parameters["v"])
}

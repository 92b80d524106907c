// Package editor holds the in-memory state of the workflow editor: nodes
// hydrated from generated steps and the edges drawn between them.
package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/kris-hansen/hwflow/utils/logger"
	"github.com/kris-hansen/hwflow/utils/workflow"
)

const (
	// NodeType is the display type given to every node
	NodeType = "default"
	// NewNodeLabel is the label of nodes created with AddNode
	NewNodeLabel = "New Step"
	// SavedMessage is the acknowledgment returned by Save
	SavedMessage = "Workflow saved!"

	newNodeMaxX = 500
	newNodeMaxY = 400
)

var (
	// ErrInvalidParameterFormat is returned when parameter text is not a JSON object
	ErrInvalidParameterFormat = errors.New("invalid parameter format")
	// ErrNodeNotFound is returned for an unknown node id
	ErrNodeNotFound = errors.New("node not found")
)

// Node is one step on the canvas
type Node struct {
	ID          string
	Type        string
	Position    workflow.Position
	Label       string
	Description string
	Parameters  map[string]interface{}
	// StepType is the step's own "type" field, kept so Steps can return it
	StepType string
}

// Edge is a directed connection between two nodes
type Edge struct {
	ID     string
	Source string
	Target string
}

// Document is the editor state. It is owned by a single UI loop and is not
// safe for concurrent use.
type Document struct {
	Nodes []Node
	Edges []Edge

	rng   *rand.Rand
	newID func() string
}

// New returns an empty document
func New() *Document {
	return &Document{
		rng:   rand.New(rand.NewSource(rand.Int63())),
		newID: uuid.NewString,
	}
}

// ids returns the id generator, so a zero Document is usable
func (d *Document) ids() func() string {
	if d.newID == nil {
		d.newID = uuid.NewString
	}
	return d.newID
}

func (d *Document) random() *rand.Rand {
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return d.rng
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FromSteps hydrates a document from steps, filling in missing ids, labels,
// parameters and positions.
func FromSteps(steps []workflow.Step) *Document {
	d := New()
	for i, step := range steps {
		d.Nodes = append(d.Nodes, nodeFromStep(i, step))
	}
	return d
}

// FromQuery hydrates a document from a raw query string carrying the steps
// parameter. A malformed parameter is logged and yields an empty document.
func FromQuery(rawQuery string) *Document {
	steps, err := workflow.StepsFromQuery(rawQuery)
	if err != nil {
		logger.Error("Failed to parse steps", err)
		return New()
	}
	return FromSteps(steps)
}

// FromParam hydrates a document from the value of the steps parameter
func FromParam(value string) *Document {
	steps, err := workflow.DecodeStepsParam(value)
	if err != nil {
		logger.Error("Failed to parse steps", err)
		return New()
	}
	return FromSteps(steps)
}

func nodeFromStep(index int, step workflow.Step) Node {
	step = step.Clone()
	node := Node{
		ID:          step.ID,
		Type:        NodeType,
		Label:       step.Label,
		Description: step.Description,
		Parameters:  step.Parameters,
		StepType:    step.Type,
	}
	if node.Parameters == nil {
		node.Parameters = map[string]interface{}{}
	}
	if node.ID == "" {
		node.ID = fmt.Sprintf("step-%d", index)
	}
	if node.Label == "" {
		node.Label = step.ExtraString("name")
	}
	if node.Label == "" {
		node.Label = fmt.Sprintf("Step %d", index+1)
	}
	if step.Position != nil {
		node.Position = *step.Position
	} else {
		node.Position = workflow.GridPosition(index)
	}
	return node
}

func copyParameters(params map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

// Node returns the node with id
func (d *Document) Node(id string) (*Node, bool) {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i], true
		}
	}
	return nil, false
}

// AddNode appends a blank node at a random position and returns it
func (d *Document) AddNode() Node {
	node := Node{
		ID:    "step-" + shortID(d.ids()()),
		Type:  NodeType,
		Label: NewNodeLabel,
		Position: workflow.Position{
			X: d.random().Float64() * newNodeMaxX,
			Y: d.random().Float64() * newNodeMaxY,
		},
		Parameters: map[string]interface{}{},
	}
	d.Nodes = append(d.Nodes, node)
	return node
}

// UpdateNode replaces a node's label, description and parameters.
// Empty parameter text means no parameters. Text that is not a JSON object
// returns ErrInvalidParameterFormat and leaves the node untouched.
func (d *Document) UpdateNode(id, label, description, parametersJSON string) error {
	node, ok := d.Node(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	params, err := ParseParameters(parametersJSON)
	if err != nil {
		return err
	}

	node.Label = label
	node.Description = description
	node.Parameters = params
	return nil
}

// ParseParameters parses the text of the parameters field
func ParseParameters(text string) (map[string]interface{}, error) {
	params := map[string]interface{}{}
	if strings.TrimSpace(text) == "" {
		return params, nil
	}
	if err := json.Unmarshal([]byte(text), &params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameterFormat, err)
	}
	if params == nil {
		return nil, fmt.Errorf("%w: parameters must be a JSON object", ErrInvalidParameterFormat)
	}
	return params, nil
}

// FormatParameters renders parameters as one-line JSON for the edit form
func FormatParameters(params map[string]interface{}) string {
	if len(params) == 0 {
		return "{}"
	}
	data, err := json.Marshal(params)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// DeleteNode removes a node and every edge that starts or ends at it
func (d *Document) DeleteNode(id string) error {
	index := -1
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	d.Nodes = append(d.Nodes[:index], d.Nodes[index+1:]...)

	kept := d.Edges[:0]
	for _, edge := range d.Edges {
		if edge.Source != id && edge.Target != id {
			kept = append(kept, edge)
		}
	}
	d.Edges = kept
	return nil
}

// Connect appends an edge from source to target. Cycles, duplicates and
// dangling ids are not checked.
func (d *Document) Connect(source, target string) Edge {
	edge := Edge{ID: d.ids()(), Source: source, Target: target}
	d.Edges = append(d.Edges, edge)
	return edge
}

// Save acknowledges the current state. Nothing is persisted.
func (d *Document) Save() string {
	logger.Info("Workflow saved", "nodes", len(d.Nodes), "edges", len(d.Edges))
	return SavedMessage
}

// Steps returns the nodes as steps, in node order
func (d *Document) Steps() []workflow.Step {
	steps := make([]workflow.Step, 0, len(d.Nodes))
	for _, node := range d.Nodes {
		pos := node.Position
		steps = append(steps, workflow.Step{
			ID:          node.ID,
			Label:       node.Label,
			Description: node.Description,
			Type:        node.StepType,
			Parameters:  copyParameters(node.Parameters),
			Position:    &pos,
		})
	}
	return steps
}

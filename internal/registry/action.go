package registry

import "github.com/HendryAvila/swarmboard/internal/board"

// Action is the closed set of state transitions the reducer accepts.
// Kind names the action for journaling and structured logs.
type Action interface {
	Kind() string
}

// --- Document actions ---

// CreateDocument adds a fresh organisation board, activates it, and
// resets the view.
type CreateDocument struct {
	Name        string
	Description string
	CreatedBy   string
}

// OpenDocument switches the active board by id and resets the view.
type OpenDocument struct {
	ID string
}

// ReplaceDocument swaps a board wholesale (external load or sync). The
// view is re-validated when the replaced board is the active one.
type ReplaceDocument struct {
	Doc *board.Document
}

// AdoptDocument appends a fully-built, validated board (template import
// or file import), activates it, and resets the view.
type AdoptDocument struct {
	Doc *board.Document
}

// DeleteDocument removes a board and, recursively, every sub-board
// whose parentBoardId chain reaches it.
type DeleteDocument struct {
	ID string
}

// --- Node actions (all against the active board) ---

// InsertNode appends a new node under a parent and selects it.
type InsertNode struct {
	ParentID string
	Spec     board.NodeSpec
}

// UpdateNode applies a partial patch to a node.
type UpdateNode struct {
	NodeID string
	Patch  board.NodePatch
}

// MoveNode reparents a subtree.
type MoveNode struct {
	NodeID      string
	NewParentID string
}

// DeleteNode removes a subtree and cascades the deletion of every
// automation board linked from inside it.
type DeleteNode struct {
	NodeID string
}

// --- Automation sub-board actions ---

// OpenAutomationBoard follows an automation node's sub-board link,
// synthesizing and linking the sub-board first when none exists yet.
type OpenAutomationBoard struct {
	NodeID string
}

// ReturnToParentBoard activates the automation board's parent and
// selects the originating automation node when it still exists.
type ReturnToParentBoard struct{}

// --- View actions ---

// SelectNode highlights a node; an empty id clears the selection.
type SelectNode struct {
	NodeID string
}

// DrillDown pushes a node onto the breadcrumb trail. Drilling to a
// node already in the trail truncates back to it instead.
type DrillDown struct {
	NodeID string
}

// NavigateBreadcrumb truncates the trail through the given id.
type NavigateBreadcrumb struct {
	NodeID string
}

// SetPositions applies a batch of canvas coordinates.
type SetPositions struct {
	Positions map[string]board.Position
}

// SetZoom sets the canvas zoom factor.
type SetZoom struct {
	Zoom float64
}

// SetPan sets the canvas pan offset.
type SetPan struct {
	Pan board.Position
}

// SetLayerColor overrides the colour of one node-type layer on the
// active board.
type SetLayerColor struct {
	Type  board.NodeType
	Color string
}

// SetLayoutMode switches the active board's display orientation.
type SetLayoutMode struct {
	Mode board.LayoutMode
}

// Reset clears the whole registry back to an empty snapshot.
type Reset struct{}

func (CreateDocument) Kind() string      { return "create_document" }
func (OpenDocument) Kind() string        { return "open_document" }
func (ReplaceDocument) Kind() string     { return "replace_document" }
func (AdoptDocument) Kind() string       { return "adopt_document" }
func (DeleteDocument) Kind() string      { return "delete_document" }
func (InsertNode) Kind() string          { return "insert_node" }
func (UpdateNode) Kind() string          { return "update_node" }
func (MoveNode) Kind() string            { return "move_node" }
func (DeleteNode) Kind() string          { return "delete_node" }
func (OpenAutomationBoard) Kind() string { return "open_automation_board" }
func (ReturnToParentBoard) Kind() string { return "return_to_parent_board" }
func (SelectNode) Kind() string          { return "select_node" }
func (DrillDown) Kind() string           { return "drill_down" }
func (NavigateBreadcrumb) Kind() string  { return "navigate_breadcrumb" }
func (SetPositions) Kind() string        { return "set_positions" }
func (SetZoom) Kind() string             { return "set_zoom" }
func (SetPan) Kind() string              { return "set_pan" }
func (SetLayerColor) Kind() string       { return "set_layer_color" }
func (SetLayoutMode) Kind() string       { return "set_layout_mode" }
func (Reset) Kind() string               { return "reset" }

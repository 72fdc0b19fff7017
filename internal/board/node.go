package board

import "strings"

// --- Core data structures ---

// Position is an opaque 2-D canvas coordinate. The engine never
// interprets it beyond equality; layout belongs to the frontend.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Meta carries the optional descriptive fields of a node.
type Meta struct {
	Description      string       `json:"description,omitempty"`
	DepartmentHead   string       `json:"departmentHead,omitempty"`
	WorkflowType     WorkflowType `json:"workflowType,omitempty"`
	DocumentationURL string       `json:"documentationUrl,omitempty"`
}

// Node is a single element on the whiteboard. JSON field names are the
// wire format shared with the frontend, camelCase included.
//
// ParentID is a weak back-reference: the children slices are the source
// of truth for structure, and the engine keeps ParentID consistent with
// them. Children order is insertion order and doubles as display order.
type Node struct {
	ID                string   `json:"id"`
	Type              NodeType `json:"type"`
	Name              string   `json:"name"`
	Meta              Meta     `json:"metadata,omitzero"`
	ParentID          string   `json:"parentId,omitempty"`
	Children          []*Node  `json:"children"`
	Position          Position `json:"position"`
	AutomationBoardID string   `json:"automationBoardId,omitempty"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

// NodeSpec describes a node to be created by Insert.
type NodeSpec struct {
	Type     NodeType
	Name     string
	Meta     Meta
	Position Position
}

// NodePatch is a partial update for Update. Only non-nil fields are
// applied; everything else on the node is left untouched.
type NodePatch struct {
	Name              *string
	Description       *string
	DepartmentHead    *string
	WorkflowType      *WorkflowType
	DocumentationURL  *string
	Position          *Position
	AutomationBoardID *string
}

// isEmpty reports whether the patch carries no fields at all.
func (p NodePatch) isEmpty() bool {
	return p.Name == nil && p.Description == nil && p.DepartmentHead == nil &&
		p.WorkflowType == nil && p.DocumentationURL == nil &&
		p.Position == nil && p.AutomationBoardID == nil
}

// newNode builds a freshly stamped node from a spec.
func newNode(spec NodeSpec, parentID string) *Node {
	ts := now()
	return &Node{
		ID:        newID(),
		Type:      spec.Type,
		Name:      strings.TrimSpace(spec.Name),
		Meta:      spec.Meta,
		ParentID:  parentID,
		Children:  []*Node{},
		Position:  spec.Position,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// clone returns a copy of n with its own children slice. The child
// pointers themselves are shared; callers replace only the ones they
// rebuild. This is what keeps mutations cheap: siblings of a touched
// path are never copied.
func (n *Node) clone() *Node {
	c := *n
	c.Children = make([]*Node, len(n.Children))
	copy(c.Children, n.Children)
	return &c
}

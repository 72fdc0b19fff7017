package board

import "strings"

// defaultLayerColors seeds each board with a per-type colour so the
// frontend can paint layers before the user customizes anything.
var defaultLayerColors = map[NodeType]string{
	TypeOrganisation: "#6366F1",
	TypeDepartment:   "#8B5CF6",
	TypeTeam:         "#3B82F6",
	TypeAgentSwarm:   "#06B6D4",
	TypeTeamLead:     "#F59E0B",
	TypeTeamMember:   "#FBBF24",
	TypeAgentLead:    "#10B981",
	TypeAgentMember:  "#34D399",
	TypeRole:         "#EC4899",
	TypeSubRole:      "#F472B6",
	TypeTool:         "#64748B",
	TypeWorkflow:     "#0EA5E9",
	TypeProcess:      "#14B8A6",
	TypeAgent:        "#22C55E",
	TypeAutomation:   "#EF4444",
}

// DefaultLayerColors returns a fresh copy of the default palette.
func DefaultLayerColors() map[NodeType]string {
	colors := make(map[NodeType]string, len(defaultLayerColors))
	for t, c := range defaultLayerColors {
		colors[t] = c
	}
	return colors
}

// Document is one whiteboard: a named tree plus its display settings.
// Automation sub-boards carry back-links to the board and node they
// were opened from.
type Document struct {
	ID                     string              `json:"id"`
	Name                   string              `json:"name"`
	Description            string              `json:"description,omitempty"`
	Root                   *Node               `json:"rootNode"`
	Kind                   Kind                `json:"kind"`
	ParentBoardID          string              `json:"parentBoardId,omitempty"`
	ParentAutomationNodeID string              `json:"parentAutomationNodeId,omitempty"`
	LayoutMode             LayoutMode          `json:"layoutMode"`
	LayerColors            map[NodeType]string `json:"layerColors"`
	CreatedAt              string              `json:"createdAt"`
	UpdatedAt              string              `json:"updatedAt"`
	CreatedBy              string              `json:"createdBy,omitempty"`
}

// NewDocument creates an organisation board whose root organisation
// node carries the board's name.
func NewDocument(name, description, createdBy string) *Document {
	ts := now()
	root := &Node{
		ID:        newID(),
		Type:      TypeOrganisation,
		Name:      strings.TrimSpace(name),
		Meta:      Meta{Description: description},
		Children:  []*Node{},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	return &Document{
		ID:          newID(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Root:        root,
		Kind:        KindOrganisation,
		LayoutMode:  LayoutVertical,
		LayerColors: DefaultLayerColors(),
		CreatedAt:   ts,
		UpdatedAt:   ts,
		CreatedBy:   createdBy,
	}
}

// NewAutomationDocument creates the sub-board behind an automation
// node: kind automation, a root automation node named after the
// originating node, back-links to the parent board, and the parent's
// layer palette copied over.
func NewAutomationDocument(node *Node, parent *Document) *Document {
	ts := now()
	root := &Node{
		ID:        newID(),
		Type:      TypeAutomation,
		Name:      node.Name,
		Meta:      Meta{Description: node.Meta.Description},
		Children:  []*Node{},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	colors := make(map[NodeType]string, len(parent.LayerColors))
	for t, c := range parent.LayerColors {
		colors[t] = c
	}
	return &Document{
		ID:                     newID(),
		Name:                   node.Name,
		Root:                   root,
		Kind:                   KindAutomation,
		ParentBoardID:          parent.ID,
		ParentAutomationNodeID: node.ID,
		LayoutMode:             LayoutVertical,
		LayerColors:            colors,
		CreatedAt:              ts,
		UpdatedAt:              ts,
		CreatedBy:              parent.CreatedBy,
	}
}

// WithRoot returns a copy of d holding the given tree and a fresh
// updatedAt stamp. The layer palette map is shared; actions that change
// it copy it themselves.
func (d *Document) WithRoot(root *Node) *Document {
	c := *d
	c.Root = root
	c.UpdatedAt = now()
	return &c
}

// WithLayerColor returns a copy of d whose palette maps the given node
// type to the given colour. The palette map is copied.
func (d *Document) WithLayerColor(t NodeType, color string) *Document {
	c := *d
	colors := make(map[NodeType]string, len(d.LayerColors)+1)
	for k, v := range d.LayerColors {
		colors[k] = v
	}
	colors[t] = color
	c.LayerColors = colors
	c.UpdatedAt = now()
	return &c
}

// WithLayoutMode returns a copy of d using the given layout mode.
func (d *Document) WithLayoutMode(m LayoutMode) *Document {
	c := *d
	c.LayoutMode = m
	c.UpdatedAt = now()
	return &c
}

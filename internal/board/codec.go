package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ExportDocument renders a board as indented JSON in the wire format.
func ExportDocument(d *Document) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("no document to export")
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

// ImportDocument parses an exported board and re-validates the whole
// structure before it is allowed anywhere near the registry. Unknown
// fields are rejected, so a payload from a newer or foreign producer
// fails loudly instead of silently dropping data.
func ImportDocument(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if err := ValidateDocument(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Outline renders a subtree as an indented text tree, one node per line.
func Outline(root *Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(nodeLabel(root))
	b.WriteByte('\n')
	writeChildren(&b, root, "")
	return b.String()
}

func writeChildren(b *strings.Builder, n *Node, prefix string) {
	for i, c := range n.Children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(n.Children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		b.WriteString(prefix + connector + nodeLabel(c) + "\n")
		writeChildren(b, c, childPrefix)
	}
}

func nodeLabel(n *Node) string {
	label := fmt.Sprintf("%s (%s)", n.Name, n.Type)
	if n.Meta.WorkflowType != "" {
		label = fmt.Sprintf("%s (%s %s)", n.Name, n.Meta.WorkflowType, n.Type)
	}
	if n.AutomationBoardID != "" {
		label += " [sub-board]"
	}
	return label
}

// TrailNames renders a breadcrumb trail as node names joined by " > ".
// Ids that no longer resolve are skipped.
func TrailNames(root *Node, ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if n := Find(root, id); n != nil {
			names = append(names, n.Name)
		}
	}
	return strings.Join(names, " > ")
}

// CountSummary renders per-type node counts in policy order, skipping
// absent types: "1 organisation, 2 department, 3 team".
func CountSummary(counts map[NodeType]int) string {
	parts := make([]string, 0, len(counts))
	for _, name := range NodeTypeNames() {
		if c := counts[NodeType(name)]; c > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c, name))
		}
	}
	return strings.Join(parts, ", ")
}

// ValidateDocument checks every structural invariant of a board: ids
// present and unique, types valid, the root parentless and of the kind's
// root type, parentId back-refs matching the actual structure, and every
// parent/child pair allowed by the policy.
func ValidateDocument(d *Document) error {
	if d == nil || d.Root == nil {
		return fmt.Errorf("document has no root node")
	}
	if d.ID == "" {
		return fmt.Errorf("document id is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("document name is required")
	}
	if err := ValidateKind(d.Kind); err != nil {
		return err
	}
	if d.LayoutMode != "" {
		if err := ValidateLayoutMode(d.LayoutMode); err != nil {
			return err
		}
	}
	for t := range d.LayerColors {
		if err := ValidateNodeType(t); err != nil {
			return fmt.Errorf("layer colours: %w", err)
		}
	}

	wantRoot := TypeOrganisation
	if d.Kind == KindAutomation {
		wantRoot = TypeAutomation
	}
	if d.Root.Type != wantRoot {
		return fmt.Errorf("a %s board must be rooted at a %s node, got %s", d.Kind, wantRoot, d.Root.Type)
	}
	if d.Root.ParentID != "" {
		return fmt.Errorf("root node must not have a parent")
	}

	seen := make(map[string]bool)
	return validateSubtree(d.Root, d.Kind, seen)
}

func validateSubtree(n *Node, kind Kind, seen map[string]bool) error {
	if n.ID == "" {
		return fmt.Errorf("node %q has no id", n.Name)
	}
	if seen[n.ID] {
		return fmt.Errorf("duplicate node id %q", n.ID)
	}
	seen[n.ID] = true

	if err := ValidateNodeType(n.Type); err != nil {
		return err
	}
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("node %s has an empty name", n.ID)
	}
	if n.Meta.WorkflowType != "" {
		if err := ValidateWorkflowType(n.Meta.WorkflowType); err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
	}

	for _, c := range n.Children {
		if c == nil {
			return fmt.Errorf("node %s has a null child", n.ID)
		}
		if c.ParentID != n.ID {
			return fmt.Errorf("node %s parentId %q does not match its actual parent %s", c.ID, c.ParentID, n.ID)
		}
		if !CanNest(n.Type, c.Type, kind) {
			return fmt.Errorf("node type %s is not allowed under %s on a %s board", c.Type, n.Type, kind)
		}
		if err := validateSubtree(c, kind, seen); err != nil {
			return err
		}
	}
	return nil
}

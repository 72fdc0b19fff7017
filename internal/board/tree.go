package board

import "strings"

// --- Read helpers ---

// Find returns the node with the given id, or nil when the id does not
// exist in the tree.
func Find(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, c := range root.Children {
		if n := Find(c, id); n != nil {
			return n
		}
	}
	return nil
}

// Walk visits every node depth-first in display order.
func Walk(root *Node, visit func(*Node)) {
	if root == nil {
		return
	}
	visit(root)
	for _, c := range root.Children {
		Walk(c, visit)
	}
}

// CollectIDs returns the id set of the tree.
func CollectIDs(root *Node) map[string]bool {
	ids := make(map[string]bool)
	Walk(root, func(n *Node) { ids[n.ID] = true })
	return ids
}

// Count returns the number of nodes in the tree.
func Count(root *Node) int {
	total := 0
	Walk(root, func(*Node) { total++ })
	return total
}

// CountByType returns node counts keyed by node type.
func CountByType(root *Node) map[NodeType]int {
	counts := make(map[NodeType]int)
	Walk(root, func(n *Node) { counts[n.Type]++ })
	return counts
}

// AutomationBoardIDs returns every automation sub-board link found in
// the subtree rooted at the node with the given id. Callers use this
// before deleting a subtree to cascade the linked boards.
func AutomationBoardIDs(root *Node, id string) []string {
	sub := Find(root, id)
	if sub == nil {
		return nil
	}
	var out []string
	Walk(sub, func(n *Node) {
		if n.AutomationBoardID != "" {
			out = append(out, n.AutomationBoardID)
		}
	})
	return out
}

// parentOf returns the parent of the node with the given id, or nil
// when the id is the root's or absent.
func parentOf(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	for _, c := range root.Children {
		if c.ID == id {
			return root
		}
		if p := parentOf(c, id); p != nil {
			return p
		}
	}
	return nil
}

// rewrite clones the path from n down to the node with the given id
// and applies mutate to that node's clone. It returns the rebuilt node
// and whether the id was found below n. Children off the path keep
// their original pointers. When bumpChain is set, every clone on the
// path gets its updatedAt stamped; mutate runs last and may override.
func rewrite(n *Node, id string, bumpChain bool, ts string, mutate func(*Node)) (*Node, bool) {
	if n.ID == id {
		c := n.clone()
		if bumpChain {
			c.UpdatedAt = ts
		}
		mutate(c)
		return c, true
	}
	for i, child := range n.Children {
		rebuilt, found := rewrite(child, id, bumpChain, ts, mutate)
		if !found {
			continue
		}
		c := n.clone()
		c.Children[i] = rebuilt
		if bumpChain {
			c.UpdatedAt = ts
		}
		return c, true
	}
	return n, false
}

// --- Mutations ---
//
// Every mutation below honors the no-op contract: the SAME root pointer
// comes back whenever the operation is invalid or changes nothing, and
// that reference equality is the only rejection signal.

// Insert creates a node from spec and appends it as the LAST child of
// the parent, provided the spec is valid and the policy allows the
// nesting. Returns the new root and the created node, or (root, nil)
// on rejection. The rewritten ancestor chain gets fresh updatedAt
// stamps.
func Insert(root *Node, parentID string, spec NodeSpec, kind Kind) (*Node, *Node) {
	if root == nil {
		return root, nil
	}
	if strings.TrimSpace(spec.Name) == "" {
		return root, nil
	}
	if ValidateNodeType(spec.Type) != nil {
		return root, nil
	}
	if spec.Meta.WorkflowType != "" && ValidateWorkflowType(spec.Meta.WorkflowType) != nil {
		return root, nil
	}
	parent := Find(root, parentID)
	if parent == nil {
		return root, nil
	}
	if !CanNest(parent.Type, spec.Type, kind) {
		return root, nil
	}

	child := newNode(spec, parentID)
	next, _ := rewrite(root, parentID, true, now(), func(p *Node) {
		p.Children = append(p.Children, child)
	})
	return next, child
}

// Update applies a shallow partial patch to a node: only the fields the
// patch provides change, and only the patched node's updatedAt is
// bumped. An empty patch, an unknown id, an empty name, or an invalid
// workflow type all reject.
func Update(root *Node, nodeID string, patch NodePatch) *Node {
	if root == nil || patch.isEmpty() {
		return root
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return root
	}
	if patch.WorkflowType != nil && *patch.WorkflowType != "" && ValidateWorkflowType(*patch.WorkflowType) != nil {
		return root
	}
	if Find(root, nodeID) == nil {
		return root
	}

	ts := now()
	next, _ := rewrite(root, nodeID, false, ts, func(n *Node) {
		applyPatch(n, patch)
		n.UpdatedAt = ts
	})
	return next
}

func applyPatch(n *Node, p NodePatch) {
	if p.Name != nil {
		n.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		n.Meta.Description = *p.Description
	}
	if p.DepartmentHead != nil {
		n.Meta.DepartmentHead = *p.DepartmentHead
	}
	if p.WorkflowType != nil {
		n.Meta.WorkflowType = *p.WorkflowType
	}
	if p.DocumentationURL != nil {
		n.Meta.DocumentationURL = *p.DocumentationURL
	}
	if p.Position != nil {
		n.Position = *p.Position
	}
	if p.AutomationBoardID != nil {
		n.AutomationBoardID = *p.AutomationBoardID
	}
}

// Delete removes the node with the given id together with its subtree.
// The root id and unknown ids are ignored. Ancestors of the removed
// node get new identity (and fresh stamps); siblings are shared.
func Delete(root *Node, nodeID string) *Node {
	if root == nil || nodeID == root.ID {
		return root
	}
	parent := parentOf(root, nodeID)
	if parent == nil {
		return root
	}

	next, _ := rewrite(root, parent.ID, true, now(), func(p *Node) {
		children := make([]*Node, 0, len(p.Children)-1)
		for _, c := range p.Children {
			if c.ID != nodeID {
				children = append(children, c)
			}
		}
		p.Children = children
	})
	return next
}

// Move reparents a subtree under a new parent, appending it as the
// LAST child. Rejections (same root back): moving the root, unknown
// node or target, a target inside the moved subtree (cycle), a nesting
// the policy forbids, and a same-parent no-op. On success the moved
// node and both the old and new parent chains get fresh updatedAt
// stamps.
func Move(root *Node, nodeID, newParentID string, kind Kind) *Node {
	if root == nil || nodeID == root.ID {
		return root
	}
	moved := Find(root, nodeID)
	if moved == nil {
		return root
	}
	target := Find(root, newParentID)
	if target == nil {
		return root
	}
	if Find(moved, newParentID) != nil {
		return root
	}
	oldParent := parentOf(root, nodeID)
	if oldParent.ID == newParentID {
		return root
	}
	if !CanNest(target.Type, moved.Type, kind) {
		return root
	}

	ts := now()
	movedCopy := moved.clone()
	movedCopy.ParentID = newParentID
	movedCopy.UpdatedAt = ts

	detached, _ := rewrite(root, oldParent.ID, true, ts, func(p *Node) {
		children := make([]*Node, 0, len(p.Children)-1)
		for _, c := range p.Children {
			if c.ID != nodeID {
				children = append(children, c)
			}
		}
		p.Children = children
	})
	next, _ := rewrite(detached, newParentID, true, ts, func(p *Node) {
		p.Children = append(p.Children, movedCopy)
	})
	return next
}

// SetPositions applies a batch of canvas coordinates. Only nodes whose
// coordinates actually change are touched and stamped; ancestors are
// rebuilt for identity without timestamp bumps. A batch that changes
// nothing returns the same root.
func SetPositions(root *Node, positions map[string]Position) *Node {
	if root == nil || len(positions) == 0 {
		return root
	}

	var changed []string
	Walk(root, func(n *Node) {
		if pos, ok := positions[n.ID]; ok && pos != n.Position {
			changed = append(changed, n.ID)
		}
	})
	if len(changed) == 0 {
		return root
	}

	ts := now()
	next := root
	for _, id := range changed {
		pos := positions[id]
		next, _ = rewrite(next, id, false, ts, func(n *Node) {
			n.Position = pos
			n.UpdatedAt = ts
		})
	}
	return next
}

// NormalizeBreadcrumbs filters a breadcrumb trail down to ids that
// still exist in the tree. A trail that ends up empty or does not
// start at the root resets to just the root id.
func NormalizeBreadcrumbs(root *Node, ids []string) []string {
	if root == nil {
		return nil
	}
	existing := CollectIDs(root)
	filtered := make([]string, 0, len(ids))
	for _, id := range ids {
		if existing[id] {
			filtered = append(filtered, id)
		}
	}
	if len(filtered) == 0 || filtered[0] != root.ID {
		return []string{root.ID}
	}
	return filtered
}

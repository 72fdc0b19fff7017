// Package board holds the whiteboard tree model: node types, the
// hierarchy policy, and the pure mutation engine.
//
// The engine is persistent (in the data-structure sense): operations
// never touch the tree they are given. A successful mutation returns a
// new root whose path down to the touched node is freshly allocated
// while every untouched branch is shared with the input. An invalid or
// no-op mutation returns the SAME root pointer, so callers detect
// rejection by reference equality — there is no error channel and
// nothing panics.
//
// Design principles, same as the rest of the repo:
// - SRP: types, policy, engine, and codec in separate files
// - DIP: persistence and tools depend on this package, never the reverse
// - OCP: new node types slot into the policy table without engine changes
package board

import (
	"fmt"
	"strings"
)

// --- Node type enum ---

// NodeType categorizes what a node on the whiteboard represents.
// The string values are wire values shared with the frontend — they
// are camelCase on purpose and must not be renamed.
type NodeType string

const (
	TypeOrganisation NodeType = "organisation"
	TypeDepartment   NodeType = "department"
	TypeTeam         NodeType = "team"
	TypeAgentSwarm   NodeType = "agentSwarm"
	TypeTeamLead     NodeType = "teamLead"
	TypeTeamMember   NodeType = "teamMember"
	TypeAgentLead    NodeType = "agentLead"
	TypeAgentMember  NodeType = "agentMember"
	TypeRole         NodeType = "role"
	TypeSubRole      NodeType = "subRole"
	TypeTool         NodeType = "tool"
	TypeWorkflow     NodeType = "workflow"
	TypeProcess      NodeType = "process"
	TypeAgent        NodeType = "agent"
	TypeAutomation   NodeType = "automation"
)

// validNodeTypes is the set of allowed node types.
var validNodeTypes = map[NodeType]bool{
	TypeOrganisation: true,
	TypeDepartment:   true,
	TypeTeam:         true,
	TypeAgentSwarm:   true,
	TypeTeamLead:     true,
	TypeTeamMember:   true,
	TypeAgentLead:    true,
	TypeAgentMember:  true,
	TypeRole:         true,
	TypeSubRole:      true,
	TypeTool:         true,
	TypeWorkflow:     true,
	TypeProcess:      true,
	TypeAgent:        true,
	TypeAutomation:   true,
}

// ValidateNodeType returns an error if the type is not recognized.
func ValidateNodeType(t NodeType) error {
	if !validNodeTypes[t] {
		return fmt.Errorf("invalid node type %q: must be one of: %s", t, strings.Join(NodeTypeNames(), ", "))
	}
	return nil
}

// NodeTypeNames returns the node type wire values in a stable order.
func NodeTypeNames() []string {
	return []string{
		string(TypeOrganisation), string(TypeDepartment), string(TypeTeam),
		string(TypeAgentSwarm), string(TypeTeamLead), string(TypeTeamMember),
		string(TypeAgentLead), string(TypeAgentMember), string(TypeRole),
		string(TypeSubRole), string(TypeTool), string(TypeWorkflow),
		string(TypeProcess), string(TypeAgent), string(TypeAutomation),
	}
}

// --- Board kind enum ---

// Kind distinguishes top-level organisation boards from automation
// sub-boards. The hierarchy policy differs per kind.
type Kind string

const (
	KindOrganisation Kind = "organisation"
	KindAutomation   Kind = "automation"
)

// validKinds is the set of allowed board kinds.
var validKinds = map[Kind]bool{
	KindOrganisation: true,
	KindAutomation:   true,
}

// ValidateKind returns an error if the board kind is not recognized.
func ValidateKind(k Kind) error {
	if !validKinds[k] {
		return fmt.Errorf("invalid board kind %q: must be one of: organisation, automation", k)
	}
	return nil
}

// --- Workflow type enum ---

// WorkflowType describes how a workflow node executes.
type WorkflowType string

const (
	WorkflowAgentic WorkflowType = "agentic"
	WorkflowLinear  WorkflowType = "linear"
)

// validWorkflowTypes is the set of allowed workflow types.
var validWorkflowTypes = map[WorkflowType]bool{
	WorkflowAgentic: true,
	WorkflowLinear:  true,
}

// ValidateWorkflowType returns an error if the workflow type is not recognized.
func ValidateWorkflowType(w WorkflowType) error {
	if !validWorkflowTypes[w] {
		return fmt.Errorf("invalid workflow type %q: must be one of: agentic, linear", w)
	}
	return nil
}

// --- Layout mode enum ---

// LayoutMode selects the display orientation of a board.
type LayoutMode string

const (
	LayoutVertical   LayoutMode = "vertical"
	LayoutHorizontal LayoutMode = "horizontal"
)

// validLayoutModes is the set of allowed layout modes.
var validLayoutModes = map[LayoutMode]bool{
	LayoutVertical:   true,
	LayoutHorizontal: true,
}

// ValidateLayoutMode returns an error if the layout mode is not recognized.
func ValidateLayoutMode(m LayoutMode) error {
	if !validLayoutModes[m] {
		return fmt.Errorf("invalid layout mode %q: must be one of: vertical, horizontal", m)
	}
	return nil
}

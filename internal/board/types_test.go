package board

import (
	"strings"
	"testing"
)

func TestValidateNodeType(t *testing.T) {
	valid := []NodeType{
		TypeOrganisation, TypeDepartment, TypeTeam, TypeAgentSwarm,
		TypeTeamLead, TypeTeamMember, TypeAgentLead, TypeAgentMember,
		TypeRole, TypeSubRole, TypeTool, TypeWorkflow, TypeProcess,
		TypeAgent, TypeAutomation,
	}
	for _, nt := range valid {
		t.Run(string(nt), func(t *testing.T) {
			if err := ValidateNodeType(nt); err != nil {
				t.Errorf("ValidateNodeType(%q) = %v, want nil", nt, err)
			}
		})
	}

	invalid := []NodeType{"", "Organisation", "TEAM", "squad", "agent_swarm"}
	for _, nt := range invalid {
		t.Run("invalid/"+string(nt), func(t *testing.T) {
			err := ValidateNodeType(nt)
			if err == nil {
				t.Fatalf("ValidateNodeType(%q) = nil, want error", nt)
			}
			if !strings.Contains(err.Error(), "invalid node type") {
				t.Errorf("error should mention invalid node type: %v", err)
			}
		})
	}
}

func TestNodeTypeNames_CoversEnum(t *testing.T) {
	names := NodeTypeNames()
	if len(names) != len(validNodeTypes) {
		t.Fatalf("NodeTypeNames returned %d names, want %d", len(names), len(validNodeTypes))
	}
	for _, name := range names {
		if !validNodeTypes[NodeType(name)] {
			t.Errorf("NodeTypeNames contains %q which is not a valid type", name)
		}
	}
}

func TestValidateKind(t *testing.T) {
	if err := ValidateKind(KindOrganisation); err != nil {
		t.Errorf("ValidateKind(organisation) = %v, want nil", err)
	}
	if err := ValidateKind(KindAutomation); err != nil {
		t.Errorf("ValidateKind(automation) = %v, want nil", err)
	}
	if err := ValidateKind(Kind("workspace")); err == nil {
		t.Error("ValidateKind(workspace) = nil, want error")
	}
	if err := ValidateKind(Kind("")); err == nil {
		t.Error("ValidateKind(\"\") = nil, want error")
	}
}

func TestValidateWorkflowType(t *testing.T) {
	if err := ValidateWorkflowType(WorkflowAgentic); err != nil {
		t.Errorf("ValidateWorkflowType(agentic) = %v, want nil", err)
	}
	if err := ValidateWorkflowType(WorkflowLinear); err != nil {
		t.Errorf("ValidateWorkflowType(linear) = %v, want nil", err)
	}
	if err := ValidateWorkflowType(WorkflowType("parallel")); err == nil {
		t.Error("ValidateWorkflowType(parallel) = nil, want error")
	}
}

func TestValidateLayoutMode(t *testing.T) {
	if err := ValidateLayoutMode(LayoutVertical); err != nil {
		t.Errorf("ValidateLayoutMode(vertical) = %v, want nil", err)
	}
	if err := ValidateLayoutMode(LayoutHorizontal); err != nil {
		t.Errorf("ValidateLayoutMode(horizontal) = %v, want nil", err)
	}
	if err := ValidateLayoutMode(LayoutMode("radial")); err == nil {
		t.Error("ValidateLayoutMode(radial) = nil, want error")
	}
}

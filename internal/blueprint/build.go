package blueprint

import (
	"fmt"

	"github.com/HendryAvila/swarmboard/internal/board"
)

// Build renders a validated template into a fresh organisation board.
// The tree is assembled through the same engine inserts interactive
// edits use, so the hierarchy policy stays authoritative here too.
func Build(bp *Blueprint, createdBy string) (*board.Document, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}

	doc := board.NewDocument(bp.Name, bp.Description, createdBy)
	root := doc.Root

	var err error
	for _, dept := range bp.Departments {
		var deptID string
		root, deptID, err = insertNode(root, root.ID, board.NodeSpec{
			Type: board.TypeDepartment,
			Name: dept.Name,
			Meta: board.Meta{DepartmentHead: dept.Head},
		})
		if err != nil {
			return nil, err
		}

		for _, team := range dept.Teams {
			var teamID string
			root, teamID, err = insertNode(root, deptID, board.NodeSpec{Type: board.TypeTeam, Name: team.Name})
			if err != nil {
				return nil, err
			}
			if team.TeamLead != "" {
				if root, _, err = insertNode(root, teamID, board.NodeSpec{Type: board.TypeTeamLead, Name: team.TeamLead}); err != nil {
					return nil, err
				}
			}
			for _, member := range team.TeamMembers {
				if root, _, err = insertNode(root, teamID, board.NodeSpec{Type: board.TypeTeamMember, Name: member}); err != nil {
					return nil, err
				}
			}
			for _, tool := range team.Tools {
				if root, _, err = insertNode(root, teamID, board.NodeSpec{Type: board.TypeTool, Name: tool}); err != nil {
					return nil, err
				}
			}
			for _, wf := range team.Workflows {
				if root, err = buildWorkflow(root, teamID, wf); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, wf := range bp.Workflows {
		if root, err = buildWorkflow(root, root.ID, wf); err != nil {
			return nil, err
		}
	}

	return doc.WithRoot(root), nil
}

func buildWorkflow(root *board.Node, parentID string, wf Workflow) (*board.Node, error) {
	spec := board.NodeSpec{Type: board.TypeWorkflow, Name: wf.Name}
	if wf.Type != "" {
		spec.Meta.WorkflowType = board.WorkflowType(wf.Type)
	}

	root, wfID, err := insertNode(root, parentID, spec)
	if err != nil {
		return nil, err
	}

	for _, proc := range wf.Processes {
		var procID string
		root, procID, err = insertNode(root, wfID, board.NodeSpec{Type: board.TypeProcess, Name: proc.Name})
		if err != nil {
			return nil, err
		}
		for _, agent := range proc.Agents {
			var agentID string
			root, agentID, err = insertNode(root, procID, board.NodeSpec{Type: board.TypeAgent, Name: agent.Name})
			if err != nil {
				return nil, err
			}
			for _, auto := range agent.Automations {
				if root, _, err = insertNode(root, agentID, board.NodeSpec{Type: board.TypeAutomation, Name: auto}); err != nil {
					return nil, err
				}
			}
		}
	}
	return root, nil
}

func insertNode(root *board.Node, parentID string, spec board.NodeSpec) (*board.Node, string, error) {
	next, created := board.Insert(root, parentID, spec, board.KindOrganisation)
	if next == root {
		return root, "", fmt.Errorf("blueprint: cannot place %s %q under %s", spec.Type, spec.Name, parentID)
	}
	return next, created.ID, nil
}

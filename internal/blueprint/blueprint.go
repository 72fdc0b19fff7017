// Package blueprint turns nested organisation templates into boards.
//
// Templates arrive as loosely generated JSON, typically from an LLM
// filling a prompt. The parse is strict: unknown fields are rejected
// and every name is validated, so malformed input is refused at the
// boundary before any tree is built.
package blueprint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HendryAvila/swarmboard/internal/board"
)

// Blueprint describes a whole organisation board as a nested template.
type Blueprint struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Departments []Department `json:"departments,omitempty"`
	Workflows   []Workflow   `json:"workflows,omitempty"`
}

// Department groups teams, optionally naming its head.
type Department struct {
	Name  string `json:"name"`
	Head  string `json:"head,omitempty"`
	Teams []Team `json:"teams,omitempty"`
}

// Team holds its people, tools and workflows.
type Team struct {
	Name        string     `json:"name"`
	TeamLead    string     `json:"teamLead,omitempty"`
	TeamMembers []string   `json:"teamMembers,omitempty"`
	Tools       []string   `json:"tools,omitempty"`
	Workflows   []Workflow `json:"workflows,omitempty"`
}

// Workflow is a process chain, optionally typed agentic or linear.
type Workflow struct {
	Name      string    `json:"name"`
	Type      string    `json:"type,omitempty"`
	Processes []Process `json:"processes,omitempty"`
}

// Process holds the agents that execute it.
type Process struct {
	Name   string  `json:"name"`
	Agents []Agent `json:"agents,omitempty"`
}

// Agent holds the automations it drives.
type Agent struct {
	Name        string   `json:"name"`
	Automations []string `json:"automations,omitempty"`
}

// Parse decodes and validates a template. Unknown fields fail the
// decode.
func Parse(data []byte) (*Blueprint, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var bp Blueprint
	if err := dec.Decode(&bp); err != nil {
		return nil, fmt.Errorf("blueprint: parse: %w", err)
	}
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	return &bp, nil
}

// Validate checks the template before any tree building happens. The
// first problem found is returned with its path into the template.
func (bp *Blueprint) Validate() error {
	if strings.TrimSpace(bp.Name) == "" {
		return fmt.Errorf("blueprint: name is required")
	}
	for i, dept := range bp.Departments {
		if strings.TrimSpace(dept.Name) == "" {
			return fmt.Errorf("blueprint: departments[%d]: name is required", i)
		}
		for j, team := range dept.Teams {
			path := fmt.Sprintf("departments[%d].teams[%d]", i, j)
			if strings.TrimSpace(team.Name) == "" {
				return fmt.Errorf("blueprint: %s: name is required", path)
			}
			for k, member := range team.TeamMembers {
				if strings.TrimSpace(member) == "" {
					return fmt.Errorf("blueprint: %s.teamMembers[%d]: name is required", path, k)
				}
			}
			for k, tool := range team.Tools {
				if strings.TrimSpace(tool) == "" {
					return fmt.Errorf("blueprint: %s.tools[%d]: name is required", path, k)
				}
			}
			for k, wf := range team.Workflows {
				if err := validateWorkflow(wf, fmt.Sprintf("%s.workflows[%d]", path, k)); err != nil {
					return err
				}
			}
		}
	}
	for i, wf := range bp.Workflows {
		if err := validateWorkflow(wf, fmt.Sprintf("workflows[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func validateWorkflow(wf Workflow, path string) error {
	if strings.TrimSpace(wf.Name) == "" {
		return fmt.Errorf("blueprint: %s: name is required", path)
	}
	if wf.Type != "" {
		if err := board.ValidateWorkflowType(board.WorkflowType(wf.Type)); err != nil {
			return fmt.Errorf("blueprint: %s: %w", path, err)
		}
	}
	for i, proc := range wf.Processes {
		if strings.TrimSpace(proc.Name) == "" {
			return fmt.Errorf("blueprint: %s.processes[%d]: name is required", path, i)
		}
		for j, agent := range proc.Agents {
			if strings.TrimSpace(agent.Name) == "" {
				return fmt.Errorf("blueprint: %s.processes[%d].agents[%d]: name is required", path, i, j)
			}
			for k, auto := range agent.Automations {
				if strings.TrimSpace(auto) == "" {
					return fmt.Errorf("blueprint: %s.processes[%d].agents[%d].automations[%d]: name is required", path, i, j, k)
				}
			}
		}
	}
	return nil
}

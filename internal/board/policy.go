package board

// childPolicy defines which node types may nest under which parents,
// per board kind. This table is the heart of the whiteboard's
// structural rules: the engine consults it on every insert and move,
// which is what keeps an organisation chart from degenerating into an
// arbitrary graph. A parent type absent from its kind's table accepts
// no children at all.
var childPolicy = map[Kind]map[NodeType][]NodeType{
	KindOrganisation: {
		TypeOrganisation: {TypeDepartment, TypeWorkflow},
		TypeDepartment:   {TypeTeam, TypeAgentSwarm, TypeWorkflow},
		TypeTeam:         {TypeTeamLead, TypeTeamMember, TypeTool, TypeWorkflow},
		TypeAgentSwarm:   {TypeAgentLead, TypeAgentMember, TypeTool, TypeWorkflow},
		TypeTeamLead:     {TypeRole},
		TypeTeamMember:   {TypeRole},
		TypeAgentLead:    {TypeRole},
		TypeAgentMember:  {TypeRole},
		TypeRole:         {TypeSubRole, TypeTool},
		TypeSubRole:      {TypeTool},
		TypeWorkflow:     {TypeProcess},
		TypeProcess:      {TypeAgent},
		TypeAgent:        {TypeAutomation},
	},
	KindAutomation: {
		TypeAutomation: {TypeWorkflow, TypeTool},
		TypeWorkflow:   {TypeProcess},
		TypeProcess:    {TypeAgent, TypeTool},
		TypeAgent:      {TypeTool},
	},
}

// AllowedChildren returns the node types that may be created under the
// given parent type on a board of the given kind. Unknown parents and
// kinds yield an empty set.
func AllowedChildren(parent NodeType, kind Kind) []NodeType {
	allowed := childPolicy[kind][parent]

	// Return a copy to prevent mutation of the policy table.
	result := make([]NodeType, len(allowed))
	copy(result, allowed)
	return result
}

// CanNest reports whether a child of the given type may be placed
// under the given parent type on a board of the given kind.
func CanNest(parent, child NodeType, kind Kind) bool {
	for _, t := range childPolicy[kind][parent] {
		if t == child {
			return true
		}
	}
	return false
}

// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on
// abstractions. No business logic lives here — only wiring.
package server

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/HendryAvila/swarmboard/internal/prompts"
	"github.com/HendryAvila/swarmboard/internal/ratelimit"
	"github.com/HendryAvila/swarmboard/internal/registry"
	"github.com/HendryAvila/swarmboard/internal/resources"
	"github.com/HendryAvila/swarmboard/internal/storage"
	"github.com/HendryAvila/swarmboard/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Runtime is the live core every front end drives: the dispatcher over
// the in-memory workspace, plus the SQLite pieces when they are
// available. Store and Saver are nil when persistence is disabled.
type Runtime struct {
	Dispatcher *registry.Dispatcher
	Store      *storage.Store
	Saver      *storage.DebouncedSaver
	Log        zerolog.Logger
}

// NewRuntime builds the shared core: logger, workspace store, saved
// state, debounced saver, journal, dispatcher.
//
// Persistence is best effort. If the database cannot be opened the
// runtime still works fully in memory; boards then live only for the
// process lifetime, and a warning says so. A saved state that cannot
// be decoded is abandoned rather than blocking startup.
//
// The returned cleanup flushes pending writes and closes the database.
// It is always non-nil and safe to call.
func NewRuntime(cfg Config) (*Runtime, func()) {
	// stdout is the MCP transport, so logs go to stderr only.
	log := zerolog.New(os.Stderr).Level(cfg.LogLevel).With().
		Timestamp().Str("component", "swarmboard").Logger()

	scfg := storage.DefaultConfig()
	scfg.DataDir = cfg.DataDir
	scfg.SaveDelay = cfg.SaveDelay

	var (
		store   *storage.Store
		saver   *storage.DebouncedSaver
		initial *registry.Snapshot
	)
	if st, err := storage.New(scfg, log); err != nil {
		log.Warn().Err(err).Msg("persistence disabled, boards will not survive restarts")
	} else {
		store = st
		snap, err := st.LoadState()
		if err != nil {
			log.Warn().Err(err).Msg("saved workspace could not be loaded, starting empty")
		} else {
			initial = snap
		}
		saver = storage.NewDebouncedSaver(st, cfg.SaveDelay, log)
	}

	var dispatcher *registry.Dispatcher
	if store != nil {
		dispatcher = registry.NewDispatcher(initial, saver, storage.NewJournal(store, log), log)
	} else {
		dispatcher = registry.NewDispatcher(nil, nil, nil, log)
	}

	cleanup := func() {
		if saver != nil {
			saver.Flush()
		}
		if store != nil {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("workspace close failed")
			}
		}
	}
	return &Runtime{Dispatcher: dispatcher, Store: store, Saver: saver, Log: log}, cleanup
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function persists pending state and closes the
// workspace database; call it on shutdown (typically via defer).
func New(cfg Config) (*server.MCPServer, func()) {
	rt, cleanup := NewRuntime(cfg)
	d := rt.Dispatcher

	s := server.NewMCPServer(
		"swarmboard",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register board tools ---

	createTool := tools.NewCreateBoardTool(d)
	s.AddTool(createTool.Definition(), createTool.Handle)

	listTool := tools.NewListBoardsTool(d)
	s.AddTool(listTool.Definition(), listTool.Handle)

	openTool := tools.NewOpenBoardTool(d)
	s.AddTool(openTool.Definition(), openTool.Handle)

	deleteTool := tools.NewDeleteBoardTool(d)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	treeTool := tools.NewTreeTool(d)
	s.AddTool(treeTool.Definition(), treeTool.Handle)

	statusTool := tools.NewStatusTool(d)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	canvasTool := tools.NewCanvasTool(d)
	s.AddTool(canvasTool.Definition(), canvasTool.Handle)

	// --- Register node tools ---

	addTool := tools.NewAddNodeTool(d)
	s.AddTool(addTool.Definition(), addTool.Handle)

	updateTool := tools.NewUpdateNodeTool(d)
	s.AddTool(updateTool.Definition(), updateTool.Handle)

	moveTool := tools.NewMoveNodeTool(d)
	s.AddTool(moveTool.Definition(), moveTool.Handle)

	removeTool := tools.NewDeleteNodeTool(d)
	s.AddTool(removeTool.Definition(), removeTool.Handle)

	// --- Register view and automation tools ---

	selectTool := tools.NewSelectNodeTool(d)
	s.AddTool(selectTool.Definition(), selectTool.Handle)

	drillTool := tools.NewDrillTool(d)
	s.AddTool(drillTool.Definition(), drillTool.Handle)

	breadcrumbTool := tools.NewBreadcrumbTool(d)
	s.AddTool(breadcrumbTool.Definition(), breadcrumbTool.Handle)

	autoOpenTool := tools.NewOpenAutomationTool(d)
	s.AddTool(autoOpenTool.Definition(), autoOpenTool.Handle)

	returnTool := tools.NewReturnTool(d)
	s.AddTool(returnTool.Definition(), returnTool.Handle)

	// --- Register transfer tools ---
	//
	// Template imports build whole boards in one call, so they are the
	// one surface worth rate limiting. A zero limit disables the guard.

	var limiter *ratelimit.Limiter
	if cfg.ImportLimit > 0 {
		limiter = ratelimit.New(cfg.ImportLimit, cfg.ImportWindow)
	}
	importTool := tools.NewImportTool(d, limiter)
	s.AddTool(importTool.Definition(), importTool.Handle)

	exportTool := tools.NewExportTool(d)
	s.AddTool(exportTool.Definition(), exportTool.Handle)

	// --- Register workspace tools ---
	//
	// Search and history read SQLite directly. Without a database they
	// could only ever fail, so they are withheld instead: the server
	// stays fully functional for board editing either way.

	if rt.Store != nil {
		searchTool := tools.NewSearchTool(rt.Store, rt.Saver)
		s.AddTool(searchTool.Definition(), searchTool.Handle)

		historyTool := tools.NewHistoryTool(rt.Store)
		s.AddTool(historyTool.Definition(), historyTool.Handle)
	} else {
		rt.Log.Warn().Msg("board_search and board_history withheld: no workspace database")
	}

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(d)
	s.AddResource(resourceHandler.ActiveResource(), resourceHandler.HandleActive)
	s.AddResource(resourceHandler.ListResource(), resourceHandler.HandleList)
	s.AddResource(resourceHandler.PolicyResource(), resourceHandler.HandlePolicy)
	s.AddResourceTemplate(resourceHandler.BoardTemplate(), resourceHandler.HandleBoard)

	return s, cleanup
}

// serverInstructions returns the system instructions that tell the AI
// how to drive the whiteboard effectively.
func serverInstructions() string {
	return `You have access to Swarmboard, an organisation-whiteboard MCP server.

Swarmboard keeps a workspace of boards. Each board is a tree: an
organisation root with departments, teams, people, tools, and workflow
chains underneath. You edit the boards through tools; the user sees the
same boards live on their whiteboard UI. Treat every edit as visible to
the user immediately.

## WHEN TO ACTIVATE Swarmboard

Proactively suggest using Swarmboard when the user:
- Wants to map out a company, org chart, or team structure
- Describes who owns what, who reports to whom, or how teams split work
- Wants to sketch workflows, processes, or agent/automation pipelines
- Asks "draw this org", "add a team for...", "restructure..."

You do NOT need it for generic diagrams, free-form drawing, or anything
that is not an organisational hierarchy.

## CRITICAL: How the tools work

The tools mutate one shared workspace with one ACTIVE board. Every
response echoes the ids you need next — keep them, you will use them
for parents, moves, and deletes. Never invent ids.

1. Call board_status first to orient yourself (detail_level=summary is
   cheap). An empty workspace needs board_create or board_import.
2. Edits happen on the active board only. board_open switches boards.
3. Rejected edits come back as explanations, not errors. The board is
   unchanged; read the message, fix the call.

## The hierarchy policy

What nests where is fixed policy, not convention:

- organisation root > department | workflow
- department > team | agentSwarm | workflow
- team > teamLead, teamMember, tool, workflow
- agentSwarm > agentLead, agentMember, tool, workflow
- any person (lead or member) > role > subRole; roles and subRoles hold tools
- workflow > process > agent > automation
- automation sub-boards: automation root > workflow > process > agent;
  the root, processes, and agents there also hold tools

node_add tells you the allowed child types whenever a pairing is
refused. Tools are leaves. Workflows can be agentic or linear
(workflow_type).

## Automation sub-boards

An automation node can expand into its own board. automation_open
creates and links the sub-board on first use and just opens it after
that; automation_return goes back to the parent board and selects the
originating node. Deleting an automation node (or any ancestor, or the
parent board) deletes its sub-board lineage too.

## Navigation state

- Selection: node_add defaults its parent to the selected node, and
  every added node becomes selected — so consecutive node_add calls
  build a chain. Use view_select (or parent_id) to branch elsewhere.
- Breadcrumbs: view_drill pushes into a node, view_breadcrumb jumps
  back up the trail. Opening a board resets the trail to its root.
- board_canvas adjusts zoom, pan, layout orientation, layer colours,
  and batch node positions. Facts about the view live here, not in the
  tree.

## Import and export

board_import with format=template takes a nested organisation template:

{"name": "Acme", "departments": [{"name": "Engineering", "teams":
[{"name": "Platform", "teamLead": "Dana", "teamMembers": ["Ana"],
"workflows": [{"name": "Deploy", "processes": [{"name": "Build",
"agents": [{"name": "Builder", "automations": ["CI"]}]}]}]}]}]}

Generate the template yourself from the conversation, then import it —
that is the fast path for "map out my whole company". Imports are rate
limited; on a limit error, wait and retry rather than hammering.
format=document re-imports a board_export payload unchanged.

## Search and history

board_search finds nodes by name/description across every saved board
— use it when the user refers to "the platform team" and you lack the
id. board_history shows recent actions. Both need the on-disk
workspace; when it is unavailable they are absent from the tool list.

## Prompts and resources

The board-start prompt walks a user from an empty workspace to a full
chart; board-review audits a board for structural gaps. Resources
expose board://active, board://list, board://policy, and board://{id}
as JSON for hosts that prefer reading state over calling tools.

## Important rules

- ALWAYS check board_status before the first edit of a session
- NEVER invent node ids — use ids from responses, board_tree, or search
- Add nodes top-down: department before its teams, workflow before its
  processes
- Use batch positions (board_canvas op=positions) after bulk adds, not
  one call per node
- Respect a rejection: do not retry the same call unchanged`
}

// Package resources implements MCP resource handlers for the whiteboard.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (board://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler serves board resource endpoints from the registry.
type Handler struct {
	dispatcher *registry.Dispatcher
}

// NewHandler creates a resource Handler over the dispatcher.
func NewHandler(d *registry.Dispatcher) *Handler {
	return &Handler{dispatcher: d}
}

// ─── board://active ─────────────────────────────────────────────────────────

// ActiveResource returns the MCP resource definition for the active board.
func (h *Handler) ActiveResource() mcp.Resource {
	return mcp.NewResource(
		"board://active",
		"Active Board",
		mcp.WithResourceDescription("The full active board document, including its node tree"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleActive returns the active board as JSON.
func (h *Handler) HandleActive(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc := h.dispatcher.Snapshot().ActiveDocument()
	if doc == nil {
		return errorResource(req.Params.URI, "no active board"), nil
	}
	return documentResource(req.Params.URI, doc)
}

// ─── board://list ───────────────────────────────────────────────────────────

// boardInfo is the list entry shape for board://list.
type boardInfo struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Kind          board.Kind `json:"kind"`
	Nodes         int        `json:"nodes"`
	Active        bool       `json:"active"`
	ParentBoardID string     `json:"parentBoardId,omitempty"`
}

// ListResource returns the MCP resource definition for the board list.
func (h *Handler) ListResource() mcp.Resource {
	return mcp.NewResource(
		"board://list",
		"Board List",
		mcp.WithResourceDescription("Every board in the workspace with id, kind, and node count"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleList returns the board list as JSON.
func (h *Handler) HandleList(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap := h.dispatcher.Snapshot()

	infos := make([]boardInfo, 0, len(snap.Documents))
	for _, d := range snap.Documents {
		infos = append(infos, boardInfo{
			ID:            d.ID,
			Name:          d.Name,
			Kind:          d.Kind,
			Nodes:         board.Count(d.Root),
			Active:        d.ID == snap.ActiveDocumentID,
			ParentBoardID: d.ParentBoardID,
		})
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling board list: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

// ─── board://policy ─────────────────────────────────────────────────────────

// PolicyResource returns the MCP resource definition for the hierarchy policy.
func (h *Handler) PolicyResource() mcp.Resource {
	return mcp.NewResource(
		"board://policy",
		"Hierarchy Policy",
		mcp.WithResourceDescription("Which node types may nest under which parents, per board kind"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandlePolicy returns the nesting rules as JSON, keyed by board kind
// and parent type. Parents that accept no children are omitted.
func (h *Handler) HandlePolicy(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	policy := map[board.Kind]map[board.NodeType][]board.NodeType{}
	for _, kind := range []board.Kind{board.KindOrganisation, board.KindAutomation} {
		table := map[board.NodeType][]board.NodeType{}
		for _, name := range board.NodeTypeNames() {
			parent := board.NodeType(name)
			if children := board.AllowedChildren(parent, kind); len(children) > 0 {
				table[parent] = children
			}
		}
		policy[kind] = table
	}

	data, err := json.MarshalIndent(policy, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling policy: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

// ─── board://{id} ───────────────────────────────────────────────────────────

// BoardTemplate returns the MCP resource template for a board by id.
func (h *Handler) BoardTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"board://{id}",
		"Board by id",
		mcp.WithTemplateDescription("A single board document, addressed by its id"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// HandleBoard returns the board named by the request URI as JSON.
func (h *Handler) HandleBoard(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := strings.TrimPrefix(req.Params.URI, "board://")
	doc := h.dispatcher.Snapshot().Document(id)
	if doc == nil {
		return errorResource(req.Params.URI, fmt.Sprintf("no board with id %q", id)), nil
	}
	return documentResource(req.Params.URI, doc)
}

// ─── Shared helpers ─────────────────────────────────────────────────────────

// documentResource renders a board document as a JSON resource.
func documentResource(uri string, doc *board.Document) ([]mcp.ResourceContents, error) {
	data, err := board.ExportDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling board: %w", err)
	}
	return jsonResource(uri, data), nil
}

// jsonResource wraps JSON bytes in resource contents.
func jsonResource(uri string, data []byte) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}

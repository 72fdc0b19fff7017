package resources

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
)

func newTestHandler(t *testing.T) (*Handler, *registry.Dispatcher) {
	t.Helper()
	d := registry.NewDispatcher(nil, nil, nil, zerolog.Nop())
	return NewHandler(d), d
}

func readReq(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

// contentText extracts the text from the first resource content.
func contentText(t *testing.T, contents []mcp.ResourceContents) string {
	t.Helper()
	if len(contents) == 0 {
		t.Fatal("no resource contents")
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("unexpected contents type %T", contents[0])
	}
	return tc.Text
}

func TestHandleActive(t *testing.T) {
	h, d := newTestHandler(t)

	contents, err := h.HandleActive(context.Background(), readReq("board://active"))
	if err != nil {
		t.Fatalf("HandleActive failed: %v", err)
	}
	if !strings.Contains(contentText(t, contents), "no active board") {
		t.Error("empty workspace should yield an error resource")
	}

	d.Dispatch(registry.CreateDocument{Name: "Acme"})

	contents, err = h.HandleActive(context.Background(), readReq("board://active"))
	if err != nil {
		t.Fatalf("HandleActive failed: %v", err)
	}
	var doc board.Document
	if err := json.Unmarshal([]byte(contentText(t, contents)), &doc); err != nil {
		t.Fatalf("active resource is not a board document: %v", err)
	}
	if doc.Name != "Acme" || doc.Root == nil {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestHandleList(t *testing.T) {
	h, d := newTestHandler(t)
	d.Dispatch(registry.CreateDocument{Name: "Acme"})
	d.Dispatch(registry.CreateDocument{Name: "Globex"})

	contents, err := h.HandleList(context.Background(), readReq("board://list"))
	if err != nil {
		t.Fatalf("HandleList failed: %v", err)
	}

	var infos []boardInfo
	if err := json.Unmarshal([]byte(contentText(t, contents)), &infos); err != nil {
		t.Fatalf("list resource is not JSON: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("list has %d entries, want 2", len(infos))
	}
	if infos[0].Name != "Acme" || infos[0].Active {
		t.Errorf("first entry wrong: %+v", infos[0])
	}
	if infos[1].Name != "Globex" || !infos[1].Active {
		t.Errorf("second entry should be the active board: %+v", infos[1])
	}
	if infos[0].Nodes != 1 {
		t.Errorf("nodes = %d, want 1 (the root)", infos[0].Nodes)
	}
}

func TestHandlePolicy(t *testing.T) {
	h, _ := newTestHandler(t)

	contents, err := h.HandlePolicy(context.Background(), readReq("board://policy"))
	if err != nil {
		t.Fatalf("HandlePolicy failed: %v", err)
	}

	var policy map[board.Kind]map[board.NodeType][]board.NodeType
	if err := json.Unmarshal([]byte(contentText(t, contents)), &policy); err != nil {
		t.Fatalf("policy resource is not JSON: %v", err)
	}

	org := policy[board.KindOrganisation]
	if len(org[board.TypeOrganisation]) == 0 {
		t.Error("organisation root should accept children")
	}
	found := false
	for _, c := range org[board.TypeOrganisation] {
		if c == board.TypeDepartment {
			found = true
		}
	}
	if !found {
		t.Error("departments should nest under the organisation root")
	}
	if _, ok := org[board.TypeTool]; ok {
		t.Error("tool nodes accept no children and should be omitted")
	}
	if len(policy[board.KindAutomation][board.TypeAutomation]) == 0 {
		t.Error("automation root should accept children on automation boards")
	}
}

func TestHandleBoard(t *testing.T) {
	h, d := newTestHandler(t)
	next, _ := d.Dispatch(registry.CreateDocument{Name: "Acme"})
	id := next.ActiveDocumentID

	contents, err := h.HandleBoard(context.Background(), readReq("board://"+id))
	if err != nil {
		t.Fatalf("HandleBoard failed: %v", err)
	}
	var doc board.Document
	if err := json.Unmarshal([]byte(contentText(t, contents)), &doc); err != nil {
		t.Fatalf("board resource is not a document: %v", err)
	}
	if doc.ID != id {
		t.Errorf("document id = %q, want %q", doc.ID, id)
	}

	contents, err = h.HandleBoard(context.Background(), readReq("board://ghost"))
	if err != nil {
		t.Fatalf("HandleBoard failed: %v", err)
	}
	if !strings.Contains(contentText(t, contents), `no board with id "ghost"`) {
		t.Errorf("unknown id should yield an error resource: %s", contentText(t, contents))
	}
}

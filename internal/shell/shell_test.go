package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// newTestShell creates a shell with no persistence, writing into a buffer.
func newTestShell() (*Shell, *bytes.Buffer) {
	sh := New(registry.NewDispatcher(nil, nil, nil, zerolog.Nop()), nil, nil, "")
	buf := &bytes.Buffer{}
	sh.out = buf
	return sh, buf
}

// run executes one line and returns what it printed.
func run(t *testing.T, sh *Shell, buf *bytes.Buffer, line string) string {
	t.Helper()
	buf.Reset()
	if quit := sh.Execute(line); quit {
		t.Fatalf("Execute(%q) requested quit", line)
	}
	return buf.String()
}

// nodeIDByName walks the active board for a node with the given name.
func nodeIDByName(t *testing.T, sh *Shell, name string) string {
	t.Helper()
	doc := sh.dispatcher.Snapshot().ActiveDocument()
	if doc == nil {
		t.Fatal("no active board")
	}
	id := ""
	board.Walk(doc.Root, func(n *board.Node) {
		if n.Name == name {
			id = n.ID
		}
	})
	if id == "" {
		t.Fatalf("node %q not found", name)
	}
	return id
}

// ─── Parsing and dispatch ────────────────────────────────────────────────────

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"list", []string{"list"}},
		{"add team Platform", []string{"add", "team", "Platform"}},
		{`add team "Platform Squad" n-12`, []string{"add", "team", "Platform Squad", "n-12"}},
		{`new "  spaced  out  "`, []string{"new", "  spaced  out  "}},
		{`open "Acme" extra`, []string{"open", "Acme", "extra"}},
	}
	for _, tt := range tests {
		if got := parseArgs(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseArgs(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	sh, buf := newTestShell()
	out := run(t, sh, buf, "frobnicate")
	if !strings.Contains(out, "Error:") || !strings.Contains(out, `unknown command "frobnicate"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestExecuteQuit(t *testing.T) {
	for _, line := range []string{"exit", "quit", "  exit  "} {
		sh, buf := newTestShell()
		if !sh.Execute(line) {
			t.Errorf("Execute(%q) should request quit", line)
		}
		if !strings.Contains(buf.String(), "Bye.") {
			t.Errorf("Execute(%q) printed %q", line, buf.String())
		}
	}
}

func TestExecuteBlankLine(t *testing.T) {
	sh, buf := newTestShell()
	if out := run(t, sh, buf, "   "); out != "" {
		t.Errorf("blank line printed %q", out)
	}
}

func TestPrompt(t *testing.T) {
	sh, buf := newTestShell()
	if got := sh.prompt(); got != "swarmboard> " {
		t.Errorf("empty-workspace prompt = %q", got)
	}
	run(t, sh, buf, `new "Acme Corp"`)
	if got := sh.prompt(); got != "Acme Corp> " {
		t.Errorf("prompt after new = %q", got)
	}
}

// ─── Board commands ──────────────────────────────────────────────────────────

func TestNewListOpenDrop(t *testing.T) {
	sh, buf := newTestShell()

	out := run(t, sh, buf, `new "Acme Corp"`)
	if !strings.Contains(out, `Board created and activated: "Acme Corp"`) {
		t.Fatalf("new output: %s", out)
	}
	run(t, sh, buf, "new Globex")

	out = run(t, sh, buf, "list")
	if !strings.Contains(out, "2 board(s):") {
		t.Errorf("list output: %s", out)
	}
	if !strings.Contains(out, `"Globex"`) || !strings.Contains(out, `"Acme Corp"`) {
		t.Errorf("list is missing a board: %s", out)
	}

	out = run(t, sh, buf, `open "Acme Corp"`)
	if !strings.Contains(out, `Active board: "Acme Corp"`) {
		t.Errorf("open output: %s", out)
	}
	if sh.prompt() != "Acme Corp> " {
		t.Errorf("prompt after open = %q", sh.prompt())
	}

	out = run(t, sh, buf, "drop Globex")
	if !strings.Contains(out, `Board "Globex" deleted`) {
		t.Errorf("drop output: %s", out)
	}
	if n := len(sh.dispatcher.Snapshot().Documents); n != 1 {
		t.Errorf("after drop, %d boards remain", n)
	}
}

func TestOpenUnknownBoard(t *testing.T) {
	sh, buf := newTestShell()
	out := run(t, sh, buf, "open Initech")
	if !strings.Contains(out, "Error:") || !strings.Contains(out, `no board with id or name "Initech"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

// ─── Node commands ───────────────────────────────────────────────────────────

func TestAddChainsUnderSelection(t *testing.T) {
	sh, buf := newTestShell()
	run(t, sh, buf, "new Acme")

	out := run(t, sh, buf, "add department Engineering")
	if !strings.Contains(out, `Added department "Engineering"`) || !strings.Contains(out, `under "Acme"`) {
		t.Fatalf("add department output: %s", out)
	}

	// New nodes land under the selection, which add just moved.
	out = run(t, sh, buf, `add team "Platform Squad"`)
	if !strings.Contains(out, `Added team "Platform Squad"`) || !strings.Contains(out, `under "Engineering"`) {
		t.Fatalf("add team output: %s", out)
	}

	out = run(t, sh, buf, "tree")
	for _, want := range []string{"Acme (organisation board, 3 nodes)", "Engineering", "Platform Squad"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output is missing %q:\n%s", want, out)
		}
	}
}

func TestAddRejectsBadNesting(t *testing.T) {
	sh, buf := newTestShell()
	run(t, sh, buf, "new Acme")

	out := run(t, sh, buf, "add organisation Subsidiary")
	if !strings.Contains(out, "Error:") || !strings.Contains(out, "cannot go under") {
		t.Errorf("unexpected output: %s", out)
	}
	out = run(t, sh, buf, "add team Ghosts missing-parent")
	if !strings.Contains(out, `parent node "missing-parent" not found`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestMoveAndRemove(t *testing.T) {
	sh, buf := newTestShell()
	run(t, sh, buf, "new Acme")
	run(t, sh, buf, "add department Engineering")
	eng := nodeIDByName(t, sh, "Engineering")
	run(t, sh, buf, "add department Sales "+sh.dispatcher.Snapshot().ActiveDocument().Root.ID)
	run(t, sh, buf, "add team Platform "+eng)

	platform := nodeIDByName(t, sh, "Platform")
	sales := nodeIDByName(t, sh, "Sales")

	out := run(t, sh, buf, "mv "+platform+" "+sales)
	if !strings.Contains(out, `Moved team "Platform" under "Sales".`) {
		t.Fatalf("mv output: %s", out)
	}

	out = run(t, sh, buf, "rm "+sales)
	if !strings.Contains(out, `Deleted department "Sales" (2 node(s) removed).`) {
		t.Fatalf("rm output: %s", out)
	}

	out = run(t, sh, buf, "rm "+sh.dispatcher.Snapshot().ActiveDocument().Root.ID)
	if !strings.Contains(out, "Error:") || !strings.Contains(out, "'drop' removes the whole board") {
		t.Errorf("root rm output: %s", out)
	}
}

// ─── View commands ───────────────────────────────────────────────────────────

func TestSelectDrillBack(t *testing.T) {
	sh, buf := newTestShell()
	run(t, sh, buf, "new Acme")
	run(t, sh, buf, "add department Engineering")
	eng := nodeIDByName(t, sh, "Engineering")

	out := run(t, sh, buf, "select")
	if !strings.Contains(out, "Selection cleared.") {
		t.Errorf("select output: %s", out)
	}
	out = run(t, sh, buf, "select "+eng)
	if !strings.Contains(out, `Selected department "Engineering".`) {
		t.Errorf("select output: %s", out)
	}

	out = run(t, sh, buf, "drill "+eng)
	if !strings.Contains(out, "Trail: Acme > Engineering") {
		t.Errorf("drill output: %s", out)
	}
	out = run(t, sh, buf, "back")
	if !strings.Contains(out, "Trail: Acme") || strings.Contains(out, "Engineering") {
		t.Errorf("back output: %s", out)
	}
	out = run(t, sh, buf, "back")
	if !strings.Contains(out, "Already at the top of the trail.") {
		t.Errorf("back at root output: %s", out)
	}
}

func TestAutoRoundTrip(t *testing.T) {
	sh, buf := newTestShell()
	run(t, sh, buf, "new Acme")
	run(t, sh, buf, "add workflow Deploy")
	run(t, sh, buf, "add process Build")
	run(t, sh, buf, "add agent Builder")
	run(t, sh, buf, "add automation Pipeline")
	pipeline := nodeIDByName(t, sh, "Pipeline")

	out := run(t, sh, buf, "auto "+pipeline)
	if !strings.Contains(out, "Created and opened sub-board") {
		t.Fatalf("auto output: %s", out)
	}
	if kind := sh.dispatcher.Snapshot().ActiveDocument().Kind; kind != board.KindAutomation {
		t.Fatalf("active board kind = %s", kind)
	}
	if sh.prompt() != "Pipeline> " {
		t.Errorf("sub-board prompt = %q", sh.prompt())
	}

	out = run(t, sh, buf, "back")
	if !strings.Contains(out, `Back on "Acme"`) || !strings.Contains(out, `automation node "Pipeline" selected`) {
		t.Fatalf("back output: %s", out)
	}

	// Second visit opens the linked board instead of creating a new one.
	out = run(t, sh, buf, "auto "+pipeline)
	if !strings.Contains(out, "Opened sub-board") || strings.Contains(out, "Created") {
		t.Errorf("second auto output: %s", out)
	}

	out = run(t, sh, buf, "auto "+nodeIDByName(t, sh, "Builder"))
	if !strings.Contains(out, "Error:") || !strings.Contains(out, "only automation nodes have sub-boards") {
		t.Errorf("auto on agent output: %s", out)
	}
}

func TestZoomAndStatus(t *testing.T) {
	sh, buf := newTestShell()
	run(t, sh, buf, "new Acme")

	out := run(t, sh, buf, "zoom 1.5")
	if !strings.Contains(out, "Zoom set to 1.50.") {
		t.Errorf("zoom output: %s", out)
	}
	out = run(t, sh, buf, "zoom nope")
	if !strings.Contains(out, "Error:") || !strings.Contains(out, "is not a number") {
		t.Errorf("bad zoom output: %s", out)
	}
	out = run(t, sh, buf, "zoom -2")
	if !strings.Contains(out, "Error:") || !strings.Contains(out, "positive") {
		t.Errorf("negative zoom output: %s", out)
	}

	out = run(t, sh, buf, "status")
	for _, want := range []string{`Active board: "Acme"`, "zoom 1.50", "Trail: Acme", "Nodes: 1 organisation"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output is missing %q:\n%s", want, out)
		}
	}
}

// ─── Transfer and persistence commands ───────────────────────────────────────

func TestExportImportRoundTrip(t *testing.T) {
	sh, buf := newTestShell()
	run(t, sh, buf, "new Acme")
	run(t, sh, buf, "add department Engineering")
	file := filepath.Join(t.TempDir(), "acme.json")

	out := run(t, sh, buf, "export "+file)
	if !strings.Contains(out, `Exported "Acme" to `+file) {
		t.Fatalf("export output: %s", out)
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("export wrote nothing: %v", err)
	}

	// Importing over the live board is refused; after a drop it succeeds.
	out = run(t, sh, buf, "import "+file+" document")
	if !strings.Contains(out, "Error:") || !strings.Contains(out, "already exists") {
		t.Fatalf("duplicate import output: %s", out)
	}
	run(t, sh, buf, "drop Acme")
	out = run(t, sh, buf, "import "+file+" document")
	if !strings.Contains(out, `Imported board "Acme"`) || !strings.Contains(out, "1 organisation, 1 department") {
		t.Fatalf("import output: %s", out)
	}
}

func TestImportTemplate(t *testing.T) {
	sh, buf := newTestShell()
	file := filepath.Join(t.TempDir(), "template.json")
	template := `{
		"name": "Acme Corp",
		"departments": [
			{"name": "Engineering", "teams": [{"name": "Platform", "teamMembers": ["Ana"]}]}
		]
	}`
	if err := os.WriteFile(file, []byte(template), 0o644); err != nil {
		t.Fatal(err)
	}

	out := run(t, sh, buf, "import "+file)
	if !strings.Contains(out, `Imported board "Acme Corp"`) {
		t.Fatalf("template import output: %s", out)
	}
	if sh.prompt() != "Acme Corp> " {
		t.Errorf("prompt after import = %q", sh.prompt())
	}
}

func TestSearchAndHistoryNeedStore(t *testing.T) {
	sh, buf := newTestShell()
	run(t, sh, buf, "new Acme")

	out := run(t, sh, buf, "search platform")
	if !strings.Contains(out, "Error:") || !strings.Contains(out, "on-disk workspace") {
		t.Errorf("search output: %s", out)
	}
	out = run(t, sh, buf, "history")
	if !strings.Contains(out, "Error:") || !strings.Contains(out, "on-disk workspace") {
		t.Errorf("history output: %s", out)
	}
}

// ─── Help ────────────────────────────────────────────────────────────────────

func TestHelp(t *testing.T) {
	sh, buf := newTestShell()

	out := run(t, sh, buf, "help")
	for _, c := range commands {
		if !strings.Contains(out, c.name) {
			t.Errorf("help listing is missing %q", c.name)
		}
	}

	out = run(t, sh, buf, "help add")
	if !strings.Contains(out, "add <type> <name> [parent-id]") {
		t.Errorf("help add output: %s", out)
	}
	out = run(t, sh, buf, "help nonsense")
	if !strings.Contains(out, "Unknown command: nonsense") {
		t.Errorf("help nonsense output: %s", out)
	}
}

func TestEveryCommandHasHelp(t *testing.T) {
	for name := range commandHelp {
		found := false
		for _, c := range commands {
			if c.name == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("commandHelp entry %q is not a listed command", name)
		}
	}
}

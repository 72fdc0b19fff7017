// Package shell is the interactive terminal front end of the whiteboard.
//
// It drives the same dispatcher the MCP tools use, so a human at a
// terminal and an LLM over stdio edit identical state through identical
// actions. Commands are deliberately terse (add, mv, rm), confirmations
// are one line, and failures come back as one line prefixed "Error:".
package shell

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
	"github.com/HendryAvila/swarmboard/internal/storage"
)

// Flusher pushes pending snapshot writes to disk so SQLite reads see
// the latest state.
type Flusher interface {
	Flush()
}

// Shell holds the REPL's dependencies. store and saver may be nil when
// persistence is unavailable; search and history then refuse with a
// message instead of crashing.
type Shell struct {
	dispatcher  *registry.Dispatcher
	store       *storage.Store
	saver       Flusher
	historyFile string
	out         io.Writer
}

// New creates a shell over the dispatcher. historyFile is where
// readline persists command history; an empty path disables it.
func New(dispatcher *registry.Dispatcher, store *storage.Store, saver Flusher, historyFile string) *Shell {
	return &Shell{
		dispatcher:  dispatcher,
		store:       store,
		saver:       saver,
		historyFile: historyFile,
		out:         os.Stdout,
	}
}

// Run starts the readline loop and blocks until the user exits.
func (s *Shell) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     s.historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return fmt.Errorf("shell: init readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(s.out, "swarmboard shell — 'help' lists commands, 'exit' quits.")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Fprintln(s.out, "Use 'exit' or 'quit' to leave.")
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if quit := s.Execute(line); quit {
			return nil
		}
		rl.SetPrompt(s.prompt())
	}
}

// Execute runs one command line and reports whether the shell should
// quit. Command failures are printed, not returned; the loop survives
// everything short of readline itself failing.
func (s *Shell) Execute(line string) bool {
	args := parseArgs(strings.TrimSpace(line))
	if len(args) == 0 {
		return false
	}

	cmd, rest := args[0], args[1:]
	if cmd == "exit" || cmd == "quit" {
		fmt.Fprintln(s.out, "Bye.")
		return true
	}
	if err := s.runCommand(cmd, rest); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *Shell) runCommand(cmd string, args []string) error {
	switch cmd {
	case "new":
		return s.handleNew(args)
	case "list":
		return s.handleList(args)
	case "open":
		return s.handleOpen(args)
	case "drop":
		return s.handleDrop(args)
	case "tree":
		return s.handleTree(args)
	case "add":
		return s.handleAdd(args)
	case "mv":
		return s.handleMove(args)
	case "rm":
		return s.handleRemove(args)
	case "select":
		return s.handleSelect(args)
	case "drill":
		return s.handleDrill(args)
	case "auto":
		return s.handleAuto(args)
	case "back":
		return s.handleBack(args)
	case "zoom":
		return s.handleZoom(args)
	case "status":
		return s.handleStatus(args)
	case "import":
		return s.handleImport(args)
	case "export":
		return s.handleExport(args)
	case "search":
		return s.handleSearch(args)
	case "history":
		return s.handleHistory(args)
	case "help":
		s.printHelp(args)
		return nil
	default:
		return fmt.Errorf("unknown command %q — 'help' lists commands", cmd)
	}
}

// prompt derives the readline prompt from the active board.
func (s *Shell) prompt() string {
	if doc := s.dispatcher.Snapshot().ActiveDocument(); doc != nil {
		return doc.Name + "> "
	}
	return "swarmboard> "
}

// parseArgs splits a command line on spaces, honoring double quotes so
// names can carry spaces: add team "Platform Squad" n-12.
func parseArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range input {
		switch ch {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if inQuotes {
				current.WriteRune(ch)
			} else if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// completer wires tab completion: every command, node types after add,
// and command names after help.
func completer() *readline.PrefixCompleter {
	typeItems := make([]readline.PrefixCompleterInterface, 0, len(board.NodeTypeNames()))
	for _, name := range board.NodeTypeNames() {
		typeItems = append(typeItems, readline.PcItem(name))
	}

	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, c := range commands {
		switch c.name {
		case "add":
			items = append(items, readline.PcItem("add", typeItems...))
		case "help":
			helpItems := make([]readline.PrefixCompleterInterface, 0, len(commands))
			for _, h := range commands {
				helpItems = append(helpItems, readline.PcItem(h.name))
			}
			items = append(items, readline.PcItem("help", helpItems...))
		default:
			items = append(items, readline.PcItem(c.name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

// commands lists every shell command in display order with its one-line
// summary. The completer and the help listing both derive from it.
var commands = []struct{ name, summary string }{
	{"new", "create a board and make it active"},
	{"list", "list all boards"},
	{"open", "switch the active board"},
	{"drop", "delete a board and its linked sub-boards"},
	{"tree", "print the active board (or a subtree) as a tree"},
	{"add", "add a node under a parent"},
	{"mv", "move a node under a new parent"},
	{"rm", "delete a node and its subtree"},
	{"select", "select a node; no id clears the selection"},
	{"drill", "push a node onto the breadcrumb trail"},
	{"auto", "open the sub-board behind an automation node"},
	{"back", "sub-board to parent board, or trail up one level"},
	{"zoom", "set the canvas zoom factor"},
	{"status", "show the workspace at a glance"},
	{"import", "import a board from a template or document file"},
	{"export", "write a board to a JSON file"},
	{"search", "full-text search across saved boards"},
	{"history", "show recent actions, newest first"},
	{"help", "this text"},
	{"exit", "leave the shell"},
}

// commandHelp carries the longer syntax help for commands whose shape
// is not obvious from the summary.
var commandHelp = map[string]string{
	"new": `Syntax: new <name>
Creates an organisation board with a single root node and activates it.
Example: new "Acme Corp"`,

	"open": `Syntax: open <board id or name>
Switches the active board. Names work when they are unambiguous.
Example: open Acme`,

	"drop": `Syntax: drop <board id or name>
Deletes the board and, recursively, every automation sub-board linked
from inside it.`,

	"tree": `Syntax: tree [node-id]
Prints the active board as a text tree. With a node id, prints only
that subtree.`,

	"add": `Syntax: add <type> <name> [parent-id]
Adds a node on the active board. The parent defaults to the selected
node, then the root. Use quotes for names with spaces.
Example: add team "Platform Squad" n-12`,

	"mv": `Syntax: mv <node-id> <new-parent-id>
Moves a node (and its subtree) under a new parent, if the hierarchy
policy allows the pairing.`,

	"rm": `Syntax: rm <node-id>
Deletes a node and its subtree. Automation sub-boards linked from
inside the subtree are deleted with it. The root cannot be removed.`,

	"select": `Syntax: select [node-id]
Selects a node on the active board. Without an id the selection is
cleared. New nodes land under the selection by default.`,

	"drill": `Syntax: drill <node-id>
Pushes a node onto the breadcrumb trail. Drilling to a node already on
the trail cuts the trail back to it.`,

	"auto": `Syntax: auto <node-id>
Opens the sub-board behind an automation node, creating and linking it
first when none exists. 'back' returns.`,

	"back": `Syntax: back
On an automation sub-board, returns to the parent board and selects
the originating node. Otherwise steps the breadcrumb trail up one
level.`,

	"zoom": `Syntax: zoom <factor>
Sets the canvas zoom. The factor must be a positive number.
Example: zoom 1.5`,

	"import": `Syntax: import <file> [template|document]
Imports a board from a JSON file. 'template' (the default) reads a
nested organisation template; 'document' reads a board exported with
'export' and re-validates it.`,

	"export": `Syntax: export <file> [board id or name]
Writes a board (default: the active one) as indented JSON. The file
round-trips through 'import <file> document'.`,

	"search": `Syntax: search <query>
Full-text search over node names and descriptions across every saved
board. Needs the on-disk workspace.`,

	"history": `Syntax: history [n]
Shows the last n applied actions (default 20), newest first. Needs the
on-disk workspace.`,
}

// printHelp lists every command, or the detailed help of one.
func (s *Shell) printHelp(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Commands:")
		for _, c := range commands {
			fmt.Fprintf(s.out, "  %-8s %s\n", c.name, c.summary)
		}
		fmt.Fprintln(s.out, "\nUse 'help <command>' for syntax. Quote names with spaces.")
		return
	}

	name := args[0]
	if detail, ok := commandHelp[name]; ok {
		fmt.Fprintln(s.out, detail)
		return
	}
	for _, c := range commands {
		if c.name == name {
			fmt.Fprintf(s.out, "%s — %s\n", c.name, c.summary)
			return
		}
	}
	fmt.Fprintf(s.out, "Unknown command: %s\n", name)
}

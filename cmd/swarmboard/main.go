// Swarmboard: Organisation Whiteboard MCP Server
//
// An MCP server that lets any AI tool (Claude Code, OpenCode, Gemini
// CLI, Codex, Cursor, VS Code Copilot) build and edit interactive
// organisation charts: departments, teams, people, workflows, and
// automation sub-boards on a shared whiteboard.
//
// Usage:
//
//	swarmboard serve    # Start MCP server (stdio transport)
//	swarmboard shell    # Edit the workspace from an interactive shell
//	swarmboard update   # Update to the latest version
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	boardserver "github.com/HendryAvila/swarmboard/internal/server"
	"github.com/HendryAvila/swarmboard/internal/shell"
	"github.com/HendryAvila/swarmboard/internal/updater"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "shell":
		if err := runShell(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "update":
		runUpdate()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("swarmboard v%s\n", boardserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// loadConfig resolves the configuration for a subcommand: defaults,
// then the YAML file, then flags.
func loadConfig(cmd string, args []string) (boardserver.Config, error) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML config file (default: <data-dir>/config.yaml)")
	dataDir := fs.String("data-dir", "", "workspace directory (overrides the config file)")
	if err := fs.Parse(args); err != nil {
		return boardserver.Config{}, err
	}

	cfg, err := boardserver.LoadConfig(*configPath)
	if err != nil {
		return cfg, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	return cfg, nil
}

func runServe(args []string) error {
	cfg, err := loadConfig("serve", args)
	if err != nil {
		return err
	}

	s, cleanup := boardserver.New(cfg)
	defer cleanup()

	// Background version check — prints to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	// Flush pending board writes before dying on an interrupt; the
	// debounce window would otherwise swallow the last edits.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cleanup()
		os.Exit(0)
	}()

	return server.ServeStdio(s)
}

func runShell(args []string) error {
	cfg, err := loadConfig("shell", args)
	if err != nil {
		return err
	}

	rt, cleanup := boardserver.NewRuntime(cfg)
	defer cleanup()

	var saver shell.Flusher
	if rt.Saver != nil {
		saver = rt.Saver
	}
	return shell.New(rt.Dispatcher, rt.Store, saver, cfg.HistoryFile()).Run()
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available. This runs in a goroutine during
// "serve" and is best-effort — network failures are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(boardserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  📦 Update available: v%s → v%s\n"+
				"     Run: swarmboard update\n"+
				"     Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest version.
func runUpdate() {
	fmt.Fprintf(os.Stderr, "🔍 Checking for updates...\n")

	result := updater.CheckVersion(boardserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "✅ Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "📦 New version available: v%s → v%s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Fprintf(os.Stderr, "⬇️  Downloading...\n")

	if err := updater.SelfUpdate(boardserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\n   You can download manually from:\n   %s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ Updated to v%s!\n", result.LatestVersion)
	fmt.Fprintf(os.Stderr, "   Restart swarmboard to use the new version.\n")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Swarmboard v%s — Organisation Whiteboard MCP Server

Usage:
  swarmboard serve    Start the MCP server (stdio transport)
  swarmboard shell    Edit the workspace from an interactive shell
  swarmboard update   Update to the latest version

Flags for serve and shell:
  -config <file>      YAML config file (default: <data-dir>/config.yaml)
  -data-dir <dir>     Workspace directory (default: ~/.swarmboard)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "swarmboard": {
        "command": "swarmboard",
        "args": ["serve"]
      }
    }
  }

Learn more: https://github.com/HendryAvila/swarmboard
`, boardserver.Version)
}

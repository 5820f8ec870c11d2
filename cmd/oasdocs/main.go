package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasdocs"
	"github.com/erraggy/oasdocs/cmd/oasdocs/commands"
	"github.com/erraggy/oasdocs/internal/cliutil"
	"github.com/erraggy/oasdocs/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, commands.StdIO(), os.Args[1:])
	stop()
	os.Exit(code)
}

// run dispatches args to a command and returns the process exit code.
func run(ctx context.Context, o *commands.IO, args []string) int {
	if len(args) < 1 {
		printUsage(o)
		return 1
	}

	command, rest := args[0], args[1:]
	cfg := config.Load()

	var err error
	switch command {
	case "version", "-v", "--version":
		cliutil.Writef(o.Out, "oasdocs v%s\n", oasdocs.Version())
		cliutil.Writef(o.Out, "%s\n", oasdocs.BuildInfo())
		return 0
	case "help", "-h", "--help":
		printUsage(o)
		return 0
	case "build":
		err = commands.HandleBuild(ctx, o, cfg, rest)
	case "path":
		err = commands.HandlePath(o, cfg, rest)
	case "serve":
		err = commands.HandleServe(ctx, o, cfg, rest)
	case "mcp":
		err = commands.HandleMCP(ctx, o, cfg, rest)
	default:
		cliutil.Writef(o.Err, "Unknown command: %s\n\n", command)
		printUsage(o)
		return 1
	}

	if err != nil {
		cliutil.Writef(o.Err, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(o *commands.IO) {
	cliutil.Writef(o.Err, `oasdocs - Swagger/OpenAPI document builder

Usage:
  oasdocs <command> [options]

Commands:
  build       Backfill titles, resolve $ref pointers and validate a document
  path        Replace or extract entries of a document's paths map
  serve       Serve the build pipeline over HTTP
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasdocs build swagger.yaml
  oasdocs build --base-dir ./specs -f yaml -o built.yaml specs/api.yaml
  oasdocs path update --doc swagger.yaml --path /pets pets.yaml
  oasdocs path get --doc swagger.yaml /pets
  oasdocs serve --addr :9090

Configuration defaults come from OASDOCS_* environment variables; flags override them.

Run 'oasdocs <command> --help' for more information on a command.
`)
}

package commands

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/erraggy/oasdocs/internal/api"
	"github.com/erraggy/oasdocs/internal/cliutil"
	"github.com/erraggy/oasdocs/internal/config"
	"github.com/erraggy/oasdocs/internal/mcpserver"
	"github.com/erraggy/oasdocs/loader"
)

// SetupServeFlags creates and configures a FlagSet for the serve command.
func SetupServeFlags(o *IO, cfg *config.Config) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(o.Err)

	fs.StringVarP(&cfg.Addr, "addr", "a", cfg.Addr, "listen address")
	fs.Int64Var(&cfg.MaxInlineSize, "max-body", cfg.MaxInlineSize, "maximum request body size in bytes")
	fs.IntVar(&cfg.MaxConns, "max-conns", cfg.MaxConns, "maximum concurrent connections (0 for no limit)")
	addPipelineFlags(fs, cfg)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasdocs serve [flags]\n\n")
		cliutil.Writef(fs.Output(), "Serve the build pipeline over HTTP until interrupted.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nEndpoints:\n")
		cliutil.Writef(fs.Output(), "  GET  /health\n")
		cliutil.Writef(fs.Output(), "  POST /api/build          raw YAML or JSON document text\n")
		cliutil.Writef(fs.Output(), "  POST /api/build/object   parsed JSON document\n")
		cliutil.Writef(fs.Output(), "  POST /api/paths/update   {\"document\", \"path_name\", \"fragment\"}\n")
		cliutil.Writef(fs.Output(), "  POST /api/paths/get      {\"document\", \"paths\"}\n")
	}

	return fs
}

// HandleServe executes the serve command
func HandleServe(ctx context.Context, o *IO, cfg *config.Config, args []string) error {
	fs := SetupServeFlags(o, cfg)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("serve command takes no arguments")
	}

	log := cfg.NewLogger(o.Err)
	b, err := cfg.NewBuilder(loader.NewSlogAdapter(log))
	if err != nil {
		return err
	}
	return api.NewServer(b, log, cfg.MaxInlineSize).ListenAndServe(ctx, cfg.Addr, cfg.MaxConns)
}

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags(o *IO, cfg *config.Config) *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(o.Err)

	addPipelineFlags(fs, cfg)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasdocs mcp [flags]\n\n")
		cliutil.Writef(fs.Output(), "Run the MCP server over stdio. Logs go to stderr.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(ctx context.Context, o *IO, cfg *config.Config, args []string) error {
	fs := SetupMCPFlags(o, cfg)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	// stdout carries the protocol.
	b, err := newBuilder(o, cfg)
	if err != nil {
		return err
	}
	return mcpserver.Run(ctx, cfg, b)
}

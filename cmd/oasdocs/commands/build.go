package commands

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/erraggy/oasdocs"
	"github.com/erraggy/oasdocs/builder"
	"github.com/erraggy/oasdocs/internal/cliutil"
	"github.com/erraggy/oasdocs/internal/config"
	"github.com/erraggy/oasdocs/internal/issues"
	"github.com/erraggy/oasdocs/oaserrors"
)

// BuildFlags contains flags for the build command
type BuildFlags struct {
	outputFlags
	Quiet bool
}

// SetupBuildFlags creates and configures a FlagSet for the build command.
// Pipeline flags default to the values already in cfg and write into it.
func SetupBuildFlags(o *IO, cfg *config.Config) (*flag.FlagSet, *BuildFlags) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(o.Err)
	flags := &BuildFlags{}

	addOutputFlags(fs, &flags.outputFlags, FormatJSON)
	fs.BoolVarP(&flags.Quiet, "quiet", "q", false, "only output the result, no diagnostic messages")
	addPipelineFlags(fs, cfg)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasdocs build [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Build a Swagger/OpenAPI document: backfill definition titles, resolve $ref\n")
		cliutil.Writef(fs.Output(), "pointers and validate the result.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  json (default)  The {\"specs\", \"error\"} envelope\n")
		cliutil.Writef(fs.Output(), "  yaml            The built document; errors go to stderr\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasdocs build swagger.yaml\n")
		cliutil.Writef(fs.Output(), "  oasdocs build --base-dir ./specs -f yaml -o built.yaml specs/api.yaml\n")
		cliutil.Writef(fs.Output(), "  cat swagger.yaml | oasdocs build -q - | jq '.error'\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Built, possibly with validation errors\n")
		cliutil.Writef(fs.Output(), "  1    The document could not be parsed or resolved\n")
	}

	return fs, flags
}

// HandleBuild executes the build command
func HandleBuild(ctx context.Context, o *IO, cfg *config.Config, args []string) error {
	fs, flags := SetupBuildFlags(o, cfg)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("build command requires exactly one file path or '-' for stdin")
	}
	inputPath := fs.Arg(0)

	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	b, err := newBuilder(o, cfg)
	if err != nil {
		return err
	}

	text, err := ReadInput(o, inputPath)
	if err != nil {
		return err
	}

	result := b.Build(ctx, text)
	if !flags.Quiet {
		outputBuildSummary(o, inputPath, result)
	}
	if err := writeResult(o, flags.outputFlags, result); err != nil {
		return err
	}

	if result.Err != nil && !errors.Is(result.Err, oaserrors.ErrValidation) {
		return fmt.Errorf("building %s: %w", FormatInputPath(inputPath), result.Err)
	}
	return nil
}

// outputBuildSummary writes a short report to stderr.
func outputBuildSummary(o *IO, inputPath string, result *builder.Result) {
	cliutil.Writef(o.Err, "oasdocs version: %s\n", oasdocs.Version())
	cliutil.Writef(o.Err, "Document: %s\n", FormatInputPath(inputPath))
	if result.Specs != nil {
		s := builder.Summarize(result.Specs)
		cliutil.Writef(o.Err, "OAS Version: %s\n", s.Version)
		cliutil.Writef(o.Err, "Paths: %d\n", s.PathCount)
		cliutil.Writef(o.Err, "Operations: %d\n", s.OperationCount)
		cliutil.Writef(o.Err, "Definitions: %d\n", s.DefinitionCount)
	}

	var vErr *oaserrors.ValidationError
	switch {
	case result.Err == nil:
		cliutil.Writef(o.Err, "\n✓ Build successful\n")
	case errors.As(result.Err, &vErr):
		cliutil.Writef(o.Err, "\n✗ Validation failed: %s\n", vErr.Message)
		if list, ok := vErr.Details.([]issues.Issue); ok {
			for _, issue := range list {
				cliutil.Writef(o.Err, "  %s\n", issue.String())
			}
		}
	default:
		cliutil.Writef(o.Err, "\n✗ Build failed\n")
	}
}

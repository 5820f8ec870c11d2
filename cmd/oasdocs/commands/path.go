package commands

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/erraggy/oasdocs/builder"
	"github.com/erraggy/oasdocs/internal/cliutil"
	"github.com/erraggy/oasdocs/internal/config"
)

// PathUpdateFlags contains flags for the path update command
type PathUpdateFlags struct {
	outputFlags
	Doc      string
	PathName string
}

// PathGetFlags contains flags for the path get command
type PathGetFlags struct {
	outputFlags
	Doc string
}

// HandlePath dispatches the path subcommands.
func HandlePath(o *IO, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		printPathUsage(o)
		return fmt.Errorf("path command requires a subcommand: update or get")
	}
	switch args[0] {
	case "update":
		return HandlePathUpdate(o, cfg, args[1:])
	case "get":
		return HandlePathGet(o, cfg, args[1:])
	case "help", "-h", "--help":
		printPathUsage(o)
		return nil
	default:
		printPathUsage(o)
		return fmt.Errorf("unknown path subcommand: %s", args[0])
	}
}

func printPathUsage(o *IO) {
	cliutil.Writef(o.Err, "Usage: oasdocs path <subcommand> [flags]\n\n")
	cliutil.Writef(o.Err, "Subcommands:\n")
	cliutil.Writef(o.Err, "  update    Replace one paths entry with the entry from a YAML fragment\n")
	cliutil.Writef(o.Err, "  get       Print the named paths entries\n")
}

// SetupPathUpdateFlags creates and configures a FlagSet for the path update command.
func SetupPathUpdateFlags(o *IO, cfg *config.Config) (*flag.FlagSet, *PathUpdateFlags) {
	fs := flag.NewFlagSet("path update", flag.ContinueOnError)
	fs.SetOutput(o.Err)
	flags := &PathUpdateFlags{}

	fs.StringVarP(&flags.Doc, "doc", "d", "", "document to update (required)")
	fs.StringVarP(&flags.PathName, "path", "p", "", "paths key to replace, e.g. /pets/{id} (required)")
	addOutputFlags(fs, &flags.outputFlags, FormatYAML)
	fs.StringVar(&cfg.YAMLBackend, "yaml-backend", cfg.YAMLBackend, "parser backend: yaml or goccy")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasdocs path update --doc <file> --path <name> [flags] <fragment|->\n\n")
		cliutil.Writef(fs.Output(), "Replace the paths entry named by --path with the entry of the same name in the\n")
		cliutil.Writef(fs.Output(), "YAML fragment. Other entries are left untouched. The document is not resolved.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasdocs path update --doc swagger.yaml --path /pets pets.yaml\n")
		cliutil.Writef(fs.Output(), "  oasdocs path update -d swagger.yaml -p /pets -o swagger.yaml - < pets.yaml\n")
	}

	return fs, flags
}

// HandlePathUpdate executes the path update command
func HandlePathUpdate(o *IO, cfg *config.Config, args []string) error {
	fs, flags := SetupPathUpdateFlags(o, cfg)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("path update requires exactly one fragment file or '-' for stdin")
	}
	if flags.Doc == "" || flags.PathName == "" {
		fs.Usage()
		return fmt.Errorf("path update requires --doc and --path")
	}
	if flags.Doc == StdinFilePath && fs.Arg(0) == StdinFilePath {
		return fmt.Errorf("only one of --doc and the fragment can be read from stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	b, err := newBuilder(o, cfg)
	if err != nil {
		return err
	}
	doc, err := loadDocument(o, b, flags.Doc)
	if err != nil {
		return err
	}
	fragment, err := ReadInput(o, fs.Arg(0))
	if err != nil {
		return err
	}

	result := b.UpdatePath(fragment, flags.PathName, doc)
	if err := writeResult(o, flags.outputFlags, result); err != nil {
		return err
	}
	if result.Err != nil {
		return fmt.Errorf("updating %s: %w", flags.PathName, result.Err)
	}
	return nil
}

// SetupPathGetFlags creates and configures a FlagSet for the path get command.
func SetupPathGetFlags(o *IO, cfg *config.Config) (*flag.FlagSet, *PathGetFlags) {
	fs := flag.NewFlagSet("path get", flag.ContinueOnError)
	fs.SetOutput(o.Err)
	flags := &PathGetFlags{}

	fs.StringVarP(&flags.Doc, "doc", "d", "", "document to read, or '-' for stdin (required)")
	addOutputFlags(fs, &flags.outputFlags, FormatYAML)
	fs.StringVar(&cfg.YAMLBackend, "yaml-backend", cfg.YAMLBackend, "parser backend: yaml or goccy")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasdocs path get --doc <file> [flags] <name>...\n\n")
		cliutil.Writef(fs.Output(), "Print the named paths entries. Names that are not present are omitted.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasdocs path get --doc swagger.yaml /pets /pets/{id}\n")
	}

	return fs, flags
}

// HandlePathGet executes the path get command
func HandlePathGet(o *IO, cfg *config.Config, args []string) error {
	fs, flags := SetupPathGetFlags(o, cfg)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() == 0 || flags.Doc == "" {
		fs.Usage()
		return fmt.Errorf("path get requires --doc and at least one path name")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	b, err := newBuilder(o, cfg)
	if err != nil {
		return err
	}
	doc, err := loadDocument(o, b, flags.Doc)
	if err != nil {
		return err
	}

	data, err := Marshal(builder.GetPath(doc, fs.Args()...), flags.Format)
	if err != nil {
		return err
	}
	return emit(o, flags.Output, data)
}

func loadDocument(o *IO, b *builder.Builder, path string) (map[string]any, error) {
	text, err := ReadInput(o, path)
	if err != nil {
		return nil, err
	}
	doc, err := b.Load(text)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", FormatInputPath(path), err)
	}
	return doc, nil
}

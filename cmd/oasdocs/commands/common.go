// Package commands provides CLI command handlers for oasdocs.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdocs/builder"
	"github.com/erraggy/oasdocs/internal/cliutil"
	"github.com/erraggy/oasdocs/internal/config"
	"github.com/erraggy/oasdocs/loader"
)

// Output format constants
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// IO carries the streams a command reads from and writes to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdIO returns an IO bound to the process streams.
func StdIO() *IO {
	return &IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatJSON, FormatYAML)
	}
	return nil
}

// Marshal encodes v as indented JSON or as YAML.
func Marshal(v any, format string) ([]byte, error) {
	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling to %s: %w", format, err)
	}
	return data, nil
}

// ReadInput returns the contents of path, or of stdin when path is "-".
func ReadInput(o *IO, path string) (string, error) {
	var data []byte
	var err error
	if path == StdinFilePath {
		data, err = io.ReadAll(o.In)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // G304: the user names the file to read
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", FormatInputPath(path), err)
	}
	return string(data), nil
}

// FormatInputPath returns a display-friendly path for an input.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatInputPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// addPipelineFlags binds the build pipeline settings of cfg to fs. The current
// values of cfg (normally loaded from the environment) become the flag defaults,
// so flags override the environment.
func addPipelineFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.BaseDir, "base-dir", cfg.BaseDir, "directory that file $ref pointers may read from (default: file refs disabled)")
	fs.BoolVar(&cfg.ResolveHTTP, "resolve-http", cfg.ResolveHTTP, "follow http(s) $ref pointers")
	fs.BoolVar(&cfg.AllowPrivateIPs, "allow-private-ips", cfg.AllowPrivateIPs, "allow http(s) $ref pointers to private and loopback addresses")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "enable stricter validation")
	fs.BoolVar(&cfg.NoWarnings, "no-warnings", cfg.NoWarnings, "ignore validation warnings")
	fs.StringVar(&cfg.YAMLBackend, "yaml-backend", cfg.YAMLBackend, "parser backend: yaml or goccy")
	fs.BoolVar(&cfg.HuJSON, "hujson", cfg.HuJSON, "accept JSON with comments and trailing commas")
}

// newBuilder assembles the pipeline from cfg with logs going to o.Err.
func newBuilder(o *IO, cfg *config.Config) (*builder.Builder, error) {
	logger := loader.NewSlogAdapter(cfg.NewLogger(o.Err))
	return cfg.NewBuilder(logger)
}

// outputFlags are shared by commands that emit a document.
type outputFlags struct {
	Output string
	Format string
}

func addOutputFlags(fs *flag.FlagSet, out *outputFlags, defaultFormat string) {
	fs.StringVarP(&out.Output, "output", "o", "", "write the result to this file instead of stdout")
	fs.StringVarP(&out.Format, "format", "f", defaultFormat, "output format: json or yaml")
}

// writeResult emits result. JSON output is the full {specs, error} envelope. YAML
// output is the document alone; the error, if any, goes to o.Err as JSON.
func writeResult(o *IO, out outputFlags, result *builder.Result) error {
	var data []byte
	var err error
	if out.Format == FormatJSON {
		data, err = Marshal(result, FormatJSON)
	} else {
		if result.Err != nil {
			errData, mErr := Marshal(map[string]any{"error": result.ErrorObject()}, FormatJSON)
			if mErr != nil {
				return mErr
			}
			cliutil.Writef(o.Err, "%s", errData)
		}
		if result.Specs != nil {
			data, err = Marshal(result.Specs, FormatYAML)
		}
	}
	if err != nil {
		return err
	}
	return emit(o, out.Output, data)
}

// emit writes data to path atomically, or to o.Out when path is empty.
func emit(o *IO, path string, data []byte) error {
	if data == nil {
		return nil
	}
	if path == "" {
		_, err := o.Out.Write(data)
		return err
	}
	abs, err := cliutil.WriteFile(path, data)
	if err != nil {
		return err
	}
	cliutil.Writef(o.Err, "Output written to: %s\n", abs)
	return nil
}

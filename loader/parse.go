package loader

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"

	goccyyaml "github.com/goccy/go-yaml"
	"github.com/tailscale/hujson"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdocs/oaserrors"
)

// ParseFunc parses document text into an untyped tree.
type ParseFunc func(text string) (any, error)

// Backend names accepted by ParseFuncFor.
const (
	BackendYAML  = "yaml"
	BackendGoccy = "goccy"
)

// ParseYAML parses text with go.yaml.in/yaml/v4. JSON is a subset of YAML, so JSON
// documents parse as well.
func ParseYAML(text string) (any, error) {
	var out any
	if err := yaml.Unmarshal([]byte(text), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseGoccyYAML parses text with github.com/goccy/go-yaml.
func ParseGoccyYAML(text string) (any, error) {
	var out any
	if err := goccyyaml.Unmarshal([]byte(text), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseFuncFor returns the parse backend registered under name.
// An empty name selects the default backend.
func ParseFuncFor(name string) (ParseFunc, error) {
	switch name {
	case "", BackendYAML:
		return ParseYAML, nil
	case BackendGoccy:
		return ParseGoccyYAML, nil
	default:
		return nil, &oaserrors.ConfigError{
			Option:  "yaml-backend",
			Value:   name,
			Message: "valid backends: " + BackendYAML + ", " + BackendGoccy,
		}
	}
}

// standardizeHuJSON converts JSON with comments and trailing commas into standard
// JSON. Text that does not look like a JSON object or array is returned unchanged,
// as is text that hujson cannot parse (the YAML parser will report the error).
func standardizeHuJSON(text string) string {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return text
	}
	standard, err := hujson.Standardize(trimmed)
	if err != nil {
		return text
	}
	return string(standard)
}

var (
	// yaml/v4: "yaml: line 3: did not find expected ..." or "line 3, column 7"
	lineColumnPattern = regexp.MustCompile(`line (\d+)(?:, column (\d+))?`)
	// goccy/go-yaml: "[3:7] sequence end token ..."
	bracketPattern = regexp.MustCompile(`\[(\d+):(\d+)\]`)
)

// newYAMLError wraps a parser failure, extracting the source position when the
// parser's message carries one.
func newYAMLError(err error) *oaserrors.YAMLError {
	var yamlErr *oaserrors.YAMLError
	if errors.As(err, &yamlErr) {
		return yamlErr
	}

	out := &oaserrors.YAMLError{Cause: err}
	msg := err.Error()
	if m := bracketPattern.FindStringSubmatch(msg); m != nil {
		out.Line, _ = strconv.Atoi(m[1])
		out.Column, _ = strconv.Atoi(m[2])
		return out
	}
	if m := lineColumnPattern.FindStringSubmatch(msg); m != nil {
		out.Line, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			out.Column, _ = strconv.Atoi(m[2])
		}
	}
	return out
}

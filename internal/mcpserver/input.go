package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/erraggy/oasdocs/internal/options"
)

// docInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OAS document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

var inputNames = []string{"file", "url", "content"}

// text returns the document text from whichever input was provided.
// Parsing is left to the builder, whose loader caches by content.
func (t *tools) text(ctx context.Context, in docInput) (string, error) {
	if err := options.RequireOne(inputNames, in.File != "", in.URL != "", in.Content != ""); err != nil {
		return "", err
	}

	switch {
	case in.File != "":
		data, err := os.ReadFile(in.File) //nolint:gosec // G304: the client names the file to read
		if err != nil {
			return "", err
		}
		return string(data), nil
	case in.URL != "":
		data, _, err := t.fetcher.Fetch(ctx, in.URL)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		if t.maxInline > 0 && int64(len(in.Content)) > t.maxInline {
			return "", fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASDOCS_MAX_INLINE_SIZE to increase",
				len(in.Content), t.maxInline)
		}
		return in.Content, nil
	}
}

// document loads and parses the document without building it.
func (t *tools) document(ctx context.Context, in docInput) (map[string]any, error) {
	text, err := t.text(ctx, in)
	if err != nil {
		return nil, err
	}
	return t.builder.Load(text)
}

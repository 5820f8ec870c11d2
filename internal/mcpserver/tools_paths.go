package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs/builder"
)

type updatePathInput struct {
	Doc      docInput `json:"doc"       jsonschema:"The document whose paths map is updated"`
	PathName string   `json:"path_name" jsonschema:"Key of the paths entry to replace, e.g. /pets/{id}"`
	Fragment string   `json:"fragment"  jsonschema:"YAML mapping with path_name as a key"`
}

type updatePathOutput struct {
	Specs map[string]any `json:"specs,omitempty"`
	Error map[string]any `json:"error,omitempty"`
}

func (t *tools) handleUpdatePath(ctx context.Context, _ *mcp.CallToolRequest, input updatePathInput) (*mcp.CallToolResult, updatePathOutput, error) {
	if input.PathName == "" {
		return errResult(errors.New("path_name is required")), updatePathOutput{}, nil
	}
	doc, err := t.document(ctx, input.Doc)
	if err != nil {
		return errResult(err), updatePathOutput{}, nil
	}

	result := t.builder.UpdatePath(input.Fragment, input.PathName, doc)
	return nil, updatePathOutput{Specs: result.Specs, Error: result.ErrorObject()}, nil
}

type getPathInput struct {
	Doc   docInput `json:"doc"   jsonschema:"The document to read"`
	Paths []string `json:"paths" jsonschema:"Keys of the paths entries to return"`
}

type getPathOutput struct {
	Paths map[string]any `json:"paths"`
}

func (t *tools) handleGetPath(ctx context.Context, _ *mcp.CallToolRequest, input getPathInput) (*mcp.CallToolResult, getPathOutput, error) {
	if len(input.Paths) == 0 {
		return errResult(errors.New("at least one path name is required")), getPathOutput{}, nil
	}
	doc, err := t.document(ctx, input.Doc)
	if err != nil {
		return errResult(err), getPathOutput{}, nil
	}
	return nil, getPathOutput{Paths: builder.GetPath(doc, input.Paths...)}, nil
}

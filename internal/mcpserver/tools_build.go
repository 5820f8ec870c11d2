package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs/builder"
)

type buildInput struct {
	Doc  docInput `json:"doc"            jsonschema:"The document to build"`
	Full bool     `json:"full,omitempty" jsonschema:"Include the resolved document in the result"`
}

type buildOutput struct {
	Valid   bool             `json:"valid"`
	Summary *builder.Summary `json:"summary,omitempty"`
	Specs   map[string]any   `json:"specs,omitempty"`
	Error   map[string]any   `json:"error,omitempty"`
}

func (t *tools) handleBuildDocs(ctx context.Context, _ *mcp.CallToolRequest, input buildInput) (*mcp.CallToolResult, buildOutput, error) {
	text, err := t.text(ctx, input.Doc)
	if err != nil {
		return errResult(err), buildOutput{}, nil
	}

	result := t.builder.Build(ctx, text)
	output := buildOutput{
		Valid: result.Err == nil,
		Error: result.ErrorObject(),
	}
	if result.Specs != nil {
		summary := builder.Summarize(result.Specs)
		output.Summary = &summary
		if input.Full {
			output.Specs = result.Specs
		}
	}
	return nil, output, nil
}

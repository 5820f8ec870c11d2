// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oasdocs build pipeline as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs"
	"github.com/erraggy/oasdocs/builder"
	"github.com/erraggy/oasdocs/internal/config"
	"github.com/erraggy/oasdocs/internal/httputil"
)

const serverInstructions = `oasdocs MCP server. Builds Swagger/OpenAPI documents: backfills definition titles, resolves $ref pointers and validates the result. Also replaces or extracts individual path entries.

Configuration: All defaults are configurable via OASDOCS_* environment variables set in your MCP client config.

Key settings:
- OASDOCS_RESOLVE_HTTP (default: false): follow http(s) $ref pointers
- OASDOCS_BASE_DIR (default: unset): directory that file $ref pointers may read from
- OASDOCS_STRICT (default: false): enable strict validation
- OASDOCS_NO_WARNINGS (default: false): suppress validation warnings
- OASDOCS_YAML_BACKEND (default: yaml): yaml or goccy
- OASDOCS_MAX_INLINE_SIZE (default: 10MB): cap on inline document content

Parsed document text is cached for the life of the server, keyed by content.`

// tools holds what the tool handlers share.
type tools struct {
	builder   *builder.Builder
	fetcher   *httputil.Fetcher
	maxInline int64
}

func newTools(cfg *config.Config, b *builder.Builder) *tools {
	return &tools{builder: b, fetcher: cfg.Fetcher(), maxInline: cfg.MaxInlineSize}
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, cfg *config.Config, b *builder.Builder) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasdocs", Version: oasdocs.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, newTools(cfg, b))
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_docs",
		Description: "Build a Swagger/OpenAPI document: backfill missing definition titles, resolve every $ref pointer, then validate. Returns a structural summary and, when the build failed, the error object (emptyDocsError, yamlError, resolveError or swaggerError). Validation failures still return the resolved document. Use full=true to include the resolved document in the result.",
	}, t.handleBuildDocs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_path",
		Description: "Replace one entry of a document's paths map with the entry of the same name parsed from a YAML fragment. The fragment must be a mapping containing path_name as a key. Other paths are left untouched. Returns the updated document, or the unchanged document with an error object when the fragment is unusable.",
	}, t.handleUpdatePath)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_path",
		Description: "Extract the named entries from a document's paths map. Names that are not present are omitted. The document is read as-is; $ref pointers are not resolved.",
	}, t.handleGetPath)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

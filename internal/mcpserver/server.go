// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes docsync capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsync/docsync"
)

const serverInstructions = `docsync MCP server: validates, converts, inspects and reduces API definitions (OpenAPI 3.x, Swagger 2.0, Postman collections).

Every tool takes a spec with exactly one of file, url or content. Swagger and Postman input is converted to OpenAPI 3.0.3 before analysis or reduction.

Configuration: defaults are configurable via DOCSYNC_MCP_* environment variables set in your MCP client config.

Key settings:
- DOCSYNC_MCP_CACHE_FILE_TTL (default: 15m): cache TTL for local files
- DOCSYNC_MCP_CACHE_URL_TTL (default: 5m): cache TTL for fetched URLs
- DOCSYNC_MCP_CACHE_ENABLED (default: true): disable caching entirely
- DOCSYNC_MCP_LIST_LIMIT (default: 100): default result limit for list tools
- DOCSYNC_MCP_VALIDATE_STRICT (default: false): enable strict validation by default
- DOCSYNC_MCP_ALLOW_PRIVATE_IPS (default: false): allow fetching from private networks

Caching: prepared definitions are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "docsync", Version: docsync.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate an API definition (OpenAPI 3.x, Swagger 2.0 or Postman collection) against its format. Returns every error and warning with a JSON pointer location. Use offset/limit to paginate. Strict mode and warning suppression defaults are configurable via DOCSYNC_MCP_VALIDATE_STRICT and DOCSYNC_MCP_VALIDATE_NO_WARNINGS.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert an API definition to OpenAPI. Swagger 2.0 and Postman collections become OpenAPI 3.0.3; OpenAPI input is returned as is. Set bundle=true to inline external $ref targets into components.",
	}, handleConvert)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Analyze which OpenAPI features and ReadMe extensions a definition uses. Without features, returns general statistics and a presence table for every feature. With features (e.g. [\"webhooks\", \"readme\"]), returns the location of every use and has_unused_feature=true when a requested feature is absent. The key \"readme\" stands for every ReadMe extension.",
	}, handleInspect)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reduce",
		Description: "Reduce a definition to a subset of its operations, selected either by tags or by paths (each with optional methods). Components no remaining operation reaches are removed. Fails when nothing is selected.",
	}, handleReduce)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_operations",
		Description: "List the operations of a definition with method, path, operationId and tags. Filter by method, tag, or path pattern (* matches one segment). Useful to pick tags or paths for reduce. Default limit is configurable via DOCSYNC_MCP_LIST_LIMIT.",
	}, handleListOperations)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
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

package mcpserver

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/walker"
)

type listOperationsInput struct {
	Spec        specInput `json:"spec"                       jsonschema:"The definition to list operations from"`
	Method      string    `json:"method,omitempty"           jsonschema:"Filter by HTTP method (get\\, post\\, put\\, delete\\, patch\\, etc.)"`
	Path        string    `json:"path,omitempty"             jsonschema:"Filter by path pattern (supports * glob)"`
	Tag         string    `json:"tag,omitempty"              jsonschema:"Filter by tag name (case-insensitive)"`
	Deprecated  bool      `json:"deprecated,omitempty"       jsonschema:"Only show deprecated operations"`
	OperationID string    `json:"operation_id,omitempty"     jsonschema:"Select by operationId"`
	Extension   string    `json:"extension,omitempty"        jsonschema:"Filter by extension key=value (e.g. x-internal=true)"`
	Webhooks    bool      `json:"webhooks,omitempty"         jsonschema:"Include webhook operations"`
	Limit       int       `json:"limit,omitempty"            jsonschema:"Maximum number of results to return (default 100)"`
	Offset      int       `json:"offset,omitempty"           jsonschema:"Skip the first N results (for pagination)"`
}

type operationSummary struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operation_id,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
	Webhook     bool     `json:"webhook,omitempty"`
}

type listOperationsOutput struct {
	Total      int                `json:"total"`
	Matched    int                `json:"matched"`
	Returned   int                `json:"returned"`
	Operations []operationSummary `json:"operations,omitempty"`
}

// listedOperation is an operation seen by the walker.
type listedOperation struct {
	method  string
	path    string
	webhook bool
	node    *document.Map
}

func handleListOperations(ctx context.Context, _ *mcp.CallToolRequest, input listOperationsInput) (*mcp.CallToolResult, listOperationsOutput, error) {
	result, err := input.Spec.resolve(ctx, prepareSettings{})
	if err != nil {
		return errResult(err), listOperationsOutput{}, nil
	}

	ops, err := collectOperations(ctx, result.Document, input.Webhooks)
	if err != nil {
		return errResult(err), listOperationsOutput{}, nil
	}

	// Filter operations.
	matched, err := filterOperations(ops, input)
	if err != nil {
		return errResult(err), listOperationsOutput{}, nil
	}

	// Apply offset/limit pagination.
	returned := paginate(matched, input.Offset, input.Limit)

	output := listOperationsOutput{
		Total:      len(ops),
		Matched:    len(matched),
		Returned:   len(returned),
		Operations: makeSlice[operationSummary](len(returned)),
	}
	for _, op := range returned {
		summary, _ := op.node.String("summary")
		operationID, _ := op.node.String("operationId")
		deprecated, _ := op.node.Bool("deprecated")
		output.Operations = append(output.Operations, operationSummary{
			Method:      strings.ToUpper(op.method),
			Path:        op.path,
			OperationID: operationID,
			Summary:     summary,
			Tags:        operationTags(op.node),
			Deprecated:  deprecated,
			Webhook:     op.webhook,
		})
	}

	return nil, output, nil
}

// collectOperations walks doc and returns its path operations, followed by
// webhook operations when webhooks is set. Callback and component
// operations are skipped.
func collectOperations(ctx context.Context, doc *document.Document, webhooks bool) ([]listedOperation, error) {
	var ops []listedOperation
	err := walker.Walk(doc,
		walker.WithUserContext(ctx),
		walker.WithOperationHandler(func(wc *walker.WalkContext, op *document.Map) walker.Action {
			if wc.IsComponent || (wc.IsWebhook && !webhooks) {
				return walker.SkipChildren
			}
			ops = append(ops, listedOperation{
				method:  wc.Method,
				path:    wc.PathTemplate,
				webhook: wc.IsWebhook,
				node:    op,
			})
			// Children hold callbacks, whose operations are not listed.
			return walker.SkipChildren
		}),
	)
	if err != nil {
		return nil, err
	}
	return ops, nil
}

// filterOperations applies all operation filters and returns the matching subset.
func filterOperations(ops []listedOperation, input listOperationsInput) ([]listedOperation, error) {
	// Parse extension filter once if provided.
	var extKey, extValue string
	var hasExtFilter bool
	if input.Extension != "" {
		key, val, err := parseExtensionKeyValue(input.Extension)
		if err != nil {
			return nil, err
		}
		extKey = key
		extValue = val
		hasExtFilter = true
	}

	var matched []listedOperation
	for _, op := range ops {
		if input.Method != "" && !strings.EqualFold(op.method, input.Method) {
			continue
		}
		if input.Path != "" && !matchPath(op.path, input.Path) {
			continue
		}
		if input.Tag != "" && !slices.ContainsFunc(operationTags(op.node), func(t string) bool {
			return strings.EqualFold(t, input.Tag)
		}) {
			continue
		}
		if deprecated, _ := op.node.Bool("deprecated"); input.Deprecated && !deprecated {
			continue
		}
		if id, _ := op.node.String("operationId"); input.OperationID != "" && id != input.OperationID {
			continue
		}
		if hasExtFilter && !matchExtension(op.node, extKey, extValue) {
			continue
		}
		matched = append(matched, op)
	}
	return matched, nil
}

// operationTags returns the string entries of an operation's tags array.
func operationTags(op *document.Map) []string {
	raw, ok := op.Slice("tags")
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if s, ok := t.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

// matchPath checks if a path template matches a pattern.
// Supports simple glob matching where * matches exactly one path segment.
func matchPath(pathTemplate, pattern string) bool {
	if pattern == "" {
		return true
	}
	if strings.Contains(pattern, "*") {
		patternParts := strings.Split(pattern, "/")
		pathParts := strings.Split(pathTemplate, "/")
		if len(patternParts) != len(pathParts) {
			return false
		}
		for i, pp := range patternParts {
			if pp == "*" {
				continue
			}
			if pp != pathParts[i] {
				return false
			}
		}
		return true
	}
	return pathTemplate == pattern
}

// parseExtensionKeyValue parses a simple "key=value" extension filter.
// Returns the key and value. If no "=" is present, value is empty (existence check).
func parseExtensionKeyValue(filter string) (string, string, error) {
	key, value, _ := strings.Cut(filter, "=")
	if !strings.HasPrefix(key, "x-") {
		return "", "", fmt.Errorf("invalid extension key %q: must start with \"x-\"", key)
	}
	return key, value, nil
}

// matchExtension checks if a node's extensions match a key=value filter.
// If value is empty, it checks for existence only.
func matchExtension(node *document.Map, key, value string) bool {
	val, exists := node.Get(key)
	if !exists {
		return false
	}
	if value == "" {
		return true // existence check
	}
	return fmt.Sprintf("%v", val) == value
}

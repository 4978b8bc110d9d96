package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/options"
	"github.com/docsync/docsync/reducer"
)

type pathSelectionInput struct {
	Path    string   `json:"path"              jsonschema:"Path template as written in the definition (e.g. /pets/{petId})"`
	Methods []string `json:"methods,omitempty" jsonschema:"HTTP methods to keep for this path. Omit to keep every method."`
}

type reduceInput struct {
	Spec   specInput            `json:"spec"             jsonschema:"The definition to reduce"`
	Tags   []string             `json:"tags,omitempty"   jsonschema:"Keep operations carrying any of these tags (case-insensitive)"`
	Paths  []pathSelectionInput `json:"paths,omitempty"  jsonschema:"Keep these paths. Cannot be combined with tags."`
	Format string               `json:"format,omitempty" jsonschema:"Output serialization: json or yaml (default: same as the input)"`
}

type reduceOutput struct {
	Mode           string `json:"mode"`
	PathCount      int    `json:"path_count"`
	OperationCount int    `json:"operation_count"`
	SchemaCount    int    `json:"schema_count"`
	ComponentCount int    `json:"component_count"`
	Document       string `json:"document"`
}

func handleReduce(ctx context.Context, _ *mcp.CallToolRequest, input reduceInput) (*mcp.CallToolResult, reduceOutput, error) {
	if _, err := options.ParseOutputFormat(input.Format, document.SourceFormatYAML); err != nil {
		return errResult(err), reduceOutput{}, nil
	}

	var opts []reducer.Option
	if len(input.Tags) > 0 {
		opts = append(opts, reducer.WithTags(input.Tags...))
	}
	for _, p := range input.Paths {
		opts = append(opts, reducer.WithPath(p.Path, p.Methods...))
	}
	criterion, err := reducer.NewCriterion(opts...)
	if err != nil {
		return errResult(err), reduceOutput{}, nil
	}

	prepared, err := input.Spec.resolve(ctx, prepareSettings{bundle: true})
	if err != nil {
		return errResult(err), reduceOutput{}, nil
	}
	reduced, err := reducer.Reduce(prepared.Document, criterion)
	if err != nil {
		return errResult(err), reduceOutput{}, nil
	}

	format, _ := options.ParseOutputFormat(input.Format, reduced.SourceFormat)
	data, err := document.Marshal(reduced.Root, format)
	if err != nil {
		return errResult(err), reduceOutput{}, nil
	}

	stats := document.ComputeStats(reduced)
	return nil, reduceOutput{
		Mode:           criterion.Mode().String(),
		PathCount:      stats.PathCount,
		OperationCount: stats.OperationCount,
		SchemaCount:    stats.SchemaCount,
		ComponentCount: stats.ComponentCount,
		Document:       string(data),
	}, nil
}

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/options"
	"github.com/docsync/docsync/internal/severity"
)

type convertInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The definition to convert"`
	Format string    `json:"format,omitempty" jsonschema:"Output serialization: json or yaml (default: same as the input)"`
	Bundle bool      `json:"bundle,omitempty" jsonschema:"Inline external $ref targets into components"`
}

type convertOutput struct {
	OriginFormat        string          `json:"origin_format"`
	OriginFormatVersion string          `json:"origin_format_version,omitempty"`
	SpecVersion         string          `json:"spec_version"`
	Converted           bool            `json:"converted"`
	BundledComponents   []string        `json:"bundled_components,omitempty"`
	WarningCount        int             `json:"warning_count"`
	Warnings            []validateIssue `json:"warnings,omitempty"`
	Document            string          `json:"document"`
}

func handleConvert(ctx context.Context, _ *mcp.CallToolRequest, input convertInput) (*mcp.CallToolResult, convertOutput, error) {
	// Check the format before doing any work.
	if _, err := options.ParseOutputFormat(input.Format, document.SourceFormatYAML); err != nil {
		return errResult(err), convertOutput{}, nil
	}

	result, err := input.Spec.resolve(ctx, prepareSettings{bundle: input.Bundle})
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	format, _ := options.ParseOutputFormat(input.Format, result.Document.SourceFormat)
	data, err := document.Marshal(result.Document.Root, format)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	output := convertOutput{
		OriginFormat:        string(result.OriginFormat),
		OriginFormatVersion: result.OriginFormatVersion,
		SpecVersion:         result.SpecVersion,
		Converted:           result.Converted,
		BundledComponents:   result.BundledComponents,
		Warnings:            toValidateIssues(result.Warnings, severity.SeverityWarning),
		Document:            string(data),
	}
	output.WarningCount = len(output.Warnings)
	return nil, output, nil
}

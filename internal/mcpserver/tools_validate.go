package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsync/docsync/internal/issues"
	"github.com/docsync/docsync/internal/severity"
	"github.com/docsync/docsync/oaserrors"
)

type validateInput struct {
	Spec       specInput `json:"spec"                    jsonschema:"The definition to validate"`
	Strict     *bool     `json:"strict,omitempty"        jsonschema:"Enable strict validation mode"`
	NoWarnings *bool     `json:"no_warnings,omitempty"   jsonschema:"Suppress warnings from output"`
	Offset     int       `json:"offset,omitempty"        jsonschema:"Skip the first N errors/warnings (for pagination)"`
	Limit      int       `json:"limit,omitempty"         jsonschema:"Maximum number of errors/warnings to return (default 100). Applied independently to errors and warnings arrays."`
}

type validateIssue struct {
	Pointer string `json:"pointer"`
	Message string `json:"message"`
	SpecRef string `json:"spec_ref,omitempty"`
}

type validateOutput struct {
	Valid         bool            `json:"valid"`
	Format        string          `json:"format,omitempty"`
	FormatVersion string          `json:"format_version,omitempty"`
	ErrorCount    int             `json:"error_count"`
	WarningCount  int             `json:"warning_count"`
	Returned      int             `json:"returned"`
	Errors        []validateIssue `json:"errors,omitempty"`
	Warnings      []validateIssue `json:"warnings,omitempty"`
}

func handleValidate(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	// Apply config defaults when input fields are omitted (nil).
	strict := cfg.ValidateStrict
	if input.Strict != nil {
		strict = *input.Strict
	}
	noWarnings := cfg.ValidateNoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}

	var output validateOutput
	result, err := input.Spec.resolve(ctx, prepareSettings{strict: strict})
	if err != nil {
		// An invalid definition is a result, not a tool failure.
		var validationErr *oaserrors.ValidationError
		if !errors.As(err, &validationErr) {
			return errResult(err), validateOutput{}, nil
		}
		output.Format = validationErr.Format
		output.Errors = toValidateIssues(validationErr.Issues, severity.SeverityError)
		if !noWarnings {
			output.Warnings = toValidateIssues(validationErr.Issues, severity.SeverityWarning)
		}
	} else {
		output.Valid = true
		output.Format = string(result.OriginFormat)
		output.FormatVersion = result.OriginFormatVersion
		if !noWarnings {
			output.Warnings = toValidateIssues(result.Warnings, severity.SeverityWarning)
		}
	}
	output.ErrorCount = len(output.Errors)
	output.WarningCount = len(output.Warnings)

	// Paginate errors and warnings.
	output.Errors = paginate(output.Errors, input.Offset, input.Limit)
	output.Warnings = paginate(output.Warnings, input.Offset, input.Limit)
	output.Returned = len(output.Errors) + len(output.Warnings)

	return nil, output, nil
}

// toValidateIssues keeps the issues of the given severity.
func toValidateIssues(list []issues.Issue, sev severity.Severity) []validateIssue {
	out := makeSlice[validateIssue](len(list))
	for _, i := range list {
		if i.Severity != sev {
			continue
		}
		out = append(out, validateIssue{Pointer: i.Pointer, Message: i.Message, SpecRef: i.SpecRef})
	}
	return out
}

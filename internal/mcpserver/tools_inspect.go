package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsync/docsync/analyzer"
	"github.com/docsync/docsync/report"
)

type inspectInput struct {
	Spec     specInput `json:"spec"               jsonschema:"The definition to inspect"`
	Features []string  `json:"features,omitempty" jsonschema:"Feature keys to locate (e.g. webhooks\\, callbacks\\, readme). Omit for the full report."`
}

type featureSummary struct {
	Key       string   `json:"key"`
	Present   bool     `json:"present"`
	Locations []string `json:"locations,omitempty"`
}

type inspectOutput struct {
	SpecVersion      string           `json:"spec_version"`
	Report           string           `json:"report"`
	Features         []featureSummary `json:"features"`
	HasUnusedFeature bool             `json:"has_unused_feature,omitempty"`
	Unused           []string         `json:"unused,omitempty"`
}

func handleInspect(ctx context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	// Unknown keys are a usage error, reported before loading anything.
	keys, err := analyzer.ValidateFeatureKeys(input.Features)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	prepared, err := input.Spec.resolve(ctx, prepareSettings{bundle: true})
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	result, err := analyzer.Analyze(prepared.Document)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	output := inspectOutput{SpecVersion: result.SpecVersion}
	if len(keys) == 0 {
		output.Report = report.BuildFullReport(result)
		keys = append(analyzer.OpenAPIFeatureKeys(), analyzer.PlatformFeatureKeys()...)
	} else {
		fr, err := report.BuildFeatureReport(result, keys)
		if err != nil {
			return errResult(err), inspectOutput{}, nil
		}
		output.Report = fr.Report
		output.HasUnusedFeature = fr.HasUnusedFeature
		output.Unused = fr.Unused
	}

	output.Features = make([]featureSummary, 0, len(keys))
	for _, key := range keys {
		rec, _ := result.Feature(key)
		output.Features = append(output.Features, featureSummary{
			Key:       key,
			Present:   rec.Present,
			Locations: rec.Locations,
		})
	}
	return nil, output, nil
}

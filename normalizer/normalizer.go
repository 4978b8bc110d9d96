package normalizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/docsync/docsync/bundler"
	"github.com/docsync/docsync/converter"
	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/issues"
	"github.com/docsync/docsync/loader"
	"github.com/docsync/docsync/oaserrors"
	"github.com/docsync/docsync/validator"
)

// Result contains a prepared definition and what was learned about it.
type Result struct {
	// Document is the canonical OpenAPI 3.x document
	Document *document.Document
	// OriginFormat is the format the definition was written in
	OriginFormat document.Format
	// OriginFormatVersion is the version declared by the origin format marker
	OriginFormatVersion string
	// SpecVersion is the openapi field after conversion
	SpecVersion string
	// DefinitionVersion is info.version, the version of the described API
	DefinitionVersion string
	// Source is the descriptor the definition was loaded from
	Source loader.SourceDescriptor
	// Converted is true when the definition was not already OpenAPI
	Converted bool
	// Warnings holds validation and conversion warnings
	Warnings []issues.Issue
	// BundledComponents lists the components created for external references
	BundledComponents []string
	// Stats summarizes the prepared document
	Stats document.Stats
}

// Prepare loads source and turns it into a validated OpenAPI document.
//
// The stages run in order and the first failure stops the pipeline:
//
//  1. load the bytes (*oaserrors.LoadError)
//  2. parse and classify by content (*oaserrors.LoadError)
//  3. validate against the origin format (*oaserrors.ValidationError)
//  4. convert Swagger 2.0 and Postman to OpenAPI 3.0.3 (*oaserrors.ConversionError)
//  5. rename info.title, when WithRenameTitle is given
//  6. bundle external references, when WithBundle(true) is given (*oaserrors.BundleError)
//
// Example:
//
//	src, err := loader.Resolve(ctx, "", ".")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := normalizer.Prepare(ctx, src, normalizer.WithBundle(true))
func Prepare(ctx context.Context, source loader.SourceDescriptor, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("normalizer: invalid options: %w", err)
	}
	log := cfg.logger.With("source", source.Locator)
	loaderOpts := cfg.loaderOptions()

	data, err := loader.Load(ctx, source, loaderOpts...)
	if err != nil {
		return nil, err
	}

	doc, err := document.Parse(data)
	if err != nil {
		return nil, &oaserrors.LoadError{Locator: source.Locator, Message: "unparsable syntax", Cause: err}
	}
	format, version := doc.Classify()
	if format == document.FormatUnknown {
		return nil, &oaserrors.LoadError{
			Locator: source.Locator,
			Message: "unsupported definition: no openapi, swagger or Postman collection marker",
		}
	}
	if source.DeclaredFormat != "" && source.DeclaredFormat != document.FormatUnknown && source.DeclaredFormat != format {
		log.Debug("content does not match the probed format", "declared", string(source.DeclaredFormat), "found", string(format))
	}
	log.Debug("classified definition", "format", string(format), "version", version)

	result := &Result{
		OriginFormat:        format,
		OriginFormatVersion: version,
		Source:              source,
	}

	vres, err := validator.Validate(doc, validator.WithStrictMode(cfg.strictMode))
	if err != nil {
		return nil, fmt.Errorf("normalizer: %w", err)
	}
	if !vres.Valid {
		return nil, &oaserrors.ValidationError{
			Locator: source.Locator,
			Format:  string(format),
			Issues:  vres.Errors,
		}
	}
	result.Warnings = append(result.Warnings, vres.Warnings...)

	cres, err := converter.Convert(doc, converter.WithIncludeInfo(false))
	if err != nil {
		var convErr *oaserrors.ConversionError
		if errors.As(err, &convErr) {
			return nil, err
		}
		return nil, &oaserrors.ConversionError{From: string(format), To: converter.TargetVersion, Message: "conversion failed", Cause: err}
	}
	result.Converted = cres.Converted
	result.Warnings = append(result.Warnings, cres.Issues...)
	if cres.Converted {
		log.Debug("converted definition", "from", string(format), "to", cres.TargetVersion, "warnings", cres.WarningCount)
	}
	out := cres.Document

	if cfg.renameTitle != "" {
		out.Root.Ensure("info").Set("title", cfg.renameTitle)
	}

	if cfg.bundle {
		bres, err := bundler.Bundle(ctx, out, source.Locator,
			bundler.WithLoaderOptions(loaderOpts...),
			bundler.WithLogger(log),
			bundler.WithHTTPRefs(cfg.httpRefs),
		)
		if err != nil {
			return nil, err
		}
		result.BundledComponents = bres.Components
		log.Debug("bundled definition", "components", len(bres.Components), "documents", len(bres.Sources))
	}

	result.Document = out
	result.SpecVersion = out.OpenAPIVersion()
	result.DefinitionVersion = out.DefinitionVersion()
	result.Stats = document.ComputeStats(out)
	return result, nil
}

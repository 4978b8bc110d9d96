package commands

import (
	"context"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/cliutil"
	"github.com/docsync/docsync/internal/issues"
	"github.com/docsync/docsync/internal/options"
	"github.com/docsync/docsync/loader"
	"github.com/docsync/docsync/normalizer"
)

// inputArg returns the optional positional definition argument.
func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// prepare resolves input, searching dir when input is empty, and runs it
// through the normalization pipeline.
func (a *app) prepare(ctx context.Context, input, dir string, opts ...normalizer.Option) (*normalizer.Result, error) {
	src, err := loader.Resolve(ctx, input, dir,
		loader.WithLogger(a.logger),
		loader.WithEnvironment(a.env),
		loader.WithMaxFileSize(a.cfg.MaxFileSize),
		loader.WithNotifier(func(msg string) { a.out.Infoln(msg) }),
	)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("preparing definition", "locator", src.Locator, "origin", string(src.OriginKind))

	base := []normalizer.Option{
		normalizer.WithLogger(a.logger),
		normalizer.WithFetcher(a.fetcher),
		normalizer.WithMaxFileSize(a.cfg.MaxFileSize),
		normalizer.WithHTTPRefs(a.cfg.HTTPRefs),
	}
	return normalizer.Prepare(ctx, src, append(base, opts...)...)
}

// printWarnings prints non-fatal issues found while preparing.
func (a *app) printWarnings(warnings []issues.Issue) {
	for _, w := range warnings {
		a.out.Warningln(w.String())
	}
}

// writeDocument serializes doc in the requested format, or in the format
// of the source when format is empty, and writes it to path or stdout.
func (a *app) writeDocument(result *normalizer.Result, doc *document.Document, format, path string) error {
	sf, err := options.ParseOutputFormat(format, doc.SourceFormat)
	if err != nil {
		return err
	}
	data, err := document.Marshal(doc.Root, sf)
	if err != nil {
		return err
	}
	var inputs []string
	if result.Source.OriginKind == loader.OriginPath {
		inputs = append(inputs, result.Source.Locator)
	}
	if err := cliutil.WriteOutput(a.stdout, path, data, inputs...); err != nil {
		return err
	}
	if path != "" {
		a.out.Infof("Wrote %s (%s)\n", path, loader.FormatBytes(int64(len(data))))
	}
	return nil
}

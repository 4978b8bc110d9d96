package commands

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/cliutil"
	"github.com/docsync/docsync/internal/issues"
	"github.com/docsync/docsync/internal/severity"
	"github.com/docsync/docsync/normalizer"
	"github.com/docsync/docsync/oaserrors"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Strict     bool
	NoWarnings bool
}

func newValidateCommand(a *app, shared *openAPIFlags) *cobra.Command {
	flags := &ValidateFlags{}
	cmd := &cobra.Command{
		Use:   "validate " + definitionArgs,
		Short: "Validate an API definition",
		Long:  "Validate an OpenAPI, Swagger or Postman definition against the format it declares. Every problem is reported, not just the first.",
		Example: `  docsync openapi validate openapi.yaml
  docsync openapi validate --strict https://example.com/api/openapi.json
  docsync openapi validate --dir ./api`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(cmd, inputArg(args), shared.Dir, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "Enable stricter validation beyond the format's requirements")
	cmd.Flags().BoolVar(&flags.NoWarnings, "no-warnings", false, "Suppress warning messages (only show errors)")
	return cmd
}

func (a *app) validate(cmd *cobra.Command, input, dir string, flags *ValidateFlags) error {
	result, err := a.prepare(cmd.Context(), input, dir, normalizer.WithStrictMode(flags.Strict))
	if err != nil {
		var validationErr *oaserrors.ValidationError
		if errors.As(err, &validationErr) {
			a.printIssues(validationErr.Issues, flags.NoWarnings)
			return CommandError{Err: errors.Errorf("%s is not a valid %s definition", validationErr.Locator, document.Format(validationErr.Format).Label())}
		}
		return failed(err, "validation did not run")
	}

	if !flags.NoWarnings {
		a.printIssues(result.Warnings, false)
	}
	cliutil.Writef(a.stdout, "%s is a valid %s API definition!\n", result.Source.Locator, result.OriginFormat.Label())
	return nil
}

// printIssues lists errors, then warnings unless they are suppressed.
func (a *app) printIssues(list []issues.Issue, noWarnings bool) {
	var errs, warnings []issues.Issue
	for _, i := range list {
		switch i.Severity {
		case severity.SeverityError:
			errs = append(errs, i)
		case severity.SeverityWarning:
			warnings = append(warnings, i)
		}
	}
	if len(errs) > 0 {
		cliutil.Writef(a.stderr, "Errors (%d):\n", len(errs))
		for _, e := range errs {
			cliutil.Writef(a.stderr, "  %s\n", e.String())
		}
	}
	if len(warnings) > 0 && !noWarnings {
		cliutil.Writef(a.stderr, "Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			cliutil.Writef(a.stderr, "  %s\n", w.String())
		}
	}
}

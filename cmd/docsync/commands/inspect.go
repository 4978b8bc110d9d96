package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/docsync/docsync/analyzer"
	"github.com/docsync/docsync/internal/cliutil"
	"github.com/docsync/docsync/normalizer"
	"github.com/docsync/docsync/report"
)

// InspectFlags contains flags for the inspect command
type InspectFlags struct {
	Features []string
}

func newInspectCommand(a *app, shared *openAPIFlags) *cobra.Command {
	flags := &InspectFlags{}
	cmd := &cobra.Command{
		Use:   "inspect " + definitionArgs,
		Short: "Report which OpenAPI features a definition uses",
		Long: `Analyze a definition and report the OpenAPI features and ReadMe
extensions it uses.

With --feature the report lists where each requested feature is used. The
command exits with status 1 when a requested feature is not used at all,
after printing the report. The feature "readme" stands for every ReadMe
extension.`,
		Example: `  docsync openapi inspect openapi.yaml
  docsync openapi inspect --feature webhooks --feature callbacks
  docsync openapi inspect --feature readme`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspect(cmd, inputArg(args), shared.Dir, flags)
		},
	}
	cmd.Flags().StringSliceVar(&flags.Features, "feature", nil, "Feature to report on (repeatable; one of "+featureList()+")")
	return cmd
}

func featureList() string {
	return strings.Join(analyzer.SupportedFeatureKeys(), ", ")
}

func (a *app) inspect(cmd *cobra.Command, input, dir string, flags *InspectFlags) error {
	// Unknown keys are rejected before anything is loaded.
	if len(flags.Features) > 0 {
		if _, err := analyzer.ValidateFeatureKeys(flags.Features); err != nil {
			return err
		}
	}

	result, err := a.prepare(cmd.Context(), input, dir, normalizer.WithBundle(true))
	if err != nil {
		return failed(err, "inspection failed")
	}
	analysis, err := analyzer.Analyze(result.Document)
	if err != nil {
		return failed(err, "analysis failed")
	}

	color := report.WithColor(!a.cfg.NoColor && isTerminal(a.stdout))
	if len(flags.Features) == 0 {
		cliutil.Writef(a.stdout, "%s", report.BuildFullReport(analysis, color))
		return nil
	}

	fr, err := report.BuildFeatureReport(analysis, flags.Features, color)
	if err != nil {
		return failed(err, "building report")
	}
	cliutil.Writef(a.stdout, "%s", fr.Report)
	if softErr := fr.SoftError(); softErr != nil {
		return ExitError{ExitCode: 1, Err: softErr}
	}
	return nil
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/normalizer"
	"github.com/docsync/docsync/oaserrors"
	"github.com/docsync/docsync/reducer"
)

// ReduceFlags contains flags for the reduce command
type ReduceFlags struct {
	Tags    []string
	Paths   []string
	Methods []string
	Out     string
	Format  string
	Title   string
}

func newReduceCommand(a *app, shared *openAPIFlags) *cobra.Command {
	flags := &ReduceFlags{}
	cmd := &cobra.Command{
		Use:   "reduce " + definitionArgs,
		Short: "Reduce a definition to a subset of its operations",
		Long: `Reduce a definition to the operations selected by tag, or by path
and method. Components no remaining operation reaches are removed.

--method applies to every --path; without it all methods of each path are
kept. Reducing to nothing is an error.`,
		Example: `  docsync openapi reduce openapi.yaml --tag pets --out pets.yaml
  docsync openapi reduce --path /pets --path /pets/{petId} --method get`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.reduce(cmd, inputArg(args), shared.Dir, flags)
		},
	}
	cmd.Flags().StringSliceVar(&flags.Tags, "tag", nil, "Keep operations with this tag (repeatable)")
	cmd.Flags().StringSliceVar(&flags.Paths, "path", nil, "Keep operations under this path (repeatable)")
	cmd.Flags().StringSliceVar(&flags.Methods, "method", nil, "Restrict --path to these methods (repeatable)")
	cmd.Flags().StringVarP(&flags.Out, "out", "o", "", "Output file (default is stdout)")
	cmd.Flags().StringVar(&flags.Format, "format", "", "Output format: json or yaml (default is the input's format)")
	cmd.Flags().StringVar(&flags.Title, "title", "", "Replace info.title")
	return cmd
}

// criterion builds the reduction criterion before anything is loaded.
func (flags *ReduceFlags) criterion() (*reducer.Criterion, error) {
	if len(flags.Methods) > 0 && len(flags.Paths) == 0 {
		return nil, &oaserrors.UsageError{Option: "method", Message: "--method requires --path"}
	}
	var opts []reducer.Option
	if len(flags.Tags) > 0 {
		opts = append(opts, reducer.WithTags(flags.Tags...))
	}
	for _, p := range flags.Paths {
		opts = append(opts, reducer.WithPath(p, flags.Methods...))
	}
	return reducer.NewCriterion(opts...)
}

func (a *app) reduce(cmd *cobra.Command, input, dir string, flags *ReduceFlags) error {
	c, err := flags.criterion()
	if err != nil {
		return err
	}

	opts := []normalizer.Option{normalizer.WithBundle(true)}
	if flags.Title != "" {
		opts = append(opts, normalizer.WithRenameTitle(flags.Title))
	}
	result, err := a.prepare(cmd.Context(), input, dir, opts...)
	if err != nil {
		return failed(err, "reduction failed")
	}
	a.printWarnings(result.Warnings)

	reduced, err := reducer.Reduce(result.Document, c)
	if err != nil {
		return failed(err, "reduction failed")
	}
	stats := document.ComputeStats(reduced)
	a.logger.Debug("reduced definition", "mode", c.Mode().String(), "paths", stats.PathCount, "schemas", stats.SchemaCount)
	a.out.Infof("Kept %d of %d operations across %d path(s)\n", stats.OperationCount, result.Stats.OperationCount, stats.PathCount)

	return failed(a.writeDocument(result, reduced, flags.Format, flags.Out), "writing output")
}

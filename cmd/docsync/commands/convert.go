package commands

import (
	"github.com/spf13/cobra"

	"github.com/docsync/docsync/normalizer"
)

// ConvertFlags contains flags for the convert command
type ConvertFlags struct {
	Out    string
	Format string
	Bundle bool
	Title  string
}

func newConvertCommand(a *app, shared *openAPIFlags) *cobra.Command {
	flags := &ConvertFlags{}
	cmd := &cobra.Command{
		Use:   "convert " + definitionArgs,
		Short: "Convert a definition to OpenAPI",
		Long: `Convert a Swagger 2.0 or Postman collection to OpenAPI 3.0.3. OpenAPI
input is passed through, so convert can also bundle or retitle it.`,
		Example: `  docsync openapi convert swagger.json --out openapi.json
  docsync openapi convert collection.json --format yaml
  docsync openapi convert openapi.yaml --bundle --title "Pets (staging)"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd, inputArg(args), shared.Dir, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.Out, "out", "o", "", "Output file (default is stdout)")
	cmd.Flags().StringVar(&flags.Format, "format", "", "Output format: json or yaml (default is the input's format)")
	cmd.Flags().BoolVar(&flags.Bundle, "bundle", false, "Inline external $ref targets into components")
	cmd.Flags().StringVar(&flags.Title, "title", "", "Replace info.title")
	return cmd
}

func (a *app) convert(cmd *cobra.Command, input, dir string, flags *ConvertFlags) error {
	opts := []normalizer.Option{normalizer.WithBundle(flags.Bundle)}
	if flags.Title != "" {
		opts = append(opts, normalizer.WithRenameTitle(flags.Title))
	}
	result, err := a.prepare(cmd.Context(), input, dir, opts...)
	if err != nil {
		return failed(err, "conversion failed")
	}
	a.printWarnings(result.Warnings)

	if result.Converted {
		a.out.Infof("Converted %s %s to OpenAPI %s\n", result.OriginFormat.Label(), result.OriginFormatVersion, result.SpecVersion)
	}
	if n := len(result.BundledComponents); n > 0 {
		a.out.Infof("Bundled %d external reference(s) into components\n", n)
	}
	return failed(a.writeDocument(result, result.Document, flags.Format, flags.Out), "writing output")
}

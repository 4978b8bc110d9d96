package commands

import (
	"github.com/spf13/cobra"
)

const definitionArgs = "[file|url]"

// openAPIFlags are shared by the openapi subcommands.
type openAPIFlags struct {
	Dir string
}

func newOpenAPICommand(a *app) *cobra.Command {
	flags := &openAPIFlags{}
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Work with OpenAPI, Swagger and Postman definitions",
		Long: `Work with OpenAPI, Swagger and Postman definitions.

Every subcommand takes an optional file path or URL. Without one, the
working directory (or --dir) is searched for a definition; when several
are found you are asked to pick one, or the command fails in CI.`,
	}
	cmd.PersistentFlags().StringVar(&flags.Dir, "dir", ".", "Directory searched when no definition is given")

	cmd.AddCommand(
		newValidateCommand(a, flags),
		newConvertCommand(a, flags),
		newInspectCommand(a, flags),
		newReduceCommand(a, flags),
	)
	return cmd
}

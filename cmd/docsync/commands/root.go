// Package commands implements the docsync command line.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/docsync/docsync"
	"github.com/docsync/docsync/internal/printer"
	"github.com/docsync/docsync/loader"
	"github.com/docsync/docsync/logging"
	"github.com/docsync/docsync/oaserrors"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	out    printer.P

	configFile string
	cfg        *Config
	logger     logging.Logger
	fetcher    loader.Fetcher
	env        loader.Environment
}

// Execute runs the command line against the process arguments and exits.
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command line with args and returns the exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return newApp(stdout, stderr).run(ctx, args)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, out: printer.NewP(stderr)}
}

func (a *app) run(ctx context.Context, args []string) int {
	if !isTerminal(a.stderr) {
		printer.SwitchToPlain()
	}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	cmd, err := root.ExecuteContextC(ctx)
	return a.report(cmd, err)
}

// report prints err and maps it to an exit code. Usage of cmd follows
// errors caused by how the command was invoked.
func (a *app) report(cmd *cobra.Command, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, oaserrors.ErrSoftFailure) {
		a.out.Warningf("%s\n", errors.Cause(err))
		return exitCode(err)
	}
	a.out.Errorf("%s\n", err)
	if showUsage(err) && cmd != nil {
		_, _ = io.WriteString(a.stderr, cmd.UsageString())
	}
	return exitCode(err)
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "docsync",
		Short:         "Prepare, inspect and reduce API definitions",
		Long:          "docsync loads OpenAPI, Swagger and Postman definitions, validates them, converts them to OpenAPI 3 and bundles external references.",
		Version:       docsync.Version(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default is .docsync.yaml in the working directory or $HOME)")
	flags.Bool("debug", false, "If set, outputs detailed information for debugging.")
	flags.Bool("no-color", false, "Disable colored output.")
	flags.Int64("max-file-size", loader.DefaultMaxFileSize, "Maximum size in bytes of a definition or referenced document.")
	flags.Bool("http-refs", true, "Resolve http(s) references when bundling.")
	bindFlags(flags, "debug", "no-color", "max-file-size", "http-refs")

	root.AddCommand(newOpenAPICommand(a))
	root.AddCommand(newMCPCommand(a))
	return root
}

// bindFlags makes the named flags the highest-precedence source of the
// matching viper keys.
func bindFlags(fs *pflag.FlagSet, names ...string) {
	for _, name := range names {
		_ = viper.BindPFlag(name, fs.Lookup(name))
	}
}

// setup loads configuration and builds the logger and fetcher.
func (a *app) setup() error {
	cfg, err := loadConfig(viper.GetViper(), a.configFile)
	if err != nil {
		return CommandError{Err: err}
	}
	a.cfg = cfg

	if cfg.NoColor {
		printer.SwitchToPlain()
	}

	l := log.New()
	l.SetOutput(a.stderr)
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true, DisableColors: cfg.NoColor})
	l.SetLevel(log.WarnLevel)
	if cfg.Debug {
		l.SetLevel(log.DebugLevel)
	}
	a.logger = logging.NewLogrusAdapter(l)

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = docsync.UserAgent()
	}
	if a.fetcher == nil {
		a.fetcher = loader.NewHTTPFetcher(loader.WithUserAgent(userAgent))
	}
	if a.env == nil {
		a.env = loader.NewTerminalEnvironment()
	}
	return nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

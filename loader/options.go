package loader

import (
	"fmt"
	"io/fs"

	"github.com/docsync/docsync/logging"
)

// DefaultMaxFileSize is the largest definition read from disk or the network.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// config holds the collaborators shared by Discover, Resolve and Load.
type config struct {
	fsys        fs.FS
	fetcher     Fetcher
	prompter    Prompter
	env         Environment
	logger      logging.Logger
	notify      func(msg string)
	maxFileSize int64
}

// Option configures Discover, Resolve and Load.
type Option func(*config) error

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		logger:      logging.NopLogger{},
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.fetcher == nil {
		cfg.fetcher = NewHTTPFetcher()
	}
	if cfg.env == nil {
		cfg.env = NewTerminalEnvironment()
	}
	if cfg.prompter == nil {
		cfg.prompter = SurveyPrompter{}
	}
	if cfg.notify == nil {
		logger := cfg.logger
		cfg.notify = func(msg string) { logger.Info(msg) }
	}
	return cfg, nil
}

// WithFileSystem reads files from fsys instead of the operating system.
// Paths are then interpreted relative to the root of fsys.
func WithFileSystem(fsys fs.FS) Option {
	return func(c *config) error {
		c.fsys = fsys
		return nil
	}
}

// WithFetcher sets the network collaborator used for URL sources.
func WithFetcher(f Fetcher) Option {
	return func(c *config) error {
		c.fetcher = f
		return nil
	}
}

// WithPrompter sets the collaborator asked to choose between several
// discovered definitions.
func WithPrompter(p Prompter) Option {
	return func(c *config) error {
		c.prompter = p
		return nil
	}
}

// WithEnvironment sets how interactivity is detected.
func WithEnvironment(e Environment) Option {
	return func(c *config) error {
		c.env = e
		return nil
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l logging.Logger) Option {
	return func(c *config) error {
		c.logger = logging.OrNop(l)
		return nil
	}
}

// WithNotifier sets the function receiving user-facing notices, such as the
// definition chosen automatically by Resolve. Defaults to Logger.Info.
func WithNotifier(fn func(msg string)) Option {
	return func(c *config) error {
		c.notify = fn
		return nil
	}
}

// WithMaxFileSize limits how many bytes a definition may have.
func WithMaxFileSize(n int64) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("loader: max file size must be positive, got %d", n)
		}
		c.maxFileSize = n
		return nil
	}
}

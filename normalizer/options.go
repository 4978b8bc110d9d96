package normalizer

import (
	"fmt"

	"github.com/docsync/docsync/loader"
	"github.com/docsync/docsync/logging"
)

// Option is a function that configures a Prepare call
type Option func(*prepareConfig) error

// prepareConfig holds configuration for a Prepare call
type prepareConfig struct {
	renameTitle string
	bundle      bool
	httpRefs    bool
	strictMode  bool
	fetcher     loader.Fetcher
	logger      logging.Logger
	maxFileSize int64
	loaderOpts  []loader.Option
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*prepareConfig, error) {
	cfg := &prepareConfig{
		httpRefs: true,
		logger:   logging.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loaderOptions returns the options shared by the Load stage and by the
// bundler when it reads external documents.
func (cfg *prepareConfig) loaderOptions() []loader.Option {
	opts := []loader.Option{loader.WithLogger(cfg.logger)}
	if cfg.fetcher != nil {
		opts = append(opts, loader.WithFetcher(cfg.fetcher))
	}
	if cfg.maxFileSize > 0 {
		opts = append(opts, loader.WithMaxFileSize(cfg.maxFileSize))
	}
	return append(opts, cfg.loaderOpts...)
}

// WithRenameTitle overwrites info.title of the prepared document
func WithRenameTitle(title string) Option {
	return func(cfg *prepareConfig) error {
		cfg.renameTitle = title
		return nil
	}
}

// WithBundle enables or disables inlining of external references
// Default: false
func WithBundle(enabled bool) Option {
	return func(cfg *prepareConfig) error {
		cfg.bundle = enabled
		return nil
	}
}

// WithHTTPRefs enables or disables following http(s) references while bundling
// Default: true
func WithHTTPRefs(enabled bool) Option {
	return func(cfg *prepareConfig) error {
		cfg.httpRefs = enabled
		return nil
	}
}

// WithStrictMode enables validator checks beyond the format requirements
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *prepareConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithFetcher sets the network collaborator for URL sources and remote references
func WithFetcher(f loader.Fetcher) Option {
	return func(cfg *prepareConfig) error {
		if f == nil {
			return fmt.Errorf("fetcher cannot be nil")
		}
		cfg.fetcher = f
		return nil
	}
}

// WithLogger sets the logger for debug output
func WithLogger(l logging.Logger) Option {
	return func(cfg *prepareConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}

// WithMaxFileSize limits the size of the definition and of every external document
// Default: loader.DefaultMaxFileSize
func WithMaxFileSize(n int64) Option {
	return func(cfg *prepareConfig) error {
		if n <= 0 {
			return fmt.Errorf("max file size must be positive, got %d", n)
		}
		cfg.maxFileSize = n
		return nil
	}
}

// WithLoaderOptions passes additional options to the loader, such as
// loader.WithFileSystem
func WithLoaderOptions(opts ...loader.Option) Option {
	return func(cfg *prepareConfig) error {
		cfg.loaderOpts = append(cfg.loaderOpts, opts...)
		return nil
	}
}

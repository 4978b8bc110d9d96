package bundler

import (
	"context"
	"fmt"
	"time"

	"github.com/docsync/docsync/loader"
	"github.com/docsync/docsync/logging"
)

const (
	// DefaultMaxRefDepth is the maximum nesting of external references.
	DefaultMaxRefDepth = 100

	// DefaultMaxDocuments is the maximum number of external documents read
	// during a single Bundle call.
	DefaultMaxDocuments = 100

	// DefaultCacheTTL is how long a fetched URL stays cached. Files are
	// cached for the whole run.
	DefaultCacheTTL = 5 * time.Minute
)

// DocumentReader reads the raw bytes of a path or URL.
// *loader.Reader satisfies it.
type DocumentReader interface {
	Read(ctx context.Context, locator string) ([]byte, error)
}

// Option is a function that configures a bundle operation
type Option func(*bundleConfig) error

// bundleConfig holds configuration for a bundle operation
type bundleConfig struct {
	reader       DocumentReader
	loaderOpts   []loader.Option
	logger       logging.Logger
	httpRefs     bool
	maxDepth     int
	maxDocuments int
	cacheTTL     time.Duration
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*bundleConfig, error) {
	cfg := &bundleConfig{
		logger:       logging.NopLogger{},
		httpRefs:     true,
		maxDepth:     DefaultMaxRefDepth,
		maxDocuments: DefaultMaxDocuments,
		cacheTTL:     DefaultCacheTTL,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.reader == nil {
		r, err := loader.NewReader(cfg.loaderOpts...)
		if err != nil {
			return nil, fmt.Errorf("bundler: creating reader: %w", err)
		}
		cfg.reader = r
	}
	return cfg, nil
}

// WithReader sets the reader used for external documents
func WithReader(r DocumentReader) Option {
	return func(cfg *bundleConfig) error {
		if r == nil {
			return fmt.Errorf("reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithLoaderOptions configures the default loader.Reader. Ignored when
// WithReader is also given.
func WithLoaderOptions(opts ...loader.Option) Option {
	return func(cfg *bundleConfig) error {
		cfg.loaderOpts = append(cfg.loaderOpts, opts...)
		return nil
	}
}

// WithLogger sets the logger for debug output
func WithLogger(l logging.Logger) Option {
	return func(cfg *bundleConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}

// WithHTTPRefs enables or disables references to http(s) URLs
// Default: true
func WithHTTPRefs(enabled bool) Option {
	return func(cfg *bundleConfig) error {
		cfg.httpRefs = enabled
		return nil
	}
}

// WithMaxRefDepth sets the maximum nesting of external references
// Default: 100
func WithMaxRefDepth(depth int) Option {
	return func(cfg *bundleConfig) error {
		if depth <= 0 {
			return fmt.Errorf("max ref depth must be positive, got %d", depth)
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithMaxDocuments sets the maximum number of external documents read
// Default: 100
func WithMaxDocuments(n int) Option {
	return func(cfg *bundleConfig) error {
		if n <= 0 {
			return fmt.Errorf("max documents must be positive, got %d", n)
		}
		cfg.maxDocuments = n
		return nil
	}
}

// WithCacheTTL sets how long fetched URLs stay cached
// Default: 5 minutes
func WithCacheTTL(ttl time.Duration) Option {
	return func(cfg *bundleConfig) error {
		if ttl <= 0 {
			return fmt.Errorf("cache TTL must be positive, got %s", ttl)
		}
		cfg.cacheTTL = ttl
		return nil
	}
}

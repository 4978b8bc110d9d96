package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/docsync/docsync/internal/fileutil"
	"github.com/docsync/docsync/internal/options"
	"github.com/docsync/docsync/loader"
	"github.com/docsync/docsync/normalizer"
)

// specInput represents the three ways a definition can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI, Swagger or Postman file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a definition from"`
	Content string `json:"content,omitempty" jsonschema:"Inline definition content (JSON or YAML)"`
}

// prepareSettings are the pipeline switches that change a prepared result
// and therefore take part in the cache key.
type prepareSettings struct {
	bundle bool
	strict bool
}

// specCache holds prepared definitions for the session. File entries are
// keyed by absolute path and modification time, content entries by a
// SHA-256 hash and URL entries by the URL. go-cache's janitor removes
// expired entries every CacheSweepInterval.
var specCache = cache.New(cfg.CacheFileTTL, cfg.CacheSweepInterval)

// makeCacheKey creates a cache key for the given spec input. It returns the
// empty string when the input cannot be cached.
func makeCacheKey(s specInput, settings prepareSettings) string {
	suffix := fmt.Sprintf("|bundle=%t|strict=%t", settings.bundle, settings.strict)
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano()) + suffix
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:]) + suffix
	case s.URL != "":
		return "url:" + s.URL + suffix
	default:
		return ""
	}
}

func (s specInput) ttl() time.Duration {
	switch {
	case s.File != "":
		return cfg.CacheFileTTL
	case s.URL != "":
		return cfg.CacheURLTTL
	default:
		return cfg.CacheContentTTL
	}
}

// resolve runs the normalization pipeline on whichever input was provided,
// using the cache when enabled. Only successful results are cached.
func (s specInput) resolve(ctx context.Context, settings prepareSettings) (*normalizer.Result, error) {
	if err := options.ValidateSingleInputSource("spec", s.File != "", s.URL != "", s.Content != ""); err != nil {
		return nil, err
	}

	// Enforce inline content size limit.
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set DOCSYNC_MCP_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s, settings)
	}
	if key != "" {
		if cached, ok := specCache.Get(key); ok {
			return cached.(*normalizer.Result), nil
		}
	}

	opts := []normalizer.Option{
		normalizer.WithBundle(settings.bundle),
		normalizer.WithStrictMode(settings.strict),
		normalizer.WithHTTPRefs(cfg.BundleHTTPRefs),
		normalizer.WithFetcher(newFetcher()),
	}

	var (
		result *normalizer.Result
		err    error
	)
	switch {
	case s.Content != "":
		result, err = prepareContent(ctx, s.Content, opts)
	case s.URL != "":
		result, err = normalizer.Prepare(ctx, loader.NewSourceDescriptor(s.URL), opts...)
	default:
		result, err = normalizer.Prepare(ctx, loader.NewSourceDescriptor(s.File), opts...)
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		specCache.Set(key, result, s.ttl())
	}
	return result, nil
}

// prepareContent runs the pipeline on inline content through a temporary
// file, so relative references resolve inside a private directory.
func prepareContent(ctx context.Context, content string, opts []normalizer.Option) (*normalizer.Result, error) {
	dir, err := os.MkdirTemp("", "docsync-mcp-")
	if err != nil {
		return nil, fmt.Errorf("creating temporary directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "inline")
	if err := os.WriteFile(path, []byte(content), fileutil.DefinitionMode); err != nil {
		return nil, fmt.Errorf("writing inline content: %w", err)
	}
	return normalizer.Prepare(ctx, loader.NewSourceDescriptor(path), opts...)
}

// newFetcher returns the fetcher used for URL inputs and remote references.
// Unless private IPs are allowed it refuses private, loopback and
// link-local destinations.
func newFetcher() loader.Fetcher {
	if cfg.AllowPrivateIPs {
		return loader.NewHTTPFetcher()
	}
	return loader.NewHTTPFetcher(loader.WithHTTPClient(newSafeHTTPClient()))
}

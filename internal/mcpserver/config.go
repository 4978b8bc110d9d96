package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// List tool defaults.
	ListLimit int
	MaxLimit  int

	// Validate tool defaults.
	ValidateStrict     bool
	ValidateNoWarnings bool

	// Input limits and network policy.
	MaxInlineSize   int64
	AllowPrivateIPs bool
	BundleHTTPRefs  bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from DOCSYNC_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("DOCSYNC_MCP_CACHE_ENABLED", true),
		CacheFileTTL:       envDuration("DOCSYNC_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("DOCSYNC_MCP_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("DOCSYNC_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("DOCSYNC_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envInt("DOCSYNC_MCP_LIST_LIMIT", 100),
		MaxLimit:           envInt("DOCSYNC_MCP_MAX_LIMIT", 1000),
		ValidateStrict:     envBool("DOCSYNC_MCP_VALIDATE_STRICT", false),
		ValidateNoWarnings: envBool("DOCSYNC_MCP_VALIDATE_NO_WARNINGS", false),
		MaxInlineSize:      int64(envInt("DOCSYNC_MCP_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("DOCSYNC_MCP_ALLOW_PRIVATE_IPS", false),
		BundleHTTPRefs:     envBool("DOCSYNC_MCP_BUNDLE_HTTP_REFS", true),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

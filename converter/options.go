package converter

// Option is a function that configures a conversion operation
type Option func(*convertConfig) error

// convertConfig holds configuration for a conversion operation
type convertConfig struct {
	includeInfo bool
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*convertConfig, error) {
	cfg := &convertConfig{includeInfo: true}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithIncludeInfo enables or disables informational messages
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *convertConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

package commands

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/docsync/docsync/loader"
)

const (
	configName = ".docsync"
	envPrefix  = "DOCSYNC"
)

// Config holds the settings shared by every command. Each key can come from
// a flag, a DOCSYNC_* environment variable or .docsync.yaml, in that order
// of precedence.
type Config struct {
	Debug       bool   `mapstructure:"debug"`
	NoColor     bool   `mapstructure:"no-color"`
	MaxFileSize int64  `mapstructure:"max-file-size"`
	HTTPRefs    bool   `mapstructure:"http-refs"`
	UserAgent   string `mapstructure:"user-agent"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("no-color", false)
	v.SetDefault("max-file-size", loader.DefaultMaxFileSize)
	v.SetDefault("http-refs", true)
	v.SetDefault("user-agent", "")
}

// loadConfig reads configuration into v. An explicit file must exist; the
// default .docsync.yaml in the working directory or $HOME is optional.
func loadConfig(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = loader.DefaultMaxFileSize
	}
	return &cfg, nil
}

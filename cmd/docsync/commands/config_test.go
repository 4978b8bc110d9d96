package commands

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsync/docsync/internal/testutil"
	"github.com/docsync/docsync/loader"
)

// clearEnv isolates config tests from DOCSYNC_* variables and ~/.docsync.yaml.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"DOCSYNC_DEBUG", "DOCSYNC_NO_COLOR", "DOCSYNC_MAX_FILE_SIZE", "DOCSYNC_HTTP_REFS", "DOCSYNC_USER_AGENT"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.NoColor)
	assert.Equal(t, loader.DefaultMaxFileSize, cfg.MaxFileSize)
	assert.True(t, cfg.HTTPRefs)
	assert.Empty(t, cfg.UserAgent)
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"docsync.yaml": "debug: true\nmax-file-size: 2048\nuser-agent: pets-ci\n",
	})

	cfg, err := loadConfig(viper.New(), filepath.Join(dir, "docsync.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, int64(2048), cfg.MaxFileSize)
	assert.Equal(t, "pets-ci", cfg.UserAgent)
	assert.True(t, cfg.HTTPRefs)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"docsync.yaml": "http-refs: true\nmax-file-size: 2048\n",
	})
	t.Setenv("DOCSYNC_HTTP_REFS", "false")
	t.Setenv("DOCSYNC_NO_COLOR", "true")

	cfg, err := loadConfig(viper.New(), filepath.Join(dir, "docsync.yaml"))
	require.NoError(t, err)
	assert.False(t, cfg.HTTPRefs)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, int64(2048), cfg.MaxFileSize)
}

func TestLoadConfig_HomeDirectory(t *testing.T) {
	clearEnv(t)
	home := testutil.WriteFiles(t, map[string]string{".docsync.yaml": "no-color: true\n"})
	t.Setenv("HOME", home)

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.True(t, cfg.NoColor)
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)
	dir := testutil.WriteFiles(t, map[string]string{"bad.yaml": "debug: [\n"})

	_, err := loadConfig(viper.New(), filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = loadConfig(viper.New(), filepath.Join(dir, "bad.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadConfig_NonPositiveMaxFileSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCSYNC_MAX_FILE_SIZE", "0")

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, loader.DefaultMaxFileSize, cfg.MaxFileSize)
}

package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsync/docsync"
	"github.com/docsync/docsync/internal/testutil"
	"github.com/docsync/docsync/loader"
)

const invalidDefinition = `openapi: 3.0.3
info:
  title: Broken
paths: {}
`

type cliResult struct {
	stdout string
	stderr string
	code   int
}

// runCLI runs the command line non-interactively with a clean viper and a
// HOME without a config file.
func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DOCSYNC_DEBUG", "")

	var stdout, stderr bytes.Buffer
	a := newApp(&stdout, &stderr)
	a.env = loader.StaticEnvironment(false)
	code := a.run(context.Background(), args)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func TestRun_Version(t *testing.T) {
	res := runCLI(t, "--version")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, docsync.Version())
}

func TestRun_UnknownFlagPrintsUsage(t *testing.T) {
	res := runCLI(t, "openapi", "validate", "--bogus")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "[ERROR] unknown flag: --bogus")
	assert.Contains(t, res.stderr, "Usage:")
	assert.Contains(t, res.stderr, "docsync openapi validate [file|url]")
}

func TestRun_TooManyArguments(t *testing.T) {
	res := runCLI(t, "openapi", "validate", "a.yaml", "b.yaml")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Usage:")
}

func TestRun_MissingConfigFile(t *testing.T) {
	res := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "openapi", "validate")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "failed to read config file")
	assert.NotContains(t, res.stderr, "Usage:")
}

func TestRun_DebugLogging(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"openapi.yaml": testutil.PetstoreOAS3})

	res := runCLI(t, "--debug", "openapi", "validate", filepath.Join(dir, "openapi.yaml"))
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "level=debug")
	assert.Contains(t, res.stderr, "preparing definition")

	res = runCLI(t, "openapi", "validate", filepath.Join(dir, "openapi.yaml"))
	require.Equal(t, 0, res.code, res.stderr)
	assert.NotContains(t, res.stderr, "level=debug")
}

func TestRun_ConfigFileSettings(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"openapi.yaml": testutil.PetstoreOAS3,
		"config.yaml":  "max-file-size: 64\n",
	})

	res := runCLI(t, "--config", filepath.Join(dir, "config.yaml"), "openapi", "validate", filepath.Join(dir, "openapi.yaml"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "exceeds")
}

func TestMain(m *testing.M) {
	// Commands read the working directory config; keep the tests away from it.
	dir, err := os.MkdirTemp("", "docsync-commands-")
	if err != nil {
		panic(err)
	}
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

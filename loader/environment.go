package loader

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// Environment reports whether the user can be prompted.
type Environment interface {
	IsInteractive() bool
}

// CIOverrideEnv forces CI detection on or off when set to a boolean.
const CIOverrideEnv = "DOCSYNC_CI"

// boolean variables set by CI providers
var ciBoolVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "TRAVIS", "BUILDKITE", "TF_BUILD"}

// variables whose mere presence means CI
var ciPresenceVars = []string{"JENKINS_URL"}

// IsCI reports whether getenv describes a CI environment.
func IsCI(getenv func(string) string) bool {
	if v, err := strconv.ParseBool(getenv(CIOverrideEnv)); err == nil {
		return v
	}
	for _, name := range ciBoolVars {
		if v, err := strconv.ParseBool(getenv(name)); err == nil && v {
			return true
		}
	}
	for _, name := range ciPresenceVars {
		if getenv(name) != "" {
			return true
		}
	}
	return false
}

// TerminalEnvironment is interactive when stdin is a terminal and no CI
// provider is detected.
type TerminalEnvironment struct {
	Stdin  *os.File
	Getenv func(string) string
}

// NewTerminalEnvironment inspects the process stdin and environment.
func NewTerminalEnvironment() TerminalEnvironment {
	return TerminalEnvironment{Stdin: os.Stdin, Getenv: os.Getenv}
}

// IsInteractive implements Environment.
func (e TerminalEnvironment) IsInteractive() bool {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if IsCI(getenv) {
		return false
	}
	if e.Stdin == nil {
		return false
	}
	return term.IsTerminal(int(e.Stdin.Fd()))
}

// StaticEnvironment is an Environment with a fixed answer.
type StaticEnvironment bool

// IsInteractive implements Environment.
func (s StaticEnvironment) IsInteractive() bool { return bool(s) }

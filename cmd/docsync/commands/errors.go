package commands

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/docsync/docsync/oaserrors"
)

// ExitError makes the process exit with ExitCode after Err is printed.
type ExitError struct {
	ExitCode int
	Err      error
}

func (ee ExitError) Error() string {
	return fmt.Sprintf("exit with code %d: %v", ee.ExitCode, ee.Err)
}

// github.com/pkg/errors causer interface
func (ee ExitError) Cause() error {
	return ee.Err
}

func (ee ExitError) Unwrap() error {
	return ee.Err
}

// CommandError marks a failure of the work a command does, as opposed to a
// mistake in how it was invoked. Usage is not printed for it.
type CommandError struct {
	Err error
}

func (c CommandError) Error() string {
	return c.Err.Error()
}

// github.com/pkg/errors causer interface
func (c CommandError) Cause() error {
	return c.Err
}

func (c CommandError) Unwrap() error {
	return c.Err
}

// failed classifies err returned by the library. Usage errors are returned
// unchanged so that usage gets printed.
func failed(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, oaserrors.ErrUsage) {
		return err
	}
	return CommandError{Err: errors.Wrap(err, message)}
}

// exitCode returns the process exit code for err.
func exitCode(err error) int {
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}
	return 1
}

// showUsage reports whether usage should follow the error message.
func showUsage(err error) bool {
	var cmdErr CommandError
	if errors.As(err, &cmdErr) {
		return false
	}
	var exitErr ExitError
	return !errors.As(err, &exitErr)
}

package cli

import "fmt"

// Exit codes for the wafctl CLI. These codes support programmatic composition
// and CI integration.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitValidationFailed indicates at least one document produced errors.
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 3

	// ExitBadConfiguration indicates a missing or malformed template or
	// allow-list file.
	ExitBadConfiguration = 4
)

// exitError carries an exit code through cobra's error return path without any
// extra message; the command has already printed its report.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// IsExitError reports whether err is a bare exit-code error.
func IsExitError(err error) bool {
	_, ok := err.(*exitError)
	return ok
}

// ExitCode returns the exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if e, ok := err.(*exitError); ok {
		return e.code
	}
	return ExitBadConfiguration
}

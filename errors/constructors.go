package errors

import (
	"fmt"
	"strings"
)

// CommandNotFound creates an error for a target command missing from PATH
func CommandNotFound(name string, err error) *MockError {
	return Wrap(err, ErrCodeCommandNotFound, fmt.Sprintf("command not found on PATH: %s", name)).
		WithDetail("command", name)
}

// CommandExecution creates an error for a child that terminated abnormally,
// e.g. killed by a signal before producing an exit code.
func CommandExecution(argv []string, err error) *MockError {
	return Wrap(err, ErrCodeCommandExecution, fmt.Sprintf("command terminated abnormally: %s", strings.Join(argv, " "))).
		WithDetail("invocation", strings.Join(argv, " "))
}

// CommandTimeout creates an error for a target command exceeding the capture timeout
func CommandTimeout(argv []string, timeout string) *MockError {
	return New(ErrCodeCommandTimeout,
		fmt.Sprintf("command did not finish within %s: %s", timeout, strings.Join(argv, " "))).
		WithDetail("invocation", strings.Join(argv, " ")).
		WithDetail("timeout", timeout)
}

// UnsupportedOutput creates an error for captured output that cannot be
// embedded in a mock script. The offset points at the first offending byte.
func UnsupportedOutput(reason string, offset int) *MockError {
	return New(ErrCodeUnsupportedOutput, fmt.Sprintf("captured output is not printable text: %s", reason)).
		WithDetail("offset", offset)
}

// WriteFailure creates an error for a mock artifact that could not be written
func WriteFailure(path string, err error) *MockError {
	return Wrap(err, ErrCodeWriteFailure, fmt.Sprintf("failed to write mock script: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *MockError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// InvalidInput creates an error for unusable generator input
func InvalidInput(reason string) *MockError {
	return New(ErrCodeInvalidInput, reason)
}

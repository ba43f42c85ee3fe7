package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mcostanzo/cmdmock/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeCommandNotFound:
		if mockErr, ok := err.(*errors.MockError); ok {
			fmt.Fprintf(h.Out, "❌ Command '%s' not found on PATH\n", mockErr.Details["command"])
			fmt.Fprintf(h.Out, "Check the spelling, or give the full path to the command.\n")
		}
		return err

	case errors.ErrCodeCommandTimeout:
		if mockErr, ok := err.(*errors.MockError); ok {
			fmt.Fprintf(h.Out, "❌ Command did not finish within %s\n", mockErr.Details["timeout"])
			fmt.Fprintf(h.Out, "Raise the limit with --timeout if the command is just slow.\n")
		}
		return err

	case errors.ErrCodeUnsupportedOutput:
		fmt.Fprintf(h.Out, "❌ Captured output contains non-printable bytes and cannot be mocked\n")
		fmt.Fprintf(h.Out, "cmdmock only supports commands that print plain text.\n")
		return err

	case errors.ErrCodeWriteFailure:
		if mockErr, ok := err.(*errors.MockError); ok {
			fmt.Fprintf(h.Out, "❌ Could not write mock script to %s\n", mockErr.Details["path"])
			fmt.Fprintf(h.Out, "Check directory permissions, or pick another directory with --output-dir.\n")
		}
		return err

	case errors.ErrCodeCommandExecution:
		fmt.Fprintf(h.Out, "❌ Command terminated abnormally; there is no exit status to replay\n")
		return err

	case errors.ErrCodeInvalidInput:
		if mockErr, ok := err.(*errors.MockError); ok {
			fmt.Fprintf(h.Out, "❌ %s\n", mockErr.Message)
		}
		fmt.Fprintf(h.Out, "Usage: cmdmock <command> [args...]\n")
		return err

	default:
		fmt.Fprintf(h.Out, "❌ Error: %v\n", err)

		if h.Verbose {
			if mockErr, ok := err.(*errors.MockError); ok {
				fmt.Fprintf(h.Out, "\nError details:\n%s\n", mockErr.ToJSON())
			}
		}
		return err
	}
}

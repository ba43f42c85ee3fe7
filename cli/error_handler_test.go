package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/mcostanzo/cmdmock/errors"
	"github.com/stretchr/testify/require"
)

func handleToString(t *testing.T, verbose bool, err error) string {
	t.Helper()

	var buf bytes.Buffer
	h := &ErrorHandler{Verbose: verbose, Out: &buf}
	returned := h.Handle(err)
	require.Equal(t, err, returned, "Handle must pass the error through")
	return buf.String()
}

func TestHandleCommandNotFound(t *testing.T) {
	err := errors.CommandNotFound("frobnicate", fmt.Errorf("not found"))
	out := handleToString(t, false, err)
	require.Contains(t, out, "frobnicate")
	require.Contains(t, out, "not found on PATH")
}

func TestHandleTimeout(t *testing.T) {
	err := errors.CommandTimeout([]string{"sleep", "600"}, "2m0s")
	out := handleToString(t, false, err)
	require.Contains(t, out, "2m0s")
	require.Contains(t, out, "--timeout")
}

func TestHandleUnsupportedOutput(t *testing.T) {
	err := errors.UnsupportedOutput("control character '\\x07'", 3)
	out := handleToString(t, false, err)
	require.Contains(t, out, "non-printable")
}

func TestHandleWriteFailure(t *testing.T) {
	err := errors.WriteFailure("/ro/ls", fmt.Errorf("permission denied"))
	out := handleToString(t, false, err)
	require.Contains(t, out, "/ro/ls")
	require.Contains(t, out, "--output-dir")
}

func TestHandleInvalidInput(t *testing.T) {
	err := errors.InvalidInput("no command specified")
	out := handleToString(t, false, err)
	require.Contains(t, out, "no command specified")
	require.Contains(t, out, "Usage: cmdmock <command> [args...]")
}

func TestHandleGenericVerbose(t *testing.T) {
	err := errors.New(errors.ErrCodeInternal, "something broke").WithDetail("hint", "none")
	out := handleToString(t, true, err)
	require.Contains(t, out, "something broke")
	require.Contains(t, out, "Error details")
}

func TestHandleGenericNonVerbose(t *testing.T) {
	err := fmt.Errorf("plain error")
	out := handleToString(t, false, err)
	require.Contains(t, out, "plain error")
	require.NotContains(t, out, "Error details")
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mcostanzo/cmdmock/cli"
	"github.com/mcostanzo/cmdmock/errors"
	"github.com/mcostanzo/cmdmock/testutil"
	"github.com/stretchr/testify/require"
)

func TestRootCmdFlags(t *testing.T) {
	cmd := NewRootCmd()

	require.NotNil(t, cmd.Flags().Lookup("output-dir"))
	require.NotNil(t, cmd.Flags().Lookup("timeout"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("json"))

	// Target-command flags must pass through untouched.
	require.NoError(t, cmd.Flags().Parse([]string{"echo", "-n", "hi"}))
	require.Equal(t, []string{"echo", "-n", "hi"}, cmd.Flags().Args())
}

func TestRootCmdRequiresTarget(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

// Errors that never reach RunE, like a missing target or an unknown flag,
// must still end up as a message on stderr via the handler main wires up.
func TestRootCmdPreRunErrorsAreReported(t *testing.T) {
	for _, args := range [][]string{{}, {"--bogus-flag", "echo"}} {
		cmd := NewRootCmd()
		cmd.SetArgs(args)

		err := cmd.Execute()
		require.Error(t, err, "args %v", args)

		var buf bytes.Buffer
		h := &cli.ErrorHandler{Out: &buf}
		h.Handle(err)
		require.NotEmpty(t, buf.String(), "args %v must produce a message", args)
	}
}

func TestRootCmdGeneratesMock(t *testing.T) {
	testutil.RequireShell(t)
	dir := t.TempDir()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--output-dir", dir, "echo", "hello"})
	require.NoError(t, cmd.Execute())

	path := filepath.Join(dir, "echo")
	require.FileExists(t, path)

	out, code := testutil.RunScript(t, path, "ignored", "args")
	require.Equal(t, "hello\n", out)
	require.Equal(t, 0, code)
}

func TestRootCmdUnknownCommand(t *testing.T) {
	dir := t.TempDir()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--output-dir", dir, "cmdmock-no-such-command-xyzzy"})
	require.Error(t, cmd.Execute())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRootCmdHasVersionSubcommand(t *testing.T) {
	cmd := NewRootCmd()
	sub, _, err := cmd.Find([]string{"version"})
	require.NoError(t, err)
	require.Equal(t, "version", sub.Name())
}

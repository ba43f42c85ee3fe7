package testutil

import (
	"bytes"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireShell skips the test if no POSIX shell is available
func RequireShell(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("POSIX shell not available")
	}
}

// WriteFakeCommand creates an executable shell script named name in dir and
// returns its path. Useful for putting predictable targets on a private PATH.
func WriteFakeCommand(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

// RunScript executes a generated mock script with the given arguments and
// returns its stdout and exit code.
func RunScript(t *testing.T, path string, args ...string) (string, int) {
	t.Helper()

	cmd := exec.Command(path, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) {
			t.Fatalf("failed to run script %s: %v", path, err)
		}
		exitCode = exitErr.ExitCode()
	}

	return stdout.String(), exitCode
}

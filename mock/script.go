package mock

import (
	"bytes"
	"fmt"
	"os"
	"os/user"
	"strings"
	"text/template"

	"github.com/mcostanzo/cmdmock/command"
	"github.com/mcostanzo/cmdmock/errors"
	"github.com/mcostanzo/cmdmock/version"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultShell is the interpreter used for generated mock scripts.
const DefaultShell = "/bin/sh"

// scriptTemplate is the fixed shape of every generated mock: print the
// canned output, exit with the canned status. Arguments are deliberately
// ignored so the mock can stand in for the real command transparently.
const scriptTemplate = `#!{{.Shell}}
# Code generated by cmdmock {{.Version}} on {{.Date}} by {{.Caller}}. DO NOT EDIT.
# Source invocation: {{.Invocation}}
printf '%s' {{.QuotedOutput}}
exit {{.ExitCode}}
`

var tmpl = template.Must(template.New("mock").Parse(scriptTemplate))

// Renderer turns a capture into mock script text.
type Renderer struct {
	// Shell is the interpreter path placed on the shebang line.
	Shell string
}

// NewRenderer creates a Renderer using DefaultShell.
func NewRenderer() *Renderer {
	return &Renderer{Shell: DefaultShell}
}

// Render produces the complete mock script for a capture. The captured
// output is shell-quoted so that quotes, backslashes, dollar signs,
// backticks, and newlines replay byte-for-byte. The rendered script is
// parsed before being returned; text that does not parse as POSIX shell
// never leaves this function.
func (r *Renderer) Render(cap *command.Capture) (string, error) {
	quoted, err := syntax.Quote(string(cap.Output), syntax.LangPOSIX)
	if err != nil {
		return "", errors.UnsupportedOutput(err.Error(), 0)
	}

	shell := r.Shell
	if shell == "" {
		shell = DefaultShell
	}

	var buf bytes.Buffer
	data := struct {
		Shell        string
		Version      string
		Date         string
		Caller       string
		Invocation   string
		QuotedOutput string
		ExitCode     int
	}{
		Shell:        shell,
		Version:      version.Version,
		Date:         cap.CapturedAt.Format("2006-01-02"),
		Caller:       callerID(),
		Invocation:   sanitizeHeader(cap.Invocation()),
		QuotedOutput: quoted,
		ExitCode:     cap.ExitCode,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to render mock script template")
	}

	text := buf.String()
	if _, err := syntax.NewParser().Parse(strings.NewReader(text), "mock.sh"); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "rendered mock script is not valid shell")
	}

	return text, nil
}

// callerID returns user@host for the provenance header, mirroring what the
// generated script records about who produced it.
func callerID() string {
	username := "unknown"
	if u, err := user.Current(); err == nil {
		username = u.Username
	}
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s@%s", username, host)
}

// sanitizeHeader keeps header comment lines single-line. Control characters
// in an argument would otherwise break out of the comment.
func sanitizeHeader(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, s)
}

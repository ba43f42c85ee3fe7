package command

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/mcostanzo/cmdmock/config"
	"github.com/mcostanzo/cmdmock/errors"
	"github.com/mcostanzo/cmdmock/logging"
	"github.com/sirupsen/logrus"
)

// MaxTimeout is the maximum allowed capture timeout
const MaxTimeout = 10 * time.Minute

// Capture is the result of running the target command once: the bytes it
// wrote to stdout and the exit status it terminated with.
type Capture struct {
	// Argv is the command and arguments exactly as invoked.
	Argv []string

	// Output is the captured standard output. Guaranteed printable text.
	Output []byte

	// ExitCode is the numeric exit status of the target command.
	ExitCode int

	// CapturedAt records when the capture was taken.
	CapturedAt time.Time
}

// Invocation returns the capture's command line as a single string.
func (c *Capture) Invocation() string {
	return strings.Join(c.Argv, " ")
}

// Capturer runs a target command once and records its observable behavior.
type Capturer struct {
	executor Executor
	timeout  time.Duration
	logger   *logrus.Entry
}

// NewCapturer creates a Capturer with a RealExecutor and the default timeout
func NewCapturer() *Capturer {
	return NewCapturerWithExecutor(&RealExecutor{})
}

// NewCapturerWithExecutor creates a Capturer with a custom Executor
func NewCapturerWithExecutor(exec Executor) *Capturer {
	return &Capturer{
		executor: exec,
		timeout:  config.DefaultTimeout,
		logger:   logging.NewLogger("capture"),
	}
}

// WithTimeout sets a custom capture timeout, capped at MaxTimeout.
func (c *Capturer) WithTimeout(timeout time.Duration) *Capturer {
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}
	if timeout > 0 {
		c.timeout = timeout
	}
	return c
}

// Run executes argv[0] with the remaining arguments, waits for it to
// terminate, and returns the captured stdout and exit status. A non-zero
// exit is a valid capture; abnormal termination is not. Stderr is
// intentionally discarded: the mock replays a single output stream.
func (c *Capturer) Run(ctx context.Context, argv []string) (*Capture, error) {
	if len(argv) == 0 {
		return nil, errors.InvalidInput("no command specified")
	}

	name := argv[0]
	if _, err := c.executor.LookPath(name); err != nil {
		return nil, errors.CommandNotFound(name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := c.executor.CommandContext(ctx, name, argv[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	c.logger.WithField("invocation", strings.Join(argv, " ")).Debug("Capturing command output")

	runErr := cmd.Run()
	capturedAt := time.Now()

	exitCode := 0
	if runErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.CommandTimeout(argv, c.timeout.String())
		}

		var exitErr *exec.ExitError
		if !stderrors.As(runErr, &exitErr) {
			return nil, errors.CommandExecution(argv, runErr)
		}

		exitCode = exitErr.ExitCode()
		if exitCode < 0 {
			// Killed by a signal; there is no exit status to replay.
			return nil, errors.CommandExecution(argv, runErr)
		}
	}

	output := stdout.Bytes()
	if err := ValidatePrintable(output); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"bytes":    len(output),
		"exitCode": exitCode,
	}).Debug("Capture complete")

	return &Capture{
		Argv:       argv,
		Output:     output,
		ExitCode:   exitCode,
		CapturedAt: capturedAt,
	}, nil
}

// ValidatePrintable checks that data can be embedded in a mock script as
// literal text: valid UTF-8 with no control characters other than newline,
// tab, and carriage return.
func ValidatePrintable(data []byte) error {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return errors.UnsupportedOutput(fmt.Sprintf("invalid UTF-8 byte 0x%02x", data[i]), i)
		}
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			return errors.UnsupportedOutput(fmt.Sprintf("control character %q", r), i)
		}
		i += size
	}
	return nil
}

package mock

import (
	"context"
	"path/filepath"
	"time"

	"github.com/mcostanzo/cmdmock/command"
	"github.com/mcostanzo/cmdmock/logging"
	"github.com/sirupsen/logrus"
)

// Options configures a generation run.
type Options struct {
	// OutputDir is where the mock script is written. Empty means the
	// current working directory.
	OutputDir string

	// Timeout bounds the capture of the target command. Zero means the
	// configured default.
	Timeout time.Duration

	// Shell is the interpreter line for the generated script. Empty means
	// DefaultShell.
	Shell string
}

// Generator runs the full capture-and-emit pipeline: execute the target
// command, embed its output in a script, write the script executable.
type Generator struct {
	capturer *command.Capturer
	renderer *Renderer
	writer   *Writer
	opts     Options
	logger   *logrus.Entry
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts Options) *Generator {
	return NewGeneratorWithExecutor(opts, &command.RealExecutor{})
}

// NewGeneratorWithExecutor creates a Generator using a custom Executor for
// the capture step.
func NewGeneratorWithExecutor(opts Options, exec command.Executor) *Generator {
	capturer := command.NewCapturerWithExecutor(exec)
	if opts.Timeout > 0 {
		capturer = capturer.WithTimeout(opts.Timeout)
	}

	renderer := NewRenderer()
	if opts.Shell != "" {
		renderer.Shell = opts.Shell
	}

	return &Generator{
		capturer: capturer,
		renderer: renderer,
		writer:   NewWriter(),
		opts:     opts,
		logger:   logging.NewLogger("generator"),
	}
}

// Generate captures argv's behavior and writes the replacement script,
// returning its path. The mock file is named after the base name of argv[0].
// Nothing is written unless the capture succeeded and rendered cleanly.
func (g *Generator) Generate(ctx context.Context, argv []string) (string, error) {
	cap, err := g.capturer.Run(ctx, argv)
	if err != nil {
		return "", err
	}

	text, err := g.renderer.Render(cap)
	if err != nil {
		return "", err
	}

	name := filepath.Base(cap.Argv[0])
	path, err := g.writer.Write(g.opts.OutputDir, name, text)
	if err != nil {
		return "", err
	}

	g.logger.WithFields(logrus.Fields{
		"invocation": cap.Invocation(),
		"path":       path,
		"exitCode":   cap.ExitCode,
	}).Info("Generated mock command")

	return path, nil
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/mcostanzo/cmdmock/cli"
	"github.com/mcostanzo/cmdmock/errors"
	"github.com/mcostanzo/cmdmock/mock"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the cmdmock root command. The root itself performs the
// capture-and-emit run: everything after the flags is the target command and
// its arguments, passed through unmodified.
func NewRootCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"cmdmock <command> [args...]",
		"Generate a mock script that replays a command's captured output",
	)
	cmd.Long = `cmdmock runs the given command once, captures its standard output and exit
status, and writes an executable shell script named after the command. The
generated script reproduces the captured output and exit status on every run,
ignoring any arguments, so code under test can call it in place of the real
command.`
	cmd.Example = `  cmdmock echo hello
  cmdmock --output-dir ./mocks git status
  cmdmock --timeout 30s curl https://example.com`

	cmd.Args = func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.InvalidInput("no command specified")
		}
		return nil
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.Flags().StringP("output-dir", "o", "", "Directory to write the mock script to (default: current directory)")
	cmd.Flags().Duration("timeout", 0, "Bound on how long the target command may run")

	// Everything after the target command name belongs to the target, not
	// to cmdmock.
	cmd.Flags().SetInterspersed(false)

	cmd.RunE = runGenerate

	cmd.AddCommand(cli.NewVersionCommand("cmdmock"))

	return cmd
}

// runGenerate returns errors unprinted; main routes everything that comes
// out of Execute, including flag and argument errors, through the handler.
func runGenerate(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)
	opts := cli.GetOptions(cmd)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		timeout = cfg.CaptureTimeout()
	}

	logger.WithField("invocation", args).Debug("Starting capture")

	gen := mock.NewGenerator(mock.Options{
		OutputDir: outputDir,
		Timeout:   timeout,
		Shell:     cfg.Shell,
	})

	path, err := gen.Generate(cmd.Context(), args)
	if err != nil {
		return err
	}

	if opts.JSONOutput {
		data, err := json.Marshal(struct {
			Path string `json:"path"`
		}{Path: path})
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(path)
	return nil
}

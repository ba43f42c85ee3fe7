package main

import (
	"os"

	"github.com/mcostanzo/cmdmock/cli"
	"github.com/mcostanzo/cmdmock/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		// Every failure, including flag and argument errors that never
		// reach RunE, gets a human-readable message on stderr.
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}

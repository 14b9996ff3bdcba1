package main

import (
	"os"

	"carve.dev/carve/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		cli.ReportError(nil, err)
		os.Exit(1)
	}
}

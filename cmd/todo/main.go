package main

import (
	"os"

	"github.com/idilsaglam/tasklist/internal/cli"
)

func main() {
	// Flags, subcommands and exit codes are handled by the CLI runner.
	code := cli.Run(os.Args[1:], cli.Options{
		Out: os.Stdout,
		Err: os.Stderr,
	})
	os.Exit(code)
}

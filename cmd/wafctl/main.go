package main

import (
	"fmt"
	"os"

	"github.com/cabberley/epic-waf-actions/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !cli.IsExitError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

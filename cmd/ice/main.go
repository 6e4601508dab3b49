package main

import (
	"os"

	"github.com/synbiotools/ice-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

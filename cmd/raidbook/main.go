// Package main is the entry point for the raidbook CLI.
package main

import (
	"os"

	"github.com/raidbook/raidbook/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

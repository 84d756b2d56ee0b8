// Package main is the entry point for the offsets CLI tool.
package main

import (
	"os"

	"github.com/savaki/offsets/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

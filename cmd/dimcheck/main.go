// Package main provides the dimcheck CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/dimcheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

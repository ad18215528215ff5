// Package main provides genfs, a manifest-driven file generator with a
// CI-safe drift check.
package main

import (
	"os"

	"genfs/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Stdout, os.Stderr, os.Args[1:]))
}

// Package main provides the entry point for the sourcecat CLI tool.
package main

import (
	"github.com/astrokit/sourcecat/cmd/sourcecat/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}

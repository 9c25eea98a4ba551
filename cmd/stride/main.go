// Package main is the single-binary entrypoint for Stride.
// Stride is a local-first reward engine for training activity — one
// binary, state in ~/.stride.
package main

import "github.com/stride-labs/stride/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}

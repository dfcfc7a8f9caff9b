// Package main is the entry point for the AutoMute menu bar app.
package main

import (
	"os"

	"github.com/automute/automute/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

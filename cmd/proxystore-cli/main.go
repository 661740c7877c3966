// Package main provides the entry point for proxystore-cli.
//
// proxystore-cli reads and writes the proxystore mechanisms from a shell,
// one tab per invocation, or interactively with the repl command:
//
//	proxystore-cli set theme '{"dark":true}' --json
//	proxystore-cli -m cookie set lang en --expires-days 30
//	proxystore-cli -o json get theme
//	proxystore-cli --tab work repl
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/proxystore/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

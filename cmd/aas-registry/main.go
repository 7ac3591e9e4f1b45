// Package main is the entry point for the aas-registry command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"aasregistry/internal/cli"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := cli.New(os.Stdin, os.Stdout, os.Stderr)
	app.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	err := app.Execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCode(err))
}

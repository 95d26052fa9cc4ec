// Package main provides the emutest CLI application, a conformance test
// runner for the rv64-emu emulator.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/RenzRoos/test/cmd/emutest/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	app := cli.NewApp()
	rootCmd := app.CreateRootCommand()

	err := rootCmd.ExecuteContext(ctx)
	stop()

	os.Exit(cli.HandleError(err, os.Stderr))
}

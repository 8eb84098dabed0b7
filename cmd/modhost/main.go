package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/modhost/internal/app"
	"github.com/vk/modhost/internal/cli"
	"github.com/vk/modhost/internal/loader"
)

// main is the entrypoint for the modhost binary.
func main() {
	// Minimal logger until the App configures the real one.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the program logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// A reference-count underflow panics by contract. Recover here so the
	// caller bug still terminates the process with a clean message.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "A critical error occurred: %v\n", r)
			os.Exit(1)
		}
	}()

	host, err := app.NewApp(outW, appConfig, loader.GoPluginOpener{})
	if err != nil {
		return err
	}
	return host.Run(context.Background())
}

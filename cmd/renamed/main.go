package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	renamed "github.com/renamed-to/renamed-go"
	"github.com/renamed-to/renamed-go/internal/cli"
)

// Injected at build time via ldflags.
var version = "dev"

const (
	exitOK        = 0
	exitGeneral   = 1
	exitAuth      = 3
	exitInterrupt = 130
)

func main() {
	// Load .env if present; a missing file is fine.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env := cli.DefaultEnv()
	rootCmd := cli.RootCmd(env, version)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, context.Canceled) {
		return exitInterrupt
	}
	if errors.Is(err, cli.ErrAPIKeyMissing) || errors.Is(err, renamed.ErrMissingAPIKey) {
		return exitAuth
	}
	var apiErr *renamed.APIError
	if errors.As(err, &apiErr) && apiErr.Kind == renamed.KindAuthentication {
		return exitAuth
	}
	return exitGeneral
}

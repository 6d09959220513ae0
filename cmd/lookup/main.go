// Command lookup searches customers by name from the terminal and prints
// their order history.
//
//	lookup lee          one search
//	lookup              interactive; one query per line until EOF or "quit"
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/orderlookup/internal/application"
	"github.com/JonMunkholm/orderlookup/internal/cli"
	"github.com/JonMunkholm/orderlookup/internal/config"
	"github.com/JonMunkholm/orderlookup/internal/core"
	"github.com/JonMunkholm/orderlookup/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Existing environment wins over .env for the terminal client.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration:", err)
		return cli.ExitError
	}

	// stdout carries results only.
	logging.SetupWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := application.New(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		slog.Debug("startup failed", "error", err)
		return cli.ExitError
	}
	defer app.Close()

	client := &cli.Client{Looker: app.Service, Out: os.Stdout}
	if err := client.Run(ctx, os.Stdin, os.Args[1:]); err != nil {
		slog.Debug("lookup failed", "error", err)
		return cli.Report(os.Stderr, err)
	}
	return 0
}

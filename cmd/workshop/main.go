// Package main is the entry point of the workshop crew CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
)

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("workshop"),
		kong.Description("Plan, research, write and review an AI workshop with a crew of four agents."),
		kong.UsageOnError(),
		kong.Vars{"default_topic": config.DefaultTopic},
	)
	logger := newLogger(cli.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	kctx.BindTo(ctx, (*context.Context)(nil))
	err := kctx.Run(&cli.Globals, logger)
	stop()
	kctx.FatalIfErrorf(err)
}

func newLogger(verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.Kitchen,
	}))
}

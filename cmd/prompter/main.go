package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/s33g/llm-prompter/internal/app"
	"github.com/s33g/llm-prompter/internal/config"
)

const usageText = `prompter sends zero-shot and multi-shot prompts to the OpenAI chat completions API.

Usage:
  prompter [-config path] <command> [flags] [args]

Commands:
  ask      Send text (args or stdin) as a zero-shot prompt
  fix      Ask the model to fix a source file
  weather  Generate a two-language weather statement from multi-shot examples
  watch    Re-run fix every time a source file is saved
  usage    Show the usage ledger for a day (no API token needed)

Flags:
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("prompter", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file (defaults are used when empty)")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}

	// Setup logger
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(cfg.Logging, os.Stderr).With().
		Str("component", "main").
		Str("run_id", uuid.NewString()).
		Logger()
	log.Logger = logger

	// Reading the ledger needs no API token
	var a *app.App
	if fs.Arg(0) == "usage" {
		a = app.NewLedger(ctx, cfg, logger)
	} else {
		a, err = app.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
	}
	defer a.Close()

	cmd := &commands{app: a, stdin: stdin, stdout: stdout, logger: logger}
	return cmd.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
}

// newLogger builds the root logger from the logging config
func newLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(level).With().Timestamp().Logger()
}

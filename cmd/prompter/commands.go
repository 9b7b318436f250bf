package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/s33g/llm-prompter/internal/app"
	"github.com/s33g/llm-prompter/internal/prompt"
	"github.com/s33g/llm-prompter/internal/topics"
	"github.com/s33g/llm-prompter/internal/usage"
	"github.com/s33g/llm-prompter/internal/watch"
)

type commands struct {
	app    *app.App
	stdin  io.Reader
	stdout io.Writer
	logger zerolog.Logger
}

func (c *commands) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "ask":
		return c.ask(ctx, args)
	case "fix":
		return c.fix(ctx, args)
	case "weather":
		return c.weather(ctx, args)
	case "watch":
		return c.watch(ctx, args)
	case "usage":
		return c.usage(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", name)
	}
}

// ask sends the arguments, or stdin when there are none, verbatim
func (c *commands) ask(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("ask: empty prompt")
	}

	return c.send(ctx, prompt.ZeroShot(text))
}

func (c *commands) fix(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fix", flag.ContinueOnError)
	lang := fs.String("lang", "rust", "Language of the source file")
	file := fs.String("file", "", "Source file to fix (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("fix: -file is required")
	}

	code, err := c.readSource(*file)
	if err != nil {
		return err
	}

	return c.send(ctx, prompt.ZeroShot(topics.FixCode(*lang, code)))
}

func (c *commands) weather(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("weather", flag.ContinueOnError)
	shots := fs.Int("shots", 3, "Number of worked examples (1-5)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	count, err := prompt.ParseExampleCount(*shots)
	if err != nil {
		return fmt.Errorf("weather: %w", err)
	}
	condition := strings.Join(fs.Args(), " ")
	if condition == "" {
		return fmt.Errorf("weather: a weather condition is required, e.g. \"it is -8c and snowing in Berlin\"")
	}

	p := prompt.MultiShot(topics.WeatherStatement(condition), topics.WeatherInTwoLanguages{}, count)
	return c.send(ctx, p)
}

func (c *commands) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	lang := fs.String("lang", "rust", "Language of the source file")
	file := fs.String("file", "", "Source file to watch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("watch: -file is required")
	}

	w, err := watch.New(*file, func(ctx context.Context, code string) {
		if err := c.send(ctx, prompt.ZeroShot(topics.FixCode(*lang, code))); err != nil {
			c.logger.Error().Err(err).Msg("Prompt failed")
		}
	}, c.logger)
	if err != nil {
		return err
	}

	return w.Run(ctx)
}

func (c *commands) usage(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("usage", flag.ContinueOnError)
	dateFlag := fs.String("date", time.Now().UTC().Format(usage.DateLayout), "Day to report (YYYY-MM-DD, UTC)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	date, err := time.Parse(usage.DateLayout, *dateFlag)
	if err != nil {
		return fmt.Errorf("usage: invalid date %q: %w", *dateFlag, err)
	}

	rows, err := c.app.Usage(ctx, date)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tREQUESTS\tPROMPT\tCOMPLETION\tTOTAL")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", row.Model, row.Requests, row.PromptTokens, row.CompletionTokens, row.TotalTokens())
	}
	return tw.Flush()
}

// send runs one prompt and prints the answer
func (c *commands) send(ctx context.Context, p prompt.Prompt) error {
	res, err := c.app.Ask(ctx, p)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.stdout, res.Answer.AnswerOr("NA"))
	return err
}

func (c *commands) readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read source file: %w", err)
	}
	return string(data), nil
}

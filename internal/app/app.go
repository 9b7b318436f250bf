package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/s33g/llm-prompter/internal/config"
	"github.com/s33g/llm-prompter/internal/llm"
	"github.com/s33g/llm-prompter/internal/prompt"
	"github.com/s33g/llm-prompter/internal/storage"
	"github.com/s33g/llm-prompter/internal/usage"
)

var (
	// ErrUsageDisabled is returned by Usage when no ledger is configured
	ErrUsageDisabled = errors.New("usage ledger is disabled")

	// ErrNoClient is returned by Ask on an app opened with NewLedger
	ErrNoClient = errors.New("no completion client configured")
)

// Completer is the part of the llm client the app depends on
type Completer interface {
	Complete(ctx context.Context, prompt string) (*llm.ChatResponse, error)
	Model() llm.Model
}

// Result is the outcome of a single prompt
type Result struct {
	Answer       *llm.SimplifiedResponse
	Response     *llm.ChatResponse
	PromptTokens int // estimated before sending
}

// App ties the client, the token counter and the optional usage ledger
// together for the command line
type App struct {
	client   Completer
	storage  *storage.Client
	recorder *usage.Recorder
	counter  *usage.TokenCounter
	logger   zerolog.Logger
}

// New creates a new app instance
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	client, err := llm.NewClient(cfg.OpenAI)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	a := NewWithClient(client, logger)
	a.connectLedger(ctx, cfg.Usage)

	return a, nil
}

// NewLedger creates an app that only reads the usage ledger. It needs no
// API token; Ask fails with ErrNoClient.
func NewLedger(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *App {
	a := &App{
		logger: logger.With().Str("component", "app").Logger(),
	}
	a.connectLedger(ctx, cfg.Usage)
	return a
}

// connectLedger attaches the Redis ledger when usage is enabled
func (a *App) connectLedger(ctx context.Context, cfg config.UsageConfig) {
	if !cfg.Enabled {
		return
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	storageClient, err := storage.NewClient(connectCtx, cfg.Redis)
	if err != nil {
		// Non-fatal - prompts still work without the ledger
		a.logger.Warn().Err(err).Msg("Failed to connect to Redis - usage ledger disabled")
		return
	}

	a.storage = storageClient
	a.recorder = usage.NewRecorder(storageClient, cfg.Retention())
}

// NewWithClient creates an app around an existing client without a ledger
func NewWithClient(client Completer, logger zerolog.Logger) *App {
	return &App{
		client:  client,
		counter: usage.NewTokenCounter(),
		logger:  logger.With().Str("component", "app").Logger(),
	}
}

// WithRecorder attaches a usage ledger
func (a *App) WithRecorder(rec *usage.Recorder) *App {
	a.recorder = rec
	return a
}

// Ask sends p and returns the simplified answer together with the raw reply
func (a *App) Ask(ctx context.Context, p prompt.Prompt) (*Result, error) {
	if a.client == nil {
		return nil, ErrNoClient
	}
	model := a.client.Model().String()
	promptTokens := a.counter.CountPrompt(p.Text(), model)

	a.logger.Debug().
		Str("kind", p.Kind().String()).
		Str("model", model).
		Int("estimated_prompt_tokens", promptTokens).
		Msg("Sending prompt")

	start := time.Now()
	resp, err := a.client.Complete(ctx, p.Text())
	if err != nil {
		return nil, err
	}

	answer, err := llm.Simplify(resp)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("id", resp.ID).
		Dur("latency", time.Since(start)).
		Int("total_tokens", resp.Usage.TotalTokens).
		Msg("Received completion")

	a.record(ctx, resp, promptTokens, *answer.Answer)

	return &Result{
		Answer:       answer,
		Response:     resp,
		PromptTokens: promptTokens,
	}, nil
}

// record writes usage to the ledger. Failures are logged, never returned.
func (a *App) record(ctx context.Context, resp *llm.ChatResponse, estimatedPrompt int, answer string) {
	if a.recorder == nil {
		return
	}

	entry := usage.Entry{
		Model:            resp.Model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}
	if entry.Model == "" {
		entry.Model = a.client.Model().String()
	}
	// Fall back to local counts when the reply carries no usage block
	if resp.Usage.TotalTokens == 0 {
		entry.PromptTokens = estimatedPrompt
		entry.CompletionTokens = a.counter.Count(answer, entry.Model)
	}

	if err := a.recorder.Record(ctx, entry); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to record usage")
	}
}

// Usage returns the ledger rows for date
func (a *App) Usage(ctx context.Context, date time.Time) ([]usage.ModelUsage, error) {
	if a.recorder == nil {
		return nil, ErrUsageDisabled
	}
	return a.recorder.Daily(ctx, date)
}

// Close releases the Redis connection, if any
func (a *App) Close() error {
	if a.storage == nil {
		return nil
	}
	return a.storage.Close()
}

// Package usage keeps a per-day ledger of completion requests and token
// consumption in Redis.
package usage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/s33g/llm-prompter/internal/storage"
)

// DateLayout is the day format used in ledger keys
const DateLayout = "2006-01-02"

const (
	counterRequests         = "requests"
	counterPromptTokens     = "prompt_tokens"
	counterCompletionTokens = "completion_tokens"
)

// Entry describes one completed request
type Entry struct {
	Model            string
	PromptTokens     int
	CompletionTokens int
	At               time.Time
}

// ModelUsage is the aggregated usage of one model for one day
type ModelUsage struct {
	Model            string
	Requests         int64
	PromptTokens     int64
	CompletionTokens int64
}

// TotalTokens returns prompt plus completion tokens
func (m ModelUsage) TotalTokens() int64 {
	return m.PromptTokens + m.CompletionTokens
}

// Recorder writes usage entries to the ledger
type Recorder struct {
	client    *storage.Client
	retention time.Duration
}

// NewRecorder creates a recorder that keeps each day for retention
func NewRecorder(client *storage.Client, retention time.Duration) *Recorder {
	return &Recorder{
		client:    client,
		retention: retention,
	}
}

// Record adds an entry to its day's counters
func (r *Recorder) Record(ctx context.Context, e Entry) error {
	if e.Model == "" {
		return fmt.Errorf("usage entry requires a model")
	}
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}

	counters := map[string]int64{
		counterRequests:         1,
		counterPromptTokens:     int64(e.PromptTokens),
		counterCompletionTokens: int64(e.CompletionTokens),
	}
	if err := r.client.AddUsage(ctx, at.UTC().Format(DateLayout), e.Model, counters, r.retention); err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}

	return nil
}

// Daily returns the usage of every model on date, sorted by model
func (r *Recorder) Daily(ctx context.Context, date time.Time) ([]ModelUsage, error) {
	data, err := r.client.UsageCounters(ctx, date.UTC().Format(DateLayout))
	if err != nil {
		return nil, err
	}

	return parseCounters(data), nil
}

// parseCounters folds "<model>:<counter>" hash fields into per-model rows
func parseCounters(data map[string]string) []ModelUsage {
	byModel := make(map[string]*ModelUsage)

	for field, raw := range data {
		i := strings.LastIndex(field, ":")
		if i <= 0 {
			continue
		}
		model, counter := field[:i], field[i+1:]

		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			// Skip malformed counters
			continue
		}

		row, ok := byModel[model]
		if !ok {
			row = &ModelUsage{Model: model}
			byModel[model] = row
		}

		switch counter {
		case counterRequests:
			row.Requests = value
		case counterPromptTokens:
			row.PromptTokens = value
		case counterCompletionTokens:
			row.CompletionTokens = value
		}
	}

	result := make([]ModelUsage, 0, len(byModel))
	for _, row := range byModel {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Model < result[j].Model
	})

	return result
}

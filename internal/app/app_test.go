package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/s33g/llm-prompter/internal/config"
	"github.com/s33g/llm-prompter/internal/llm"
	"github.com/s33g/llm-prompter/internal/prompt"
	"github.com/s33g/llm-prompter/internal/storage"
	"github.com/s33g/llm-prompter/internal/topics"
	"github.com/s33g/llm-prompter/internal/usage"
)

type fakeClient struct {
	resp    *llm.ChatResponse
	err     error
	prompts []string
}

func (f *fakeClient) Complete(_ context.Context, p string) (*llm.ChatResponse, error) {
	f.prompts = append(f.prompts, p)
	return f.resp, f.err
}

func (f *fakeClient) Model() llm.Model {
	return llm.DefaultModel
}

func answerResponse(content string) *llm.ChatResponse {
	return &llm.ChatResponse{
		ID:      "x",
		Object:  "chat.completion",
		Created: 1,
		Model:   "gpt-3.5-turbo-16k",
		Choices: []llm.Choice{{Message: llm.Message{Role: "assistant", Content: content}}},
	}
}

func TestApp_AskZeroShot(t *testing.T) {
	client := &fakeClient{resp: answerResponse("fixed code here")}
	a := NewWithClient(client, zerolog.Nop())

	p := prompt.ZeroShot(topics.FixCode("rust", `fn some_func() -> String {"abc"}`))
	res, err := a.Ask(context.Background(), p)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if got := res.Answer.AnswerOr(""); got != "fixed code here" {
		t.Errorf("Answer = %v, want 'fixed code here'", got)
	}
	if res.Response.ID != "x" {
		t.Errorf("Response.ID = %v, want x", res.Response.ID)
	}
	if res.PromptTokens <= 0 {
		t.Errorf("PromptTokens = %d, want > 0", res.PromptTokens)
	}
	if len(client.prompts) != 1 || client.prompts[0] != p.Text() {
		t.Errorf("prompts = %q, want [%q]", client.prompts, p.Text())
	}
}

func TestApp_AskMultiShot(t *testing.T) {
	client := &fakeClient{resp: answerResponse("it seems like winter weather")}
	a := NewWithClient(client, zerolog.Nop())

	p := prompt.MultiShot(topics.WeatherStatement("it is -8c and snowing in Berlin"), topics.WeatherInTwoLanguages{}, prompt.Three)
	if _, err := a.Ask(context.Background(), p); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if got := strings.Count(client.prompts[0], "prompt: "); got != 3 {
		t.Errorf("examples sent = %d, want 3", got)
	}
}

func TestApp_AskErrors(t *testing.T) {
	tests := []struct {
		name    string
		client  *fakeClient
		wantErr error
	}{
		{
			name:    "client error",
			client:  &fakeClient{err: &llm.TransportError{Err: errors.New("dial tcp: refused")}},
			wantErr: nil,
		},
		{
			name:    "no choices",
			client:  &fakeClient{resp: &llm.ChatResponse{ID: "x"}},
			wantErr: llm.ErrNoChoices,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewWithClient(tt.client, zerolog.Nop())

			res, err := a.Ask(context.Background(), prompt.ZeroShot("hi"))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if res != nil {
				t.Errorf("Result = %+v, want nil", res)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}

			var transportErr *llm.TransportError
			if tt.client.err != nil && !errors.As(err, &transportErr) {
				t.Errorf("Expected TransportError to pass through, got %T", err)
			}
		})
	}
}

func TestApp_UsageDisabled(t *testing.T) {
	a := NewWithClient(&fakeClient{}, zerolog.Nop())

	_, err := a.Usage(context.Background(), time.Now())
	if !errors.Is(err, ErrUsageDisabled) {
		t.Errorf("Usage() error = %v, want ErrUsageDisabled", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestApp_New(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req llm.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		resp := answerResponse("echo: " + req.Messages[0].Content)
		resp.Usage = llm.Usage{PromptTokens: 5, CompletionTokens: 3, TotalTokens: 8}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	cfg := config.DefaultConfig()
	cfg.OpenAI.Token = "sk-test"
	cfg.OpenAI.BaseURL = server.URL

	a, err := New(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	res, err := a.Ask(context.Background(), prompt.ZeroShot("a\nb"))
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got := res.Answer.AnswerOr(""); got != `echo: a\nb` {
		t.Errorf("Answer = %q, want %q", got, `echo: a\nb`)
	}
}

func TestApp_NewMissingToken(t *testing.T) {
	t.Setenv("OPEN_AI_TOKEN", "")

	cfg := config.DefaultConfig()

	_, err := New(context.Background(), cfg, zerolog.Nop())
	if !errors.Is(err, llm.ErrMissingToken) {
		t.Errorf("New() error = %v, want ErrMissingToken", err)
	}
}

func TestApp_NewLedgerWithoutToken(t *testing.T) {
	t.Setenv("OPEN_AI_TOKEN", "")

	a := NewLedger(context.Background(), config.DefaultConfig(), zerolog.Nop())
	defer a.Close()

	if _, err := a.Usage(context.Background(), time.Now()); !errors.Is(err, ErrUsageDisabled) {
		t.Errorf("Usage() error = %v, want ErrUsageDisabled", err)
	}
	if _, err := a.Ask(context.Background(), prompt.ZeroShot("hi")); !errors.Is(err, ErrNoClient) {
		t.Errorf("Ask() error = %v, want ErrNoClient", err)
	}
}

func TestApp_RecordsUsage(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := storage.NewClient(ctx, config.RedisConfig{Address: "localhost:6379", DB: 15, KeyPrefix: "test:"})
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer client.Close()

	raw := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	defer raw.Close()
	raw.FlushDB(context.Background())

	resp := answerResponse("hello there")
	resp.Usage = llm.Usage{PromptTokens: 12, CompletionTokens: 4, TotalTokens: 16}

	a := NewWithClient(&fakeClient{resp: resp}, zerolog.Nop()).
		WithRecorder(usage.NewRecorder(client, time.Hour))

	for i := 0; i < 2; i++ {
		if _, err := a.Ask(context.Background(), prompt.ZeroShot("hi")); err != nil {
			t.Fatalf("Ask() error = %v", err)
		}
	}

	rows, err := a.Usage(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Got %d rows, want 1", len(rows))
	}
	if rows[0].Requests != 2 || rows[0].PromptTokens != 24 || rows[0].CompletionTokens != 8 {
		t.Errorf("row = %+v, want 2 requests, 24 prompt, 8 completion", rows[0])
	}
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/s33g/llm-prompter/internal/config"
)

const (
	defaultTimeout = 120 * time.Second

	// maxErrorBody caps how much of a non-JSON error body ends up in StatusError
	maxErrorBody = 512
)

// Client handles communication with the chat completions API
type Client struct {
	httpClient *http.Client
	endpoint   string
	model      Model
	token      string
}

// NewClient creates a client from cfg. When cfg.Token is empty the token is
// read once from the environment variable named by cfg.TokenEnv.
func NewClient(cfg config.OpenAIConfig) (*Client, error) {
	token := cfg.Token
	if token == "" {
		env := cfg.TokenEnv
		if env == "" {
			env = config.DefaultTokenEnv
		}
		token = os.Getenv(env)
		if token == "" {
			return nil, &ConfigError{
				Field: "token",
				Err:   fmt.Errorf("%w: %s environment variable is not set", ErrMissingToken, env),
			}
		}
	}

	model, err := ParseModel(cfg.Model)
	if err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	timeout := cfg.RequestTimeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint: strings.TrimSuffix(baseURL, "/") + "/chat/completions",
		model:    model,
		token:    token,
	}, nil
}

// Model returns the model requested by this client
func (c *Client) Model() Model {
	return c.model
}

// PerformRequest sends prompt and returns the simplified answer
func (c *Client) PerformRequest(ctx context.Context, prompt string) (*SimplifiedResponse, error) {
	resp, err := c.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return Simplify(resp)
}

// Complete sends prompt as a single user message and returns the raw
// completion envelope
func (c *Client) Complete(ctx context.Context, prompt string) (*ChatResponse, error) {
	req, err := BuildRequest(prompt, c.model)
	if err != nil {
		return nil, err
	}

	// Marshal request
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	// Send request
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	// Read response body
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	// Check for errors
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Message != "" {
			return nil, &StatusError{StatusCode: resp.StatusCode, Message: errResp.Error.Message}
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: truncateBody(respBody)}
	}

	return DecodeResponse(respBody)
}

func truncateBody(body []byte) string {
	msg := strings.TrimSpace(strings.ToValidUTF8(string(body), "\uFFFD"))
	if len(msg) <= maxErrorBody {
		return msg
	}

	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut] + "..."
}

package llm

// Request and response types for the OpenAI chat completions API

// RoleUser is the role of caller-authored messages
const RoleUser = "user"

// ChatRequest represents a chat completion request
type ChatRequest struct {
	Model       Model     `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// Message represents a chat message
type Message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// ChatResponse represents a chat completion response
type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice represents a completion choice
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// Usage represents token usage information. The API may omit it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// SimplifiedResponse is the caller-facing result of a completion
type SimplifiedResponse struct {
	Answer        *string `json:"answer"`
	FollowUpQuery *string `json:"follow_up_query"` // reserved, never set
}

// AnswerOr returns the answer, or fallback when there is none
func (r *SimplifiedResponse) AnswerOr(fallback string) string {
	if r == nil || r.Answer == nil {
		return fallback
	}
	return *r.Answer
}

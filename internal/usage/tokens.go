package usage

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter handles token counting for different models
type TokenCounter struct {
	mu sync.Mutex
	// Cache encoders for reuse
	encoders map[string]*tiktoken.Tiktoken
}

// NewTokenCounter creates a new token counter
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{
		encoders: make(map[string]*tiktoken.Tiktoken),
	}
}

// Count returns the number of tokens in a text for a given model
func (tc *TokenCounter) Count(text, model string) int {
	if text == "" {
		return 0
	}

	encoder, ok := tc.encoder(encodingName(model))
	if !ok {
		// Fallback to simple estimation if tiktoken fails
		return estimateTokens(text)
	}

	return len(encoder.Encode(text, nil, nil))
}

// CountPrompt counts a single user message including chat formatting overhead
func (tc *TokenCounter) CountPrompt(text, model string) int {
	// ~4 tokens per message for role/formatting, 3 for reply priming
	return tc.Count(text, model) + 4 + 3
}

func (tc *TokenCounter) encoder(encoding string) (*tiktoken.Tiktoken, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if encoder, ok := tc.encoders[encoding]; ok {
		return encoder, true
	}

	encoder, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, false
	}
	tc.encoders[encoding] = encoder
	return encoder, true
}

// encodingName returns the tiktoken encoding name for a model
func encodingName(model string) string {
	// gpt-4o family moved to o200k_base
	if strings.Contains(model, "gpt-4o") {
		return "o200k_base"
	}

	// GPT-4, GPT-3.5-turbo and most other chat models use cl100k_base
	return "cl100k_base"
}

// estimateTokens provides a rough token estimate (chars/4)
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}

package llm

import "strings"

// DefaultTemperature keeps answers terse and close to deterministic
const DefaultTemperature = 0.01

// BuildRequest wraps prompt into a chat completion payload for model.
//
// Newlines in the prompt are replaced with the two-character sequence `\n`
// before JSON encoding, which escapes the backslash once more on the wire.
// Existing prompt consumers depend on this exact encoding.
func BuildRequest(prompt string, model Model) (ChatRequest, error) {
	if err := model.Validate(); err != nil {
		return ChatRequest{}, err
	}

	return ChatRequest{
		Model: model,
		Messages: []Message{
			{
				Role:    RoleUser,
				Content: strings.ReplaceAll(prompt, "\n", `\n`),
			},
		},
		Temperature: DefaultTemperature,
	}, nil
}

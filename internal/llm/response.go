package llm

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// envelope mirrors ChatResponse with pointers so missing fields can be told
// apart from zero values
type envelope struct {
	ID      *string           `json:"id"`
	Object  *string           `json:"object"`
	Created *int64            `json:"created"`
	Model   *string           `json:"model"`
	Choices *[]envelopeChoice `json:"choices"`
	Usage   *Usage            `json:"usage"`
}

type envelopeChoice struct {
	Index        *int             `json:"index"`
	Message      *envelopeMessage `json:"message"`
	FinishReason string           `json:"finish_reason"`
}

type envelopeMessage struct {
	Role    *string `json:"role"`
	Content *string `json:"content"`
}

// DecodeResponse parses a completion response body. Unknown fields are
// ignored; id, object, created, model and choices are required, and so are
// index, message, role and content inside every choice. A null counts as
// missing.
func DecodeResponse(body []byte) (*ChatResponse, error) {
	if !utf8.Valid(body) {
		return nil, &ProtocolError{Reason: "body is not valid UTF-8"}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ProtocolError{Reason: "failed to parse response", Err: err}
	}

	switch {
	case env.ID == nil:
		return nil, &ProtocolError{Reason: "missing field id"}
	case env.Object == nil:
		return nil, &ProtocolError{Reason: "missing field object"}
	case env.Created == nil:
		return nil, &ProtocolError{Reason: "missing field created"}
	case env.Model == nil:
		return nil, &ProtocolError{Reason: "missing field model"}
	case env.Choices == nil:
		return nil, &ProtocolError{Reason: "missing field choices"}
	case *env.Created < 0:
		return nil, &ProtocolError{Reason: fmt.Sprintf("negative field created: %d", *env.Created)}
	}

	choices, err := decodeChoices(*env.Choices)
	if err != nil {
		return nil, err
	}

	resp := &ChatResponse{
		ID:      *env.ID,
		Object:  *env.Object,
		Created: *env.Created,
		Model:   *env.Model,
		Choices: choices,
	}
	if env.Usage != nil {
		resp.Usage = *env.Usage
	}

	return resp, nil
}

func decodeChoices(raw []envelopeChoice) ([]Choice, error) {
	choices := make([]Choice, 0, len(raw))

	for i, c := range raw {
		switch {
		case c.Index == nil:
			return nil, &ProtocolError{Reason: fmt.Sprintf("missing field choices[%d].index", i)}
		case c.Message == nil:
			return nil, &ProtocolError{Reason: fmt.Sprintf("missing field choices[%d].message", i)}
		case c.Message.Role == nil:
			return nil, &ProtocolError{Reason: fmt.Sprintf("missing field choices[%d].message.role", i)}
		case c.Message.Content == nil:
			return nil, &ProtocolError{Reason: fmt.Sprintf("missing field choices[%d].message.content", i)}
		}

		choices = append(choices, Choice{
			Index: *c.Index,
			Message: Message{
				Role:    *c.Message.Role,
				Content: *c.Message.Content,
			},
			FinishReason: c.FinishReason,
		})
	}

	return choices, nil
}

// Simplify extracts the first choice's content. A response without choices
// is an error; no default answer is substituted.
func Simplify(resp *ChatResponse) (*SimplifiedResponse, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	answer := resp.Choices[0].Message.Content
	return &SimplifiedResponse{
		Answer:        &answer,
		FollowUpQuery: nil,
	}, nil
}

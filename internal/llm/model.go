package llm

import "fmt"

// Model identifies the backend model requested from the API
type Model string

// ModelGPT35Turbo16k is https://platform.openai.com/docs/models/gpt-3-5
const ModelGPT35Turbo16k Model = "gpt-3.5-turbo-16k"

// DefaultModel is used when no model is configured
const DefaultModel = ModelGPT35Turbo16k

// supportedModels lists the models that can be requested. GPT-4 32k was
// announced but is not served by the API, so it is deliberately absent.
var supportedModels = map[Model]bool{
	ModelGPT35Turbo16k: true,
}

// ParseModel converts a configured model id into a Model. An empty id selects
// DefaultModel.
func ParseModel(id string) (Model, error) {
	if id == "" {
		return DefaultModel, nil
	}
	m := Model(id)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate reports whether m can be requested from the API
func (m Model) Validate() error {
	if !supportedModels[m] {
		return &ConfigError{
			Field: "model",
			Err:   fmt.Errorf("%w: %q", ErrUnsupportedModel, string(m)),
		}
	}
	return nil
}

// String returns the wire id
func (m Model) String() string {
	return string(m)
}

// Package topics holds ready-made prompt templates for specific kinds of
// questions. They centralize how a request is phrased so callers only supply
// the variable part (a code snippet, a weather condition).
package topics

import (
	"fmt"
	"strings"

	"github.com/s33g/llm-prompter/internal/prompt"
)

// FixCode asks the model to fix a code snippet written in language
func FixCode(language, code string) string {
	fence := strings.ToLower(language)
	return fmt.Sprintf("Could you help me to fix this %s code:\n```%s\n%s\n```\n", displayName(language), fence, code)
}

// WeatherStatement asks for a weather statement in the style of the
// WeatherInTwoLanguages examples
func WeatherStatement(condition string) string {
	return "Could you generate a statement about the weather based on the weather condition statement in similar style as my examples above.\n" +
		condition + "\n"
}

// WeatherInTwoLanguages provides English/German weather examples
type WeatherInTwoLanguages struct{}

var _ prompt.ExampleSource = WeatherInTwoLanguages{}

// Examples returns the five worked examples
func (WeatherInTwoLanguages) Examples() [prompt.MaxExamples]string {
	return [prompt.MaxExamples]string{
		"prompt: it is 25c and sunny in Berlin, answer: it seems like summer weather. Es sieht aus wie Sommerwetter ☀️\n",
		"prompt: it is 8c and rainy in Berlin, answer: it seems like autumn weather. Es sieht aus wie Herbstwetter 🍂\n",
		"prompt: it is 11c and sunny in Berlin, answer: it seems like autumn weather. Es sieht aus wie Herbstwetter 🍂\n",
		"prompt: it is -2c and sunny in Berlin, answer: it seems like winter weather. Es sieht aus wie Winterwetter ❄️\n",
		"prompt: it is -4c and sunny in Berlin, answer: it seems like winter weather. Es sieht aus wie Winterwetter ❄️\n",
	}
}

func displayName(language string) string {
	if language == "" {
		return language
	}
	return strings.ToUpper(language[:1]) + language[1:]
}

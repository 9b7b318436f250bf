package prompt

import (
	"fmt"
	"strings"
)

// Kind identifies how a prompt was assembled
type Kind int

const (
	KindZeroShot Kind = iota
	KindMultiShot
)

// String returns the kind name used in logs
func (k Kind) String() string {
	switch k {
	case KindZeroShot:
		return "zero-shot"
	case KindMultiShot:
		return "multi-shot"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// questionLabel precedes the caller's question in a multi-shot prompt
const questionLabel = "question: "

// Prompt is an immutable prompt body ready to be sent to a model
type Prompt struct {
	kind Kind
	text string
}

// ZeroShot wraps text verbatim, without worked examples
func ZeroShot(text string) Prompt {
	return Prompt{kind: KindZeroShot, text: text}
}

// MultiShot prefixes question with the first n examples from src.
//
// The examples are concatenated as-is in their original order, followed by a
// newline, the "question: " label and the question. Nothing is escaped or
// trimmed.
func MultiShot(question string, src ExampleSource, n ExampleCount) Prompt {
	n = n.clamp()
	examples := src.Examples()

	var b strings.Builder
	for _, example := range examples[:n] {
		b.WriteString(example)
	}
	b.WriteString("\n")
	b.WriteString(questionLabel)
	b.WriteString(question)

	return Prompt{kind: KindMultiShot, text: b.String()}
}

// Text returns the prompt body
func (p Prompt) Text() string {
	return p.text
}

// Kind returns how the prompt was assembled
func (p Prompt) Kind() Kind {
	return p.kind
}

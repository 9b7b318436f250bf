package prompt

import "fmt"

// ExampleSource supplies the worked question/answer examples for a
// multi-shot prompt. Implementations return exactly five entries; callers
// pick how many of them to use with an ExampleCount.
type ExampleSource interface {
	Examples() [MaxExamples]string
}

// MaxExamples is the number of examples every ExampleSource provides
const MaxExamples = 5

// ExampleCount is the number of examples placed ahead of the question
type ExampleCount int

const (
	One ExampleCount = iota + 1
	Two
	Three
	Four
	Five
)

// ParseExampleCount converts user input into an ExampleCount
func ParseExampleCount(n int) (ExampleCount, error) {
	c := ExampleCount(n)
	if !c.Valid() {
		return 0, fmt.Errorf("example count must be between %d and %d, got %d", One, Five, n)
	}
	return c, nil
}

// Valid reports whether c is within One..Five
func (c ExampleCount) Valid() bool {
	return c >= One && c <= Five
}

func (c ExampleCount) clamp() ExampleCount {
	if c < One {
		return One
	}
	if c > Five {
		return Five
	}
	return c
}

package recognizer

import (
	"context"
	"strings"
)

// greetings holds the utterances treated as a greeting
var greetings = map[string]bool{
	"hi":           true,
	"hello":        true,
	"hey":          true,
	"hola":         true,
	"good morning": true,
	"good evening": true,
	"greetings":    true,
	"help":         true,
}

// GreetingRecognizer matches simple greeting utterances
type GreetingRecognizer struct{}

// NewGreetingRecognizer creates the greeting recognizer
func NewGreetingRecognizer() *GreetingRecognizer {
	return &GreetingRecognizer{}
}

// Recognize reports a Greeting intent for greeting-like utterances
func (r *GreetingRecognizer) Recognize(ctx context.Context, text string) (*Intent, error) {
	normalized := strings.ToLower(strings.Trim(strings.TrimSpace(text), "!.,"))

	if greetings[normalized] {
		return &Intent{Name: "Greeting", Score: 1.0}, nil
	}

	return &Intent{Score: 0}, nil
}

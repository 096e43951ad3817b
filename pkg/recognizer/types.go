package recognizer

import "context"

// Intent is a classified user intention
type Intent struct {
	// Name of the intent (ex: "ShowCart", "Checkout")
	Name string `json:"name"`

	// Score is the classifier confidence (0-1)
	Score float64 `json:"score"`

	// Entities extracted from the text
	Entities map[string]string `json:"entities,omitempty"`
}

// Recognizer classifies a user utterance into an intent. Recognizers are
// tried in a fixed priority order; the first one whose intent clears the
// router threshold wins.
type Recognizer interface {
	Recognize(ctx context.Context, text string) (*Intent, error)
}

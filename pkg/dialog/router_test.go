package dialog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hugohenrick/commerce-assistant/pkg/logger"
	"github.com/hugohenrick/commerce-assistant/pkg/recognizer"
)

// stubRecognizer returns a fixed intent for every utterance
type stubRecognizer struct {
	intent *recognizer.Intent
	err    error
}

func (s stubRecognizer) Recognize(ctx context.Context, text string) (*recognizer.Intent, error) {
	return s.intent, s.err
}

func TestRouterSeriesOrder(t *testing.T) {
	// both recognizers clear the threshold; the first in the series wins even
	// though the second scores higher
	first := stubRecognizer{intent: &recognizer.Intent{Name: "Greeting", Score: 0.5}}
	second := stubRecognizer{intent: &recognizer.Intent{Name: "Explore", Score: 0.9}}

	r := NewIntentRouter([]recognizer.Recognizer{first, second}, "confused", logger.Nop{})
	r.Match("Greeting", "welcome").Match("Explore", "explore")

	dialog, _ := r.Route(context.Background(), "hi")
	assert.Equal(t, "welcome", dialog)
}

func TestRouterThreshold(t *testing.T) {
	weak := stubRecognizer{intent: &recognizer.Intent{Name: "Greeting", Score: 0.1}}
	strong := stubRecognizer{intent: &recognizer.Intent{Name: "Explore", Score: 0.3, Entities: map[string]string{"category": "shirts"}}}

	r := NewIntentRouter([]recognizer.Recognizer{weak, strong}, "confused", logger.Nop{})
	r.Match("Greeting", "welcome").Match("Explore", "explore")

	dialog, entities := r.Route(context.Background(), "show me shirts")
	assert.Equal(t, "explore", dialog)
	assert.Equal(t, "shirts", entities["category"])
}

func TestRouterFallback(t *testing.T) {
	none := stubRecognizer{intent: &recognizer.Intent{Score: 0}}

	r := NewIntentRouter([]recognizer.Recognizer{none}, "confused", logger.Nop{})
	r.Match("Greeting", "welcome")

	dialog, entities := r.Route(context.Background(), "gibberish")
	assert.Equal(t, "confused", dialog)
	assert.Nil(t, entities)
}

func TestRouterSkipsFailingRecognizer(t *testing.T) {
	broken := stubRecognizer{err: errors.New("endpoint down")}
	working := stubRecognizer{intent: &recognizer.Intent{Name: "Explore", Score: 0.8}}

	r := NewIntentRouter([]recognizer.Recognizer{broken, working}, "confused", logger.Nop{})
	r.Match("Explore", "explore")

	dialog, _ := r.Route(context.Background(), "show me shirts")
	assert.Equal(t, "explore", dialog)
}

func TestRouterUnroutedIntent(t *testing.T) {
	rec := stubRecognizer{intent: &recognizer.Intent{Name: "Weather", Score: 0.9}}

	r := NewIntentRouter([]recognizer.Recognizer{rec}, "confused", logger.Nop{})
	r.Match("Greeting", "welcome")

	dialog, _ := r.Route(context.Background(), "will it rain?")
	assert.Equal(t, "confused", dialog)
}

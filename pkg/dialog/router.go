package dialog

import (
	"context"

	"github.com/hugohenrick/commerce-assistant/pkg/logger"
	"github.com/hugohenrick/commerce-assistant/pkg/recognizer"
)

// DefaultThreshold is the minimum score an intent must clear to be routed
const DefaultThreshold = 0.2

// IntentRouter maps classified intents to dialog names. Recognizers run in
// series: the first recognizer whose intent clears the threshold decides the
// route, regardless of what later recognizers might score.
type IntentRouter struct {
	recognizers []recognizer.Recognizer
	routes      map[string]string
	threshold   float64
	fallback    string
	logger      logger.Logger
}

// NewIntentRouter creates a router over the given recognizers, in priority order
func NewIntentRouter(recognizers []recognizer.Recognizer, fallback string, log logger.Logger) *IntentRouter {
	return &IntentRouter{
		recognizers: recognizers,
		routes:      make(map[string]string),
		threshold:   DefaultThreshold,
		fallback:    fallback,
		logger:      log,
	}
}

// Match binds an intent name to a dialog name
func (r *IntentRouter) Match(intent, dialog string) *IntentRouter {
	r.routes[intent] = dialog
	return r
}

// Route classifies the text and returns the dialog to begin plus any
// extracted entities. When no recognizer clears the threshold, or the
// winning intent has no route, the fallback dialog is returned.
func (r *IntentRouter) Route(ctx context.Context, text string) (string, map[string]string) {
	for _, rec := range r.recognizers {
		intent, err := rec.Recognize(ctx, text)
		if err != nil {
			r.logger.Warn("Recognizer failed", "error", err)
			continue
		}
		if intent == nil || intent.Score < r.threshold {
			continue
		}

		dialog, ok := r.routes[intent.Name]
		if !ok {
			r.logger.Debug("No route for intent", "intent", intent.Name, "score", intent.Score)
			return r.fallback, nil
		}

		r.logger.Info("Routed intent", "intent", intent.Name, "score", intent.Score, "dialog", dialog)
		return dialog, intent.Entities
	}

	return r.fallback, nil
}

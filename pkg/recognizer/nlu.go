package recognizer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hugohenrick/commerce-assistant/pkg/logger"
)

// NLURecognizer classifies utterances through the external NLU endpoint.
// It sits last in the recognizer order, behind the cheap local recognizers.
type NLURecognizer struct {
	endpoint string
	client   *http.Client
	logger   logger.Logger
}

// nluResponse is the wire format of the NLU classifier
type nluResponse struct {
	TopScoringIntent struct {
		Intent string  `json:"intent"`
		Score  float64 `json:"score"`
	} `json:"topScoringIntent"`
	Entities []struct {
		Type   string `json:"type"`
		Entity string `json:"entity"`
	} `json:"entities"`
}

// NewNLURecognizer creates a recognizer for the given endpoint URL
func NewNLURecognizer(endpoint string, log logger.Logger) *NLURecognizer {
	return &NLURecognizer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   log,
	}
}

// Recognize queries the NLU endpoint for the top scoring intent. Failures
// are returned to the router, which falls through to its default dialog.
func (r *NLURecognizer) Recognize(ctx context.Context, text string) (*Intent, error) {
	if r.endpoint == "" {
		return &Intent{Score: 0}, nil
	}

	reqURL := r.endpoint + "&q=" + url.QueryEscape(text)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build NLU request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NLU endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NLU endpoint returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read NLU response: %w", err)
	}

	var parsed nluResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("malformed NLU response: %w", err)
	}

	intent := &Intent{
		Name:  parsed.TopScoringIntent.Intent,
		Score: parsed.TopScoringIntent.Score,
	}
	if len(parsed.Entities) > 0 {
		intent.Entities = make(map[string]string, len(parsed.Entities))
		for _, e := range parsed.Entities {
			intent.Entities[e.Type] = e.Entity
		}
	}

	r.logger.Debug("NLU classification", "intent", intent.Name, "score", intent.Score)

	return intent, nil
}

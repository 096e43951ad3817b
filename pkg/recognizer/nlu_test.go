package recognizer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/commerce-assistant/pkg/logger"
)

func TestNLURecognizer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "show me shirts", r.URL.Query().Get("q"))
		w.Write([]byte(`{
			"topScoringIntent": {"intent": "Explore", "score": 0.92},
			"entities": [{"type": "category", "entity": "shirts"}]
		}`))
	}))
	defer server.Close()

	r := NewNLURecognizer(server.URL+"?key=abc", logger.Nop{})

	intent, err := r.Recognize(context.Background(), "show me shirts")
	require.NoError(t, err)

	assert.Equal(t, "Explore", intent.Name)
	assert.InDelta(t, 0.92, intent.Score, 0.001)
	assert.Equal(t, "shirts", intent.Entities["category"])
}

func TestNLURecognizerNoEndpoint(t *testing.T) {
	r := NewNLURecognizer("", logger.Nop{})

	intent, err := r.Recognize(context.Background(), "anything")
	require.NoError(t, err)
	assert.Zero(t, intent.Score)
}

func TestNLURecognizerServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	r := NewNLURecognizer(server.URL+"?key=abc", logger.Nop{})

	_, err := r.Recognize(context.Background(), "anything")
	assert.Error(t, err)
}

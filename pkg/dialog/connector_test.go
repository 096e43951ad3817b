package dialog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
	"github.com/hugohenrick/commerce-assistant/pkg/auth"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
)

func TestHTTPConnectorSend(t *testing.T) {
	var gotPath, gotAuth string
	var gotActivity outgoingActivity

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotActivity))
	}))
	defer server.Close()

	jwtService, err := auth.NewJWTService("app-1", "secret-password")
	require.NoError(t, err)

	c := NewHTTPConnector(jwtService, logger.Nop{})

	addr := conversation.Address{
		ChannelID:      conversation.PublicChannelID,
		ConversationID: "conv-1",
		Bot:            conversation.ChannelAccount{ID: "bot-1"},
		User:           &conversation.ChannelAccount{ID: "user-1"},
		ServiceURL:     server.URL,
	}

	err = c.Send(context.Background(), addr, []Message{{Text: "hello"}})
	require.NoError(t, err)

	assert.Equal(t, "/v3/conversations/conv-1/activities", gotPath)
	assert.True(t, strings.HasPrefix(gotAuth, "Bearer "), "outbound calls are signed")
	assert.Equal(t, "message", gotActivity.Type)
	assert.Equal(t, "hello", gotActivity.Text)
	assert.Equal(t, "bot-1", gotActivity.From.ID)
}

func TestHTTPConnectorNoServiceURL(t *testing.T) {
	c := NewHTTPConnector(nil, logger.Nop{})

	addr := conversation.Address{ChannelID: conversation.PublicChannelID, ConversationID: "conv-1"}
	err := c.Send(context.Background(), addr, []Message{{Text: "hello"}})
	assert.NoError(t, err, "local channels without a callback URL are log-only")
}

func TestHTTPConnectorRejectedDelivery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := NewHTTPConnector(nil, logger.Nop{})

	addr := conversation.Address{
		ChannelID:      conversation.PublicChannelID,
		ConversationID: "conv-1",
		ServiceURL:     server.URL,
	}

	err := c.Send(context.Background(), addr, []Message{{Text: "hello"}})
	assert.Error(t, err)
}

package dialog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
	"github.com/hugohenrick/commerce-assistant/pkg/auth"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
	"github.com/hugohenrick/commerce-assistant/pkg/metrics"
)

// Connector delivers outgoing messages to a conversation over its channel.
// Both turn paths use it: inbound messages and invoke-triggered resumptions.
type Connector interface {
	Send(ctx context.Context, addr conversation.Address, messages []Message) error
}

// HTTPConnector posts messages to the channel's service URL, authenticating
// with a channel token when credentials are configured
type HTTPConnector struct {
	client *http.Client
	jwt    *auth.JWTService
	logger logger.Logger
}

// NewHTTPConnector creates the HTTP channel connector. jwtService may be
// nil for unauthenticated local channels.
func NewHTTPConnector(jwtService *auth.JWTService, log logger.Logger) *HTTPConnector {
	return &HTTPConnector{
		client: &http.Client{Timeout: 15 * time.Second},
		jwt:    jwtService,
		logger: log,
	}
}

// outgoingActivity is the wire format of one delivered message
type outgoingActivity struct {
	Type         string                       `json:"type"`
	ChannelID    string                       `json:"channelId"`
	Conversation map[string]string            `json:"conversation"`
	From         conversation.ChannelAccount  `json:"from"`
	Recipient    *conversation.ChannelAccount `json:"recipient,omitempty"`
	Text         string                       `json:"text,omitempty"`
	Attachments  []Card                       `json:"attachments,omitempty"`
}

// Send implements Connector
func (c *HTTPConnector) Send(ctx context.Context, addr conversation.Address, messages []Message) error {
	if len(messages) == 0 {
		return nil
	}
	if addr.ServiceURL == "" {
		// local channel without a callback URL; deliveries are logged only
		for _, m := range messages {
			c.logger.Info("Outgoing message (no service URL)",
				"conversation_id", addr.ConversationID, "text", m.Text)
		}
		return nil
	}

	url := fmt.Sprintf("%s/v3/conversations/%s/activities", addr.ServiceURL, addr.ConversationID)

	for _, m := range messages {
		activity := outgoingActivity{
			Type:         "message",
			ChannelID:    addr.ChannelID,
			Conversation: map[string]string{"id": addr.ConversationID},
			From:         addr.Bot,
			Recipient:    addr.User,
			Text:         m.Text,
			Attachments:  m.Attachments,
		}

		body, err := json.Marshal(activity)
		if err != nil {
			return fmt.Errorf("failed to encode activity: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to build channel request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		if c.jwt != nil {
			token, err := c.jwt.GenerateToken(addr.ChannelID)
			if err != nil {
				return fmt.Errorf("failed to sign channel token: %w", err)
			}
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("channel delivery failed: %w", err)
		}
		resp.Body.Close()

		if resp.StatusCode >= 300 {
			return fmt.Errorf("channel rejected delivery with status %d", resp.StatusCode)
		}

		metrics.MessagesSent.WithLabelValues(addr.ChannelID).Inc()
	}

	return nil
}

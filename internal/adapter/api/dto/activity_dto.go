package dto

import (
	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
)

// AccountRef identifies a conversation participant on the wire
type AccountRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ConversationRef identifies the conversation on the wire
type ConversationRef struct {
	ID string `json:"id" binding:"required"`
}

// ActivityRequest is an inbound channel message
type ActivityRequest struct {
	Type         string          `json:"type"`
	Text         string          `json:"text"`
	ChannelID    string          `json:"channelId" binding:"required"`
	Conversation ConversationRef `json:"conversation" binding:"required"`
	From         AccountRef      `json:"from"`
	Recipient    AccountRef      `json:"recipient"`
	ServiceURL   string          `json:"serviceUrl,omitempty"`
}

// Address converts the activity routing fields into a conversation address
func (r *ActivityRequest) Address() conversation.Address {
	addr := conversation.Address{
		ChannelID:      r.ChannelID,
		ConversationID: r.Conversation.ID,
		Bot:            conversation.ChannelAccount{ID: r.Recipient.ID, Name: r.Recipient.Name},
		ServiceURL:     r.ServiceURL,
	}
	if r.From.ID != "" {
		addr.User = &conversation.ChannelAccount{ID: r.From.ID, Name: r.From.Name}
	}
	return addr
}

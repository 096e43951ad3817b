package dialog

import (
	"context"
	"fmt"

	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
)

// CardAction is a button on a card. Type distinguishes plain message-back
// buttons from the action that opens the client payment UI.
type CardAction struct {
	Type  string      `json:"type"`
	Title string      `json:"title"`
	Value interface{} `json:"value"`
}

// Card is a rich attachment of an outgoing message
type Card struct {
	Title    string       `json:"title,omitempty"`
	Subtitle string       `json:"subtitle,omitempty"`
	Text     string       `json:"text,omitempty"`
	Images   []string     `json:"images,omitempty"`
	Buttons  []CardAction `json:"buttons,omitempty"`
}

// Message is one outgoing message of a dialog turn
type Message struct {
	Text        string `json:"text,omitempty"`
	Attachments []Card `json:"attachments,omitempty"`
}

// Session is the per-turn view of a conversation handed to dialogs. It
// accumulates outgoing messages and control decisions; the engine persists
// the data and delivers the messages after the dialog chain finishes.
type Session struct {
	// Address of the conversation this turn belongs to
	Address conversation.Address

	// Data is the persisted conversation scratch data
	Data *conversation.BotData

	// Text of the inbound message; empty when a dialog is resumed from the
	// invoke path
	Text string

	replies      []Message
	redirect     string
	redirectArgs map[string]interface{}
	ended        bool
}

// Send queues a plain text message, formatted printf-style when arguments
// are given
func (s *Session) Send(format string, args ...interface{}) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	s.replies = append(s.replies, Message{Text: text})
}

// SendMessage queues a full message with attachments
func (s *Session) SendMessage(m Message) {
	s.replies = append(s.replies, m)
}

// Reset redirects the turn into another dialog once the current one returns
func (s *Session) Reset(dialog string, args map[string]interface{}) {
	s.redirect = dialog
	s.redirectArgs = args
}

// EndConversation queues a goodbye and asks the engine to drop all stored
// conversation data
func (s *Session) EndConversation(text string) {
	if text != "" {
		s.Send(text)
	}
	s.ended = true
}

// Replies returns the messages queued so far
func (s *Session) Replies() []Message {
	return s.replies
}

// Dialog is a conversation entry point
type Dialog interface {
	Begin(ctx context.Context, s *Session, args map[string]interface{}) error
}

// Func adapts a function to the Dialog interface
type Func func(ctx context.Context, s *Session, args map[string]interface{}) error

// Begin implements Dialog
func (f Func) Begin(ctx context.Context, s *Session, args map[string]interface{}) error {
	return f(ctx, s, args)
}

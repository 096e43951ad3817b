package dialog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
	"github.com/hugohenrick/commerce-assistant/pkg/chat"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
	"github.com/hugohenrick/commerce-assistant/pkg/metrics"
	"github.com/hugohenrick/commerce-assistant/pkg/recognizer"
)

// pendingPromptKey is the conversation data key holding an open yes/no prompt
const pendingPromptKey = "dialog.pendingPrompt"

// maxRedirects bounds dialog-to-dialog redirects within one turn
const maxRedirects = 5

// pendingPrompt is an open confirmation: answering yes begins Dialog,
// answering no sends DeclineText
type pendingPrompt struct {
	Dialog      string `json:"dialog"`
	DeclineText string `json:"declineText"`
}

// Engine drives dialogs over the conversation store and the channel
// connector. It serves both control paths: inbound messages routed by
// intent, and invoke-triggered resumptions addressed by a stored descriptor.
type Engine struct {
	registry  *Registry
	router    *IntentRouter
	store     conversation.Store
	connector Connector
	history   chat.Repository
	logger    logger.Logger
}

// NewEngine wires the dialog engine. history may be nil to disable chat
// history persistence.
func NewEngine(registry *Registry, router *IntentRouter, store conversation.Store, connector Connector, history chat.Repository, log logger.Logger) *Engine {
	return &Engine{
		registry:  registry,
		router:    router,
		store:     store,
		connector: connector,
		history:   history,
		logger:    log,
	}
}

// ProcessMessage handles one inbound user utterance: route it to a dialog,
// run the dialog chain, persist the data and deliver the replies
func (e *Engine) ProcessMessage(ctx context.Context, addr conversation.Address, text string) error {
	addr = addr.Normalized()
	metrics.MessagesReceived.WithLabelValues(addr.ChannelID).Inc()

	data, err := e.store.GetData(ctx, addr)
	if err != nil {
		return fmt.Errorf("failed to load conversation data: %w", err)
	}

	s := &Session{Address: addr, Data: data, Text: text}
	e.saveHistory(ctx, addr, chat.RoleUser, text)

	name, entities := e.resolveTurn(ctx, s, text)

	args := map[string]interface{}{}
	for k, v := range entities {
		args[k] = v
	}

	if err := e.run(ctx, s, name, args); err != nil {
		return err
	}

	return e.finish(ctx, s)
}

// BeginDialog opens a dialog at an explicit address with no inbound
// message. This is the resumption path used after asynchronous invoke
// events; the address must be fully self-contained.
func (e *Engine) BeginDialog(ctx context.Context, addr conversation.Address, name string, args map[string]interface{}) error {
	addr = addr.Normalized()

	data, err := e.store.GetData(ctx, addr)
	if err != nil {
		return fmt.Errorf("failed to load conversation data: %w", err)
	}

	s := &Session{Address: addr, Data: data}

	if err := e.run(ctx, s, name, args); err != nil {
		return err
	}

	return e.finish(ctx, s)
}

// PromptConfirm puts a yes/no question to the user; a positive answer on
// the next turn begins the given dialog
func (e *Engine) PromptConfirm(s *Session, question, confirmDialog, declineText string) {
	raw, err := json.Marshal(pendingPrompt{Dialog: confirmDialog, DeclineText: declineText})
	if err != nil {
		e.logger.Error("Failed to encode pending prompt", "error", err)
		return
	}
	s.Data.ConversationData[pendingPromptKey] = string(raw)
	s.Send(question)
}

// resolveTurn decides which dialog this utterance starts. An open
// confirmation prompt is answered before any intent routing.
func (e *Engine) resolveTurn(ctx context.Context, s *Session, text string) (string, map[string]string) {
	if raw, ok := s.Data.ConversationData[pendingPromptKey]; ok {
		delete(s.Data.ConversationData, pendingPromptKey)

		var p pendingPrompt
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			if answer, isAnswer := recognizer.Confirm(text); isAnswer {
				if answer {
					return p.Dialog, nil
				}
				s.Send(p.DeclineText)
				return "", nil
			}
		}
		// not an answer; fall through to normal routing
	}

	return e.router.Route(ctx, text)
}

// run executes a dialog and any redirects it queues
func (e *Engine) run(ctx context.Context, s *Session, name string, args map[string]interface{}) error {
	for i := 0; name != "" && i < maxRedirects; i++ {
		d, ok := e.registry.Get(name)
		if !ok {
			return fmt.Errorf("no dialog registered as %q", name)
		}

		metrics.DialogCounter.WithLabelValues(name).Inc()
		e.logger.Debug("Beginning dialog", "dialog", name, "conversation_id", s.Address.ConversationID)

		if err := d.Begin(ctx, s, args); err != nil {
			return fmt.Errorf("dialog %q failed: %w", name, err)
		}

		name, args = s.redirect, s.redirectArgs
		s.redirect, s.redirectArgs = "", nil
	}

	return nil
}

// finish persists (or drops) the conversation data and delivers the queued
// replies
func (e *Engine) finish(ctx context.Context, s *Session) error {
	if s.ended {
		if err := e.store.DeleteData(ctx, s.Address); err != nil {
			return fmt.Errorf("failed to clear conversation data: %w", err)
		}
		if e.history != nil {
			if err := e.history.DeleteConversationHistory(ctx, s.Address.ConversationID); err != nil {
				e.logger.Warn("Failed to clear chat history", "error", err)
			}
		}
	} else {
		if err := e.store.SetData(ctx, s.Address, s.Data); err != nil {
			return fmt.Errorf("failed to persist conversation data: %w", err)
		}
	}

	if !s.ended {
		for _, m := range s.replies {
			if m.Text != "" {
				e.saveHistory(ctx, s.Address, chat.RoleBot, m.Text)
			}
		}
	}

	return e.connector.Send(ctx, s.Address, s.replies)
}

// saveHistory records a message in the chat history, when enabled
func (e *Engine) saveHistory(ctx context.Context, addr conversation.Address, role, content string) {
	if e.history == nil || content == "" {
		return
	}

	userID := ""
	if addr.User != nil {
		userID = addr.User.ID
	}

	msg := &chat.Message{
		ID:             uuid.New().String(),
		ConversationID: addr.ConversationID,
		UserID:         userID,
		Role:           role,
		Content:        content,
		Timestamp:      time.Now(),
	}
	if err := e.history.SaveMessage(ctx, msg); err != nil {
		e.logger.Warn("Failed to save chat history", "error", err)
	}
}

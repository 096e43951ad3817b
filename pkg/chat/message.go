package chat

import "time"

// Message roles
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message represents one message in the chat history
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id,omitempty"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

package conversation

// ChannelAccount identifies a participant (user or bot) on a channel
type ChannelAccount struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Address is the routing descriptor of a conversation. It is fully
// self-contained so a dialog can be resumed from a handler that has no
// ambient request context, such as the payment invoke path.
type Address struct {
	ChannelID      string          `json:"channelId"`
	ConversationID string          `json:"conversationId"`
	User           *ChannelAccount `json:"user,omitempty"`
	Bot            ChannelAccount  `json:"bot"`
	ServiceURL     string          `json:"serviceUrl,omitempty"`

	// UseAuth marks an address whose user identity was synthesized from
	// stored correlation data rather than carried by the channel. It is
	// only trusted for the single operation that set it.
	UseAuth bool `json:"useAuth,omitempty"`
}

// Internal and public channel names affected by the callback quirk: stored
// conversation data is always written under the public name.
const (
	DebugChannelID  = "directline"
	PublicChannelID = "webchat"
)

// NormalizeChannelID maps the internal debug channel id to its canonical
// public name. Out-of-band callbacks for web chat conversations arrive with
// the debug id, while the data they need was stored under the public id, so
// this must be applied at every store boundary.
func NormalizeChannelID(channelID string) string {
	if channelID == DebugChannelID {
		return PublicChannelID
	}
	return channelID
}

// Normalized returns a copy of the address with the channel id normalized
func (a Address) Normalized() Address {
	a.ChannelID = NormalizeChannelID(a.ChannelID)
	return a
}

// BotData holds the persisted scratch data of a conversation
type BotData struct {
	// ConversationData is shared by every participant of the conversation
	ConversationData map[string]string `json:"conversationData"`

	// PrivateConversationData is scoped to a single user of the conversation
	PrivateConversationData map[string]string `json:"privateConversationData"`
}

// NewBotData creates an empty BotData instance
func NewBotData() *BotData {
	return &BotData{
		ConversationData:        make(map[string]string),
		PrivateConversationData: make(map[string]string),
	}
}

package checkout

import (
	"context"

	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
)

// memStore is an in-memory conversation.Store that counts writes, so tests
// can assert which paths touch persistence
type memStore struct {
	conv   map[string]map[string]string
	priv   map[string]map[string]string
	writes int
}

func newMemStore() *memStore {
	return &memStore{
		conv: make(map[string]map[string]string),
		priv: make(map[string]map[string]string),
	}
}

func convKey(addr conversation.Address) string {
	return addr.ChannelID + "|" + addr.ConversationID
}

func privKey(addr conversation.Address) string {
	return convKey(addr) + "|" + addr.User.ID
}

func copyMap(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func (m *memStore) GetData(ctx context.Context, addr conversation.Address) (*conversation.BotData, error) {
	addr = addr.Normalized()
	data := conversation.NewBotData()

	if stored, ok := m.conv[convKey(addr)]; ok {
		data.ConversationData = copyMap(stored)
	}
	if addr.User != nil {
		if stored, ok := m.priv[privKey(addr)]; ok {
			data.PrivateConversationData = copyMap(stored)
		}
	}
	return data, nil
}

func (m *memStore) SetData(ctx context.Context, addr conversation.Address, data *conversation.BotData) error {
	addr = addr.Normalized()
	m.writes++

	m.conv[convKey(addr)] = copyMap(data.ConversationData)
	if addr.User != nil {
		m.priv[privKey(addr)] = copyMap(data.PrivateConversationData)
	}
	return nil
}

func (m *memStore) DeleteData(ctx context.Context, addr conversation.Address) error {
	addr = addr.Normalized()
	m.writes++

	delete(m.conv, convKey(addr))
	for k := range m.priv {
		if len(k) >= len(convKey(addr)) && k[:len(convKey(addr))] == convKey(addr) {
			delete(m.priv, k)
		}
	}
	return nil
}

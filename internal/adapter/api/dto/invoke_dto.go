package dto

import (
	"encoding/json"

	"github.com/hugohenrick/commerce-assistant/internal/checkout"
	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
)

// InvokeRequest is an out-of-band payment event from the client payment UI
type InvokeRequest struct {
	Name      string               `json:"name" binding:"required"`
	RelatesTo conversation.Address `json:"relatesTo" binding:"required"`
	Value     json.RawMessage      `json:"value"`
}

// Invoke converts the request into the checkout invoke envelope
func (r *InvokeRequest) Invoke() *checkout.Invoke {
	return &checkout.Invoke{
		Name:      r.Name,
		RelatesTo: r.RelatesTo,
		Value:     r.Value,
	}
}

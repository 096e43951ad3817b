package dialogs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/commerce-assistant/internal/checkout"
	"github.com/hugohenrick/commerce-assistant/internal/domain/cart"
	"github.com/hugohenrick/commerce-assistant/internal/domain/payment"
	"github.com/hugohenrick/commerce-assistant/pkg/dialog"
)

// showCartDialog displays the cart and offers the payment UI. Offering the
// payment request is what arms the checkout: the correlation token written
// here is the only way the later out-of-band invoke can find its way back
// to this conversation and user.
func showCartDialog(deps Deps) dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		c, err := cart.Load(s.Data.PrivateConversationData)
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			s.Send("Your shopping cart appears to be empty. Can I help you find anything?")
			s.Reset(Categories, nil)
			return nil
		}
		if s.Address.User == nil {
			s.Send("I can't start a checkout on this channel without knowing who you are, sorry.")
			return nil
		}

		product, err := deps.Catalog.GetPromotedItem(ctx)
		if err != nil {
			return fmt.Errorf("failed to load promoted item: %w", err)
		}

		// store the user id so the invoke path can resolve it later from
		// relatesTo; one active cart id per conversation at a time
		cartID := uuid.New().String()
		s.Data.ConversationData[checkout.CartIDKey] = cartID
		s.Data.ConversationData[cartID] = s.Address.User.ID
		s.Data.ConversationData[checkout.IssuedKey(cartID)] = time.Now().Format(time.RFC3339)

		paymentRequest, err := checkout.BuildPaymentRequest(deps.Builder, cartID, product)
		if err != nil {
			return fmt.Errorf("failed to build payment request: %w", err)
		}

		msg := dialog.Message{Text: fmt.Sprintf("You have %d product(s) in your cart", c.Size())}
		for _, line := range c.Lines {
			card := dialog.Card{
				Title:    line.Product.Name,
				Subtitle: fmt.Sprintf("$%.2f", line.Variant.Price),
				Text:     variantText(line),
				Buttons: []dialog.CardAction{
					{Type: "imBack", Title: "Remove", Value: "@remove:" + line.Variant.ID},
					{Type: payment.ActionType, Title: "Checkout", Value: paymentRequest},
				},
			}
			if line.Variant.ImageURL != "" {
				card.Images = []string{line.Variant.ImageURL}
			}
			msg.Attachments = append(msg.Attachments, card)
		}
		s.SendMessage(msg)

		deps.Engine.PromptConfirm(s, "Ready to checkout?", Checkout,
			"Sure, take your time. Just tell me when")
		return nil
	})
}

// variantText renders the color/size of a cart line, falling back to the
// product description
func variantText(line cart.Line) string {
	text := ""
	if line.Variant.Color != "" {
		text += "Color - " + line.Variant.Color + "\n"
	}
	if line.Variant.Size != "" {
		text += "Size - " + line.Variant.Size
	}
	if text == "" {
		text = line.Product.Description
	}
	return text
}

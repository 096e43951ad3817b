package dialogs

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/commerce-assistant/internal/domain/cart"
	"github.com/hugohenrick/commerce-assistant/internal/domain/catalog"
	"github.com/hugohenrick/commerce-assistant/pkg/dialog"
)

func showProductDialog(deps Deps) dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		id := entity(args, "value")
		if id == "" {
			s.Reset(Categories, nil)
			return nil
		}

		product, err := deps.Catalog.GetProduct(ctx, id)
		if errors.Is(err, catalog.ErrProductNotFound) {
			s.Send("I couldn't find that product anymore. Say 'categories' to keep looking.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}

		card := dialog.Card{
			Title:    product.Name,
			Subtitle: fmt.Sprintf("$%.2f", product.Price),
			Text:     product.Description,
			Buttons: []dialog.CardAction{
				{Type: "imBack", Title: "Add to cart", Value: "@add:" + product.ID},
			},
		}
		variant := product.DefaultVariant()
		if variant.ImageURL != "" {
			card.Images = []string{variant.ImageURL}
		}

		s.SendMessage(dialog.Message{Attachments: []dialog.Card{card}})
		return nil
	})
}

func addToCartDialog(deps Deps) dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		id := entity(args, "value")

		var product *catalog.Product
		var err error
		if id == "" {
			product, err = deps.Catalog.GetPromotedItem(ctx)
		} else {
			product, err = deps.Catalog.GetProduct(ctx, id)
		}
		if errors.Is(err, catalog.ErrProductNotFound) || errors.Is(err, catalog.ErrNoPromotedItem) {
			s.Send("I couldn't find that product. Say 'categories' to keep looking.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}

		c, err := cart.Load(s.Data.PrivateConversationData)
		if err != nil {
			return err
		}
		c.Add(*product, product.DefaultVariant(), 1)
		if err := c.Save(s.Data.PrivateConversationData); err != nil {
			return err
		}

		s.Send("Added %s to your cart. You now have %d product(s). Say 'cart' to review them.", product.Name, c.Size())
		return nil
	})
}

func removeFromCartDialog(deps Deps) dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		variantID := entity(args, "value")

		c, err := cart.Load(s.Data.PrivateConversationData)
		if err != nil {
			return err
		}

		if !c.Remove(variantID) {
			s.Send("That item is not in your cart.")
			return nil
		}
		if err := c.Save(s.Data.PrivateConversationData); err != nil {
			return err
		}

		s.Send("Removed. You now have %d product(s) in your cart.", c.Size())
		return nil
	})
}

package dialogs

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hugohenrick/commerce-assistant/pkg/dialog"
)

// Conversation data keys of the explore paging state
const (
	exploreCategoryKey = "explore.category"
	exploreOffsetKey   = "explore.offset"
)

// explorePageSize is how many products one explore turn shows
const explorePageSize = 5

func welcomeDialog() dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		s.Send("Welcome to the Contoso shop! I can show you our categories, find products and check you out when you are ready.")
		s.Send("Try saying 'categories' to look around.")
		return nil
	})
}

func categoriesDialog(deps Deps) dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		categories, err := deps.Catalog.ListCategories(ctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		if len(categories) == 0 {
			s.Send("The catalog seems to be empty right now. Please come back later!")
			return nil
		}

		s.Send("Here is what we have today: %s.", strings.Join(categories, ", "))
		s.Send("Say 'explore <category>' to see the products.")
		return nil
	})
}

func exploreDialog(deps Deps) dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		category := entity(args, "value")
		if category == "" {
			category = entity(args, "category")
		}
		offset := 0

		// "next" re-enters with the stored paging state
		if category == "" {
			category = s.Data.ConversationData[exploreCategoryKey]
			offset, _ = strconv.Atoi(s.Data.ConversationData[exploreOffsetKey])
		}
		if category == "" {
			s.Reset(Categories, nil)
			return nil
		}

		products, err := deps.Catalog.ListByCategory(ctx, category, explorePageSize, offset)
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}
		if len(products) == 0 {
			if offset > 0 {
				s.Send("That's everything in %s. Say 'categories' to explore something else.", category)
			} else {
				s.Send("I couldn't find anything under '%s'. Say 'categories' to see what we have.", category)
			}
			delete(s.Data.ConversationData, exploreCategoryKey)
			delete(s.Data.ConversationData, exploreOffsetKey)
			return nil
		}

		s.Data.ConversationData[exploreCategoryKey] = category
		s.Data.ConversationData[exploreOffsetKey] = strconv.Itoa(offset + len(products))

		msg := dialog.Message{Text: fmt.Sprintf("Here is what I found in %s:", category)}
		for _, p := range products {
			msg.Attachments = append(msg.Attachments, dialog.Card{
				Title:    p.Name,
				Subtitle: fmt.Sprintf("$%.2f", p.Price),
				Text:     p.Description,
				Buttons: []dialog.CardAction{
					{Type: "imBack", Title: "Show me", Value: "@show:" + p.ID},
					{Type: "imBack", Title: "Add to cart", Value: "@add:" + p.ID},
				},
			})
		}
		s.SendMessage(msg)
		s.Send("Say 'next' for more.")
		return nil
	})
}

func nextDialog() dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		// paging state lives in conversation data; explore picks it up
		s.Reset(Explore, nil)
		return nil
	})
}

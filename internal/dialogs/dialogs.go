// Package dialogs holds the conversation entry points of the bot: catalog
// browsing, cart management and the checkout receipt/failure dialogs the
// orchestrator resumes into.
package dialogs

import (
	"github.com/hugohenrick/commerce-assistant/internal/checkout"
	"github.com/hugohenrick/commerce-assistant/internal/domain/catalog"
	"github.com/hugohenrick/commerce-assistant/pkg/dialog"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
)

// Dialog names
const (
	Welcome        = "welcome"
	Categories     = "categories"
	Explore        = "explore"
	Next           = "next"
	ShowProduct    = "show_product"
	AddToCart      = "add_to_cart"
	RemoveFromCart = "remove_from_cart"
	ShowCart       = "show_cart"
	Checkout       = "checkout"
	Reset          = "reset"
	Confused       = "confused"
	SmileBack      = "smile_back"
)

// Deps are the collaborators the dialogs are built with
type Deps struct {
	Catalog catalog.Repository
	Builder checkout.BuilderConfig
	Engine  *dialog.Engine
	Logger  logger.Logger
}

// Register adds every dialog of the bot to the registry. Called once during
// process initialization.
func Register(r *dialog.Registry, deps Deps) {
	r.Register(Welcome, welcomeDialog())
	r.Register(Categories, categoriesDialog(deps))
	r.Register(Explore, exploreDialog(deps))
	r.Register(Next, nextDialog())
	r.Register(ShowProduct, showProductDialog(deps))
	r.Register(AddToCart, addToCartDialog(deps))
	r.Register(RemoveFromCart, removeFromCartDialog(deps))
	r.Register(ShowCart, showCartDialog(deps))
	r.Register(Checkout, checkoutDialog())
	r.Register(checkout.ReceiptDialog, receiptDialog(deps))
	r.Register(checkout.FailedDialog, failedDialog())
	r.Register(Reset, resetDialog())
	r.Register(Confused, confusedDialog())
	r.Register(SmileBack, smileBackDialog())
}

// entity reads a string argument from the dialog argument bag
func entity(args map[string]interface{}, key string) string {
	if args == nil {
		return ""
	}
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

package dialogs

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/commerce-assistant/internal/domain/cart"
	"github.com/hugohenrick/commerce-assistant/internal/domain/payment"
	"github.com/hugohenrick/commerce-assistant/pkg/dialog"
)

func checkoutDialog() dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		c, err := cart.Load(s.Data.PrivateConversationData)
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			s.Send("I would be happy to check you out but your cart appears to be empty. Look around and see if you like anything")
			s.Reset(Categories, nil)
			return nil
		}

		s.Send("Alright! You are all set! Use the Checkout button on your cart to pay.")
		return nil
	})
}

// receiptDialog ends a successful checkout. It is resumed by the
// orchestrator after the payment completed, at an address reconstructed
// from stored correlation data.
func receiptDialog(deps Deps) dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		req, _ := args["paymentRequest"].(*payment.Request)
		chargeResult, _ := args["chargeResult"].(*payment.ChargeResult)
		if req == nil || chargeResult == nil {
			return fmt.Errorf("receipt dialog resumed without payment data")
		}

		// the paid cart is done
		cart.Clear(s.Data.PrivateConversationData)

		var b strings.Builder
		b.WriteString("Contoso Order Receipt\n\n")
		fmt.Fprintf(&b, "Order ID: %s\n", chargeResult.OrderID)
		fmt.Fprintf(&b, "Payment Method: %s\n", chargeResult.MethodName)
		fmt.Fprintf(&b, "Shipping Address: %s\n", chargeResult.ShippingAddress.Format())
		fmt.Fprintf(&b, "Shipping Option: %s\n\n", chargeResult.ShippingOption)

		for _, item := range req.Details.DisplayItems {
			fmt.Fprintf(&b, "%s: %s %s\n", item.Label, item.Amount.Currency, item.Amount.Value)
		}
		fmt.Fprintf(&b, "\nTotal: %s %s", req.Details.Total.Amount.Currency, req.Details.Total.Amount.Value)

		s.Send(b.String())
		return nil
	})
}

// failedDialog tells the user their checkout did not go through. The
// correlation data was already cleared by the orchestrator.
func failedDialog() dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		msg := entity(args, "errorMessage")
		if msg == "" {
			msg = "an unexpected error occurred"
		}
		s.Send("Could not process your payment: %s", msg)
		return nil
	})
}

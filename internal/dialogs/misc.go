package dialogs

import (
	"context"
	"strings"

	"github.com/hugohenrick/commerce-assistant/pkg/dialog"
)

func resetDialog() dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		s.EndConversation("See you later!")
		return nil
	})
}

func confusedDialog() dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		if strings.TrimSpace(s.Text) != "" {
			s.Send("Sorry, I didn't understand you or maybe just lost track of our conversation")
		}
		return nil
	})
}

func smileBackDialog() dialog.Dialog {
	return dialog.Func(func(ctx context.Context, s *dialog.Session, args map[string]interface{}) error {
		s.Send(":)")
		return nil
	})
}

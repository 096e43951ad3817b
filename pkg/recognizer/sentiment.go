package recognizer

import (
	"context"
	"strings"
)

// smileTokens are the emoticons answered in kind
var smileTokens = []string{":)", ":-)", ":d", ":-d", "=)", "🙂", "😀", "😊"}

// SmileRecognizer detects smiley utterances so the bot can smile back
// instead of routing them through the catalog dialogs
type SmileRecognizer struct{}

// NewSmileRecognizer creates the smile recognizer
func NewSmileRecognizer() *SmileRecognizer {
	return &SmileRecognizer{}
}

// Recognize reports a Smile intent when the utterance is only a smiley
func (r *SmileRecognizer) Recognize(ctx context.Context, text string) (*Intent, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	for _, tok := range smileTokens {
		if normalized == tok {
			return &Intent{Name: "Smile", Score: 1.0}, nil
		}
	}

	return &Intent{Score: 0}, nil
}

// positive and negative answers accepted by Confirm
var (
	positiveAnswers = map[string]bool{
		"yes": true, "y": true, "yep": true, "yeah": true, "sure": true,
		"ok": true, "okay": true, "ready": true, "confirm": true,
	}
	negativeAnswers = map[string]bool{
		"no": true, "n": true, "nope": true, "not now": true,
		"later": true, "cancel": true,
	}
)

// Confirm interprets an utterance as an answer to a yes/no prompt. The
// second return value reports whether the text was an answer at all.
func Confirm(text string) (answer bool, ok bool) {
	normalized := strings.ToLower(strings.Trim(strings.TrimSpace(text), "!.,"))

	if positiveAnswers[normalized] {
		return true, true
	}
	if negativeAnswers[normalized] {
		return false, true
	}
	return false, false
}

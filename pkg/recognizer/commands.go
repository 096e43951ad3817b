package recognizer

import (
	"context"
	"regexp"
	"strings"
)

// commandPattern binds a regular expression to an intent name
type commandPattern struct {
	intent  string
	pattern *regexp.Regexp
}

// CommandRecognizer matches explicit command-style utterances with regular
// expressions. Matches are exact commands, so they score full confidence
// and shadow the downstream recognizers.
type CommandRecognizer struct {
	patterns []commandPattern
}

// NewCommandRecognizer creates the recognizer with the built-in command table
func NewCommandRecognizer() *CommandRecognizer {
	return &CommandRecognizer{
		patterns: []commandPattern{
			{"ShowTopCategories", regexp.MustCompile(`^(show\s+)?categories$`)},
			{"Explore", regexp.MustCompile(`^(@explore:|explore\s+)(.+)$`)},
			{"Next", regexp.MustCompile(`^(@next|next|more)$`)},
			{"ShowProduct", regexp.MustCompile(`^@show:(.+)$`)},
			{"AddToCart", regexp.MustCompile(`^(@add:|add\s+to\s+cart\s*)(.*)$`)},
			{"RemoveFromCart", regexp.MustCompile(`^@remove:(.+)$`)},
			{"ShowCart", regexp.MustCompile(`^(show\s+|my\s+)?cart$`)},
			{"Checkout", regexp.MustCompile(`^check\s?out$`)},
			{"Reset", regexp.MustCompile(`^(reset|start\s+over|bye)$`)},
		},
	}
}

// Recognize matches the utterance against the command table
func (r *CommandRecognizer) Recognize(ctx context.Context, text string) (*Intent, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	for _, p := range r.patterns {
		m := p.pattern.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}

		intent := &Intent{Name: p.intent, Score: 1.0}
		if arg := lastGroup(m); arg != "" {
			intent.Entities = map[string]string{"value": strings.TrimSpace(arg)}
		}
		return intent, nil
	}

	return &Intent{Score: 0}, nil
}

// lastGroup returns the last capture group of a match, if any
func lastGroup(m []string) string {
	if len(m) < 2 {
		return ""
	}
	return m[len(m)-1]
}

package persona

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

type tokenCounter struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
}

// Count prefers a real cl100k_base count and falls back to a words-based
// estimate when the encoding is unavailable (offline runs).
func (t *tokenCounter) Count(text string) int {
	t.once.Do(func() {
		if enc, err := tiktoken.GetEncoding("cl100k_base"); err == nil {
			t.enc = enc
		}
	})
	if t.enc != nil {
		return len(t.enc.Encode(text, nil, nil))
	}
	return len(strings.Fields(text)) * 4 / 3
}

// buildPrompt assembles the in-character prompt: profile, optional research
// notes, and as much recent conversation as the token budget allows. The
// partner's last line always survives trimming.
func (a *Agent) buildPrompt(partner string) string {
	window := a.cfg.ContextWindowSize
	if window <= 0 {
		window = 10
	}

	recent := a.lines
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}

	for {
		prompt := a.renderPrompt(partner, recent)
		if a.cfg.PromptTokenBudget <= 0 || len(recent) <= 1 {
			return prompt
		}
		if a.counter.Count(prompt) <= a.cfg.PromptTokenBudget {
			return prompt
		}
		recent = recent[1:]
	}
}

func (a *Agent) renderPrompt(partner string, recent []Line) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s. Here is your profile:\n", a.profile.Name)
	b.WriteString(a.profile.Formatted())
	b.WriteString("\n\n")

	if notes, ok := a.research[partner]; ok && notes != "" {
		fmt.Fprintf(&b, "What you know about %s:\n%s\n\n", partner, notes)
	}

	if len(recent) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, line := range recent {
			fmt.Fprintf(&b, "%s: %s\n", line.Speaker, line.Text)
		}
	}

	fmt.Fprintf(&b,
		"\nRespond naturally as %s to %s's last message. Be conversational, show genuine interest, and keep your response to 2-3 sentences ending with a question to continue the conversation.",
		a.profile.Name, partner,
	)
	return b.String()
}

package persona

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/duetsim/duet/internal/config"
	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/internal/profile"
)

type capturingAI struct {
	prompt string
	reply  string
	err    error
}

func (c *capturingAI) Chat(ctx context.Context, history []core.Message, tools []core.Tool) (core.Message, error) {
	if len(history) > 0 {
		c.prompt = history[len(history)-1].Content
	}
	if c.err != nil {
		return core.Message{}, c.err
	}
	return core.Message{Role: core.RoleAssistant, Content: c.reply}, nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		ContextWindowSize: 10,
		PromptTokenBudget: 100000,
	}
}

func TestIntroduceUsesProfileBio(t *testing.T) {
	agent := NewAgent(testConfig(), profile.Examples()[0], &capturingAI{})

	intro := agent.Introduce()
	want := "Hello, I'm Alice Johnson. I'm 28 years old. I work as a Software Engineer. I live in San Francisco."
	if intro != want {
		t.Errorf("intro = %q\nwant %q", intro, want)
	}

	stats := agent.Stats()
	if stats.MyMessages != 1 {
		t.Errorf("intro not recorded: %+v", stats)
	}
}

func TestReplyPromptLayout(t *testing.T) {
	ai := &capturingAI{reply: "  That sounds fun! What do you cook?  "}
	agent := NewAgent(testConfig(), profile.Examples()[0], ai)
	agent.SetResearchNotes("Bob Smith", "Bob runs marathons and writes a book blog.")
	agent.Observe("Alice Johnson", "Hi Bob!")
	agent.Observe("Bob Smith", "I spent the weekend baking bread.")

	reply, err := agent.Reply(context.Background(), "Bob Smith")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply != "That sounds fun! What do you cook?" {
		t.Errorf("reply not trimmed: %q", reply)
	}

	for _, want := range []string{
		"You are Alice Johnson. Here is your profile:",
		"Occupation: Software Engineer",
		"What you know about Bob Smith:\nBob runs marathons and writes a book blog.",
		"Recent conversation:",
		"Alice Johnson: Hi Bob!",
		"Bob Smith: I spent the weekend baking bread.",
		"Respond naturally as Alice Johnson to Bob Smith's last message.",
	} {
		if !strings.Contains(ai.prompt, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, ai.prompt)
		}
	}
}

func TestReplyFallbackOnProviderError(t *testing.T) {
	ai := &capturingAI{err: errors.New("rate limited")}
	agent := NewAgent(testConfig(), profile.Examples()[0], ai)
	agent.Observe("Bob Smith", "Hello!")

	reply, err := agent.Reply(context.Background(), "Bob Smith")
	if err != nil {
		t.Fatalf("provider failure must not propagate: %v", err)
	}
	if reply != fallbackReply {
		t.Errorf("reply = %q", reply)
	}

	stats := agent.Stats()
	if stats.MyMessages != 1 || stats.OtherMessages != 1 {
		t.Errorf("fallback not recorded: %+v", stats)
	}
}

func TestReplyEmptyContentFallsBack(t *testing.T) {
	agent := NewAgent(testConfig(), profile.Examples()[0], &capturingAI{reply: "   "})
	agent.Observe("Bob Smith", "Hello!")

	reply, err := agent.Reply(context.Background(), "Bob Smith")
	if err != nil {
		t.Fatal(err)
	}
	if reply != fallbackReply {
		t.Errorf("reply = %q", reply)
	}
}

func TestReplyPropagatesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agent := NewAgent(testConfig(), profile.Examples()[0], &capturingAI{err: context.Canceled})
	agent.Observe("Bob Smith", "Hello!")
	if _, err := agent.Reply(ctx, "Bob Smith"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestPromptWindowLimitsHistory(t *testing.T) {
	cfg := testConfig()
	cfg.ContextWindowSize = 3

	ai := &capturingAI{reply: "ok"}
	agent := NewAgent(cfg, profile.Examples()[0], ai)
	agent.Observe("Bob Smith", "line one")
	agent.Observe("Alice Johnson", "line two")
	agent.Observe("Bob Smith", "line three")
	agent.Observe("Bob Smith", "line four")

	if _, err := agent.Reply(context.Background(), "Bob Smith"); err != nil {
		t.Fatal(err)
	}

	if strings.Contains(ai.prompt, "line one") {
		t.Error("window should have dropped the oldest line")
	}
	for _, want := range []string{"line two", "line three", "line four"} {
		if !strings.Contains(ai.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestPromptBudgetKeepsLastLine(t *testing.T) {
	cfg := testConfig()
	cfg.PromptTokenBudget = 1

	ai := &capturingAI{reply: "ok"}
	agent := NewAgent(cfg, profile.Examples()[0], ai)
	agent.Observe("Bob Smith", "a very old line about gardening")
	agent.Observe("Bob Smith", "the newest line")

	if _, err := agent.Reply(context.Background(), "Bob Smith"); err != nil {
		t.Fatal(err)
	}

	if strings.Contains(ai.prompt, "gardening") {
		t.Error("budget should have trimmed older lines")
	}
	if !strings.Contains(ai.prompt, "the newest line") {
		t.Error("partner's last line must survive trimming")
	}
}

func TestStatsCountsQuestionsAndWords(t *testing.T) {
	agent := NewAgent(testConfig(), profile.Examples()[0], &capturingAI{})
	agent.Observe("Alice Johnson", "I love cooking on weekends")
	agent.Observe("Alice Johnson", "Do you cook? What about baking?")
	agent.Observe("Bob Smith", "Mostly coffee, honestly.")

	stats := agent.Stats()
	if stats.TotalMessages != 3 || stats.MyMessages != 2 || stats.OtherMessages != 1 {
		t.Errorf("counts wrong: %+v", stats)
	}
	if stats.QuestionsAsked != 2 {
		t.Errorf("questions = %d, want 2", stats.QuestionsAsked)
	}
	if stats.AvgWordsPerMsg != 5.5 {
		t.Errorf("avg words = %v, want 5.5", stats.AvgWordsPerMsg)
	}
}

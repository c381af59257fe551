package persona

import (
	"context"
	"fmt"
	"strings"

	"github.com/duetsim/duet/internal/config"
	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/internal/profile"
	"github.com/duetsim/duet/pkg/log"
)

// fallbackReply keeps a dialogue moving when the provider fails mid-turn.
const fallbackReply = "I'm sorry, I'm having trouble responding right now. Could you tell me more about yourself?"

// Line is one utterance of the running dialogue as this agent remembers it.
type Line struct {
	Speaker string
	Text    string
}

// Stats summarizes an agent's side of the conversation.
type Stats struct {
	TotalMessages  int
	MyMessages     int
	OtherMessages  int
	AvgWordsPerMsg float64
	QuestionsAsked int
}

// Agent plays one persona: it keeps its own view of the conversation,
// optional research notes about partners, and asks the provider for replies
// in character.
type Agent struct {
	cfg      *config.AppConfig
	profile  profile.Profile
	ai       core.AIProvider
	research map[string]string
	lines    []Line
	counter  tokenCounter
}

func NewAgent(cfg *config.AppConfig, prof profile.Profile, ai core.AIProvider) *Agent {
	return &Agent{
		cfg:      cfg,
		profile:  prof,
		ai:       ai,
		research: make(map[string]string),
	}
}

func (a *Agent) Name() string {
	return a.profile.Name
}

func (a *Agent) Profile() profile.Profile {
	return a.profile
}

// Introduce opens the dialogue with a line built locally from the profile,
// without calling the provider.
func (a *Agent) Introduce() string {
	intro := fmt.Sprintf("Hello, I'm %s. %s", a.profile.Name, a.profile.Bio())
	a.lines = append(a.lines, Line{Speaker: a.profile.Name, Text: intro})
	return intro
}

// SetResearchNotes attaches pre-dialogue research about a partner. The notes
// are woven into every prompt involving that partner.
func (a *Agent) SetResearchNotes(partner, notes string) {
	a.research[partner] = notes
}

func (a *Agent) ResearchNotes(partner string) (string, bool) {
	notes, ok := a.research[partner]
	return notes, ok
}

// Observe records a partner line without generating a reply. Every incoming
// line is delivered through it, so both sides of a dialogue hold the full
// transcript even when one of them never speaks again.
func (a *Agent) Observe(speaker, text string) {
	a.lines = append(a.lines, Line{Speaker: speaker, Text: text})
}

// Reply answers the partner's last observed message in character. Provider
// failures fall back to a canned line; context cancellation still aborts.
func (a *Agent) Reply(ctx context.Context, partner string) (string, error) {
	prompt := a.buildPrompt(partner)

	msg, err := a.ai.Chat(ctx, []core.Message{{Role: core.RoleUser, Content: prompt}}, nil)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.FromCtx(ctx).Warn().Err(err).Str("persona", a.profile.Name).Msg("provider failed, using fallback reply")
		a.lines = append(a.lines, Line{Speaker: a.profile.Name, Text: fallbackReply})
		return fallbackReply, nil
	}

	reply := strings.TrimSpace(msg.Content)
	if reply == "" {
		reply = fallbackReply
	}
	a.lines = append(a.lines, Line{Speaker: a.profile.Name, Text: reply})
	return reply, nil
}

func (a *Agent) Stats() Stats {
	var s Stats
	var myWords int
	for _, line := range a.lines {
		s.TotalMessages++
		if line.Speaker != a.profile.Name {
			s.OtherMessages++
			continue
		}
		s.MyMessages++
		myWords += len(strings.Fields(line.Text))
		s.QuestionsAsked += strings.Count(line.Text, "?")
	}
	if s.MyMessages > 0 {
		s.AvgWordsPerMsg = float64(myWords) / float64(s.MyMessages)
	}
	return s
}

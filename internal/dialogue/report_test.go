package dialogue

import (
	"strings"
	"testing"

	"github.com/duetsim/duet/internal/compat"
	"github.com/duetsim/duet/internal/persona"
)

func TestScoreLineFormat(t *testing.T) {
	pair := ScorePair{
		FirstName:  "Alice",
		SecondName: "Bob",
		First:      compat.Interval{Mean: 0.612, Low: 0.401, High: 0.822},
		Second:     compat.Interval{Mean: 0.588, Low: 0.377, High: 0.801},
	}

	want := "[Compatibility] Alice→Bob: mean=0.612 [90% 0.401,0.822] | " +
		"Bob→Alice: mean=0.588 [90% 0.377,0.801] | Avg mean=0.600"
	if got := pair.Line(); got != want {
		t.Errorf("Line()\n got %q\nwant %q", got, want)
	}

	if got := Banner("Alice", "Bob"); got != "=== Conversation between Alice and Bob ===" {
		t.Errorf("Banner() = %q", got)
	}
}

func reportFixture() *Result {
	return &Result{
		DialogueID: "7f9f4a2e-23a4-4a3c-9f1d-4f8e2c9b0c11",
		Turns:      7,
		EndReason:  EndReasonDecision,
		StoppedBy:  "Ada",
		First: SideReport{
			Name:          "Ada",
			Partner:       "Grace",
			Status:        compat.StatusHigh,
			StatusMessage: "Strong potential. Mean=0.71, 90% CI [0.55, 0.84]",
			Estimate:      0.71,
			Factors: []compat.FactorStatus{
				{Name: "personality_similarity", Weight: 0.20, Mean: 0.642, Low: 0.410, High: 0.830},
				{Name: "shared_interests", Weight: 0.25, Mean: 0.788, Low: 0.601, High: 0.915},
			},
			Summary: "traits: analytical, curious; hobbies: coding",
			Stats:   persona.Stats{MyMessages: 4, AvgWordsPerMsg: 18.5, QuestionsAsked: 3},
		},
		Second: SideReport{
			Name:          "Grace",
			Partner:       "Ada",
			Status:        compat.StatusModerate,
			StatusMessage: "Developing. Mean=0.52, 90% CI [0.38, 0.66]",
			Estimate:      0.52,
			Factors: []compat.FactorStatus{
				{Name: "social_energy", Weight: 0.05, Mean: 0.455, Low: 0.220, High: 0.700},
			},
			Summary: "traits: organized; hobbies: writing",
			Stats:   persona.Stats{MyMessages: 3, AvgWordsPerMsg: 22.0, QuestionsAsked: 2},
		},
		AvgEstimate: 0.615,
		Verdict:     compat.VerdictHigh,
		VerdictNote: "These two are likely to become good friends!",
	}
}

func TestRenderTextReport(t *testing.T) {
	out := RenderText(reportFixture())

	for _, want := range []string{
		"=== CONVERSATION ENDED ===",
		"Ada reached a confident verdict on turn 7.",
		"Ada's final assessment: Strong potential. Mean=0.71, 90% CI [0.55, 0.84]",
		"Grace's final assessment: Developing. Mean=0.52, 90% CI [0.38, 0.66]",
		"HIGH COMPATIBILITY: These two are likely to become good friends!",
		"Ada's factor view (of Grace):",
		"  Personality Similarity: mean=0.642, 90% CI [0.410, 0.830]",
		"  Shared Interests: mean=0.788, 90% CI [0.601, 0.915]",
		"Grace's factor view (of Ada):",
		"  Social Energy: mean=0.455, 90% CI [0.220, 0.700]",
		"--- Observations ---",
		"Ada observed: traits: analytical, curious; hobbies: coding",
		"--- Conversation Statistics ---",
		"Ada: 4 messages, avg 18.5 words, 3 questions asked",
		"Grace: 3 messages, avg 22.0 words, 2 questions asked",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderText missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderTextTurnLimit(t *testing.T) {
	res := reportFixture()
	res.EndReason = EndReasonTurnLimit
	res.StoppedBy = ""

	out := RenderText(res)
	if !strings.Contains(out, "Reached the turn limit after 7 turns.") {
		t.Errorf("turn-limit header missing in:\n%s", out)
	}
	if strings.Contains(out, "confident verdict") {
		t.Errorf("decision header should not appear for turn-limit endings:\n%s", out)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(reportFixture())

	for _, want := range []string{
		"**Conversation ended**",
		"Ada reached a confident verdict on turn 7.",
		"**HIGH COMPATIBILITY**: These two are likely to become good friends!",
		"- Ada: Strong potential.",
		"Grace observed: traits: organized; hobbies: writing",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderMarkdown missing %q in:\n%s", want, out)
		}
	}
}

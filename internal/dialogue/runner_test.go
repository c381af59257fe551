package dialogue

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/duetsim/duet/internal/compat"
	"github.com/duetsim/duet/internal/config"
	"github.com/duetsim/duet/internal/persona"
	"github.com/duetsim/duet/internal/profile"
	"github.com/duetsim/duet/internal/providers/llm"
)

func testAppConfig() *config.AppConfig {
	return &config.AppConfig{ContextWindowSize: 10}
}

func hikerCoder() profile.Profile {
	return profile.Profile{
		Name:       "Riley Chen",
		Age:        30,
		Occupation: "Software Engineer",
		Hobbies:    []string{"hiking", "coding"},
		Background: profile.Background{Location: "Denver"},
	}
}

func hikerReader() profile.Profile {
	return profile.Profile{
		Name:       "Morgan Hale",
		Age:        32,
		Occupation: "Park Ranger",
		Hobbies:    []string{"hiking", "reading"},
		Personality: profile.Personality{
			Traits: []string{"adventurous", "social"},
		},
		Background: profile.Background{Location: "Portland"},
	}
}

func scriptedAgent(prof profile.Profile, lines []string) (*persona.Agent, *llm.Scripted) {
	script := llm.NewScripted(lines)
	return persona.NewAgent(testAppConfig(), prof, script), script
}

func factorMean(t *testing.T, side SideReport, name string) float64 {
	t.Helper()
	for _, f := range side.Factors {
		if f.Name == name {
			return f.Mean
		}
	}
	t.Fatalf("report for %s has no factor %q", side.Name, name)
	return 0
}

// Two hikers keep talking about the one hobby they share. Riley speaks on
// even turns, so Morgan's engine gets its two real stop checks on turns 6
// and 8; Riley's engine is checked once, on turn 7, which can never fill a
// two-decision window. The expected outcome is Morgan calling a confident
// HIGH on turn 8.
func TestRunSharedHobbyScenarioStopsHighOnTurnEight(t *testing.T) {
	rileyLines := []string{
		"Hi Morgan! My friends and I hike almost every weekend, and I always pack something to read at the top. Have you been out on the ridge lately?",
		"My friends say I read more trail maps than anything else, but a good hike needs both in my bag. Do you keep a favorite spot up there?",
		"We got the whole crew of friends out for a sunrise hike last week, and I read aloud by the fire once we reached the summit. Does that sound like your kind of morning?",
		"Lately I just plan quiet meals and cook at home.",
	}
	morganLines := []string{
		"After a long week of building software I always hike the ridge before sunrise. Do you ever get out on the trails yourself?",
		"My little trail app is half debugged, but a steady hike still clears my head better than any screen. Is there a summit near you worth an early start?",
		"I sketch out a small program for my trail logs most evenings, then hike at dawn to test the route. Would you come along if the weather holds?",
		"Honestly the best software ideas come to me after a quiet hike up the east face. Should we swap routes sometime soon?",
	}

	first, firstScript := scriptedAgent(hikerCoder(), rileyLines)
	second, secondScript := scriptedAgent(hikerReader(), morganLines)

	runner := NewRunner(Config{
		MaxTurns: 8,
		Engine:   compat.DefaultConfig(),
		Src:      rand.NewSource(7),
	}, first, second)

	var updates []Update
	res, err := runner.Run(context.Background(), func(u Update) { updates = append(updates, u) })
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.EndReason != EndReasonDecision {
		t.Errorf("end reason = %q, want %q", res.EndReason, EndReasonDecision)
	}
	if res.StoppedBy != "Morgan Hale" {
		t.Errorf("stopped by %q, want Morgan Hale", res.StoppedBy)
	}
	if res.Turns != 8 {
		t.Errorf("turns = %d, want 8", res.Turns)
	}
	if len(res.Transcript) != 9 {
		t.Fatalf("transcript has %d lines, want 9 (intro + 8 turns)", len(res.Transcript))
	}
	if res.Transcript[0].Speaker != "Riley Chen" {
		t.Errorf("intro spoken by %q, want Riley Chen", res.Transcript[0].Speaker)
	}

	if len(updates) != 9 {
		t.Fatalf("got %d updates, want 9", len(updates))
	}
	if !updates[0].Intro || updates[0].Scores != nil {
		t.Errorf("first update should be an unscored intro: %+v", updates[0])
	}
	for _, u := range updates[1:] {
		if u.Intro || u.Scores == nil {
			t.Errorf("turn %d update should carry scores", u.Turn)
		}
	}

	if firstScript.Remaining() != 0 || secondScript.Remaining() != 0 {
		t.Errorf("scripts not fully played: %d and %d lines left",
			firstScript.Remaining(), secondScript.Remaining())
	}

	if res.Second.Status != compat.StatusHigh {
		t.Errorf("Morgan's status = %q, want %q", res.Second.Status, compat.StatusHigh)
	}
	for _, side := range []SideReport{res.First, res.Second} {
		if mean := factorMean(t, side, compat.FactorSharedInterests); mean <= 0.5 {
			t.Errorf("%s's shared_interests mean = %.3f, want > 0.5", side.Name, mean)
		}
	}
	if res.Verdict != compat.VerdictHigh {
		t.Errorf("verdict = %q (avg %.3f), want %q", res.Verdict, res.AvgEstimate, compat.VerdictHigh)
	}
}

func TestRunReachesTurnLimitOnNeutralDialogue(t *testing.T) {
	first, _ := scriptedAgent(hikerCoder(), []string{"Fine.", "Right."})
	second, _ := scriptedAgent(hikerReader(), []string{"Okay.", "Sure."})

	runner := NewRunner(Config{
		MaxTurns: 4,
		Engine:   compat.DefaultConfig(),
		Src:      rand.NewSource(11),
	}, first, second)

	res, err := runner.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.EndReason != EndReasonTurnLimit {
		t.Errorf("end reason = %q, want %q", res.EndReason, EndReasonTurnLimit)
	}
	if res.StoppedBy != "" {
		t.Errorf("nobody should have stopped this dialogue, got %q", res.StoppedBy)
	}
	if res.Turns != 4 {
		t.Errorf("turns = %d, want 4", res.Turns)
	}
	if len(res.Transcript) != 5 {
		t.Errorf("transcript has %d lines, want 5", len(res.Transcript))
	}
	if res.Verdict != compat.VerdictModerate {
		t.Errorf("verdict = %q (avg %.3f), want %q", res.Verdict, res.AvgEstimate, compat.VerdictModerate)
	}
}

// Both agents must hold the full transcript when the dialogue ends, the
// intro and the final reply included, so neither side's stats undercount.
func TestRunDeliversEveryLineToBothAgents(t *testing.T) {
	first, _ := scriptedAgent(hikerCoder(), []string{"Fine.", "Right."})
	second, _ := scriptedAgent(hikerReader(), []string{"Okay.", "Sure."})

	runner := NewRunner(Config{
		MaxTurns: 4,
		Engine:   compat.DefaultConfig(),
		Src:      rand.NewSource(11),
	}, first, second)

	res, err := runner.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	firstStats, secondStats := first.Stats(), second.Stats()
	if firstStats.TotalMessages != len(res.Transcript) {
		t.Errorf("Riley logged %d lines, transcript has %d", firstStats.TotalMessages, len(res.Transcript))
	}
	if secondStats.TotalMessages != len(res.Transcript) {
		t.Errorf("Morgan logged %d lines, transcript has %d", secondStats.TotalMessages, len(res.Transcript))
	}
	if firstStats.MyMessages != secondStats.OtherMessages {
		t.Errorf("Riley spoke %d lines but Morgan heard %d", firstStats.MyMessages, secondStats.OtherMessages)
	}
	if secondStats.MyMessages != firstStats.OtherMessages {
		t.Errorf("Morgan spoke %d lines but Riley heard %d", secondStats.MyMessages, firstStats.OtherMessages)
	}
}

type stubResearcher struct {
	failFor string
}

func (s stubResearcher) Research(_ context.Context, name string) (string, error) {
	if name == s.failFor {
		return "", errors.New("search backend offline")
	}
	return "Known for trail cleanup volunteering.", nil
}

func TestRunResearchPhaseAttachesNotesAndDegrades(t *testing.T) {
	first, _ := scriptedAgent(hikerCoder(), []string{"Likewise."})
	second, _ := scriptedAgent(hikerReader(), []string{"Nice to meet you."})

	runner := NewRunner(Config{
		MaxTurns:   2,
		Engine:     compat.DefaultConfig(),
		Researcher: stubResearcher{failFor: "Riley Chen"},
		Src:        rand.NewSource(3),
	}, first, second)

	if _, err := runner.Run(context.Background(), nil); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	notes, ok := first.ResearchNotes("Morgan Hale")
	if !ok || notes != "Known for trail cleanup volunteering." {
		t.Errorf("Riley's notes on Morgan = %q, %v", notes, ok)
	}

	notes, ok = second.ResearchNotes("Riley Chen")
	want := "Could not research Riley Chen due to: search backend offline"
	if !ok || notes != want {
		t.Errorf("Morgan's notes on Riley = %q, want %q", notes, want)
	}
}

func TestRunReturnsEarlyOnCancelledContext(t *testing.T) {
	first, _ := scriptedAgent(hikerCoder(), []string{"Fine."})
	second, _ := scriptedAgent(hikerReader(), []string{"Okay."})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(Config{MaxTurns: 4, Engine: compat.DefaultConfig()}, first, second)
	if _, err := runner.Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

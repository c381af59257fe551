package dialogue

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var factorTitle = cases.Title(language.English)

// Banner opens the live view of a dialogue.
func Banner(first, second string) string {
	return fmt.Sprintf("=== Conversation between %s and %s ===", first, second)
}

// Line renders the running score update shown after every turn.
func (s ScorePair) Line() string {
	return fmt.Sprintf(
		"[Compatibility] %s→%s: mean=%.3f [90%% %.3f,%.3f] | %s→%s: mean=%.3f [90%% %.3f,%.3f] | Avg mean=%.3f",
		s.FirstName, s.SecondName, s.First.Mean, s.First.Low, s.First.High,
		s.SecondName, s.FirstName, s.Second.Mean, s.Second.Low, s.Second.High,
		s.Avg(),
	)
}

// RenderText lays out the final analysis for a terminal.
func RenderText(res *Result) string {
	var b strings.Builder

	b.WriteString("=== CONVERSATION ENDED ===\n")
	if res.EndReason == EndReasonDecision {
		fmt.Fprintf(&b, "%s reached a confident verdict on turn %d.\n", res.StoppedBy, res.Turns)
	} else {
		fmt.Fprintf(&b, "Reached the turn limit after %d turns.\n", res.Turns)
	}
	fmt.Fprintf(&b, "%s's final assessment: %s\n", res.First.Name, res.First.StatusMessage)
	fmt.Fprintf(&b, "%s's final assessment: %s\n", res.Second.Name, res.Second.StatusMessage)
	fmt.Fprintf(&b, "%s: %s\n", res.Verdict, res.VerdictNote)

	writeFactorView(&b, res.First)
	writeFactorView(&b, res.Second)

	b.WriteString("\n--- Observations ---\n")
	fmt.Fprintf(&b, "%s observed: %s\n", res.First.Name, res.First.Summary)
	fmt.Fprintf(&b, "%s observed: %s\n", res.Second.Name, res.Second.Summary)

	b.WriteString("\n--- Conversation Statistics ---\n")
	writeStats(&b, res.First)
	writeStats(&b, res.Second)

	return b.String()
}

func writeFactorView(b *strings.Builder, side SideReport) {
	fmt.Fprintf(b, "\n%s's factor view (of %s):\n", side.Name, side.Partner)
	for _, f := range side.Factors {
		fmt.Fprintf(b, "  %s: mean=%.3f, 90%% CI [%.3f, %.3f]\n",
			factorTitle.String(strings.ReplaceAll(f.Name, "_", " ")), f.Mean, f.Low, f.High)
	}
}

func writeStats(b *strings.Builder, side SideReport) {
	fmt.Fprintf(b, "%s: %d messages, avg %.1f words, %d questions asked\n",
		side.Name, side.Stats.MyMessages, side.Stats.AvgWordsPerMsg, side.Stats.QuestionsAsked)
}

// RenderMarkdown lays out the final analysis for chat transports. The
// Telegram sender converts this to HTML before sending.
func RenderMarkdown(res *Result) string {
	var b strings.Builder

	b.WriteString("**Conversation ended**\n")
	if res.EndReason == EndReasonDecision {
		fmt.Fprintf(&b, "%s reached a confident verdict on turn %d.\n\n", res.StoppedBy, res.Turns)
	} else {
		fmt.Fprintf(&b, "Reached the turn limit after %d turns.\n\n", res.Turns)
	}

	fmt.Fprintf(&b, "**%s**: %s\n\n", res.Verdict, res.VerdictNote)
	fmt.Fprintf(&b, "- %s: %s\n", res.First.Name, res.First.StatusMessage)
	fmt.Fprintf(&b, "- %s: %s\n\n", res.Second.Name, res.Second.StatusMessage)

	fmt.Fprintf(&b, "%s observed: %s\n\n", res.First.Name, res.First.Summary)
	fmt.Fprintf(&b, "%s observed: %s\n", res.Second.Name, res.Second.Summary)

	return b.String()
}

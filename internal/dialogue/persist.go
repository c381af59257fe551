package dialogue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/duetsim/duet/internal/core"
)

// closingVerdict is the shared verdict blob stored on both report rows.
type closingVerdict struct {
	Verdict     string  `json:"verdict"`
	Note        string  `json:"note"`
	AvgEstimate float64 `json:"avg_estimate"`
}

// Persist writes a finished dialogue, its transcript and both closing
// reports. Belief state is not stored; it can be replayed from the turns.
func Persist(ctx context.Context, dialogues core.DialoguesRepository, reports core.ReportsRepository, res *Result) error {
	d := core.StoredDialogue{
		ID:            res.DialogueID,
		FirstPersona:  res.First.Name,
		SecondPersona: res.Second.Name,
	}
	if err := dialogues.CreateDialogue(ctx, d); err != nil {
		return fmt.Errorf("failed to create dialogue record: %w", err)
	}

	for i, line := range res.Transcript {
		turn := core.StoredTurn{
			DialogueID: res.DialogueID,
			Seq:        i,
			Speaker:    line.Speaker,
			Content:    line.Text,
		}
		if err := dialogues.AddTurn(ctx, turn); err != nil {
			return fmt.Errorf("failed to store turn %d: %w", i, err)
		}
	}

	if err := dialogues.FinishDialogue(ctx, res.DialogueID, res.EndReason, res.Turns); err != nil {
		return fmt.Errorf("failed to finish dialogue record: %w", err)
	}

	verdict, err := json.Marshal(closingVerdict{
		Verdict:     res.Verdict,
		Note:        res.VerdictNote,
		AvgEstimate: res.AvgEstimate,
	})
	if err != nil {
		return fmt.Errorf("failed to encode verdict: %w", err)
	}

	for _, side := range []SideReport{res.First, res.Second} {
		report := core.StoredReport{
			DialogueID: res.DialogueID,
			Observer:   side.Name,
			Subject:    side.Partner,
			Status:     side.Status,
			Message:    side.StatusMessage,
			Estimate:   side.Estimate,
			Summary:    side.Summary,
			Verdict:    string(verdict),
		}
		if err := reports.SaveReport(ctx, report); err != nil {
			return fmt.Errorf("failed to store report by %s: %w", side.Name, err)
		}
	}

	return nil
}

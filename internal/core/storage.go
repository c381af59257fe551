package core

import (
	"context"
	"time"
)

type DialoguesRepository interface {
	CreateDialogue(ctx context.Context, d StoredDialogue) error
	AddTurn(ctx context.Context, t StoredTurn) error
	FinishDialogue(ctx context.Context, dialogueID, endReason string, turnCount int) error
	GetDialogue(ctx context.Context, dialogueID string) (StoredDialogue, error)
	GetTurns(ctx context.Context, dialogueID string, limit int) ([]StoredTurn, error)
}

type ReportsRepository interface {
	SaveReport(ctx context.Context, r StoredReport) error
	GetReports(ctx context.Context, dialogueID string) ([]StoredReport, error)
}

type StoredDialogue struct {
	ID            string     `json:"id"`
	FirstPersona  string     `json:"first_persona"`
	SecondPersona string     `json:"second_persona"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	EndReason     string     `json:"end_reason,omitempty"`
	TurnCount     int        `json:"turn_count"`
}

type StoredTurn struct {
	ID         int64     `json:"id"`
	DialogueID string    `json:"dialogue_id"`
	Seq        int       `json:"seq"`
	Speaker    string    `json:"speaker"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// StoredReport is one side's final assessment. Verdict holds the shared
// closing verdict as a JSON blob, duplicated on both rows of a dialogue.
type StoredReport struct {
	ID         int64     `json:"id"`
	DialogueID string    `json:"dialogue_id"`
	Observer   string    `json:"observer"`
	Subject    string    `json:"subject"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	Estimate   float64   `json:"estimate"`
	Summary    string    `json:"summary,omitempty"`
	Verdict    string    `json:"verdict,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

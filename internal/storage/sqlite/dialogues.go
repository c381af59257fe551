package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/pkg/log"
)

type DialoguesRepo struct {
	db *sql.DB
}

func NewDialoguesRepo(db *sql.DB) *DialoguesRepo {
	return &DialoguesRepo{db: db}
}

func (r *DialoguesRepo) CreateDialogue(ctx context.Context, d core.StoredDialogue) error {
	if d.StartedAt.IsZero() {
		d.StartedAt = time.Now()
	}

	query := `INSERT INTO dialogues (id, first_persona, second_persona, started_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, d.ID, d.FirstPersona, d.SecondPersona, d.StartedAt); err != nil {
		return fmt.Errorf("failed to insert dialogue: %w", err)
	}
	return nil
}

func (r *DialoguesRepo) AddTurn(ctx context.Context, t core.StoredTurn) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO turns (dialogue_id, seq, speaker, content) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, t.DialogueID, t.Seq, t.Speaker, t.Content); err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}

	// turn_count tracks live progress; FinishDialogue overwrites it with
	// the final count.
	if _, err := tx.ExecContext(ctx, `UPDATE dialogues SET turn_count = turn_count + 1 WHERE id = ?`, t.DialogueID); err != nil {
		return fmt.Errorf("failed to update turn count: %w", err)
	}

	return tx.Commit()
}

func (r *DialoguesRepo) FinishDialogue(ctx context.Context, dialogueID, endReason string, turnCount int) error {
	query := `UPDATE dialogues SET ended_at = CURRENT_TIMESTAMP, end_reason = ?, turn_count = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, endReason, turnCount, dialogueID)
	if err != nil {
		return fmt.Errorf("failed to finish dialogue: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("dialogue %s not found", dialogueID)
	}
	return nil
}

func (r *DialoguesRepo) GetDialogue(ctx context.Context, dialogueID string) (core.StoredDialogue, error) {
	query := `SELECT id, first_persona, second_persona, started_at, ended_at, end_reason, turn_count FROM dialogues WHERE id = ?`

	var d core.StoredDialogue
	var endedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, dialogueID).Scan(
		&d.ID, &d.FirstPersona, &d.SecondPersona, &d.StartedAt, &endedAt, &d.EndReason, &d.TurnCount,
	)
	if err != nil {
		return core.StoredDialogue{}, fmt.Errorf("failed to load dialogue: %w", err)
	}
	if endedAt.Valid {
		t := endedAt.Time
		d.EndedAt = &t
	}
	return d, nil
}

func (r *DialoguesRepo) GetTurns(ctx context.Context, dialogueID string, limit int) ([]core.StoredTurn, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unlimited
	}

	// Fetch the LAST 'limit' turns by ordering DESC
	query := `SELECT id, dialogue_id, seq, speaker, content, created_at FROM turns WHERE dialogue_id = ? ORDER BY seq DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, dialogueID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.StoredTurn
	for rows.Next() {
		var t core.StoredTurn
		if err := rows.Scan(&t.ID, &t.DialogueID, &t.Seq, &t.Speaker, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The query returned turns newest first. Reverse back to spoken order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(turns)).Msg("loaded dialogue turns")
	return turns, nil
}

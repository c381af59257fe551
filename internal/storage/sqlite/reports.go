package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/duetsim/duet/internal/core"
)

type ReportsRepo struct {
	db *sql.DB
}

func NewReportsRepo(db *sql.DB) *ReportsRepo {
	return &ReportsRepo{db: db}
}

func (r *ReportsRepo) SaveReport(ctx context.Context, rep core.StoredReport) error {
	query := `INSERT INTO reports (dialogue_id, observer, subject, status, message, estimate, summary, verdict)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rep.DialogueID, rep.Observer, rep.Subject, rep.Status, rep.Message, rep.Estimate, rep.Summary, rep.Verdict)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

func (r *ReportsRepo) GetReports(ctx context.Context, dialogueID string) ([]core.StoredReport, error) {
	query := `SELECT id, dialogue_id, observer, subject, status, message, estimate, summary, verdict, created_at
		FROM reports WHERE dialogue_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, dialogueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []core.StoredReport
	for rows.Next() {
		var rep core.StoredReport
		var summary, verdict sql.NullString
		if err := rows.Scan(&rep.ID, &rep.DialogueID, &rep.Observer, &rep.Subject,
			&rep.Status, &rep.Message, &rep.Estimate, &summary, &verdict, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		rep.Summary = summary.String
		rep.Verdict = verdict.String
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

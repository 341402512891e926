package repository

import (
	"context"
	"fmt"

	"github.com/abhishek622/prepai/pkg"
	"github.com/abhishek622/prepai/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateSession(ctx context.Context, s *model.Session) (int64, error) {
	const q = `
INSERT INTO sessions (
	user_id, role, experience, topics_to_focus, description, process_status, metadata
) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING session_id
`
	row := r.db.QueryRow(ctx, q,
		s.UserID, s.Role, s.Experience, s.TopicsToFocus, s.Description, s.ProcessStatus, s.Metadata,
	)
	var sessionID int64
	if err := row.Scan(&sessionID); err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return sessionID, nil
}

// UpdateSession applies a partial update. Unknown columns are skipped so a
// handler can pass request fields straight through.
func (r *Repository) UpdateSession(ctx context.Context, sessionID int64, updates map[string]interface{}) error {
	validCols := map[string]bool{
		"role": true, "experience": true, "topics_to_focus": true,
		"description": true, "process_status": true, "process_error": true,
		"attempts": true, "metadata": true,
	}

	query := "UPDATE sessions SET updated_at = now()"
	args := []interface{}{}

	for col, val := range updates {
		if !validCols[col] {
			continue
		}
		query += fmt.Sprintf(", %s = $%d", col, len(args)+1)
		args = append(args, val)
	}

	query += fmt.Sprintf(" WHERE session_id = $%d", len(args)+1)
	args = append(args, sessionID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

const sessionCols = `
	session_id, user_id, role, experience, topics_to_focus, description,
	process_status, process_error, attempts, metadata, created_at, updated_at`

func scanSession(row pgx.Row) (*model.Session, error) {
	var s model.Session
	err := row.Scan(
		&s.SessionID, &s.UserID, &s.Role, &s.Experience, &s.TopicsToFocus, &s.Description,
		&s.ProcessStatus, &s.ProcessError, &s.Attempts, &s.Metadata, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) GetSessionByID(ctx context.Context, sessionID int64) (*model.Session, error) {
	q := `SELECT` + sessionCols + ` FROM sessions WHERE session_id = $1`
	return scanSession(r.db.QueryRow(ctx, q, sessionID))
}

func (r *Repository) ListSessionsByUser(ctx context.Context, userID uuid.UUID, limit, offset int, statuses []model.ProcessStatus) ([]model.Session, int, error) {
	var statusStrings []string
	for _, s := range statuses {
		statusStrings = append(statusStrings, string(s))
	}

	countQ := `SELECT COUNT(1) FROM sessions WHERE user_id = $1`
	countArgs := []interface{}{userID}
	if len(statusStrings) > 0 {
		countQ += ` AND process_status = ANY($2)`
		countArgs = append(countArgs, statusStrings)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	q := `SELECT` + sessionCols + ` FROM sessions WHERE user_id = $1`
	args := []interface{}{userID}
	if len(statusStrings) > 0 {
		q += fmt.Sprintf(" AND process_status = ANY($%d)", len(args)+1)
		args = append(args, statusStrings)
	}
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := make([]model.Session, 0, limit)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan session row: %w", err)
		}
		out = append(out, *s)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, total, nil
}

func (r *Repository) DeleteSession(ctx context.Context, sessionID int64) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		const qQuestions = `DELETE FROM questions WHERE session_id = $1`
		if _, err := tx.Exec(ctx, qQuestions, sessionID); err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}

		const qSession = `DELETE FROM sessions WHERE session_id = $1`
		tag, err := tx.Exec(ctx, qSession, sessionID)
		if err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("session not found")
		}
		return nil
	})
}

// GetSessionStats aggregates dashboard numbers for one user. Growth compares
// the last 30 days against the 30 days before them.
func (r *Repository) GetSessionStats(ctx context.Context, userID uuid.UUID) (*model.SessionStats, error) {
	const q = `
SELECT
	COUNT(1) AS total,
	COUNT(1) FILTER (WHERE process_status = 'completed') AS completed,
	COUNT(1) FILTER (WHERE process_status = 'failed') AS failed,
	COUNT(1) FILTER (WHERE created_at >= now() - interval '30 days') AS recent,
	COUNT(1) FILTER (WHERE created_at >= now() - interval '60 days'
		AND created_at < now() - interval '30 days') AS previous
FROM sessions WHERE user_id = $1
`
	var stats model.SessionStats
	var recent, previous int
	row := r.db.QueryRow(ctx, q, userID)
	if err := row.Scan(&stats.Total, &stats.Completed, &stats.Failed, &recent, &previous); err != nil {
		return nil, fmt.Errorf("session stats: %w", err)
	}
	stats.TotalChange = pkg.CalculateGrowth(recent, previous)

	const qPinned = `
SELECT COUNT(1) FROM questions q
JOIN sessions s ON s.session_id = q.session_id
WHERE s.user_id = $1 AND q.is_pinned
`
	if err := r.db.QueryRow(ctx, qPinned, userID).Scan(&stats.PinnedQuestions); err != nil {
		return nil, fmt.Errorf("pinned count: %w", err)
	}

	return &stats, nil
}

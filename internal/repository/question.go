package repository

import (
	"context"
	"fmt"

	"github.com/abhishek622/prepai/pkg/model"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateQuestions(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	const q = `INSERT INTO questions (session_id, question, answer) VALUES ($1, $2, $3)`
	for _, question := range questions {
		batch.Queue(q, question.SessionID, question.Question, question.Answer)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < len(questions); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch insert question %d: %w", i, err)
		}
	}
	return nil
}

func (r *Repository) GetQuestionByID(ctx context.Context, qID int64) (*model.Question, error) {
	const q = `
SELECT q_id, session_id, question, answer, note, is_pinned, created_at, updated_at
FROM questions
WHERE q_id = $1
`
	var qs model.Question
	row := r.db.QueryRow(ctx, q, qID)
	err := row.Scan(&qs.QID, &qs.SessionID, &qs.Question, &qs.Answer, &qs.Note, &qs.IsPinned, &qs.CreatedAt, &qs.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &qs, nil
}

// ListQuestionsBySession returns the session's questions, pinned ones first.
func (r *Repository) ListQuestionsBySession(ctx context.Context, sessionID int64) ([]model.Question, error) {
	const q = `
SELECT q_id, session_id, question, answer, note, is_pinned, created_at, updated_at
FROM questions
WHERE session_id = $1
ORDER BY is_pinned DESC, created_at ASC
`
	rows, err := r.db.Query(ctx, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []model.Question
	for rows.Next() {
		var qs model.Question
		if err := rows.Scan(&qs.QID, &qs.SessionID, &qs.Question, &qs.Answer, &qs.Note, &qs.IsPinned, &qs.CreatedAt, &qs.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, qs)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// TogglePin flips the pin flag and returns the new state.
func (r *Repository) TogglePin(ctx context.Context, qID int64) (bool, error) {
	const q = `
UPDATE questions SET is_pinned = NOT is_pinned, updated_at = now()
WHERE q_id = $1
RETURNING is_pinned
`
	var pinned bool
	if err := r.db.QueryRow(ctx, q, qID).Scan(&pinned); err != nil {
		return false, fmt.Errorf("toggle pin: %w", err)
	}
	return pinned, nil
}

func (r *Repository) UpdateQuestionNote(ctx context.Context, qID int64, note string) error {
	const q = `UPDATE questions SET note = $1, updated_at = now() WHERE q_id = $2`
	tag, err := r.db.Exec(ctx, q, note, qID)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question not found")
	}
	return nil
}

func (r *Repository) DeleteQuestion(ctx context.Context, qID int64) error {
	const q = `DELETE FROM questions WHERE q_id = $1`
	tag, err := r.db.Exec(ctx, q, qID)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question not found")
	}
	return nil
}

package model

import "time"

type Question struct {
	QID       int64     `json:"q_id" db:"q_id"`
	SessionID int64     `json:"session_id" db:"session_id"`
	Question  string    `json:"question" db:"question"`
	Answer    string    `json:"answer" db:"answer"`
	Note      *string   `json:"note" db:"note"`
	IsPinned  bool      `json:"is_pinned" db:"is_pinned"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type GenerateMoreReq struct {
	NumQuestions int `json:"num_questions" binding:"omitempty,min=1,max=10"`
}

type UpdateNoteReq struct {
	Note string `json:"note" binding:"max=2000"`
}

// Explanation is the AI's deeper walkthrough of a single question. It is
// generated on demand and not persisted.
type Explanation struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

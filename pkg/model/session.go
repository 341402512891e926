package model

import (
	"time"

	"github.com/google/uuid"
)

type ProcessStatus string

const (
	ProcessStatusQueued     ProcessStatus = "queued"
	ProcessStatusProcessing ProcessStatus = "processing"
	ProcessStatusCompleted  ProcessStatus = "completed"
	ProcessStatusFailed     ProcessStatus = "failed"
)

// Session is one prep session: a target role plus the AI-generated question
// set that belongs to it. Generation happens in the background, so the row
// carries its own processing state.
type Session struct {
	SessionID     int64                  `json:"session_id" db:"session_id"`
	UserID        uuid.UUID              `json:"user_id" db:"user_id"`
	Role          string                 `json:"role" db:"role"`
	Experience    string                 `json:"experience" db:"experience"`
	TopicsToFocus string                 `json:"topics_to_focus" db:"topics_to_focus"`
	Description   string                 `json:"description" db:"description"`
	ProcessStatus ProcessStatus          `json:"process_status" db:"process_status"`
	ProcessError  *string                `json:"process_error" db:"process_error"`
	Attempts      int                    `json:"attempts" db:"attempts"`
	Metadata      map[string]interface{} `json:"metadata" db:"metadata"`
	CreatedAt     time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at" db:"updated_at"`
}

type CreateSessionReq struct {
	Role          string `json:"role" binding:"required"`
	Experience    string `json:"experience" binding:"required"`
	TopicsToFocus string `json:"topics_to_focus"`
	Description   string `json:"description"`
	NumQuestions  int    `json:"num_questions" binding:"omitempty,min=1,max=30"`
}

type ImportSessionReq struct {
	URL          string `json:"url" binding:"required,url"`
	Experience   string `json:"experience" binding:"required"`
	NumQuestions int    `json:"num_questions" binding:"omitempty,min=1,max=30"`
}

type PatchSessionReq struct {
	Role          *string `json:"role,omitempty"`
	Experience    *string `json:"experience,omitempty"`
	TopicsToFocus *string `json:"topics_to_focus,omitempty"`
	Description   *string `json:"description,omitempty"`
}

type ListSessionsQuery struct {
	Page     int             `form:"page,default=1"`
	PageSize int             `form:"page_size,default=20"`
	Status   []ProcessStatus `form:"status"`
}

type SessionStats struct {
	Total           int `json:"total"`
	TotalChange     int `json:"total_change"` // % change vs previous 30 days
	Completed       int `json:"completed"`
	Failed          int `json:"failed"`
	PinnedQuestions int `json:"pinned_questions"`
}

type SessionWithQuestions struct {
	Session   Session    `json:"session"`
	Questions []Question `json:"questions"`
}

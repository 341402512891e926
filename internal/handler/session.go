package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/abhishek622/prepai/internal/fetcher"
	"github.com/abhishek622/prepai/pkg"
	"github.com/abhishek622/prepai/pkg/model"
	"github.com/abhishek622/prepai/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

const defaultNumQuestions = 10

// CreateSession persists a queued session, responds immediately and runs the
// AI generation in the background. The client polls process_status.
func (h *Handler) CreateSession(c *gin.Context) {
	var req model.CreateSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	n := req.NumQuestions
	if n <= 0 {
		n = defaultNumQuestions
	}

	session := &model.Session{
		UserID:        claims.UserID,
		Role:          req.Role,
		Experience:    req.Experience,
		TopicsToFocus: req.TopicsToFocus,
		Description:   req.Description,
		ProcessStatus: model.ProcessStatusQueued,
		Metadata:      map[string]interface{}{"num_questions": n},
	}

	sessionID, err := h.Repository.CreateSession(c.Request.Context(), session)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to create session", "err", err)
		response.InternalError(c, "failed to create session")
		return
	}

	response.Accepted(c, gin.H{"session_id": sessionID, "process_status": model.ProcessStatusQueued})

	go h.generateSessionQuestions(sessionID, req.Role, req.Experience, req.TopicsToFocus, n)
}

// ImportSession fetches a job posting and creates a session seeded from it.
func (h *Handler) ImportSession(c *gin.Context) {
	var req model.ImportSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	posting, err := fetcher.FetchJobPosting(c.Request.Context(), req.URL, c.Request.UserAgent())
	if err != nil {
		h.Logger.Sugar().Warnw("job posting fetch failed", "url", req.URL, "err", err)
		response.BadRequest(c, "could not fetch job posting")
		return
	}

	n := req.NumQuestions
	if n <= 0 {
		n = defaultNumQuestions
	}

	role := posting.Title
	if role == "" {
		role = "Software Engineer"
	}

	session := &model.Session{
		UserID:        claims.UserID,
		Role:          role,
		Experience:    req.Experience,
		Description:   pkg.Truncate(posting.Description, 4000),
		ProcessStatus: model.ProcessStatusQueued,
		Metadata: map[string]interface{}{
			"num_questions": n,
			"source_url":    posting.URL,
		},
	}

	sessionID, err := h.Repository.CreateSession(c.Request.Context(), session)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to create imported session", "err", err)
		response.InternalError(c, "failed to create session")
		return
	}

	response.Accepted(c, gin.H{"session_id": sessionID, "role": role, "process_status": model.ProcessStatusQueued})

	go h.generateSessionQuestions(sessionID, role, req.Experience, session.Description, n)
}

// generateSessionQuestions is the background half of session creation. It
// owns its own context: the HTTP request that queued the work is long gone.
func (h *Handler) generateSessionQuestions(sessionID int64, role, experience, topics string, n int) {
	ctx := context.Background()
	log := h.Logger.Sugar()

	_ = h.Repository.UpdateSession(ctx, sessionID, map[string]interface{}{
		"process_status": model.ProcessStatusProcessing,
		"attempts":       1,
	})

	generated, err := h.Groq.GenerateQuestions(ctx, role, experience, topics, n)
	if err != nil {
		log.Errorw("question generation failed", "session_id", sessionID, "err", err)
		_ = h.Repository.UpdateSession(ctx, sessionID, map[string]interface{}{
			"process_status": model.ProcessStatusFailed,
			"process_error":  err.Error(),
		})
		return
	}

	qs := make([]model.Question, len(generated))
	for i, g := range generated {
		qs[i] = model.Question{SessionID: sessionID, Question: g.Question, Answer: g.Answer}
	}
	if err := h.Repository.CreateQuestions(ctx, qs); err != nil {
		log.Errorw("failed to save questions", "session_id", sessionID, "err", err)
		_ = h.Repository.UpdateSession(ctx, sessionID, map[string]interface{}{
			"process_status": model.ProcessStatusFailed,
			"process_error":  err.Error(),
		})
		return
	}

	if err := h.Repository.UpdateSession(ctx, sessionID, map[string]interface{}{
		"process_status": model.ProcessStatusCompleted,
	}); err != nil {
		log.Errorw("failed to mark session completed", "session_id", sessionID, "err", err)
	}
}

// getOwnedSession loads a session and enforces that it belongs to the caller.
func (h *Handler) getOwnedSession(c *gin.Context, idParam string) *model.Session {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return nil
	}

	id, err := strconv.ParseInt(c.Param(idParam), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return nil
	}

	session, err := h.Repository.GetSessionByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "session not found")
			return nil
		}
		h.Logger.Sugar().Errorw("failed to get session", "id", id, "err", err)
		response.InternalError(c, "")
		return nil
	}

	if session.UserID != claims.UserID {
		response.Forbidden(c, "not your session")
		return nil
	}
	return session
}

func (h *Handler) GetSession(c *gin.Context) {
	session := h.getOwnedSession(c, "id")
	if session == nil {
		return
	}

	qs, err := h.Repository.ListQuestionsBySession(c.Request.Context(), session.SessionID)
	if err != nil {
		h.Logger.Sugar().Warnw("failed to fetch questions", "session_id", session.SessionID, "err", err)
	}

	response.OK(c, model.SessionWithQuestions{Session: *session, Questions: qs})
}

func (h *Handler) ListSessions(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var q model.ListSessionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	limit := q.PageSize
	if limit <= 0 {
		limit = 20
	}
	offset := max((q.Page-1)*limit, 0)

	sessions, total, err := h.Repository.ListSessionsByUser(c.Request.Context(), claims.UserID, limit, offset, q.Status)
	if err != nil {
		h.Logger.Sugar().Errorw("list sessions failed", "err", err)
		response.InternalError(c, "")
		return
	}

	response.OKWithMeta(c, sessions, &response.Meta{
		Page:     q.Page,
		PageSize: limit,
		Total:    total,
		HasNext:  offset+len(sessions) < total,
	})
}

func (h *Handler) PatchSession(c *gin.Context) {
	session := h.getOwnedSession(c, "id")
	if session == nil {
		return
	}

	var req model.PatchSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Experience != nil {
		updates["experience"] = *req.Experience
	}
	if req.TopicsToFocus != nil {
		updates["topics_to_focus"] = *req.TopicsToFocus
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		response.BadRequest(c, "nothing to update")
		return
	}

	if err := h.Repository.UpdateSession(c.Request.Context(), session.SessionID, updates); err != nil {
		h.Logger.Sugar().Errorw("patch session failed", "session_id", session.SessionID, "err", err)
		response.InternalError(c, "")
		return
	}

	response.Message(c, "session updated successfully")
}

func (h *Handler) DeleteSession(c *gin.Context) {
	session := h.getOwnedSession(c, "id")
	if session == nil {
		return
	}

	if err := h.Repository.DeleteSession(c.Request.Context(), session.SessionID); err != nil {
		h.Logger.Sugar().Errorw("delete session failed", "session_id", session.SessionID, "err", err)
		response.InternalError(c, "")
		return
	}

	response.Message(c, "session deleted successfully")
}

func (h *Handler) GetSessionStats(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	stats, err := h.Repository.GetSessionStats(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Sugar().Errorw("session stats failed", "err", err)
		response.InternalError(c, "")
		return
	}

	response.OK(c, stats)
}

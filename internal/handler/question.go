package handler

import (
	"errors"
	"strconv"

	"github.com/abhishek622/prepai/pkg/model"
	"github.com/abhishek622/prepai/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// GenerateMoreQuestions appends a fresh AI-generated batch to an existing
// session. Unlike session creation this is synchronous: the batch is small
// and the client wants the new questions in the response.
func (h *Handler) GenerateMoreQuestions(c *gin.Context) {
	session := h.getOwnedSession(c, "id")
	if session == nil {
		return
	}

	var req model.GenerateMoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n := req.NumQuestions
	if n <= 0 {
		n = 3
	}

	generated, err := h.Groq.GenerateQuestions(c.Request.Context(), session.Role, session.Experience, session.TopicsToFocus, n)
	if err != nil {
		h.Logger.Sugar().Errorw("generate more questions failed", "session_id", session.SessionID, "err", err)
		response.InternalError(c, "question generation failed")
		return
	}

	qs := make([]model.Question, len(generated))
	for i, g := range generated {
		qs[i] = model.Question{SessionID: session.SessionID, Question: g.Question, Answer: g.Answer}
	}
	if err := h.Repository.CreateQuestions(c.Request.Context(), qs); err != nil {
		h.Logger.Sugar().Errorw("failed to save questions", "session_id", session.SessionID, "err", err)
		response.InternalError(c, "")
		return
	}

	all, err := h.Repository.ListQuestionsBySession(c.Request.Context(), session.SessionID)
	if err != nil {
		h.Logger.Sugar().Warnw("failed to reload questions", "err", err)
	}

	response.Created(c, gin.H{"added": len(qs), "questions": all})
}

// getOwnedQuestion loads a question and checks the parent session belongs to
// the caller.
func (h *Handler) getOwnedQuestion(c *gin.Context) *model.Question {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return nil
	}

	qID, err := strconv.ParseInt(c.Param("q_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return nil
	}

	question, err := h.Repository.GetQuestionByID(c.Request.Context(), qID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "question not found")
			return nil
		}
		h.Logger.Sugar().Errorw("failed to get question", "q_id", qID, "err", err)
		response.InternalError(c, "")
		return nil
	}

	session, err := h.Repository.GetSessionByID(c.Request.Context(), question.SessionID)
	if err != nil || session.UserID != claims.UserID {
		response.Forbidden(c, "not your question")
		return nil
	}
	return question
}

func (h *Handler) TogglePinQuestion(c *gin.Context) {
	question := h.getOwnedQuestion(c)
	if question == nil {
		return
	}

	pinned, err := h.Repository.TogglePin(c.Request.Context(), question.QID)
	if err != nil {
		h.Logger.Sugar().Errorw("toggle pin failed", "q_id", question.QID, "err", err)
		response.InternalError(c, "")
		return
	}

	response.OK(c, gin.H{"q_id": question.QID, "is_pinned": pinned})
}

func (h *Handler) UpdateQuestionNote(c *gin.Context) {
	question := h.getOwnedQuestion(c)
	if question == nil {
		return
	}

	var req model.UpdateNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.Repository.UpdateQuestionNote(c.Request.Context(), question.QID, req.Note); err != nil {
		h.Logger.Sugar().Errorw("update note failed", "q_id", question.QID, "err", err)
		response.InternalError(c, "")
		return
	}

	response.Message(c, "note updated successfully")
}

func (h *Handler) DeleteQuestion(c *gin.Context) {
	question := h.getOwnedQuestion(c)
	if question == nil {
		return
	}

	if err := h.Repository.DeleteQuestion(c.Request.Context(), question.QID); err != nil {
		h.Logger.Sugar().Errorw("delete question failed", "q_id", question.QID, "err", err)
		response.InternalError(c, "")
		return
	}

	response.Message(c, "question deleted successfully")
}

// ExplainQuestion asks the model for a deeper explanation of one question.
// Generated on demand and returned directly, never stored.
func (h *Handler) ExplainQuestion(c *gin.Context) {
	question := h.getOwnedQuestion(c)
	if question == nil {
		return
	}

	explanation, err := h.Groq.ExplainConcept(c.Request.Context(), question.Question)
	if err != nil {
		h.Logger.Sugar().Errorw("explanation failed", "q_id", question.QID, "err", err)
		response.InternalError(c, "explanation generation failed")
		return
	}

	response.OK(c, explanation)
}

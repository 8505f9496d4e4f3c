package handlers

import (
	"context"
	"errors"
	"net/http"

	"exam-service/internal/exam"
	"exam-service/internal/identity"
	"exam-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Service *service.ExamService
}

func NewSessionHandler(s *service.ExamService) *SessionHandler {
	return &SessionHandler{Service: s}
}

// StartSession begins a timed exam attempt for the authenticated examinee.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req struct {
		TestID string `json:"test_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := identity.CurrentExaminee(c)
	session, err := h.Service.StartSession(context.Background(), req.TestID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
		case errors.Is(err, exam.ErrEmptyQuestionPool):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No questions available for this test"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to start session",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"test_name":  session.Definition.Name,
		"questions":  session.QuestionCount(),
		"shortened":  session.Shortened(),
		"current":    session.Current(),
	})
}

// GetSession returns the examinee's current view of a live session.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"state":      session.State(),
		"current":    session.Current(),
	})
}

// SelectAnswer records the choice for the current question. The first
// answer per question is final; a repeat is reported, not an error.
func (h *SessionHandler) SelectAnswer(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	var req struct {
		Option string `json:"option" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid answer format",
			"details": err.Error(),
		})
		return
	}

	recorded, view, err := h.Service.SelectAnswer(context.Background(), session.ID, req.Option)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotActive) {
			c.JSON(http.StatusConflict, gin.H{"error": "Session is no longer in progress"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recorded": recorded,
		"current":  view,
	})
}

// Advance moves to the next question, or submits when the examinee
// advances past the last one.
func (h *SessionHandler) Advance(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	view, summary, err := h.Service.Advance(context.Background(), session.ID)
	if err != nil && !errors.Is(err, service.ErrAlreadySubmitting) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to advance",
			"details": err.Error(),
		})
		return
	}
	if summary != nil {
		c.JSON(http.StatusOK, gin.H{
			"finished": true,
			"summary":  summary,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"current": view})
}

// Retreat moves back one question.
func (h *SessionHandler) Retreat(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	view, err := h.Service.Retreat(context.Background(), session.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"current": view})
}

// ToggleMark bookmarks a question for later review within the session.
func (h *SessionHandler) ToggleMark(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	var req struct {
		Index *int `json:"index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	marked, err := h.Service.ToggleMark(context.Background(), session.ID, *req.Index)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"index": *req.Index, "marked": marked})
}

// Submit finishes the session on explicit examinee request.
func (h *SessionHandler) Submit(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	summary, err := h.Service.Finish(context.Background(), session.ID, exam.CompletionCompleted)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubmitting) {
			c.JSON(http.StatusConflict, gin.H{"error": "Session already submitted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to submit session",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"finished": true,
		"summary":  summary,
	})
}

// Abort ends the session without saving a result.
func (h *SessionHandler) Abort(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	if err := h.Service.Abort(context.Background(), session.ID); err != nil {
		if errors.Is(err, service.ErrAlreadySubmitting) {
			c.JSON(http.StatusConflict, gin.H{"error": "Session already submitted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"aborted": true})
}

// Restore brings a cached in-flight session back after a reload.
func (h *SessionHandler) Restore(c *gin.Context) {
	sessionID := c.Param("id")
	session, err := h.Service.Restore(context.Background(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if session.UserID != identity.CurrentExaminee(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"state":      session.State(),
		"current":    session.Current(),
	})
}

// ownedSession loads the session from the path id and checks it belongs
// to the requesting examinee.
func (h *SessionHandler) ownedSession(c *gin.Context) (*exam.Session, bool) {
	session, err := h.Service.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	if session.UserID != "" && session.UserID != identity.CurrentExaminee(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return nil, false
	}
	return session, true
}

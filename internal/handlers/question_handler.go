package handlers

import (
	"context"
	"errors"
	"net/http"

	"exam-service/internal/models"
	"exam-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	Service *service.QuestionService
}

func NewQuestionHandler(s *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{Service: s}
}

func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	mainSection := c.Query("main_section")
	subSection := c.Query("sub_section")
	category := c.Query("category")
	if mainSection == "" || subSection == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "main_section, sub_section and category are required"})
		return
	}
	questions, err := h.Service.ListQuestions(context.Background(), mainSection, subSection, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions, "count": len(questions)})
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	question, err := h.Service.GetQuestion(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.CreateQuestion(context.Background(), &question); err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateQuestion(context.Background(), c.Param("id"), &question); err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question updated successfully"})
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if err := h.Service.DeleteQuestion(context.Background(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

func isValidationError(err error) bool {
	return errors.Is(err, models.ErrQuestionTextRequired) ||
		errors.Is(err, models.ErrOptionCount) ||
		errors.Is(err, models.ErrCorrectNotAnOption)
}

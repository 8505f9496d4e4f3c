package handlers

import (
	"context"
	"net/http"

	"exam-service/internal/models"
	"exam-service/internal/service"

	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	Service *service.TestService
}

func NewTestHandler(s *service.TestService) *TestHandler {
	return &TestHandler{Service: s}
}

func (h *TestHandler) GetTest(c *gin.Context) {
	test, err := h.Service.GetTest(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
		return
	}
	c.JSON(http.StatusOK, test)
}

func (h *TestHandler) ListTests(c *gin.Context) {
	mainSection := c.Query("main_section")
	subSection := c.Query("sub_section")
	if mainSection == "" || subSection == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "main_section and sub_section are required"})
		return
	}
	tests, err := h.Service.ListTests(context.Background(), mainSection, subSection)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tests": tests, "count": len(tests)})
}

func (h *TestHandler) CreateTest(c *gin.Context) {
	var test models.TestDefinition
	if err := c.ShouldBindJSON(&test); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if test.DurationMinutes <= 0 || test.TotalQuestions <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration and total questions must be positive"})
		return
	}
	if test.PassingScore < 0 || test.PassingScore > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passing score must be between 0 and 100"})
		return
	}
	if err := h.Service.CreateTest(context.Background(), &test); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, test)
}

func (h *TestHandler) UpdateTest(c *gin.Context) {
	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateTest(context.Background(), c.Param("id"), update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test updated successfully"})
}

func (h *TestHandler) DeleteTest(c *gin.Context) {
	if err := h.Service.DeleteTest(context.Background(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test deleted successfully"})
}

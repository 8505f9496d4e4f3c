package handlers

import (
	"context"
	"net/http"

	"exam-service/internal/identity"
	"exam-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	Service *service.ResultService
}

func NewResultHandler(s *service.ResultService) *ResultHandler {
	return &ResultHandler{Service: s}
}

// GetResult serves the review page: the full snapshot of one attempt,
// restricted to its owner.
func (h *ResultHandler) GetResult(c *gin.Context) {
	result, err := h.Service.GetResult(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
		return
	}
	if result.UserID != identity.CurrentExaminee(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ResultHandler) GetMyResults(c *gin.Context) {
	userID := identity.CurrentExaminee(c)
	results, err := h.Service.GetResultsByUser(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

func (h *ResultHandler) GetPerformance(c *gin.Context) {
	userID := identity.CurrentExaminee(c)
	performance, err := h.Service.GetPerformance(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, performance)
}

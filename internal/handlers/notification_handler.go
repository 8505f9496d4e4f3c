package handlers

import (
	"context"
	"net/http"

	"exam-service/internal/identity"
	"exam-service/internal/models"
	"exam-service/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Service *service.NotificationService
}

func NewNotificationHandler(s *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: s}
}

func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var notification models.Notification
	if err := c.ShouldBindJSON(&notification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if notification.Title == "" || notification.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}
	if err := h.Service.SendNotification(context.Background(), &notification); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, notification)
}

func (h *NotificationHandler) ListMyNotifications(c *gin.Context) {
	userID := identity.CurrentExaminee(c)
	notifications, err := h.Service.ListForUser(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "count": len(notifications)})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	if err := h.Service.DeleteNotification(context.Background(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

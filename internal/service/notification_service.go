package service

import (
	"context"
	"time"

	"exam-service/internal/event"
	"exam-service/internal/models"
	"exam-service/internal/repository"
)

type NotificationService struct {
	Repo      *repository.NotificationRepository
	Publisher *event.EventPublisher
}

func NewNotificationService(repo *repository.NotificationRepository, publisher *event.EventPublisher) *NotificationService {
	return &NotificationService{Repo: repo, Publisher: publisher}
}

func (s *NotificationService) SendNotification(ctx context.Context, notification *models.Notification) error {
	if notification.Target == "" {
		notification.Target = "all"
	}
	notification.CreatedAt = time.Now().UTC()
	if err := s.Repo.Create(ctx, notification); err != nil {
		return err
	}
	s.Publisher.Publish("notification.created", map[string]interface{}{
		"id":     notification.ID,
		"title":  notification.Title,
		"target": notification.Target,
	})
	return nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.Repo.FindForUser(ctx, userID)
}

func (s *NotificationService) DeleteNotification(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

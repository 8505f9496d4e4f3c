package service

import (
	"context"
	"time"

	"exam-service/internal/models"
	"exam-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type TestService struct {
	Repo *repository.TestRepository
}

func NewTestService(repo *repository.TestRepository) *TestService {
	return &TestService{Repo: repo}
}

func (s *TestService) GetTest(ctx context.Context, id string) (*models.TestDefinition, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *TestService) ListTests(ctx context.Context, mainSection, subSection string) ([]models.TestDefinition, error) {
	return s.Repo.FindBySection(ctx, mainSection, subSection)
}

func (s *TestService) CreateTest(ctx context.Context, test *models.TestDefinition) error {
	now := time.Now().UTC()
	test.CreatedAt = now
	test.UpdatedAt = now
	return s.Repo.Create(ctx, test)
}

func (s *TestService) UpdateTest(ctx context.Context, id string, update map[string]interface{}) error {
	update["updated_at"] = time.Now().UTC()
	return s.Repo.Update(ctx, id, bson.M(update))
}

func (s *TestService) DeleteTest(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

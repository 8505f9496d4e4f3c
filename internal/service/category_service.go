package service

import (
	"context"
	"time"

	"exam-service/internal/models"
	"exam-service/internal/repository"
)

type CategoryService struct {
	Repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{Repo: repo}
}

func (s *CategoryService) ListMainSections(ctx context.Context) ([]models.MainSection, error) {
	return s.Repo.FindMainSections(ctx)
}

func (s *CategoryService) ListSubSections(ctx context.Context, mainSectionID string) ([]models.SubSection, error) {
	return s.Repo.FindSubSections(ctx, mainSectionID)
}

func (s *CategoryService) ListCategories(ctx context.Context, mainSectionID, subSectionID string) ([]models.Category, error) {
	return s.Repo.FindCategories(ctx, mainSectionID, subSectionID)
}

func (s *CategoryService) CreateMainSection(ctx context.Context, section *models.MainSection) error {
	section.CreatedAt = time.Now().UTC()
	return s.Repo.CreateMainSection(ctx, section)
}

func (s *CategoryService) CreateSubSection(ctx context.Context, section *models.SubSection) error {
	section.CreatedAt = time.Now().UTC()
	return s.Repo.CreateSubSection(ctx, section)
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) error {
	category.CreatedAt = time.Now().UTC()
	return s.Repo.CreateCategory(ctx, category)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	return s.Repo.DeleteCategory(ctx, id)
}

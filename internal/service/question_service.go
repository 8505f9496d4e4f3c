package service

import (
	"context"
	"time"

	"exam-service/internal/models"
	"exam-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type QuestionService struct {
	Repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Repo: repo}
}

func (s *QuestionService) ListQuestions(ctx context.Context, mainSection, subSection, category string) ([]models.Question, error) {
	return s.Repo.FindByTriple(ctx, mainSection, subSection, category)
}

func (s *QuestionService) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *QuestionService) CreateQuestion(ctx context.Context, question *models.Question) error {
	if err := question.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	question.CreatedAt = now
	question.UpdatedAt = now
	return s.Repo.Create(ctx, question)
}

// UpdateQuestion replaces the editable fields after re-validating the
// whole entry, so a partial edit can never break the
// correct-answer-is-an-option invariant.
func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, question *models.Question) error {
	if err := question.Validate(); err != nil {
		return err
	}
	update := bson.M{
		"question_text":      question.QuestionText,
		"options":            question.Options,
		"correct_answer":     question.CorrectAnswer,
		"images":             question.Images,
		"explanation":        question.Explanation,
		"explanation_images": question.ExplanationImages,
		"updated_at":         time.Now().UTC(),
	}
	return s.Repo.Update(ctx, id, update)
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

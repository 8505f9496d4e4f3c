package repository

import (
	"context"

	"exam-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

// FindByTriple returns every bank entry scoped to the
// (main section, sub section, category) triple. This is the query the
// session runner draws its pool from.
func (r *QuestionRepository) FindByTriple(ctx context.Context, mainSection, subSection, category string) ([]models.Question, error) {
	cur, err := r.Col.Find(ctx, bson.M{
		"main_section": mainSection,
		"sub_section":  subSection,
		"category":     category,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var question models.Question
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	res, err := r.Col.InsertOne(ctx, question)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		question.ID = oid.Hex()
	}
	return nil
}

func (r *QuestionRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

package repository

import (
	"context"

	"exam-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRepository is append-only: results are written once on session
// completion and never updated or deleted from this service.
type ResultRepository struct {
	Col *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{Col: db.Collection("test_results")}
}

func (r *ResultRepository) Create(ctx context.Context, result *models.TestResult) error {
	res, err := r.Col.InsertOne(ctx, result)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		result.ID = oid.Hex()
	}
	return nil
}

func (r *ResultRepository) FindByID(ctx context.Context, id string) (*models.TestResult, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var result models.TestResult
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) FindByUser(ctx context.Context, userID string) ([]models.TestResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []models.TestResult
	for cur.Next(ctx) {
		var res models.TestResult
		if err := cur.Decode(&res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

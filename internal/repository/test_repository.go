package repository

import (
	"context"

	"exam-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TestRepository struct {
	Col *mongo.Collection
}

func NewTestRepository(db *mongo.Database) *TestRepository {
	return &TestRepository{Col: db.Collection("tests")}
}

func (r *TestRepository) FindByID(ctx context.Context, id string) (*models.TestDefinition, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var test models.TestDefinition
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&test)
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) FindBySection(ctx context.Context, mainSection, subSection string) ([]models.TestDefinition, error) {
	cur, err := r.Col.Find(ctx, bson.M{
		"main_section": mainSection,
		"sub_section":  subSection,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var tests []models.TestDefinition
	for cur.Next(ctx) {
		var t models.TestDefinition
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, nil
}

func (r *TestRepository) Create(ctx context.Context, test *models.TestDefinition) error {
	res, err := r.Col.InsertOne(ctx, test)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		test.ID = oid.Hex()
	}
	return nil
}

func (r *TestRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}

func (r *TestRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

package repository

import (
	"context"

	"exam-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CategoryRepository covers all three levels of the hierarchy; each level
// has its own collection so admin screens can list one level at a time.
type CategoryRepository struct {
	MainCol *mongo.Collection
	SubCol  *mongo.Collection
	CatCol  *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		MainCol: db.Collection("main_sections"),
		SubCol:  db.Collection("sub_sections"),
		CatCol:  db.Collection("categories"),
	}
}

func (r *CategoryRepository) FindMainSections(ctx context.Context) ([]models.MainSection, error) {
	cur, err := r.MainCol.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var sections []models.MainSection
	for cur.Next(ctx) {
		var s models.MainSection
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, nil
}

func (r *CategoryRepository) FindSubSections(ctx context.Context, mainSectionID string) ([]models.SubSection, error) {
	cur, err := r.SubCol.Find(ctx, bson.M{"main_section_id": mainSectionID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var sections []models.SubSection
	for cur.Next(ctx) {
		var s models.SubSection
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, nil
}

func (r *CategoryRepository) FindCategories(ctx context.Context, mainSectionID, subSectionID string) ([]models.Category, error) {
	cur, err := r.CatCol.Find(ctx, bson.M{
		"main_section_id": mainSectionID,
		"sub_section_id":  subSectionID,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var categories []models.Category
	for cur.Next(ctx) {
		var c models.Category
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *CategoryRepository) CreateMainSection(ctx context.Context, section *models.MainSection) error {
	res, err := r.MainCol.InsertOne(ctx, section)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		section.ID = oid.Hex()
	}
	return nil
}

func (r *CategoryRepository) CreateSubSection(ctx context.Context, section *models.SubSection) error {
	res, err := r.SubCol.InsertOne(ctx, section)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		section.ID = oid.Hex()
	}
	return nil
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	res, err := r.CatCol.InsertOne(ctx, category)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid.Hex()
	}
	return nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.CatCol.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

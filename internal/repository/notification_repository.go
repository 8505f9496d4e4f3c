package repository

import (
	"context"

	"exam-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository struct {
	Col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{Col: db.Collection("notifications")}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	res, err := r.Col.InsertOne(ctx, notification)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		notification.ID = oid.Hex()
	}
	return nil
}

// FindForUser returns notifications addressed to everyone or to the given
// user, newest first.
func (r *NotificationRepository) FindForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	filter := bson.M{"target": bson.M{"$in": []string{"all", userID}}}
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var notifications []models.Notification
	for cur.Next(ctx) {
		var n models.Notification
		if err := cur.Decode(&n); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

package repositories

import (
	"context"

	"planhub/backend/errs"
	"planhub/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository is append-only: there is no update or delete on the
// audit trail, by design.
type ActivityRepository struct {
	collection *mongo.Collection
}

func NewActivityRepository(collection *mongo.Collection) *ActivityRepository {
	return &ActivityRepository{collection: collection}
}

func (r *ActivityRepository) Insert(ctx context.Context, activity *models.Activity) (primitive.ObjectID, error) {
	if activity.ID.IsZero() {
		activity.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, activity); err != nil {
		return primitive.NilObjectID, errs.FromMongo(err)
	}
	return activity.ID, nil
}

func (r *ActivityRepository) RecentForProject(ctx context.Context, projectID primitive.ObjectID, limit int64) ([]models.Activity, error) {
	return r.recent(ctx, bson.M{"project_id": projectID}, limit)
}

func (r *ActivityRepository) RecentGlobal(ctx context.Context, limit int64) ([]models.Activity, error) {
	return r.recent(ctx, bson.M{}, limit)
}

func (r *ActivityRepository) recent(ctx context.Context, filter bson.M, limit int64) ([]models.Activity, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

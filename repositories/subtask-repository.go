package repositories

import (
	"context"
	"errors"
	"time"

	"planhub/backend/errs"
	"planhub/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubtaskRepository struct {
	collection *mongo.Collection
}

func NewSubtaskRepository(collection *mongo.Collection) *SubtaskRepository {
	return &SubtaskRepository{collection: collection}
}

// Insert surfaces the (task_id, order) unique index violation as
// ErrAlreadyExists.
func (r *SubtaskRepository) Insert(ctx context.Context, subtask *models.Subtask) (primitive.ObjectID, error) {
	if subtask.ID.IsZero() {
		subtask.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, subtask); err != nil {
		return primitive.NilObjectID, errs.FromMongo(err)
	}
	return subtask.ID, nil
}

func (r *SubtaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subtask, error) {
	var subtask models.Subtask
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&subtask)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subtask, nil
}

func (r *SubtaskRepository) FindByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.Subtask, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"task_id": taskID},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var subtasks []models.Subtask
	if err := cursor.All(ctx, &subtasks); err != nil {
		return nil, err
	}
	return subtasks, nil
}

func (r *SubtaskRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	fields["updated_at"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return false, errs.FromMongo(err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *SubtaskRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// Reorder assigns order = position in orderedIDs, one compound-filtered
// UpdateOne per id. Ids that do not belong to taskID match nothing and are
// skipped. This is not a transaction: a failure mid-list leaves earlier
// subtasks reordered and later ones untouched.
func (r *SubtaskRepository) Reorder(ctx context.Context, taskID primitive.ObjectID, orderedIDs []primitive.ObjectID) error {
	now := time.Now().UTC()
	for order, subtaskID := range orderedIDs {
		filter := bson.M{"_id": subtaskID, "task_id": taskID}
		update := bson.M{"$set": bson.M{"order": order, "updated_at": now}}
		if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
			return errs.FromMongo(err)
		}
	}
	return nil
}

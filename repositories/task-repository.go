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

type TaskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(collection *mongo.Collection) *TaskRepository {
	return &TaskRepository{collection: collection}
}

func (r *TaskRepository) Insert(ctx context.Context, task *models.Task) (primitive.ObjectID, error) {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, task); err != nil {
		return primitive.NilObjectID, errs.FromMongo(err)
	}
	return task.ID, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByProject sorts by priority descending, then due date ascending.
func (r *TaskRepository) FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"project_id": projectID}, options.Find().
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "due_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeTasks(ctx, cursor)
}

// FindForCalendar returns tasks due inside [start, end].
func (r *TaskRepository) FindForCalendar(ctx context.Context, start, end time.Time) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"due_date": bson.M{"$gte": start, "$lte": end}},
		options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeTasks(ctx, cursor)
}

func (r *TaskRepository) FindOverdue(ctx context.Context, now time.Time, limit int64) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, overdueFilter(now), options.Find().
		SetSort(bson.D{{Key: "due_date", Value: 1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	return decodeTasks(ctx, cursor)
}

func (r *TaskRepository) FindUpcoming(ctx context.Context, now time.Time, limit int64) ([]models.Task, error) {
	filter := bson.M{
		"due_date": bson.M{"$gte": now},
		"status":   bson.M{"$nin": []string{string(models.TaskDone)}},
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "due_date", Value: 1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	return decodeTasks(ctx, cursor)
}

func (r *TaskRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, overdueFilter(now))
}

func overdueFilter(now time.Time) bson.M {
	return bson.M{
		"due_date": bson.M{"$lt": now},
		"status":   bson.M{"$nin": []string{string(models.TaskDone)}},
	}
}

func (r *TaskRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	fields["updated_at"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return false, errs.FromMongo(err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *TaskRepository) StatsByStatus(ctx context.Context, projectID primitive.ObjectID) ([]models.StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "project_id", Value: projectID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "status", Value: "$_id"},
			{Key: "count", Value: 1},
			{Key: "_id", Value: 0},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var stats []models.StatusCount
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *TaskRepository) StatsByPriority(ctx context.Context, projectID primitive.ObjectID) ([]models.PriorityCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "project_id", Value: projectID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$priority"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "priority", Value: "$_id"},
			{Key: "count", Value: 1},
			{Key: "_id", Value: 0},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var stats []models.PriorityCount
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *TaskRepository) StatsAllStatus(ctx context.Context) ([]models.StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "status", Value: "$_id"},
			{Key: "count", Value: 1},
			{Key: "_id", Value: 0},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var stats []models.StatusCount
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func decodeTasks(ctx context.Context, cursor *mongo.Cursor) ([]models.Task, error) {
	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

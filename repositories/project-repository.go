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

const defaultProjectLimit = 100

type ProjectRepository struct {
	collection *mongo.Collection
}

func NewProjectRepository(collection *mongo.Collection) *ProjectRepository {
	return &ProjectRepository{collection: collection}
}

// ProjectFilter narrows FindMany. Zero values mean no filtering.
type ProjectFilter struct {
	DepartmentID *primitive.ObjectID
	Statuses     []string
	Limit        int64
}

func (r *ProjectRepository) Insert(ctx context.Context, project *models.Project) (primitive.ObjectID, error) {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, project); err != nil {
		return primitive.NilObjectID, errs.FromMongo(err)
	}
	return project.ID, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindMany sorts by priority descending, then start date ascending.
func (r *ProjectRepository) FindMany(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	query := bson.M{}
	if filter.DepartmentID != nil {
		query["department_id"] = *filter.DepartmentID
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultProjectLimit
	}
	cursor, err := r.collection.Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "start_date", Value: 1}}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	fields["updated_at"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return false, errs.FromMongo(err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *ProjectRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *ProjectRepository) StatsByStatus(ctx context.Context) ([]models.StatusCount, error) {
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

func (r *ProjectRepository) StatsByDepartment(ctx context.Context) ([]models.DepartmentCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$department_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "department_id", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "count", Value: 1},
			{Key: "_id", Value: 0},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var stats []models.DepartmentCount
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect builds a Mongo client and verifies the connection with a ping.
// The client owns a connection pool that is safe for concurrent use; it is
// constructed once in main and passed down, never held in a global.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("database ping failed: %v", err)
	}
	return client, nil
}

// Collections holds one handle per entity collection.
type Collections struct {
	Companies   *mongo.Collection
	Departments *mongo.Collection
	Users       *mongo.Collection
	Projects    *mongo.Collection
	Tasks       *mongo.Collection
	Subtasks    *mongo.Collection
	Activities  *mongo.Collection
}

func NewCollections(client *mongo.Client, database string) *Collections {
	d := client.Database(database)
	return &Collections{
		Companies:   d.Collection("companies"),
		Departments: d.Collection("departments"),
		Users:       d.Collection("users"),
		Projects:    d.Collection("projects"),
		Tasks:       d.Collection("tasks"),
		Subtasks:    d.Collection("subtasks"),
		Activities:  d.Collection("activities"),
	}
}

// EnsureIndexes creates the unique and query indexes once at startup. The
// unique indexes are the only uniqueness enforcement in the system; the
// repositories rely on the store rejecting the second writer.
func (c *Collections) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection *mongo.Collection
		models     []mongo.IndexModel
	}{
		{c.Companies, []mongo.IndexModel{
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{c.Departments, []mongo.IndexModel{
			{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{c.Users, []mongo.IndexModel{
			// Sparse: legacy records carry only an email.
			{Keys: bson.D{{Key: "login_id", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "department_id", Value: 1}}},
		}},
		{c.Projects, []mongo.IndexModel{
			{Keys: bson.D{{Key: "department_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "tags", Value: 1}}},
		}},
		{c.Tasks, []mongo.IndexModel{
			{Keys: bson.D{{Key: "project_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "assignee_id", Value: 1}}},
			{Keys: bson.D{{Key: "due_date", Value: 1}}},
		}},
		{c.Subtasks, []mongo.IndexModel{
			{Keys: bson.D{{Key: "task_id", Value: 1}}},
			{Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "order", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{c.Activities, []mongo.IndexModel{
			{Keys: bson.D{{Key: "project_id", Value: 1}}},
			{Keys: bson.D{{Key: "task_id", Value: 1}}},
			{Keys: bson.D{{Key: "occurred_at", Value: -1}}},
		}},
	}

	for _, idx := range indexes {
		if _, err := idx.collection.Indexes().CreateMany(ctx, idx.models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %v", idx.collection.Name(), err)
		}
	}
	return nil
}

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

type DepartmentRepository struct {
	collection *mongo.Collection
}

func NewDepartmentRepository(collection *mongo.Collection) *DepartmentRepository {
	return &DepartmentRepository{collection: collection}
}

func (r *DepartmentRepository) Insert(ctx context.Context, department *models.Department) (primitive.ObjectID, error) {
	if department.ID.IsZero() {
		department.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, department); err != nil {
		return primitive.NilObjectID, errs.FromMongo(err)
	}
	return department.ID, nil
}

func (r *DepartmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	var department models.Department
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&department)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *DepartmentRepository) FindByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Department, error) {
	return r.findSorted(ctx, bson.M{"company_id": companyID})
}

func (r *DepartmentRepository) FindAll(ctx context.Context) ([]models.Department, error) {
	return r.findSorted(ctx, bson.M{})
}

func (r *DepartmentRepository) findSorted(ctx context.Context, filter bson.M) ([]models.Department, error) {
	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var departments []models.Department
	if err := cursor.All(ctx, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	fields["updated_at"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return false, errs.FromMongo(err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

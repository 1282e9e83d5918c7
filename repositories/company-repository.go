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

type CompanyRepository struct {
	collection *mongo.Collection
}

func NewCompanyRepository(collection *mongo.Collection) *CompanyRepository {
	return &CompanyRepository{collection: collection}
}

// Insert relies on the unique name index: the store accepts one of two
// concurrent writers and the loser surfaces as ErrAlreadyExists.
func (r *CompanyRepository) Insert(ctx context.Context, company *models.Company) (primitive.ObjectID, error) {
	if company.ID.IsZero() {
		company.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, company); err != nil {
		return primitive.NilObjectID, errs.FromMongo(err)
	}
	return company.ID, nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Company, error) {
	var company models.Company
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) FindAll(ctx context.Context) ([]models.Company, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var companies []models.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	fields["updated_at"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return false, errs.FromMongo(err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

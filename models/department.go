package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Department struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CompanyID   primitive.ObjectID  `bson:"company_id" json:"company_id"`
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	LeadID      *primitive.ObjectID `bson:"lead_id,omitempty" json:"lead_id,omitempty"`
	Tags        []string            `bson:"tags" json:"tags"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
	CreatedBy   string              `bson:"created_by,omitempty" json:"created_by,omitempty"`
	UpdatedBy   string              `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityAction string

const (
	ActionCreated         ActivityAction = "created"
	ActionUpdated         ActivityAction = "updated"
	ActionStatusChanged   ActivityAction = "status_changed"
	ActionComment         ActivityAction = "comment"
	ActionAttachmentAdded ActivityAction = "attachment_added"
)

// Activity is append-only. Entries reference projects, tasks and actors
// without owning them, so they survive deletion of the referent.
type Activity struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ProjectID  *primitive.ObjectID `bson:"project_id,omitempty" json:"project_id,omitempty"`
	TaskID     *primitive.ObjectID `bson:"task_id,omitempty" json:"task_id,omitempty"`
	ActorID    *primitive.ObjectID `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	Action     ActivityAction      `bson:"action" json:"action"`
	Detail     string              `bson:"detail,omitempty" json:"detail,omitempty"`
	OccurredAt time.Time           `bson:"occurred_at" json:"occurred_at"`
	CreatedAt  time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at" json:"updated_at"`
	CreatedBy  string              `bson:"created_by,omitempty" json:"created_by,omitempty"`
	UpdatedBy  string              `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

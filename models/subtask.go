package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubtaskStatus string

const (
	SubtaskTodo       SubtaskStatus = "todo"
	SubtaskInProgress SubtaskStatus = "in_progress"
	SubtaskDone       SubtaskStatus = "done"
	SubtaskBlocked    SubtaskStatus = "blocked"
)

// Subtask order is unique per task; the (task_id, order) index enforces it.
type Subtask struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TaskID     primitive.ObjectID  `bson:"task_id" json:"task_id"`
	Title      string              `bson:"title" json:"title"`
	Content    string              `bson:"content,omitempty" json:"content,omitempty"`
	Status     SubtaskStatus       `bson:"status" json:"status"`
	AssigneeID *primitive.ObjectID `bson:"assignee_id,omitempty" json:"assignee_id,omitempty"`
	Order      int                 `bson:"order" json:"order"`
	DueDate    *time.Time          `bson:"due_date,omitempty" json:"due_date,omitempty"`
	CreatedAt  time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at" json:"updated_at"`
	CreatedBy  string              `bson:"created_by,omitempty" json:"created_by,omitempty"`
	UpdatedBy  string              `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "planned"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCancelled  ProjectStatus = "cancelled"
)

type ProjectPriority string

const (
	PriorityLow      ProjectPriority = "low"
	PriorityMedium   ProjectPriority = "medium"
	PriorityHigh     ProjectPriority = "high"
	PriorityCritical ProjectPriority = "critical"
)

type ProjectRisk string

const (
	RiskLow    ProjectRisk = "low"
	RiskMedium ProjectRisk = "medium"
	RiskHigh   ProjectRisk = "high"
)

type Project struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title          string               `bson:"title" json:"title"`
	Description    string               `bson:"description,omitempty" json:"description,omitempty"`
	DepartmentID   primitive.ObjectID   `bson:"department_id" json:"department_id"`
	Status         ProjectStatus        `bson:"status" json:"status"`
	Priority       ProjectPriority      `bson:"priority" json:"priority"`
	RiskLevel      ProjectRisk          `bson:"risk_level" json:"risk_level"`
	Progress       float64              `bson:"progress" json:"progress"`
	StartDate      *time.Time           `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate        *time.Time           `bson:"end_date,omitempty" json:"end_date,omitempty"`
	AssigneeID     *primitive.ObjectID  `bson:"assignee_id,omitempty" json:"assignee_id,omitempty"`
	Content        string               `bson:"content,omitempty" json:"content,omitempty"`
	References     []string             `bson:"references" json:"references"`
	Tags           []string             `bson:"tags" json:"tags"`
	MemberIDs      []primitive.ObjectID `bson:"member_ids" json:"member_ids"`
	WatcherIDs     []primitive.ObjectID `bson:"watcher_ids" json:"watcher_ids"`
	DepartmentName string               `bson:"department_name,omitempty" json:"department_name,omitempty"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
	CreatedBy      string               `bson:"created_by,omitempty" json:"created_by,omitempty"`
	UpdatedBy      string               `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

// ClampProgress keeps progress inside [0,100].
func ClampProgress(progress float64) float64 {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

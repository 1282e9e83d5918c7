package services

import (
	"context"
	"time"

	"planhub/backend/models"
	"planhub/backend/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store interfaces mirror the repository method sets so services can be
// exercised against fakes. The Mongo repositories are the only production
// implementations.

type CompanyStore interface {
	Insert(ctx context.Context, company *models.Company) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Company, error)
	FindAll(ctx context.Context) ([]models.Company, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type DepartmentStore interface {
	Insert(ctx context.Context, department *models.Department) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error)
	FindByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Department, error)
	FindAll(ctx context.Context) ([]models.Department, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	FindMany(ctx context.Context, departmentID *primitive.ObjectID) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type ProjectStore interface {
	Insert(ctx context.Context, project *models.Project) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindMany(ctx context.Context, filter repositories.ProjectFilter) ([]models.Project, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	StatsByStatus(ctx context.Context) ([]models.StatusCount, error)
	StatsByDepartment(ctx context.Context) ([]models.DepartmentCount, error)
}

type TaskStore interface {
	Insert(ctx context.Context, task *models.Task) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
	FindForCalendar(ctx context.Context, start, end time.Time) ([]models.Task, error)
	FindOverdue(ctx context.Context, now time.Time, limit int64) ([]models.Task, error)
	FindUpcoming(ctx context.Context, now time.Time, limit int64) ([]models.Task, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	StatsByStatus(ctx context.Context, projectID primitive.ObjectID) ([]models.StatusCount, error)
	StatsByPriority(ctx context.Context, projectID primitive.ObjectID) ([]models.PriorityCount, error)
	StatsAllStatus(ctx context.Context) ([]models.StatusCount, error)
}

type SubtaskStore interface {
	Insert(ctx context.Context, subtask *models.Subtask) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subtask, error)
	FindByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.Subtask, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Reorder(ctx context.Context, taskID primitive.ObjectID, orderedIDs []primitive.ObjectID) error
}

type ActivityStore interface {
	Insert(ctx context.Context, activity *models.Activity) (primitive.ObjectID, error)
	RecentForProject(ctx context.Context, projectID primitive.ObjectID, limit int64) ([]models.Activity, error)
	RecentGlobal(ctx context.Context, limit int64) ([]models.Activity, error)
}

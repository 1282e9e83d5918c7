package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"planhub/backend/models"
	"planhub/backend/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func primitiveHex(t *testing.T) string {
	t.Helper()
	return primitive.NewObjectID().Hex()
}

// In-memory store fakes. Each fake keeps just enough behavior for the
// service under test; canned values stand in for aggregation pipelines.

type fakeUserStore struct {
	users     []*models.User
	insertErr error
	updates   []bson.M
	updateOK  bool
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users = append(f.users, user)
	return user.ID, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByLogin(_ context.Context, login string) (*models.User, error) {
	for _, user := range f.users {
		if user.LoginID == login || user.Email == login {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindMany(_ context.Context, departmentID *primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		if departmentID != nil && (user.DepartmentID == nil || *user.DepartmentID != *departmentID) {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserStore) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	f.updates = append(f.updates, fields)
	return f.updateOK, nil
}

func (f *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	for i, user := range f.users {
		if user.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeProjectStore struct {
	projects    []*models.Project
	updates     []bson.M
	updateOK    bool
	deleteOK    bool
	total       int64
	active      int64
	statusStats []models.StatusCount
	deptStats   []models.DepartmentCount
}

func (f *fakeProjectStore) Insert(_ context.Context, project *models.Project) (primitive.ObjectID, error) {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	f.projects = append(f.projects, project)
	return project.ID, nil
}

func (f *fakeProjectStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	for _, project := range f.projects {
		if project.ID == id {
			return project, nil
		}
	}
	return nil, nil
}

func (f *fakeProjectStore) FindMany(_ context.Context, filter repositories.ProjectFilter) ([]models.Project, error) {
	var out []models.Project
	for _, project := range f.projects {
		if filter.DepartmentID != nil && project.DepartmentID != *filter.DepartmentID {
			continue
		}
		out = append(out, *project)
	}
	return out, nil
}

func (f *fakeProjectStore) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	f.updates = append(f.updates, fields)
	return f.updateOK, nil
}

func (f *fakeProjectStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	return f.deleteOK, nil
}

func (f *fakeProjectStore) Count(_ context.Context, filter bson.M) (int64, error) {
	if len(filter) == 0 {
		return f.total, nil
	}
	return f.active, nil
}

func (f *fakeProjectStore) StatsByStatus(_ context.Context) ([]models.StatusCount, error) {
	return f.statusStats, nil
}

func (f *fakeProjectStore) StatsByDepartment(_ context.Context) ([]models.DepartmentCount, error) {
	return f.deptStats, nil
}

type fakeTaskStore struct {
	tasks         []*models.Task
	updates       []bson.M
	updateOK      bool
	deleteOK      bool
	overdue       int64
	upcoming      []models.Task
	statusStats   []models.StatusCount
	priorityStats []models.PriorityCount
	allStatus     []models.StatusCount
}

func (f *fakeTaskStore) Insert(_ context.Context, task *models.Task) (primitive.ObjectID, error) {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	f.tasks = append(f.tasks, task)
	return task.ID, nil
}

func (f *fakeTaskStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	for _, task := range f.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, nil
}

func (f *fakeTaskStore) FindByProject(_ context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	var out []models.Task
	for _, task := range f.tasks {
		if task.ProjectID == projectID {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) FindForCalendar(_ context.Context, start, end time.Time) ([]models.Task, error) {
	var out []models.Task
	for _, task := range f.tasks {
		if task.DueDate == nil || task.DueDate.Before(start) || task.DueDate.After(end) {
			continue
		}
		out = append(out, *task)
	}
	return out, nil
}

func (f *fakeTaskStore) FindOverdue(_ context.Context, now time.Time, limit int64) ([]models.Task, error) {
	return nil, nil
}

func (f *fakeTaskStore) FindUpcoming(_ context.Context, now time.Time, limit int64) ([]models.Task, error) {
	return f.upcoming, nil
}

func (f *fakeTaskStore) CountOverdue(_ context.Context, now time.Time) (int64, error) {
	return f.overdue, nil
}

func (f *fakeTaskStore) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	f.updates = append(f.updates, fields)
	return f.updateOK, nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	return f.deleteOK, nil
}

func (f *fakeTaskStore) StatsByStatus(_ context.Context, projectID primitive.ObjectID) ([]models.StatusCount, error) {
	return f.statusStats, nil
}

func (f *fakeTaskStore) StatsByPriority(_ context.Context, projectID primitive.ObjectID) ([]models.PriorityCount, error) {
	return f.priorityStats, nil
}

func (f *fakeTaskStore) StatsAllStatus(_ context.Context) ([]models.StatusCount, error) {
	return f.allStatus, nil
}

type fakeSubtaskStore struct {
	subtasks  []*models.Subtask
	insertErr error
	updates   []bson.M
	updateOK  bool
	deleteOK  bool
}

func (f *fakeSubtaskStore) Insert(_ context.Context, subtask *models.Subtask) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	if subtask.ID.IsZero() {
		subtask.ID = primitive.NewObjectID()
	}
	f.subtasks = append(f.subtasks, subtask)
	return subtask.ID, nil
}

func (f *fakeSubtaskStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Subtask, error) {
	for _, subtask := range f.subtasks {
		if subtask.ID == id {
			return subtask, nil
		}
	}
	return nil, nil
}

func (f *fakeSubtaskStore) FindByTask(_ context.Context, taskID primitive.ObjectID) ([]models.Subtask, error) {
	var out []models.Subtask
	for _, subtask := range f.subtasks {
		if subtask.TaskID == taskID {
			out = append(out, *subtask)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeSubtaskStore) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	f.updates = append(f.updates, fields)
	return f.updateOK, nil
}

func (f *fakeSubtaskStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	return f.deleteOK, nil
}

func (f *fakeSubtaskStore) Reorder(_ context.Context, taskID primitive.ObjectID, orderedIDs []primitive.ObjectID) error {
	for position, id := range orderedIDs {
		for _, subtask := range f.subtasks {
			if subtask.ID == id && subtask.TaskID == taskID {
				subtask.Order = position
			}
		}
	}
	return nil
}

type fakeActivityStore struct {
	entries   []models.Activity
	insertErr error
}

func (f *fakeActivityStore) Insert(_ context.Context, activity *models.Activity) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	if activity.ID.IsZero() {
		activity.ID = primitive.NewObjectID()
	}
	f.entries = append(f.entries, *activity)
	return activity.ID, nil
}

func (f *fakeActivityStore) RecentForProject(_ context.Context, projectID primitive.ObjectID, limit int64) ([]models.Activity, error) {
	var out []models.Activity
	for i := len(f.entries) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		entry := f.entries[i]
		if entry.ProjectID != nil && *entry.ProjectID == projectID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeActivityStore) RecentGlobal(_ context.Context, limit int64) ([]models.Activity, error) {
	var out []models.Activity
	for i := len(f.entries) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"planhub/backend/errs"
	"planhub/backend/logging"
	"planhub/backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

type TaskService struct {
	tasks    TaskStore
	activity *ActivityService
}

func NewTaskService(tasks TaskStore, activity *ActivityService) *TaskService {
	return &TaskService{tasks: tasks, activity: activity}
}

type TaskCreate struct {
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Progress    float64    `json:"progress"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  string     `json:"assignee_id"`
	Content     string     `json:"content"`
	References  []string   `json:"references"`
	Tags        []string   `json:"tags"`
	Checklist   []string   `json:"checklist"`
}

type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Progress    *float64   `json:"progress"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  *string    `json:"assignee_id"`
	Content     *string    `json:"content"`
	References  *[]string  `json:"references"`
	Tags        *[]string  `json:"tags"`
	Checklist   *[]string  `json:"checklist"`
}

func (u TaskUpdate) setFields() (bson.M, error) {
	fields := bson.M{}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.Priority != nil {
		fields["priority"] = *u.Priority
	}
	if u.Progress != nil {
		fields["progress"] = models.ClampProgress(*u.Progress)
	}
	if u.StartDate != nil {
		fields["start_date"] = *u.StartDate
	}
	if u.DueDate != nil {
		fields["due_date"] = *u.DueDate
	}
	if u.AssigneeID != nil {
		assigneeID, err := parseOptionalID(*u.AssigneeID, "assignee")
		if err != nil {
			return nil, err
		}
		fields["assignee_id"] = assigneeID
	}
	if u.Content != nil {
		fields["content"] = *u.Content
	}
	if u.References != nil {
		fields["references"] = *u.References
	}
	if u.Tags != nil {
		fields["tags"] = *u.Tags
	}
	if u.Checklist != nil {
		fields["checklist"] = *u.Checklist
	}
	return fields, nil
}

func (s *TaskService) Create(ctx context.Context, req TaskCreate, actorID string) (*models.Task, error) {
	projectID, err := parseID(req.ProjectID, "project")
	if err != nil {
		return nil, err
	}
	assigneeID, err := parseOptionalID(req.AssigneeID, "assignee")
	if err != nil {
		return nil, err
	}

	status := models.TaskStatus(req.Status)
	if status == "" {
		status = models.TaskTodo
	}
	priority := models.TaskPriority(req.Priority)
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	now := time.Now().UTC()
	task := &models.Task{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		Progress:    models.ClampProgress(req.Progress),
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		AssigneeID:  assigneeID,
		Content:     req.Content,
		References:  emptyIfNil(req.References),
		Tags:        emptyIfNil(req.Tags),
		Checklist:   emptyIfNil(req.Checklist),
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
	}
	id, err := s.tasks.Insert(ctx, task)
	if err != nil {
		return nil, err
	}
	created, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: task missing after insert", errs.ErrInternal)
	}

	s.logActivity(ctx, ActivityEntry{
		ProjectID: req.ProjectID,
		TaskID:    id.Hex(),
		ActorID:   actorID,
		Action:    models.ActionCreated,
		Detail:    fmt.Sprintf("Task '%s' created", req.Title),
	})
	return created, nil
}

func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	id, err := parseID(projectID, "project")
	if err != nil {
		return nil, err
	}
	return s.tasks.FindByProject(ctx, id)
}

func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	taskID, err := parseID(id, "task")
	if err != nil {
		return nil, err
	}
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, errs.ErrNotFound
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, req TaskUpdate, actorID string) (bool, error) {
	taskID, err := parseID(id, "task")
	if err != nil {
		return false, err
	}
	fields, err := req.setFields()
	if err != nil {
		return false, err
	}
	if actorID != "" {
		fields["updated_by"] = actorID
	}
	updated, err := s.tasks.Update(ctx, taskID, fields)
	if err != nil {
		return false, err
	}
	if updated {
		s.logActivity(ctx, ActivityEntry{
			TaskID:  id,
			ActorID: actorID,
			Action:  models.ActionUpdated,
			Detail:  fmt.Sprintf("Task '%s' updated", id),
		})
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id string, actorID string) (bool, error) {
	taskID, err := parseID(id, "task")
	if err != nil {
		return false, err
	}
	deleted, err := s.tasks.Delete(ctx, taskID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logActivity(ctx, ActivityEntry{
			TaskID:  id,
			ActorID: actorID,
			Action:  models.ActionUpdated,
			Detail:  "Task deleted",
		})
	}
	return deleted, nil
}

func (s *TaskService) Stats(ctx context.Context, projectID string) (map[string]interface{}, error) {
	id, err := parseID(projectID, "project")
	if err != nil {
		return nil, err
	}
	status, err := s.tasks.StatsByStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	priority, err := s.tasks.StatsByPriority(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"status": status, "priority": priority}, nil
}

// Calendar lists tasks due inside [start, end], sorted by due date.
func (s *TaskService) Calendar(ctx context.Context, start, end time.Time) ([]models.Task, error) {
	return s.tasks.FindForCalendar(ctx, start, end)
}

func (s *TaskService) logActivity(ctx context.Context, entry ActivityEntry) {
	if err := s.activity.Record(ctx, entry); err != nil {
		logging.Logger.Errorf("Event ID: ACTIVITY_RECORD_FAILED, Description: failed to record %s activity for task %s: %v", entry.Action, entry.TaskID, err)
	}
}

package services

import (
	"context"
	"fmt"
	"time"

	"planhub/backend/errs"
	"planhub/backend/logging"
	"planhub/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubtaskService struct {
	subtasks SubtaskStore
	activity *ActivityService
}

func NewSubtaskService(subtasks SubtaskStore, activity *ActivityService) *SubtaskService {
	return &SubtaskService{subtasks: subtasks, activity: activity}
}

type SubtaskCreate struct {
	TaskID     string     `json:"task_id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Status     string     `json:"status"`
	AssigneeID string     `json:"assignee_id"`
	Order      int        `json:"order"`
	DueDate    *time.Time `json:"due_date"`
}

type SubtaskUpdate struct {
	Title      *string    `json:"title"`
	Content    *string    `json:"content"`
	Status     *string    `json:"status"`
	AssigneeID *string    `json:"assignee_id"`
	Order      *int       `json:"order"`
	DueDate    *time.Time `json:"due_date"`
}

func (u SubtaskUpdate) setFields() (bson.M, error) {
	fields := bson.M{}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Content != nil {
		fields["content"] = *u.Content
	}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.AssigneeID != nil {
		assigneeID, err := parseOptionalID(*u.AssigneeID, "assignee")
		if err != nil {
			return nil, err
		}
		fields["assignee_id"] = assigneeID
	}
	if u.Order != nil {
		fields["order"] = *u.Order
	}
	if u.DueDate != nil {
		fields["due_date"] = *u.DueDate
	}
	return fields, nil
}

// Create surfaces a (task, order) collision as ErrAlreadyExists straight
// from the unique index; there is no pre-check to race against.
func (s *SubtaskService) Create(ctx context.Context, req SubtaskCreate, actorID string) (*models.Subtask, error) {
	taskID, err := parseID(req.TaskID, "task")
	if err != nil {
		return nil, err
	}
	assigneeID, err := parseOptionalID(req.AssigneeID, "assignee")
	if err != nil {
		return nil, err
	}
	status := models.SubtaskStatus(req.Status)
	if status == "" {
		status = models.SubtaskTodo
	}

	now := time.Now().UTC()
	subtask := &models.Subtask{
		TaskID:     taskID,
		Title:      req.Title,
		Content:    req.Content,
		Status:     status,
		AssigneeID: assigneeID,
		Order:      req.Order,
		DueDate:    req.DueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  actorID,
		UpdatedBy:  actorID,
	}
	id, err := s.subtasks.Insert(ctx, subtask)
	if err != nil {
		return nil, err
	}
	created, err := s.subtasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: subtask missing after insert", errs.ErrInternal)
	}

	s.logActivity(ctx, ActivityEntry{
		TaskID:  req.TaskID,
		ActorID: actorID,
		Action:  models.ActionCreated,
		Detail:  fmt.Sprintf("Subtask '%s' created", req.Title),
	})
	return created, nil
}

func (s *SubtaskService) Get(ctx context.Context, id string) (*models.Subtask, error) {
	subtaskID, err := parseID(id, "subtask")
	if err != nil {
		return nil, err
	}
	subtask, err := s.subtasks.FindByID(ctx, subtaskID)
	if err != nil {
		return nil, err
	}
	if subtask == nil {
		return nil, errs.ErrNotFound
	}
	return subtask, nil
}

func (s *SubtaskService) ListByTask(ctx context.Context, taskID string) ([]models.Subtask, error) {
	id, err := parseID(taskID, "task")
	if err != nil {
		return nil, err
	}
	return s.subtasks.FindByTask(ctx, id)
}

func (s *SubtaskService) Update(ctx context.Context, id string, req SubtaskUpdate, actorID string) (bool, error) {
	subtaskID, err := parseID(id, "subtask")
	if err != nil {
		return false, err
	}
	existing, err := s.subtasks.FindByID(ctx, subtaskID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	fields, err := req.setFields()
	if err != nil {
		return false, err
	}
	if actorID != "" {
		fields["updated_by"] = actorID
	}
	updated, err := s.subtasks.Update(ctx, subtaskID, fields)
	if err != nil {
		return false, err
	}
	if updated {
		s.logActivity(ctx, ActivityEntry{
			TaskID:  existing.TaskID.Hex(),
			ActorID: actorID,
			Action:  models.ActionUpdated,
			Detail:  fmt.Sprintf("Subtask '%s' updated", id),
		})
	}
	return updated, nil
}

func (s *SubtaskService) Delete(ctx context.Context, id string, actorID string) (bool, error) {
	subtaskID, err := parseID(id, "subtask")
	if err != nil {
		return false, err
	}
	existing, err := s.subtasks.FindByID(ctx, subtaskID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	deleted, err := s.subtasks.Delete(ctx, subtaskID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logActivity(ctx, ActivityEntry{
			TaskID:  existing.TaskID.Hex(),
			ActorID: actorID,
			Action:  models.ActionUpdated,
			Detail:  "Subtask deleted",
		})
	}
	return deleted, nil
}

// Reorder assigns order = position in orderedIDs to each subtask of the
// task. Ids outside the task are skipped by the compound filter. The loop
// is not transactional; a mid-list failure leaves a partial reorder.
func (s *SubtaskService) Reorder(ctx context.Context, taskID string, orderedIDs []string) error {
	id, err := parseID(taskID, "task")
	if err != nil {
		return err
	}
	ids := make([]primitive.ObjectID, 0, len(orderedIDs))
	for _, rawID := range orderedIDs {
		subtaskID, err := parseID(rawID, "subtask")
		if err != nil {
			return err
		}
		ids = append(ids, subtaskID)
	}
	return s.subtasks.Reorder(ctx, id, ids)
}

func (s *SubtaskService) logActivity(ctx context.Context, entry ActivityEntry) {
	if err := s.activity.Record(ctx, entry); err != nil {
		logging.Logger.Errorf("Event ID: ACTIVITY_RECORD_FAILED, Description: failed to record %s activity for subtask under task %s: %v", entry.Action, entry.TaskID, err)
	}
}

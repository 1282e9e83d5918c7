package services

import (
	"context"
	"fmt"
	"time"

	"planhub/backend/errs"
	"planhub/backend/logging"
	"planhub/backend/models"
	"planhub/backend/repositories"

	"go.mongodb.org/mongo-driver/bson"
)

const projectActivityLimit = 20

type ProjectService struct {
	projects ProjectStore
	tasks    TaskStore
	subtasks SubtaskStore
	activity *ActivityService
}

func NewProjectService(projects ProjectStore, tasks TaskStore, subtasks SubtaskStore, activity *ActivityService) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, subtasks: subtasks, activity: activity}
}

type ProjectCreate struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DepartmentID   string     `json:"department_id"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	RiskLevel      string     `json:"risk_level"`
	Progress       float64    `json:"progress"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	AssigneeID     string     `json:"assignee_id"`
	Content        string     `json:"content"`
	References     []string   `json:"references"`
	Tags           []string   `json:"tags"`
	MemberIDs      []string   `json:"member_ids"`
	WatcherIDs     []string   `json:"watcher_ids"`
	DepartmentName string     `json:"department_name"`
}

type ProjectUpdate struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	RiskLevel      *string    `json:"risk_level"`
	Progress       *float64   `json:"progress"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	AssigneeID     *string    `json:"assignee_id"`
	Content        *string    `json:"content"`
	References     *[]string  `json:"references"`
	Tags           *[]string  `json:"tags"`
	MemberIDs      *[]string  `json:"member_ids"`
	WatcherIDs     *[]string  `json:"watcher_ids"`
	DepartmentName *string    `json:"department_name"`
}

func (u ProjectUpdate) setFields() (bson.M, error) {
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
	if u.RiskLevel != nil {
		fields["risk_level"] = *u.RiskLevel
	}
	if u.Progress != nil {
		fields["progress"] = models.ClampProgress(*u.Progress)
	}
	if u.StartDate != nil {
		fields["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		fields["end_date"] = *u.EndDate
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
	if u.MemberIDs != nil {
		memberIDs, err := parseIDList(*u.MemberIDs, "member")
		if err != nil {
			return nil, err
		}
		fields["member_ids"] = memberIDs
	}
	if u.WatcherIDs != nil {
		watcherIDs, err := parseIDList(*u.WatcherIDs, "watcher")
		if err != nil {
			return nil, err
		}
		fields["watcher_ids"] = watcherIDs
	}
	if u.DepartmentName != nil {
		fields["department_name"] = *u.DepartmentName
	}
	return fields, nil
}

func (s *ProjectService) Create(ctx context.Context, req ProjectCreate, actorID string) (*models.Project, error) {
	departmentID, err := parseID(req.DepartmentID, "department")
	if err != nil {
		return nil, err
	}
	assigneeID, err := parseOptionalID(req.AssigneeID, "assignee")
	if err != nil {
		return nil, err
	}
	memberIDs, err := parseIDList(req.MemberIDs, "member")
	if err != nil {
		return nil, err
	}
	watcherIDs, err := parseIDList(req.WatcherIDs, "watcher")
	if err != nil {
		return nil, err
	}

	status := models.ProjectStatus(req.Status)
	if status == "" {
		status = models.ProjectPlanned
	}
	priority := models.ProjectPriority(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}
	risk := models.ProjectRisk(req.RiskLevel)
	if risk == "" {
		risk = models.RiskLow
	}

	now := time.Now().UTC()
	project := &models.Project{
		Title:          req.Title,
		Description:    req.Description,
		DepartmentID:   departmentID,
		Status:         status,
		Priority:       priority,
		RiskLevel:      risk,
		Progress:       models.ClampProgress(req.Progress),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		AssigneeID:     assigneeID,
		Content:        req.Content,
		References:     emptyIfNil(req.References),
		Tags:           emptyIfNil(req.Tags),
		MemberIDs:      memberIDs,
		WatcherIDs:     watcherIDs,
		DepartmentName: req.DepartmentName,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      actorID,
		UpdatedBy:      actorID,
	}
	id, err := s.projects.Insert(ctx, project)
	if err != nil {
		return nil, err
	}
	created, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: project missing after insert", errs.ErrInternal)
	}

	s.logActivity(ctx, ActivityEntry{
		ProjectID: id.Hex(),
		ActorID:   actorID,
		Action:    models.ActionCreated,
		Detail:    fmt.Sprintf("Project '%s' created", req.Title),
	})
	return created, nil
}

func (s *ProjectService) List(ctx context.Context, departmentID string, statuses []string) ([]models.Project, error) {
	filter := repositories.ProjectFilter{Statuses: statuses}
	id, err := parseOptionalID(departmentID, "department")
	if err != nil {
		return nil, err
	}
	filter.DepartmentID = id
	return s.projects.FindMany(ctx, filter)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	projectID, err := parseID(id, "project")
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errs.ErrNotFound
	}
	return project, nil
}

// Detail assembles the read-side project view: the project, its tasks in
// repository sort order, each task's subtasks, and recent activity. The
// reads are independent; a concurrent writer can make the composite
// slightly stale, which is accepted.
func (s *ProjectService) Detail(ctx context.Context, id string) (*models.ProjectDetail, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	enriched := make([]models.TaskWithSubtasks, 0, len(tasks))
	for _, task := range tasks {
		subtasks, err := s.subtasks.FindByTask(ctx, task.ID)
		if err != nil {
			return nil, err
		}
		if subtasks == nil {
			subtasks = []models.Subtask{}
		}
		enriched = append(enriched, models.TaskWithSubtasks{Task: task, Subtasks: subtasks})
	}

	activities, err := s.activity.RecentForProject(ctx, id, projectActivityLimit)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	return &models.ProjectDetail{
		Project:    *project,
		Tasks:      enriched,
		Activities: activities,
	}, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, req ProjectUpdate, actorID string) (bool, error) {
	projectID, err := parseID(id, "project")
	if err != nil {
		return false, err
	}
	// Even an empty payload reaches the store; the repository stamps
	// updated_at unconditionally and the activity log follows the result.
	fields, err := req.setFields()
	if err != nil {
		return false, err
	}
	if actorID != "" {
		fields["updated_by"] = actorID
	}
	updated, err := s.projects.Update(ctx, projectID, fields)
	if err != nil {
		return false, err
	}
	if updated {
		s.logActivity(ctx, ActivityEntry{
			ProjectID: id,
			ActorID:   actorID,
			Action:    models.ActionUpdated,
			Detail:    fmt.Sprintf("Project '%s' updated", id),
		})
	}
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string, actorID string) (bool, error) {
	projectID, err := parseID(id, "project")
	if err != nil {
		return false, err
	}
	deleted, err := s.projects.Delete(ctx, projectID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logActivity(ctx, ActivityEntry{
			ProjectID: id,
			ActorID:   actorID,
			Action:    models.ActionUpdated,
			Detail:    "Project deleted",
		})
	}
	return deleted, nil
}

func (s *ProjectService) Stats(ctx context.Context) (map[string]interface{}, error) {
	status, err := s.projects.StatsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	department, err := s.projects.StatsByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"status": status, "department": department}, nil
}

// The mutation has already succeeded by the time this runs; a failed audit
// write is reported to operators, not to the caller.
func (s *ProjectService) logActivity(ctx context.Context, entry ActivityEntry) {
	if err := s.activity.Record(ctx, entry); err != nil {
		logging.Logger.Errorf("Event ID: ACTIVITY_RECORD_FAILED, Description: failed to record %s activity for project %s: %v", entry.Action, entry.ProjectID, err)
	}
}

package services

import (
	"context"
	"time"

	"planhub/backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	upcomingDeadlineLimit  = 10
	dashboardActivityLimit = 15
)

// DashboardService merges independent aggregate queries into one summary.
// There is no cross-query snapshot; each number reflects the store at the
// moment its own query ran.
type DashboardService struct {
	projects ProjectStore
	tasks    TaskStore
	activity *ActivityService
}

func NewDashboardService(projects ProjectStore, tasks TaskStore, activity *ActivityService) *DashboardService {
	return &DashboardService{projects: projects, tasks: tasks, activity: activity}
}

func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	now := time.Now().UTC()

	total, err := s.projects.Count(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	active, err := s.projects.Count(ctx, bson.M{"status": bson.M{"$in": []string{
		string(models.ProjectPlanned), string(models.ProjectInProgress),
	}}})
	if err != nil {
		return nil, err
	}
	overdue, err := s.tasks.CountOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.tasks.FindUpcoming(ctx, now, upcomingDeadlineLimit)
	if err != nil {
		return nil, err
	}
	projectStatus, err := s.projects.StatsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	taskStatus, err := s.tasks.StatsAllStatus(ctx)
	if err != nil {
		return nil, err
	}
	workload, err := s.projects.StatsByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.activity.Recent(ctx, dashboardActivityLimit)
	if err != nil {
		return nil, err
	}

	if upcoming == nil {
		upcoming = []models.Task{}
	}
	if recent == nil {
		recent = []models.Activity{}
	}
	return &models.DashboardSummary{
		ProjectTotal:              total,
		ActiveProjects:            active,
		OverdueTasks:              overdue,
		UpcomingDeadlines:         upcoming,
		ProjectStatusDistribution: projectStatus,
		TaskStatusDistribution:    taskStatus,
		DepartmentWorkload:        workload,
		RecentActivities:          recent,
	}, nil
}

package services

import (
	"context"
	"testing"

	"planhub/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDashboardSummaryMergesQueries(t *testing.T) {
	projects := &fakeProjectStore{
		total:       12,
		active:      5,
		statusStats: []models.StatusCount{{Status: "planned", Count: 7}, {Status: "done", Count: 5}},
		deptStats:   []models.DepartmentCount{{DepartmentID: primitive.NewObjectID().Hex(), Count: 12}},
	}
	tasks := &fakeTaskStore{
		overdue:   3,
		upcoming:  []models.Task{{Title: "due soon"}},
		allStatus: []models.StatusCount{{Status: "todo", Count: 9}},
	}
	activity := &fakeActivityStore{entries: []models.Activity{{Action: models.ActionCreated}}}
	service := NewDashboardService(projects, tasks, NewActivityService(activity))

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), summary.ProjectTotal)
	assert.Equal(t, int64(5), summary.ActiveProjects)
	assert.Equal(t, int64(3), summary.OverdueTasks)
	require.Len(t, summary.UpcomingDeadlines, 1)
	assert.Len(t, summary.ProjectStatusDistribution, 2)
	assert.Len(t, summary.TaskStatusDistribution, 1)
	assert.Len(t, summary.DepartmentWorkload, 1)
	assert.Len(t, summary.RecentActivities, 1)
}

func TestDashboardSummaryNormalizesEmptySlices(t *testing.T) {
	service := NewDashboardService(&fakeProjectStore{}, &fakeTaskStore{}, NewActivityService(&fakeActivityStore{}))

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, summary.UpcomingDeadlines)
	assert.NotNil(t, summary.RecentActivities)
}

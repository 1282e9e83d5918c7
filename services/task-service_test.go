package services

import (
	"context"
	"testing"

	"planhub/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskFixture(tasks *fakeTaskStore, activity *fakeActivityStore) *TaskService {
	return NewTaskService(tasks, NewActivityService(activity))
}

func TestTaskUpdateStatusChangeLogsUpdated(t *testing.T) {
	tasks := &fakeTaskStore{updateOK: true}
	activity := &fakeActivityStore{}
	service := newTaskFixture(tasks, activity)

	status := string(models.TaskDone)
	updated, err := service.Update(context.Background(), primitiveHex(t), TaskUpdate{Status: &status}, "")
	require.NoError(t, err)
	assert.True(t, updated)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, models.ActionUpdated, activity.entries[0].Action)
}

func TestTaskUpdateEmptyPayloadRefreshesAudit(t *testing.T) {
	tasks := &fakeTaskStore{updateOK: true}
	activity := &fakeActivityStore{}
	service := newTaskFixture(tasks, activity)

	updated, err := service.Update(context.Background(), primitiveHex(t), TaskUpdate{}, primitiveHex(t))
	require.NoError(t, err)
	assert.True(t, updated)
	require.Len(t, tasks.updates, 1)
	assert.Contains(t, tasks.updates[0], "updated_by")
	require.Len(t, activity.entries, 1)
}

func TestTaskCreateDefaults(t *testing.T) {
	tasks := &fakeTaskStore{}
	service := newTaskFixture(tasks, &fakeActivityStore{})

	task, err := service.Create(context.Background(), TaskCreate{
		ProjectID: primitiveHex(t),
		Title:     "ship it",
		Progress:  150,
	}, "")
	require.NoError(t, err)

	assert.Equal(t, models.TaskTodo, task.Status)
	assert.Equal(t, models.TaskPriorityMedium, task.Priority)
	assert.Equal(t, 100.0, task.Progress)
}

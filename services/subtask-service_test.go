package services

import (
	"context"
	"testing"

	"planhub/backend/errs"
	"planhub/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newSubtaskFixture(store *fakeSubtaskStore, activity *fakeActivityStore) *SubtaskService {
	return NewSubtaskService(store, NewActivityService(activity))
}

func TestSubtaskReorderAssignsListPositions(t *testing.T) {
	taskID := primitive.NewObjectID()
	first := &models.Subtask{ID: primitive.NewObjectID(), TaskID: taskID, Order: 0}
	second := &models.Subtask{ID: primitive.NewObjectID(), TaskID: taskID, Order: 1}
	third := &models.Subtask{ID: primitive.NewObjectID(), TaskID: taskID, Order: 2}
	store := &fakeSubtaskStore{subtasks: []*models.Subtask{first, second, third}}
	service := newSubtaskFixture(store, &fakeActivityStore{})

	err := service.Reorder(context.Background(), taskID.Hex(), []string{
		third.ID.Hex(), first.ID.Hex(), second.ID.Hex(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, third.Order)
	assert.Equal(t, 1, first.Order)
	assert.Equal(t, 2, second.Order)
}

func TestSubtaskReorderRejectsMalformedID(t *testing.T) {
	service := newSubtaskFixture(&fakeSubtaskStore{}, &fakeActivityStore{})

	err := service.Reorder(context.Background(), primitiveHex(t), []string{"bogus"})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestSubtaskCreateOrderConflict(t *testing.T) {
	store := &fakeSubtaskStore{insertErr: errs.ErrAlreadyExists}
	activity := &fakeActivityStore{}
	service := newSubtaskFixture(store, activity)

	_, err := service.Create(context.Background(), SubtaskCreate{
		TaskID: primitiveHex(t),
		Title:  "dup order",
	}, "")
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
	assert.Empty(t, activity.entries, "failed insert must not be audited")
}

func TestSubtaskCreateDefaultsAndActivity(t *testing.T) {
	store := &fakeSubtaskStore{}
	activity := &fakeActivityStore{}
	service := newSubtaskFixture(store, activity)

	subtask, err := service.Create(context.Background(), SubtaskCreate{
		TaskID: primitiveHex(t),
		Title:  "write docs",
	}, primitiveHex(t))
	require.NoError(t, err)

	assert.Equal(t, models.SubtaskTodo, subtask.Status)
	require.Len(t, activity.entries, 1)
	assert.Equal(t, models.ActionCreated, activity.entries[0].Action)
}

func TestSubtaskUpdateEmptyPayloadRefreshesAudit(t *testing.T) {
	subtask := &models.Subtask{ID: primitive.NewObjectID(), TaskID: primitive.NewObjectID()}
	store := &fakeSubtaskStore{subtasks: []*models.Subtask{subtask}, updateOK: true}
	activity := &fakeActivityStore{}
	service := newSubtaskFixture(store, activity)

	updated, err := service.Update(context.Background(), subtask.ID.Hex(), SubtaskUpdate{}, primitiveHex(t))
	require.NoError(t, err)
	assert.True(t, updated)
	require.Len(t, store.updates, 1)
	assert.Contains(t, store.updates[0], "updated_by")
	require.Len(t, activity.entries, 1)
}

func TestSubtaskUpdateMissing(t *testing.T) {
	service := newSubtaskFixture(&fakeSubtaskStore{}, &fakeActivityStore{})

	updated, err := service.Update(context.Background(), primitiveHex(t), SubtaskUpdate{}, "")
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestSubtaskDeleteRecordsActivityWithTask(t *testing.T) {
	taskID := primitive.NewObjectID()
	subtask := &models.Subtask{ID: primitive.NewObjectID(), TaskID: taskID}
	store := &fakeSubtaskStore{subtasks: []*models.Subtask{subtask}, deleteOK: true}
	activity := &fakeActivityStore{}
	service := newSubtaskFixture(store, activity)

	deleted, err := service.Delete(context.Background(), subtask.ID.Hex(), "")
	require.NoError(t, err)
	assert.True(t, deleted)

	require.Len(t, activity.entries, 1)
	require.NotNil(t, activity.entries[0].TaskID)
	assert.Equal(t, taskID, *activity.entries[0].TaskID)
}

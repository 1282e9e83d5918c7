package services

import (
	"context"
	"errors"
	"testing"

	"planhub/backend/models"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStampsOccurredAt(t *testing.T) {
	store := &fakeActivityStore{}
	service := NewActivityService(store)

	err := service.Record(context.Background(), ActivityEntry{
		Action: models.ActionCreated,
		Detail: "Project 'Rollout' created",
	})
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.False(t, entry.OccurredAt.IsZero())
	assert.Nil(t, entry.ProjectID)
	assert.Nil(t, entry.TaskID)
	assert.Nil(t, entry.ActorID)
}

func TestRecordRejectsMalformedActor(t *testing.T) {
	service := NewActivityService(&fakeActivityStore{})

	err := service.Record(context.Background(), ActivityEntry{
		ActorID: "not-hex",
		Action:  models.ActionCreated,
	})
	assert.Error(t, err)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	store := &fakeActivityStore{insertErr: errors.New("store down")}
	service := NewActivityService(store)
	entry := ActivityEntry{Action: models.ActionCreated}

	for i := 0; i < 5; i++ {
		err := service.Record(context.Background(), entry)
		require.Error(t, err)
		require.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}

	// The sixth attempt is rejected without touching the store.
	err := service.Record(context.Background(), entry)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestRecentFallsBackToDefaultLimit(t *testing.T) {
	store := &fakeActivityStore{}
	for i := 0; i < defaultRecentLimit+5; i++ {
		store.entries = append(store.entries, models.Activity{Action: models.ActionUpdated})
	}
	service := NewActivityService(store)

	activities, err := service.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, activities, defaultRecentLimit)
}

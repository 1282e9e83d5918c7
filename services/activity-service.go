package services

import (
	"context"
	"time"

	"planhub/backend/logging"
	"planhub/backend/models"

	"github.com/sony/gobreaker"
)

const defaultRecentLimit = 20

// ActivityService appends to the audit trail and reads it back for recent
// activity feeds. Writes go through a circuit breaker so that a failing
// audit store does not hammer the database; the callers treat a failed
// write as loggable, never as a reason to fail the primary mutation.
type ActivityService struct {
	store   ActivityStore
	breaker *gobreaker.CircuitBreaker
}

func NewActivityService(store ActivityStore) *ActivityService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "activity-log",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Warnf("Event ID: ACTIVITY_BREAKER_STATE_CHANGE, Description: circuit breaker '%s' changed from %s to %s", name, from.String(), to.String())
		},
	})
	return &ActivityService{store: store, breaker: breaker}
}

// ActivityEntry is one domain event to append. Empty reference ids are
// simply omitted from the stored entry.
type ActivityEntry struct {
	ProjectID string
	TaskID    string
	ActorID   string
	Action    models.ActivityAction
	Detail    string
}

func (s *ActivityService) Record(ctx context.Context, entry ActivityEntry) error {
	projectID, err := parseOptionalID(entry.ProjectID, "project")
	if err != nil {
		return err
	}
	taskID, err := parseOptionalID(entry.TaskID, "task")
	if err != nil {
		return err
	}
	actorID, err := parseOptionalID(entry.ActorID, "actor")
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	activity := &models.Activity{
		ProjectID:  projectID,
		TaskID:     taskID,
		ActorID:    actorID,
		Action:     entry.Action,
		Detail:     entry.Detail,
		OccurredAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  entry.ActorID,
		UpdatedBy:  entry.ActorID,
	}
	_, err = s.breaker.Execute(func() (interface{}, error) {
		return s.store.Insert(ctx, activity)
	})
	return err
}

func (s *ActivityService) RecentForProject(ctx context.Context, projectID string, limit int64) ([]models.Activity, error) {
	id, err := parseID(projectID, "project")
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.store.RecentForProject(ctx, id, limit)
}

func (s *ActivityService) Recent(ctx context.Context, limit int64) ([]models.Activity, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.store.RecentGlobal(ctx, limit)
}

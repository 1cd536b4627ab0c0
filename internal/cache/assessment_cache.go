package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"complyq/internal/model"
)

// AssessmentCache is the durable key/value store for questionnaire
// records, one entry per project. Entries never expire; the store is
// the system of record across sessions.
type AssessmentCache interface {
	Get(ctx context.Context, projectID string) (*model.AssessmentRecord, error)
	Set(ctx context.Context, record *model.AssessmentRecord) error
	Delete(ctx context.Context, projectID string) error

	// LastSaved tracks the persisted-at timestamp shown by the UI's
	// "saving" indicator.
	SetLastSaved(ctx context.Context, projectID string, at time.Time) error
	GetLastSaved(ctx context.Context, projectID string) (time.Time, error)
}

type assessmentCache struct {
	client *redis.Client
}

// NewAssessmentCache creates a new assessment cache
func NewAssessmentCache(client *redis.Client) AssessmentCache {
	return &assessmentCache{client: client}
}

func recordKey(projectID string) string {
	return "assessment_" + projectID
}

func lastSavedKey(projectID string) string {
	return "assessmentSaved_" + projectID
}

func (c *assessmentCache) Get(ctx context.Context, projectID string) (*model.AssessmentRecord, error) {
	data, err := c.client.Get(ctx, recordKey(projectID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var record model.AssessmentRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, err
	}
	record.Normalize()
	return &record, nil
}

func (c *assessmentCache) Set(ctx context.Context, record *model.AssessmentRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, recordKey(record.ProjectID), data, 0).Err()
}

func (c *assessmentCache) Delete(ctx context.Context, projectID string) error {
	return c.client.Del(ctx, recordKey(projectID), lastSavedKey(projectID)).Err()
}

func (c *assessmentCache) SetLastSaved(ctx context.Context, projectID string, at time.Time) error {
	return c.client.Set(ctx, lastSavedKey(projectID), at.Format(time.RFC3339), 0).Err()
}

func (c *assessmentCache) GetLastSaved(ctx context.Context, projectID string) (time.Time, error) {
	data, err := c.client.Get(ctx, lastSavedKey(projectID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, data)
}

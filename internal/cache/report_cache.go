package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"complyq/internal/model"
)

// ReportCache holds the UI-facing report signal layer: the latest
// generated report per project, generated/timestamp flags, and the
// cross-project analyses index.
type ReportCache interface {
	SetReport(ctx context.Context, report *model.RiskReport) error
	GetReport(ctx context.Context, projectID string) (*model.RiskReport, error)

	MarkGenerated(ctx context.Context, projectID string, at time.Time) error
	IsGenerated(ctx context.Context, projectID string) (bool, error)
	GeneratedAt(ctx context.Context, projectID string) (time.Time, error)

	UpsertAnalysis(ctx context.Context, entry model.AnalysisEntry) error
	ListAnalyses(ctx context.Context) ([]model.AnalysisEntry, error)
}

type reportCache struct {
	client *redis.Client
}

// NewReportCache creates a new report cache
func NewReportCache(client *redis.Client) ReportCache {
	return &reportCache{client: client}
}

func reportKey(projectID string) string {
	return "riskAssessment_" + projectID
}

func generatedKey(projectID string) string {
	return "riskAssessmentGenerated_" + projectID
}

func generatedAtKey(projectID string) string {
	return "riskAssessmentTimestamp_" + projectID
}

const analysesKey = "riskAssessmentAnalyses"

func (c *reportCache) SetReport(ctx context.Context, report *model.RiskReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, reportKey(report.ProjectID), data, 0).Err()
}

func (c *reportCache) GetReport(ctx context.Context, projectID string) (*model.RiskReport, error) {
	data, err := c.client.Get(ctx, reportKey(projectID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.RiskReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *reportCache) MarkGenerated(ctx context.Context, projectID string, at time.Time) error {
	if err := c.client.Set(ctx, generatedKey(projectID), "true", 0).Err(); err != nil {
		return err
	}
	return c.client.Set(ctx, generatedAtKey(projectID), at.Format(time.RFC3339), 0).Err()
}

func (c *reportCache) IsGenerated(ctx context.Context, projectID string) (bool, error) {
	data, err := c.client.Get(ctx, generatedKey(projectID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return data == "true", nil
}

func (c *reportCache) GeneratedAt(ctx context.Context, projectID string) (time.Time, error) {
	data, err := c.client.Get(ctx, generatedAtKey(projectID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, data)
}

// UpsertAnalysis replaces the project's row in the analyses index, or
// appends a new one. Read-modify-write; the index is small and only one
// writer per project is assumed.
func (c *reportCache) UpsertAnalysis(ctx context.Context, entry model.AnalysisEntry) error {
	entries, err := c.ListAnalyses(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range entries {
		if entries[i].ProjectID == entry.ProjectID {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, analysesKey, data, 0).Err()
}

func (c *reportCache) ListAnalyses(ctx context.Context) ([]model.AnalysisEntry, error) {
	data, err := c.client.Get(ctx, analysesKey).Result()
	if err == redis.Nil {
		return []model.AnalysisEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []model.AnalysisEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

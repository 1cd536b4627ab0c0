package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"complyq/internal/cache"
	"complyq/internal/model"
	"complyq/internal/report"
	"complyq/internal/repository"
)

// ReportService assembles the compliance report for a project: the
// current questionnaire state, directory metadata, AI recommendations
// and the rendered HTML document. Reports are stored durably in Mongo;
// the Redis flag keys are the UI-facing signal layer.
type ReportService struct {
	assessments *AssessmentService
	projects    *ProjectService
	assist      *AssistService
	renderer    *report.Renderer
	reportRepo  repository.ReportRepo
	reportCache cache.ReportCache
	broadcaster Broadcaster
}

// NewReportService creates a new report service
func NewReportService(
	assessments *AssessmentService,
	projects *ProjectService,
	assist *AssistService,
	renderer *report.Renderer,
	reportRepo repository.ReportRepo,
	reportCache cache.ReportCache,
) *ReportService {
	return &ReportService{
		assessments: assessments,
		projects:    projects,
		assist:      assist,
		renderer:    renderer,
		reportRepo:  reportRepo,
		reportCache: reportCache,
	}
}

// SetBroadcaster wires the WebSocket hub for report lifecycle events
func (s *ReportService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Generate builds, renders and persists the report for a project. A
// rendering failure propagates to the caller and nothing is persisted
// as complete; a failed AI narrative degrades to the fixed fallback
// string and generation proceeds.
func (s *ReportService) Generate(ctx context.Context, projectID string) (*model.RiskReport, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	record := s.assessments.Load(ctx, projectID)
	record = s.assessments.ApplySignal(ctx, record)
	metrics := record.Metrics()

	recommendations := s.assist.GenerateRecommendations(ctx, project, record)

	html, err := s.renderer.Render(record, project, recommendations)
	if err != nil {
		return nil, fmt.Errorf("report generation for project %s: %w", projectID, err)
	}

	now := time.Now()
	rpt := &model.RiskReport{
		ID:                uuid.New().String(),
		ProjectID:         projectID,
		ProjectName:       project.Name,
		Status:            model.ReportStatusReady,
		AssessmentData:    record.Answers,
		AIRecommendations: recommendations,
		HTML:              html,
		Progress:          metrics.CompletionPercentage,
		RiskLevel:         metrics.RiskLevel,
		Timestamp:         now,
		ReadyAt:           &now,
	}

	if err := s.reportRepo.Save(ctx, rpt); err != nil {
		return nil, err
	}

	// Signal-layer writes are best effort: the durable report exists,
	// a stale flag only delays the UI indicator.
	if err := s.reportCache.SetReport(ctx, rpt); err != nil {
		log.Printf("report: cache write failed for project %s: %v", projectID, err)
	}
	if err := s.reportCache.MarkGenerated(ctx, projectID, now); err != nil {
		log.Printf("report: generated flag write failed for project %s: %v", projectID, err)
	}
	if err := s.reportCache.UpsertAnalysis(ctx, model.AnalysisEntry{
		ProjectID:     projectID,
		ProjectName:   project.Name,
		Timestamp:     now,
		Progress:      metrics.CompletionPercentage,
		RiskLevel:     metrics.RiskLevel,
		HTMLAvailable: true,
	}); err != nil {
		log.Printf("report: analyses index update failed for project %s: %v", projectID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToProject(projectID, "report_ready", map[string]interface{}{
			"projectId": projectID,
			"progress":  metrics.CompletionPercentage,
			"riskLevel": metrics.RiskLevel,
		})
	}

	return rpt, nil
}

// Get returns the latest generated report, preferring the cached copy
func (s *ReportService) Get(ctx context.Context, projectID string) (*model.RiskReport, error) {
	rpt, err := s.reportCache.GetReport(ctx, projectID)
	if err == nil && rpt != nil {
		return rpt, nil
	}
	if err != nil {
		log.Printf("report: cache read failed for project %s, falling back to Mongo: %v", projectID, err)
	}
	return s.reportRepo.GetByProjectID(ctx, projectID)
}

// Status reports whether a report has been generated and when
func (s *ReportService) Status(ctx context.Context, projectID string) (bool, time.Time) {
	generated, err := s.reportCache.IsGenerated(ctx, projectID)
	if err != nil {
		log.Printf("report: generated flag read failed for project %s: %v", projectID, err)
		return false, time.Time{}
	}
	if !generated {
		return false, time.Time{}
	}
	at, err := s.reportCache.GeneratedAt(ctx, projectID)
	if err != nil {
		log.Printf("report: generated timestamp read failed for project %s: %v", projectID, err)
	}
	return true, at
}

// ListAnalyses returns the cross-project analyses index, rebuilding it
// from Mongo when the cached copy is unavailable.
func (s *ReportService) ListAnalyses(ctx context.Context) ([]model.AnalysisEntry, error) {
	entries, err := s.reportCache.ListAnalyses(ctx)
	if err == nil && len(entries) > 0 {
		return entries, nil
	}
	if err != nil {
		log.Printf("report: analyses cache read failed, falling back to Mongo: %v", err)
	}
	return s.reportRepo.ListSummaries(ctx)
}

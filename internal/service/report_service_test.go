package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"complyq/internal/model"
	"complyq/internal/report"
)

type fakeProjectRepo struct {
	projects map[string]*model.Project
}

func (f *fakeProjectRepo) Create(_ context.Context, p *model.Project) (string, error) {
	f.projects[p.ID] = p
	return p.ID, nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	return f.projects[id], nil
}

func (f *fakeProjectRepo) List(_ context.Context) ([]*model.Project, error) {
	out := make([]*model.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProjectRepo) Update(_ context.Context, p *model.Project) error {
	f.projects[p.ID] = p
	return nil
}

type fakeArtifactRepo struct {
	artifacts map[string][]*model.Artifact
	err       error
}

func (f *fakeArtifactRepo) Create(_ context.Context, a *model.Artifact) (string, error) {
	f.artifacts[a.ProjectID] = append(f.artifacts[a.ProjectID], a)
	return a.ID, nil
}

func (f *fakeArtifactRepo) GetByProjectID(_ context.Context, projectID string) ([]*model.Artifact, error) {
	return f.artifacts[projectID], f.err
}

func (f *fakeArtifactRepo) CountByProjectID(_ context.Context, projectID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.artifacts[projectID])), nil
}

func (f *fakeArtifactRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeReportRepo struct {
	reports map[string]*model.RiskReport
}

func (f *fakeReportRepo) Save(_ context.Context, r *model.RiskReport) error {
	f.reports[r.ProjectID] = r
	return nil
}

func (f *fakeReportRepo) GetByProjectID(_ context.Context, projectID string) (*model.RiskReport, error) {
	return f.reports[projectID], nil
}

func (f *fakeReportRepo) ListSummaries(_ context.Context) ([]model.AnalysisEntry, error) {
	entries := make([]model.AnalysisEntry, 0, len(f.reports))
	for _, r := range f.reports {
		entries = append(entries, model.AnalysisEntry{
			ProjectID:   r.ProjectID,
			ProjectName: r.ProjectName,
			Timestamp:   r.Timestamp,
			Progress:    r.Progress,
			RiskLevel:   r.RiskLevel,
		})
	}
	return entries, nil
}

type fakeReportCache struct {
	reports   map[string]*model.RiskReport
	generated map[string]time.Time
	analyses  []model.AnalysisEntry
}

func newFakeReportCache() *fakeReportCache {
	return &fakeReportCache{
		reports:   make(map[string]*model.RiskReport),
		generated: make(map[string]time.Time),
	}
}

func (f *fakeReportCache) SetReport(_ context.Context, r *model.RiskReport) error {
	f.reports[r.ProjectID] = r
	return nil
}

func (f *fakeReportCache) GetReport(_ context.Context, projectID string) (*model.RiskReport, error) {
	return f.reports[projectID], nil
}

func (f *fakeReportCache) MarkGenerated(_ context.Context, projectID string, at time.Time) error {
	f.generated[projectID] = at
	return nil
}

func (f *fakeReportCache) IsGenerated(_ context.Context, projectID string) (bool, error) {
	_, ok := f.generated[projectID]
	return ok, nil
}

func (f *fakeReportCache) GeneratedAt(_ context.Context, projectID string) (time.Time, error) {
	return f.generated[projectID], nil
}

func (f *fakeReportCache) UpsertAnalysis(_ context.Context, entry model.AnalysisEntry) error {
	for i := range f.analyses {
		if f.analyses[i].ProjectID == entry.ProjectID {
			f.analyses[i] = entry
			return nil
		}
	}
	f.analyses = append(f.analyses, entry)
	return nil
}

func (f *fakeReportCache) ListAnalyses(_ context.Context) ([]model.AnalysisEntry, error) {
	return f.analyses, nil
}

func newTestReportService(t *testing.T, artifacts *fakeArtifactRepo) (*ReportService, *AssessmentService, *fakeReportCache) {
	t.Helper()
	projects := &fakeProjectRepo{projects: map[string]*model.Project{
		"p1": {ID: "p1", Name: "Claims Triage Model", Description: "Scores claims", Status: model.ProjectStatusActive},
	}}
	if artifacts == nil {
		artifacts = &fakeArtifactRepo{artifacts: make(map[string][]*model.Artifact)}
	}

	projectSvc := NewProjectService(projects, artifacts)
	assessmentSvc := NewAssessmentService(newFakeAssessmentStore(), projectSvc)

	renderer, err := report.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	reportCache := newFakeReportCache()
	svc := NewReportService(
		assessmentSvc,
		projectSvc,
		disabledAssist(),
		renderer,
		&fakeReportRepo{reports: make(map[string]*model.RiskReport)},
		reportCache,
	)
	return svc, assessmentSvc, reportCache
}

func TestGenerateReport(t *testing.T) {
	svc, assessments, reportCache := newTestReportService(t, nil)
	ctx := context.Background()

	record := assessments.Load(ctx, "p1")
	record, err := assessments.UpdateField(ctx, record, "aiSystemDescription", "Gradient-boosted claims classifier")
	if err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	assessments.Save(ctx, record)

	rpt, err := svc.Generate(ctx, "p1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if rpt.Status != model.ReportStatusReady {
		t.Errorf("Status = %q, want ready", rpt.Status)
	}
	if rpt.ProjectName != "Claims Triage Model" {
		t.Errorf("ProjectName = %q", rpt.ProjectName)
	}
	if rpt.RiskLevel != model.RiskPending {
		t.Errorf("RiskLevel = %s, want Pending for a nearly empty record", rpt.RiskLevel)
	}
	if !strings.Contains(rpt.HTML, "Gradient-boosted claims classifier") {
		t.Error("report HTML missing the answered field")
	}
	if !strings.Contains(rpt.HTML, report.NotProvided) {
		t.Error("report HTML missing the fallback for empty fields")
	}

	generated, at := svc.Status(ctx, "p1")
	if !generated || at.IsZero() {
		t.Error("report generation must set the generated flag and timestamp")
	}
	if len(reportCache.analyses) != 1 {
		t.Fatalf("analyses index has %d entries, want 1", len(reportCache.analyses))
	}
}

func TestGenerateReportUnknownProject(t *testing.T) {
	svc, _, _ := newTestReportService(t, nil)
	if _, err := svc.Generate(context.Background(), "ghost"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestGenerateReportAppliesAutoSectionSignal(t *testing.T) {
	artifacts := &fakeArtifactRepo{artifacts: map[string][]*model.Artifact{
		"p1": {{ID: "a1", ProjectID: "p1", Kind: model.ArtifactModel, Name: "claims-v3"}},
	}}
	svc, _, _ := newTestReportService(t, artifacts)

	rpt, err := svc.Generate(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Six auto slots of twenty-eight total: round(100*6/28) = 21.
	if rpt.Progress != 21 {
		t.Errorf("Progress = %d, want 21 with all auto sections satisfied", rpt.Progress)
	}
}

func TestGenerateReportUsesNarrativeFallback(t *testing.T) {
	svc, _, _ := newTestReportService(t, nil)
	rpt, err := svc.Generate(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if rpt.AIRecommendations == "" {
		t.Error("recommendations must never be empty")
	}
}

func TestReportStatusBeforeGeneration(t *testing.T) {
	svc, _, _ := newTestReportService(t, nil)
	generated, _ := svc.Status(context.Background(), "p1")
	if generated {
		t.Error("status should be false before any generation")
	}
}

func TestListAnalysesUpsertsPerProject(t *testing.T) {
	svc, _, _ := newTestReportService(t, nil)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, "p1"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := svc.Generate(ctx, "p1"); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	entries, err := svc.ListAnalyses(ctx)
	if err != nil {
		t.Fatalf("ListAnalyses: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("regenerating a report must not duplicate the index entry, got %d", len(entries))
	}
}

func TestAutoSectionSignalFromArtifacts(t *testing.T) {
	artifacts := &fakeArtifactRepo{artifacts: make(map[string][]*model.Artifact)}
	projects := &fakeProjectRepo{projects: make(map[string]*model.Project)}
	svc := NewProjectService(projects, artifacts)
	ctx := context.Background()

	got, err := svc.AutoSectionSignal(ctx, "p1")
	if err != nil {
		t.Fatalf("AutoSectionSignal: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("no artifacts should mean the empty set, got %v", got)
	}

	artifacts.artifacts["p1"] = []*model.Artifact{{ID: "a1", ProjectID: "p1", Kind: model.ArtifactDataset}}
	got, err = svc.AutoSectionSignal(ctx, "p1")
	if err != nil {
		t.Fatalf("AutoSectionSignal: %v", err)
	}
	if len(got) != 6 {
		t.Errorf("artifacts present should mark all 6 auto sections, got %v", got)
	}
}

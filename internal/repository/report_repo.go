package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"complyq/internal/model"
)

// ReportRepo handles MongoDB operations for generated risk reports
type ReportRepo interface {
	Save(ctx context.Context, report *model.RiskReport) error
	GetByProjectID(ctx context.Context, projectID string) (*model.RiskReport, error)
	ListSummaries(ctx context.Context) ([]model.AnalysisEntry, error)
}

type reportRepo struct {
	reports *mongo.Collection
}

// NewReportRepo creates a new report repository
func NewReportRepo(db *mongo.Database) ReportRepo {
	return &reportRepo{
		reports: db.Collection("risk_reports"),
	}
}

func (r *reportRepo) Save(ctx context.Context, report *model.RiskReport) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.reports.ReplaceOne(ctx, bson.M{"projectId": report.ProjectID}, report, opts)
	return err
}

func (r *reportRepo) GetByProjectID(ctx context.Context, projectID string) (*model.RiskReport, error) {
	var report model.RiskReport
	err := r.reports.FindOne(ctx, bson.M{"projectId": projectID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) ListSummaries(ctx context.Context) ([]model.AnalysisEntry, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": -1})
	cursor, err := r.reports.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []*model.RiskReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	entries := make([]model.AnalysisEntry, 0, len(reports))
	for _, rep := range reports {
		entries = append(entries, model.AnalysisEntry{
			ProjectID:     rep.ProjectID,
			ProjectName:   rep.ProjectName,
			Timestamp:     rep.Timestamp,
			Progress:      rep.Progress,
			RiskLevel:     rep.RiskLevel,
			HTMLAvailable: rep.HTML != "",
		})
	}
	return entries, nil
}

package model

import "time"

// ReportStatus for async report generation
const (
	ReportStatusPending    = "pending"
	ReportStatusGenerating = "generating"
	ReportStatusReady      = "ready"
	ReportStatusFailed     = "failed"
)

// RiskReport is the generated compliance report for one project
type RiskReport struct {
	ID                string            `json:"id" bson:"_id,omitempty"`
	ProjectID         string            `json:"projectId" bson:"projectId"`
	ProjectName       string            `json:"projectName" bson:"projectName"`
	Status            string            `json:"status" bson:"status"`
	AssessmentData    map[string]string `json:"assessmentData" bson:"assessmentData"`
	AIRecommendations string            `json:"aiRecommendations" bson:"aiRecommendations"`
	HTML              string            `json:"html,omitempty" bson:"html,omitempty"`
	Progress          int               `json:"progress" bson:"progress"`
	RiskLevel         RiskLevel         `json:"riskLevel" bson:"riskLevel"`
	Timestamp         time.Time         `json:"timestamp" bson:"timestamp"`
	ReadyAt           *time.Time        `json:"readyAt,omitempty" bson:"readyAt,omitempty"`
}

// AnalysisEntry is one row in the cross-project analyses index
type AnalysisEntry struct {
	ProjectID     string    `json:"projectId" bson:"projectId"`
	ProjectName   string    `json:"projectName" bson:"projectName"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
	Progress      int       `json:"progress" bson:"progress"`
	RiskLevel     RiskLevel `json:"riskLevel" bson:"riskLevel"`
	HTMLAvailable bool      `json:"htmlAvailable" bson:"htmlAvailable"`
}

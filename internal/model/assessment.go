package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"complyq/internal/schema"
)

// ErrUnknownField is returned when a field id is not part of the
// questionnaire schema. This is a caller bug, not a user condition.
var ErrUnknownField = errors.New("unknown assessment field")

// RiskLevel is derived from completion percentage only. It is a
// completion proxy, not a content-aware risk analysis; the thresholds
// are kept for compatibility with the report format.
type RiskLevel string

const (
	RiskPending RiskLevel = "Pending"
	RiskHigh    RiskLevel = "High"
	RiskMedium  RiskLevel = "Medium"
	RiskLow     RiskLevel = "Low"
)

// AssessmentRecord is the persisted unit: one questionnaire answer set
// per project. Answers is always fully materialized — every schema field
// is present, possibly as an empty string.
type AssessmentRecord struct {
	ProjectID             string            `json:"projectId"`
	Answers               map[string]string `json:"assessmentData"`
	LastUpdated           time.Time         `json:"lastUpdated"`
	AutoSectionsCompleted []int             `json:"autoSectionsCompleted"`
}

// PendingItem names a user section that still has empty fields.
type PendingItem struct {
	SectionTitle string `json:"sectionTitle"`
	MissingCount int    `json:"missingCount"`
}

// DerivedMetrics is recomputed on demand and never persisted.
type DerivedMetrics struct {
	CompletionPercentage  int           `json:"completionPercentage"`
	RiskLevel             RiskLevel     `json:"riskLevel"`
	CompletedSectionCount int           `json:"completedSectionCount"`
	PendingItems          []PendingItem `json:"pendingItems"`
}

// NewAssessmentRecord returns the canonical empty record for a project:
// all schema fields present and empty, no auto sections completed.
func NewAssessmentRecord(projectID string) *AssessmentRecord {
	answers := make(map[string]string, schema.UserFieldCount())
	for _, id := range schema.FieldIDs() {
		answers[id] = ""
	}
	return &AssessmentRecord{
		ProjectID:             projectID,
		Answers:               answers,
		LastUpdated:           time.Now(),
		AutoSectionsCompleted: []int{},
	}
}

// Normalize fills in any schema fields missing from Answers so that a
// record decoded from storage is always fully materialized, and sorts
// the auto-section set.
func (r *AssessmentRecord) Normalize() {
	if r.Answers == nil {
		r.Answers = make(map[string]string, schema.UserFieldCount())
	}
	for _, id := range schema.FieldIDs() {
		if _, ok := r.Answers[id]; !ok {
			r.Answers[id] = ""
		}
	}
	if r.AutoSectionsCompleted == nil {
		r.AutoSectionsCompleted = []int{}
	}
	sort.Ints(r.AutoSectionsCompleted)
}

// SetField returns a copy of the record with the field set and
// LastUpdated refreshed. Unknown fields fail fast with ErrUnknownField.
func (r *AssessmentRecord) SetField(fieldID, value string) (*AssessmentRecord, error) {
	if !schema.IsKnownField(fieldID) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	next := r.clone()
	next.Answers[fieldID] = value
	if now := time.Now(); now.After(next.LastUpdated) {
		next.LastUpdated = now
	}
	return next, nil
}

// MarkAutoSections replaces the completed auto-section set wholesale.
// The signal source decides the set; absence of a signal means empty.
// Idempotent and order-independent.
func (r *AssessmentRecord) MarkAutoSections(sectionNumbers []int) *AssessmentRecord {
	next := r.clone()
	seen := make(map[int]bool, len(sectionNumbers))
	set := make([]int, 0, len(sectionNumbers))
	for _, n := range sectionNumbers {
		if !seen[n] {
			seen[n] = true
			set = append(set, n)
		}
	}
	sort.Ints(set)
	next.AutoSectionsCompleted = set
	return next
}

// CompletionPercentage is round(100*(uc+ac)/(U+A)) where uc counts
// non-empty user fields, ac the completed auto sections capped at the
// slot count. Zero denominator is defined as 0.
func (r *AssessmentRecord) CompletionPercentage() int {
	u := schema.UserFieldCount()
	a := schema.AutoSectionSlots()
	if u+a == 0 {
		return 0
	}
	uc := 0
	for _, id := range schema.FieldIDs() {
		if r.Answers[id] != "" {
			uc++
		}
	}
	ac := len(r.AutoSectionsCompleted)
	if ac > a {
		ac = a
	}
	return int(math.Round(100 * float64(uc+ac) / float64(u+a)))
}

// RiskLevel buckets the completion percentage: <25 Pending, 25-59 High,
// 60-79 Medium, >=80 Low.
func (r *AssessmentRecord) RiskLevel() RiskLevel {
	return RiskLevelForPercentage(r.CompletionPercentage())
}

// RiskLevelForPercentage maps a completion percentage to its bracket.
func RiskLevelForPercentage(pct int) RiskLevel {
	switch {
	case pct < 25:
		return RiskPending
	case pct < 60:
		return RiskHigh
	case pct < 80:
		return RiskMedium
	default:
		return RiskLow
	}
}

// CompletedSectionCount counts user sections with every field filled
// plus the completed auto sections.
func (r *AssessmentRecord) CompletedSectionCount() int {
	count := 0
	for _, s := range schema.UserSections() {
		done := true
		for _, f := range s.Fields {
			if r.Answers[f.ID] == "" {
				done = false
				break
			}
		}
		if done {
			count++
		}
	}
	return count + len(r.AutoSectionsCompleted)
}

// PendingItems lists user sections with at least one empty field, in
// declaration order. Auto sections never appear here.
func (r *AssessmentRecord) PendingItems() []PendingItem {
	items := []PendingItem{}
	for _, s := range schema.UserSections() {
		missing := 0
		for _, f := range s.Fields {
			if r.Answers[f.ID] == "" {
				missing++
			}
		}
		if missing > 0 {
			items = append(items, PendingItem{SectionTitle: s.Title, MissingCount: missing})
		}
	}
	return items
}

// Metrics computes all derived metrics in one pass.
func (r *AssessmentRecord) Metrics() DerivedMetrics {
	pct := r.CompletionPercentage()
	return DerivedMetrics{
		CompletionPercentage:  pct,
		RiskLevel:             RiskLevelForPercentage(pct),
		CompletedSectionCount: r.CompletedSectionCount(),
		PendingItems:          r.PendingItems(),
	}
}

// Equal reports whether two records hold the same answers, timestamp
// and auto-section set.
func (r *AssessmentRecord) Equal(other *AssessmentRecord) bool {
	if r.ProjectID != other.ProjectID || !r.LastUpdated.Equal(other.LastUpdated) {
		return false
	}
	if len(r.Answers) != len(other.Answers) || len(r.AutoSectionsCompleted) != len(other.AutoSectionsCompleted) {
		return false
	}
	for k, v := range r.Answers {
		if other.Answers[k] != v {
			return false
		}
	}
	for i, n := range r.AutoSectionsCompleted {
		if other.AutoSectionsCompleted[i] != n {
			return false
		}
	}
	return true
}

func (r *AssessmentRecord) clone() *AssessmentRecord {
	answers := make(map[string]string, len(r.Answers))
	for k, v := range r.Answers {
		answers[k] = v
	}
	auto := make([]int, len(r.AutoSectionsCompleted))
	copy(auto, r.AutoSectionsCompleted)
	return &AssessmentRecord{
		ProjectID:             r.ProjectID,
		Answers:               answers,
		LastUpdated:           r.LastUpdated,
		AutoSectionsCompleted: auto,
	}
}

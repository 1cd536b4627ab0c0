package service

import (
	"context"
	"log"
	"time"

	"complyq/internal/cache"
	"complyq/internal/model"
)

// AutoSectionSource supplies the set of auto-completed section numbers
// for a project. Implemented by ProjectService over the audit directory.
type AutoSectionSource interface {
	AutoSectionSignal(ctx context.Context, projectID string) ([]int, error)
}

// AssessmentService owns the questionnaire record for each project and
// keeps it synchronized with durable storage. Storage failures degrade
// to a logged warning and a well-defined default; the service never
// returns an error for missing or corrupted persisted data.
type AssessmentService struct {
	store       cache.AssessmentCache
	signal      AutoSectionSource
	broadcaster Broadcaster
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(store cache.AssessmentCache, signal AutoSectionSource) *AssessmentService {
	return &AssessmentService{
		store:  store,
		signal: signal,
	}
}

// SetBroadcaster wires the WebSocket hub for save/progress events
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Load returns the persisted record for a project, or the canonical
// empty record when nothing is stored or the stored entry cannot be
// parsed. It never fails.
func (s *AssessmentService) Load(ctx context.Context, projectID string) *model.AssessmentRecord {
	record, err := s.store.Get(ctx, projectID)
	if err != nil {
		log.Printf("assessment: unreadable record for project %s, using empty default: %v", projectID, err)
		return model.NewAssessmentRecord(projectID)
	}
	if record == nil {
		return model.NewAssessmentRecord(projectID)
	}
	return record
}

// Save persists the record fire-and-forget: a failed write is logged
// and the in-memory record stays authoritative for the session. On
// success the last-saved indicator is updated and subscribers are
// notified.
func (s *AssessmentService) Save(ctx context.Context, record *model.AssessmentRecord) {
	if err := s.store.Set(ctx, record); err != nil {
		log.Printf("assessment: save failed for project %s: %v", record.ProjectID, err)
		return
	}
	savedAt := time.Now()
	if err := s.store.SetLastSaved(ctx, record.ProjectID, savedAt); err != nil {
		log.Printf("assessment: last-saved update failed for project %s: %v", record.ProjectID, err)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToProject(record.ProjectID, "assessment_saved", map[string]interface{}{
			"projectId": record.ProjectID,
			"savedAt":   savedAt.Format(time.RFC3339),
			"metrics":   record.Metrics(),
		})
	}
}

// UpdateField sets one answer, persists the result, and returns the
// updated record. Unknown field ids are a caller bug and propagate as
// model.ErrUnknownField.
func (s *AssessmentService) UpdateField(ctx context.Context, record *model.AssessmentRecord, fieldID, value string) (*model.AssessmentRecord, error) {
	next, err := record.SetField(fieldID, value)
	if err != nil {
		return nil, err
	}
	s.Save(ctx, next)
	return next, nil
}

// ApplySignal refreshes the auto-completed section set from the audit
// directory. When the directory is unreachable the current set is kept.
func (s *AssessmentService) ApplySignal(ctx context.Context, record *model.AssessmentRecord) *model.AssessmentRecord {
	if s.signal == nil {
		return record
	}
	sections, err := s.signal.AutoSectionSignal(ctx, record.ProjectID)
	if err != nil {
		log.Printf("assessment: auto-section signal failed for project %s: %v", record.ProjectID, err)
		return record
	}
	return record.MarkAutoSections(sections)
}

// Refresh reconciles the in-memory record against storage with
// last-write-wins by timestamp: a persisted record only replaces the
// in-memory one when it is not older.
func (s *AssessmentService) Refresh(ctx context.Context, record *model.AssessmentRecord) *model.AssessmentRecord {
	persisted, err := s.store.Get(ctx, record.ProjectID)
	if err != nil {
		log.Printf("assessment: refresh read failed for project %s, keeping in-memory state: %v", record.ProjectID, err)
		return record
	}
	if persisted == nil || persisted.LastUpdated.Before(record.LastUpdated) {
		return record
	}
	return persisted
}

// Reset destroys the stored record and returns the empty default. Not
// undoable; the transport layer gates it behind explicit confirmation.
func (s *AssessmentService) Reset(ctx context.Context, projectID string) *model.AssessmentRecord {
	if err := s.store.Delete(ctx, projectID); err != nil {
		log.Printf("assessment: reset delete failed for project %s: %v", projectID, err)
	}
	fresh := model.NewAssessmentRecord(projectID)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToProject(projectID, "assessment_reset", map[string]interface{}{
			"projectId": projectID,
		})
	}
	return fresh
}

// LastSaved returns the persisted-at timestamp for the UI's saving
// indicator; the zero time means never saved.
func (s *AssessmentService) LastSaved(ctx context.Context, projectID string) time.Time {
	at, err := s.store.GetLastSaved(ctx, projectID)
	if err != nil {
		log.Printf("assessment: last-saved read failed for project %s: %v", projectID, err)
		return time.Time{}
	}
	return at
}

package audit

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/database/audit"
	"github.com/mrlokans/catalog/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	log  logrus.FieldLogger
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, log: log}
}

// Change describes one successful or failed mutation of a catalog entity.
type Change struct {
	RequestID  string
	EventType  entities.AuditEventType
	EntityType string // "book", "author", ...
	EntityID   uint
	Name       string // display name of the entity, when known
	Details    map[string]any
	IPAddress  string
	UserAgent  string
	Err        error
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			s.log.WithError(err).WithField("action", event.Action).Warn("Failed to log audit event")
		}
	}()
}

// Wait blocks until every pending asynchronous write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogChange records a create, update, patch or delete of a catalog entity.
func (s *Service) LogChange(c Change) {
	event := &entities.AuditEvent{
		RequestID:   c.RequestID,
		EventType:   c.EventType,
		Action:      c.EntityType + "_" + string(c.EventType),
		Description: describe(c),
		EntityType:  c.EntityType,
		IPAddress:   c.IPAddress,
		UserAgent:   truncate(c.UserAgent, 500),
		Status:      entities.AuditStatusSuccess,
	}
	if c.EntityID != 0 {
		id := c.EntityID
		event.EntityID = &id
	}
	if len(c.Details) > 0 {
		if md, err := json.Marshal(c.Details); err == nil {
			event.Metadata = string(md)
		}
	}
	if c.Err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(c.Err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogSeed records loading of the sample catalog.
func (s *Service) LogSeed(counts map[string]int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSeed,
		Action:      "catalog_seed",
		Description: "Loaded sample catalog",
		Status:      entities.AuditStatusSuccess,
	}
	if md, e := json.Marshal(counts); e == nil {
		event.Metadata = string(md)
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogCleanup records a retention run.
func (s *Service) LogCleanup(deleted int64, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCleanup,
		Action:      "audit_cleanup",
		Description: fmt.Sprintf("Deleted %d audit events", deleted),
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events, optionally for one entity type.
func (s *Service) GetEvents(entityType string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(entityType, limit, offset)
}

// GetEventsForEntity returns the history of one record, oldest first.
func (s *Service) GetEventsForEntity(entityType string, entityID uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(entityType, entityID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func describe(c Change) string {
	verb := map[entities.AuditEventType]string{
		entities.AuditEventCreate: "Created",
		entities.AuditEventUpdate: "Updated",
		entities.AuditEventPatch:  "Patched",
		entities.AuditEventDelete: "Deleted",
	}[c.EventType]
	if verb == "" {
		verb = string(c.EventType)
	}
	if c.Name != "" {
		return truncate(fmt.Sprintf("%s %s: %s", verb, c.EntityType, c.Name), 500)
	}
	return fmt.Sprintf("%s %s %d", verb, c.EntityType, c.EntityID)
}

// truncate shortens s to at most maxLen characters. It never splits a
// multi-byte character.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

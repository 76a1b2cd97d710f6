package services

import (
	"encoding/json"
	"reflect"

	"gorm.io/gorm"

	"github.com/Asshabanu/finance-tracker/internal/logger"
	"github.com/Asshabanu/finance-tracker/internal/models"
)

// AuditEntry describes one mutation to record. Changes holds the submitted
// field values; nil entries are dropped before storage.
type AuditEntry struct {
	UserID     string
	Action     models.AuditAction
	Resource   models.AuditResource
	ResourceID string
	IPAddress  string
	Changes    map[string]any
}

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log stores entry. Failures are logged and swallowed so a mutation that
// already succeeded is never reported as failed.
func (s *auditService) Log(entry AuditEntry) {
	log := logger.Get().With(
		"user_id", entry.UserID,
		"action", entry.Action,
		"resource_type", entry.Resource,
		"resource_id", entry.ResourceID,
	)

	changes, err := encodeChanges(entry.Changes)
	if err != nil {
		log.Errorw("failed to marshal audit changes", "error", err)
		changes = "{}"
	}

	row := &models.AuditLog{
		UserID:       entry.UserID,
		Action:       entry.Action,
		ResourceType: entry.Resource,
		ResourceID:   entry.ResourceID,
		IPAddress:    entry.IPAddress,
		Changes:      changes,
	}
	if err := s.db.Create(row).Error; err != nil {
		log.Errorw("failed to create audit log entry", "error", err)
	}
}

// encodeChanges renders the non-nil values of changes as JSON. An empty or
// all-nil map encodes as "".
func encodeChanges(changes map[string]any) (string, error) {
	kept := make(map[string]any, len(changes))
	for k, v := range changes {
		if !isNil(v) {
			kept[k] = v
		}
	}
	if len(kept) == 0 {
		return "", nil
	}
	data, err := json.Marshal(kept)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

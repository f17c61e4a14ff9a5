package journal

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNoDatabase is returned by queries on a journal without a database.
var ErrNoDatabase = errors.New("journal database not configured")

// Journal writes attachment events for a single session.
type Journal struct {
	db        *gorm.DB
	sessionID string
}

// New creates a journal for sessionID. It returns nil when db is nil.
func New(db *gorm.DB, sessionID string) *Journal {
	if db == nil {
		return nil
	}
	return &Journal{db: db, sessionID: sessionID}
}

// SessionID returns the id stamped on every recorded event.
func (j *Journal) SessionID() string {
	if j == nil {
		return ""
	}
	return j.sessionID
}

// Migrate creates or updates the journal table.
func (j *Journal) Migrate() error {
	if j == nil {
		return nil
	}
	if err := j.db.AutoMigrate(&AttachmentEvent{}); err != nil {
		return fmt.Errorf("migrate journal: %w", err)
	}
	return nil
}

// Record stores evt under the journal's session.
func (j *Journal) Record(ctx context.Context, evt AttachmentEvent) error {
	if j == nil {
		return nil
	}
	evt.ID = 0
	evt.SessionID = j.sessionID
	if err := j.db.WithContext(ctx).Create(&evt).Error; err != nil {
		return fmt.Errorf("record %s event for %s: %w", evt.Kind, evt.UserID, err)
	}
	return nil
}

// ForUser returns the session's events for one user, oldest first.
func (j *Journal) ForUser(ctx context.Context, userID string) ([]AttachmentEvent, error) {
	if j == nil {
		return nil, ErrNoDatabase
	}
	var events []AttachmentEvent
	err := j.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", j.sessionID, userID).
		Order("id").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("query journal for %s: %w", userID, err)
	}
	return events, nil
}

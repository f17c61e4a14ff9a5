package journal

import "time"

// Kind classifies a journal entry.
type Kind string

const (
	KindTracker Kind = "tracker"
	KindWear    Kind = "wear"
	KindLeave   Kind = "leave"
)

// AttachmentEvent is one row of the attachment journal.
type AttachmentEvent struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	SessionID   string    `gorm:"column:session_id;size:36;index" json:"session_id"`
	UserID      string    `gorm:"column:user_id;size:64;index" json:"user_id"`
	ActorID     string    `gorm:"column:actor_id;size:64" json:"actor_id,omitempty"`
	ArtifactKey string    `gorm:"column:artifact_key;size:128" json:"artifact_key,omitempty"`
	AttachPoint string    `gorm:"column:attach_point;size:64" json:"attach_point,omitempty"`
	Kind        Kind      `gorm:"column:kind;size:16" json:"kind"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the table name.
func (AttachmentEvent) TableName() string {
	return "attachment_events"
}

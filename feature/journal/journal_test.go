package journal

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestNew_NilDatabase(t *testing.T) {
	j := New(nil, "s1")
	assert.Nil(t, j)

	assert.NoError(t, j.Migrate())
	assert.NoError(t, j.Record(context.Background(), AttachmentEvent{Kind: KindWear}))
	assert.Equal(t, "", j.SessionID())

	_, err := j.ForUser(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestRecord(t *testing.T) {
	db, mock := setupMockDB(t)
	j := New(db, "s1")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `attachment_events`")).
		WithArgs("s1", "u1", "actor-3", "hat", "head", "wear", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := j.Record(context.Background(), AttachmentEvent{
		SessionID:   "ignored",
		UserID:      "u1",
		ActorID:     "actor-3",
		ArtifactKey: "hat",
		AttachPoint: "head",
		Kind:        KindWear,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	j := New(db, "s1")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `attachment_events`")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := j.Record(context.Background(), AttachmentEvent{UserID: "u1", Kind: KindLeave})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record leave event for u1")
	assert.Contains(t, err.Error(), "disk full")
}

func TestForUser(t *testing.T) {
	db, mock := setupMockDB(t)
	j := New(db, "s1")

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "session_id", "user_id", "actor_id", "artifact_key", "attach_point", "kind", "created_at"}).
		AddRow(1, "s1", "u1", "actor-1", "", "center-eye", "tracker", now).
		AddRow(2, "s1", "u1", "actor-2", "hat", "head", "wear", now)

	mock.ExpectQuery("SELECT \\* FROM `attachment_events` WHERE .*session_id = \\? AND user_id = \\?.* ORDER BY id").
		WithArgs("s1", "u1").
		WillReturnRows(rows)

	events, err := j.ForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, KindTracker, events[0].Kind)
	assert.Equal(t, "hat", events[1].ArtifactKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

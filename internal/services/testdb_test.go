package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// newServiceDB opens a throwaway on-disk SQLite database with the full
// schema migrated. Each test gets its own file under t.TempDir().
func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Question{},
		&domain.Answer{},
		&domain.Comment{},
		&domain.Tag{},
		&domain.Vote{},
		&domain.Notification{},
		&domain.Bookmark{},
		&domain.Follow{},
		&domain.Idempotency{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedQuestion(t *testing.T, db *gorm.DB, ownerID, title, body string) *domain.Question {
	t.Helper()
	q := &domain.Question{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return q
}

func seedAnswer(t *testing.T, db *gorm.DB, questionID, ownerID, body string) *domain.Answer {
	t.Helper()
	a := &domain.Answer{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		OwnerID:    ownerID,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed answer: %v", err)
	}
	return a
}

func seedComment(t *testing.T, db *gorm.DB, ownerID, questionID string) *domain.Comment {
	t.Helper()
	c := &domain.Comment{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		QuestionID: &questionID,
		Body:       "a comment",
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return c
}

func reputationOf(t *testing.T, db *gorm.DB, userID string) int {
	t.Helper()
	var u domain.User
	if err := db.First(&u, "id = ?", userID).Error; err != nil {
		t.Fatalf("load user %s: %v", userID, err)
	}
	return u.Reputation
}

func notificationCount(t *testing.T, db *gorm.DB, recipientID string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&domain.Notification{}).
		Where("recipient_id = ?", recipientID).
		Count(&n).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	return n
}

// fakePusher records pushed notifications on a channel so tests can assert
// delivery (or its absence) around the commit boundary.
type fakePusher struct {
	got chan *domain.Notification
	err error
}

func newFakePusher() *fakePusher {
	return &fakePusher{got: make(chan *domain.Notification, 8)}
}

func (p *fakePusher) Push(_ context.Context, _ string, n *domain.Notification) error {
	p.got <- n
	return p.err
}

// waitPush blocks until a push arrives or the timeout fires.
func (p *fakePusher) waitPush(t *testing.T) *domain.Notification {
	t.Helper()
	select {
	case n := <-p.got:
		return n
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for push")
		return nil
	}
}

// assertNoPush asserts nothing is delivered within a short grace period.
func (p *fakePusher) assertNoPush(t *testing.T) {
	t.Helper()
	select {
	case n := <-p.got:
		t.Fatalf("unexpected push: %+v", n)
	case <-time.After(100 * time.Millisecond):
	}
}

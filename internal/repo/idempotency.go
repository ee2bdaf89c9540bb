// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the Idempotency
// model used to implement safe-retry semantics for answer submission.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// GetIdempotency returns a non-expired record or ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, userID, questionID, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(questionID) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("user_id = ? AND question_id = ? AND key = ? AND expires_at > ?", userID, questionID, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &rec, err
}

// DeleteStaleIdempotency clears a record for (user, question, key) that can
// no longer serve replays: either it has expired, or it points at
// staleAnswerID (an answer deleted since). A live record pointing at a live
// answer is never touched, so the unique index keeps protecting against
// concurrent duplicate submissions. Deleting nothing is not an error.
func DeleteStaleIdempotency(ctx context.Context, db *gorm.DB, userID, questionID, key string, now time.Time, staleAnswerID string) error {
	q := db.WithContext(ctx).
		Where("user_id = ? AND question_id = ? AND key = ?", userID, questionID, key)
	if staleAnswerID != "" {
		q = q.Where("expires_at <= ? OR answer_id = ?", now, staleAnswerID)
	} else {
		q = q.Where("expires_at <= ?", now)
	}
	return q.Delete(&domain.Idempotency{}).Error
}

// CreateIdempotency inserts a record and returns ErrDuplicate on unique violation.
func CreateIdempotency(ctx context.Context, db *gorm.DB, userID, questionID, key, answerID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:         uuid.NewString(),
		UserID:     userID,
		QuestionID: questionID,
		Key:        key,
		AnswerID:   answerID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if IsDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

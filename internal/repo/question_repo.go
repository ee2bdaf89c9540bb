// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Question
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// CreateQuestion inserts a new Question row owned by ownerID.
// The question ID is a randomly generated UUID, and CreatedAt is set to UTC.
func CreateQuestion(ctx context.Context, db *gorm.DB, ownerID, title, body string) (*domain.Question, error) {
	q := &domain.Question{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

// GetQuestion fetches a question by ID with its tags preloaded, or
// ErrNotFound.
func GetQuestion(ctx context.Context, db *gorm.DB, id string) (*domain.Question, error) {
	var q domain.Question
	err := db.WithContext(ctx).
		Preload("Tags").
		Where("id = ?", id).
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// CountQuestions returns the total number of questions, optionally filtered
// by tag name (empty tag means no filter).
func CountQuestions(ctx context.Context, db *gorm.DB, tag string) (int64, error) {
	var total int64
	q := db.WithContext(ctx).Model(&domain.Question{})
	if tag != "" {
		q = q.Joins("JOIN question_tags qt ON qt.question_id = questions.id").
			Joins("JOIN tags ON tags.id = qt.tag_id").
			Where("tags.name = ?", tag)
	}
	err := q.Count(&total).Error
	return total, err
}

// ListQuestionsPage returns a paginated slice of questions ordered by
// creation time descending, optionally filtered by tag name. Use
// CountQuestions to obtain the total for pagination metadata.
func ListQuestionsPage(ctx context.Context, db *gorm.DB, tag string, offset, limit int) ([]domain.Question, error) {
	var out []domain.Question
	q := db.WithContext(ctx).Preload("Tags").Order("questions.created_at desc")
	if tag != "" {
		q = q.Joins("JOIN question_tags qt ON qt.question_id = questions.id").
			Joins("JOIN tags ON tags.id = qt.tag_id").
			Where("tags.name = ?", tag)
	}
	err := q.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// UpdateQuestion updates title and body, enforcing ownership. Returns
// ErrNotFound when the question does not exist or is not owned by ownerID.
func UpdateQuestion(ctx context.Context, db *gorm.DB, id, ownerID, title, body string) error {
	res := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]any{"title": title, "body": body})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteQuestion soft-deletes a question owned by ownerID.
func DeleteQuestion(ctx context.Context, db *gorm.DB, id, ownerID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Question{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustQuestionVotes applies a signed delta to the question's vote counter
// with a single atomic UPDATE. Concurrent votes on the same question
// serialize on this row; there is no read-then-write window to lose.
// Returns ErrNotFound when no row matched.
func AdjustQuestionVotes(ctx context.Context, db *gorm.DB, id string, delta int) error {
	res := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ?", id).
		UpdateColumn("vote_count", gorm.Expr("vote_count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustAnswerCount bumps the denormalized answer counter (±1).
func AdjustAnswerCount(ctx context.Context, db *gorm.DB, id string, delta int) error {
	res := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ?", id).
		UpdateColumn("answer_count", gorm.Expr("answer_count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetBestAnswer records the accepted answer on the question row.
func SetBestAnswer(ctx context.Context, db *gorm.DB, questionID, answerID string) error {
	res := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ?", questionID).
		Update("best_answer_id", answerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceQuestionTags swaps the question's tag set.
func ReplaceQuestionTags(ctx context.Context, db *gorm.DB, q *domain.Question, tags []domain.Tag) error {
	return db.WithContext(ctx).Model(q).Association("Tags").Replace(tags)
}

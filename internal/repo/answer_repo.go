// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Answer
// model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// CreateAnswer inserts a new answer row under a question.
func CreateAnswer(ctx context.Context, db *gorm.DB, questionID, ownerID, body string) (*domain.Answer, error) {
	a := &domain.Answer{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		OwnerID:    ownerID,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// GetAnswer fetches an answer by ID, or ErrNotFound.
func GetAnswer(ctx context.Context, db *gorm.DB, id string) (*domain.Answer, error) {
	var a domain.Answer
	if err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// CountAnswers returns the number of answers under a question.
func CountAnswers(ctx context.Context, db *gorm.DB, questionID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Answer{}).
		Where("question_id = ?", questionID).
		Count(&total).Error
	return total, err
}

// ListAnswersPage returns a page of answers ordered accepted-first, then by
// vote count descending, then oldest-first for stability.
func ListAnswersPage(ctx context.Context, db *gorm.DB, questionID string, offset, limit int) ([]domain.Answer, error) {
	var out []domain.Answer
	err := db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("is_accepted desc, vote_count desc, created_at asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DeleteAnswer soft-deletes an answer owned by ownerID.
func DeleteAnswer(ctx context.Context, db *gorm.DB, id, ownerID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Answer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustAnswerVotes applies a signed delta to the answer's vote counter
// with a single atomic UPDATE. Returns ErrNotFound when no row matched.
func AdjustAnswerVotes(ctx context.Context, db *gorm.DB, id string, delta int) error {
	res := db.WithContext(ctx).
		Model(&domain.Answer{}).
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

// MarkAccepted flags answerID as accepted and clears the flag on every
// other answer of the same question. Runs two statements; callers wrap it
// in a transaction.
func MarkAccepted(ctx context.Context, db *gorm.DB, questionID, answerID string) error {
	if err := db.WithContext(ctx).
		Model(&domain.Answer{}).
		Where("question_id = ? AND id <> ?", questionID, answerID).
		Update("is_accepted", false).Error; err != nil {
		return err
	}
	res := db.WithContext(ctx).
		Model(&domain.Answer{}).
		Where("id = ? AND question_id = ?", answerID, questionID).
		Update("is_accepted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

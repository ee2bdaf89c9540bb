// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment
// model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// CreateComment inserts a comment attached to a question or an answer.
// Exactly one of questionID/answerID must be non-nil; the service layer
// validates that before calling.
func CreateComment(ctx context.Context, db *gorm.DB, ownerID string, questionID, answerID *string, body string) (*domain.Comment, error) {
	c := &domain.Comment{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		QuestionID: questionID,
		AnswerID:   answerID,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetComment fetches a comment by ID, or ErrNotFound.
func GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListQuestionComments returns comments on a question, oldest first.
func ListQuestionComments(ctx context.Context, db *gorm.DB, questionID string) ([]domain.Comment, error) {
	var out []domain.Comment
	err := db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("created_at asc, id asc").
		Find(&out).Error
	return out, err
}

// ListAnswerComments returns comments on an answer, oldest first.
func ListAnswerComments(ctx context.Context, db *gorm.DB, answerID string) ([]domain.Comment, error) {
	var out []domain.Comment
	err := db.WithContext(ctx).
		Where("answer_id = ?", answerID).
		Order("created_at asc, id asc").
		Find(&out).Error
	return out, err
}

// DeleteComment soft-deletes a comment owned by ownerID.
func DeleteComment(ctx context.Context, db *gorm.DB, id, ownerID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustCommentVotes applies a signed delta to the comment's vote counter
// with a single atomic UPDATE. Returns ErrNotFound when no row matched.
func AdjustCommentVotes(ctx context.Context, db *gorm.DB, id string, delta int) error {
	res := db.WithContext(ctx).
		Model(&domain.Comment{}).
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

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for bookmarks and
// follows. Both are toggle rows: the service layer composes get/create/
// delete into toggle semantics.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// GetBookmark returns the bookmark row for (user, question), or ErrNotFound.
func GetBookmark(ctx context.Context, db *gorm.DB, userID, questionID string) (*domain.Bookmark, error) {
	var b domain.Bookmark
	err := db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBookmark inserts a bookmark row; duplicates surface as ErrDuplicate.
func CreateBookmark(ctx context.Context, db *gorm.DB, userID, questionID string) (*domain.Bookmark, error) {
	b := &domain.Bookmark{
		ID:         uuid.NewString(),
		UserID:     userID,
		QuestionID: questionID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(b).Error; err != nil {
		if IsDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return b, nil
}

// DeleteBookmark removes the bookmark row for (user, question).
func DeleteBookmark(ctx context.Context, db *gorm.DB, userID, questionID string) error {
	res := db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&domain.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBookmarkedQuestions returns the questions a user has bookmarked,
// newest bookmark first.
func ListBookmarkedQuestions(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Question, error) {
	var out []domain.Question
	err := db.WithContext(ctx).
		Joins("JOIN bookmarks b ON b.question_id = questions.id").
		Where("b.user_id = ?", userID).
		Order("b.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetFollow returns the follow row for (follower, followee), or ErrNotFound.
func GetFollow(ctx context.Context, db *gorm.DB, followerID, followeeID string) (*domain.Follow, error) {
	var f domain.Follow
	err := db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFollow inserts a follow edge; duplicates surface as ErrDuplicate.
func CreateFollow(ctx context.Context, db *gorm.DB, followerID, followeeID string) (*domain.Follow, error) {
	f := &domain.Follow{
		ID:         uuid.NewString(),
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		if IsDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return f, nil
}

// DeleteFollow removes the follow edge for (follower, followee).
func DeleteFollow(ctx context.Context, db *gorm.DB, followerID, followeeID string) error {
	res := db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&domain.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountFollowers returns how many users follow followeeID.
func CountFollowers(ctx context.Context, db *gorm.DB, followeeID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("followee_id = ?", followeeID).
		Count(&n).Error
	return n, err
}

// CountFollowing returns how many users followerID follows.
func CountFollowing(ctx context.Context, db *gorm.DB, followerID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("follower_id = ?", followerID).
		Count(&n).Error
	return n, err
}

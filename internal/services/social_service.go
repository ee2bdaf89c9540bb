// Package services – SocialService
//
// Bookmarks and follows are toggles: the same endpoint flips the state and
// reports the side it landed on. Toggling twice concurrently is safe; the
// unique index makes one request the creator and the other a no-op.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/repo"
)

// SocialService implements bookmark and follow toggles.
type SocialService struct {
	DB *gorm.DB
}

// ToggleBookmark flips the (user, question) bookmark and reports whether it
// is now set.
func (s *SocialService) ToggleBookmark(ctx context.Context, userID, questionID string) (bool, error) {
	if _, err := repo.GetQuestion(ctx, s.DB, questionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrQuestionNotFound
		}
		return false, err
	}

	_, err := repo.GetBookmark(ctx, s.DB, userID, questionID)
	switch {
	case err == nil:
		if err := repo.DeleteBookmark(ctx, s.DB, userID, questionID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return false, err
		}
		return false, nil
	case errors.Is(err, repo.ErrNotFound):
		if _, err := repo.CreateBookmark(ctx, s.DB, userID, questionID); err != nil && !errors.Is(err, repo.ErrDuplicate) {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// ListBookmarks returns a page of the user's bookmarked questions, newest
// bookmark first.
func (s *SocialService) ListBookmarks(ctx context.Context, userID string, page, pageSize int) ([]domain.Question, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return repo.ListBookmarkedQuestions(ctx, s.DB, userID, (page-1)*pageSize, pageSize)
}

// ToggleFollow flips the follower→followee edge and reports whether it is
// now set. Following yourself is rejected.
func (s *SocialService) ToggleFollow(ctx context.Context, followerID, followeeID string) (bool, error) {
	if followerID == followeeID {
		return false, ErrForbidden
	}
	if _, err := repo.GetUser(ctx, s.DB, followeeID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	_, err := repo.GetFollow(ctx, s.DB, followerID, followeeID)
	switch {
	case err == nil:
		if err := repo.DeleteFollow(ctx, s.DB, followerID, followeeID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return false, err
		}
		return false, nil
	case errors.Is(err, repo.ErrNotFound):
		if _, err := repo.CreateFollow(ctx, s.DB, followerID, followeeID); err != nil && !errors.Is(err, repo.ErrDuplicate) {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// FollowCounts reports how many users follow userID and how many they
// follow.
func (s *SocialService) FollowCounts(ctx context.Context, userID string) (followers, following int64, err error) {
	followers, err = repo.CountFollowers(ctx, s.DB, userID)
	if err != nil {
		return 0, 0, err
	}
	following, err = repo.CountFollowing(ctx, s.DB, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

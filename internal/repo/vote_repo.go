// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Vote
// model. The vote engine (services.VoteService) is the only caller.
//
// The votes table carries a unique index over (voter_id, target_kind,
// target_id). That constraint is what makes two concurrent "first vote"
// inserts safe: the loser gets ErrDuplicate and the engine retries as a
// flip against the now-visible winner row.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// GetVote returns the voter's existing vote on the target, or ErrNotFound.
func GetVote(ctx context.Context, db *gorm.DB, voterID string, kind domain.TargetKind, targetID string) (*domain.Vote, error) {
	var v domain.Vote
	err := db.WithContext(ctx).
		Where("voter_id = ? AND target_kind = ? AND target_id = ?", voterID, kind, targetID).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVote inserts a fresh vote row. A unique violation on the
// (voter, kind, target) index is returned as ErrDuplicate.
func CreateVote(ctx context.Context, db *gorm.DB, voterID string, kind domain.TargetKind, targetID string, isUpvote bool) (*domain.Vote, error) {
	v := &domain.Vote{
		ID:         uuid.NewString(),
		VoterID:    voterID,
		TargetKind: kind,
		TargetID:   targetID,
		IsUpvote:   isUpvote,
		VotedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		if IsDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return v, nil
}

// FlipVote updates the direction of an existing vote row in place.
// Returns ErrNotFound when the row no longer exists.
func FlipVote(ctx context.Context, db *gorm.DB, voteID string, isUpvote bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Vote{}).
		Where("id = ?", voteID).
		Updates(map[string]any{"is_upvote": isUpvote, "voted_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteVote removes a vote row (explicit retraction, not the no-op path).
func DeleteVote(ctx context.Context, db *gorm.DB, voteID string) error {
	res := db.WithContext(ctx).Where("id = ?", voteID).Delete(&domain.Vote{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountVotes returns the number of vote rows for a target. Used by tests to
// assert the at-most-one-per-voter invariant; the engine itself never
// recomputes counters from this.
func CountVotes(ctx context.Context, db *gorm.DB, kind domain.TargetKind, targetID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Vote{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Count(&n).Error
	return n, err
}

// Package services – reputation ledger
//
// This file implements the reputation ledger: a per-user integer point
// balance adjusted by signed deltas, each carrying a reason label. Every
// "reputation for X" rule in the application (new question, upvote
// received, best answer, ...) is a thin wrapper over ApplyDelta with a
// constant from the points table.
//
// The points table is loaded once at process start and injected; point
// values never appear as scattered literals in business code.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/config"
	"github.com/tbourn/go-qna-backend/internal/repo"
)

// PointsTable is the closed set of reputation point constants. The values
// are product policy and must not drift between deployments; tests pin
// them.
type PointsTable struct {
	NewQuestion      int
	QuestionDeleted  int
	NewAnswer        int
	AnswerDeleted    int
	UpvoteReceived   int
	UpvoteGiven      int
	DownvoteReceived int
	DownvoteGiven    int
	BestAnswer       int
}

// DefaultPoints returns the standard point values.
func DefaultPoints() PointsTable {
	return PointsTable{
		NewQuestion:      5,
		QuestionDeleted:  -2,
		NewAnswer:        10,
		AnswerDeleted:    -5,
		UpvoteReceived:   10,
		UpvoteGiven:      1,
		DownvoteReceived: -2,
		DownvoteGiven:    -1,
		BestAnswer:       15,
	}
}

// PointsFromConfig builds the table from the configured per-event
// overrides. Deployments that set no REP_* variables get DefaultPoints.
func PointsFromConfig(rc config.ReputationConfig) PointsTable {
	return PointsTable{
		NewQuestion:      rc.NewQuestion,
		QuestionDeleted:  rc.QuestionDeleted,
		NewAnswer:        rc.NewAnswer,
		AnswerDeleted:    rc.AnswerDeleted,
		UpvoteReceived:   rc.UpvoteReceived,
		UpvoteGiven:      rc.UpvoteGiven,
		DownvoteReceived: rc.DownvoteReceived,
		DownvoteGiven:    rc.DownvoteGiven,
		BestAnswer:       rc.BestAnswer,
	}
}

// Reason labels recorded with each ledger movement. They feed audit logs
// and notification text.
const (
	ReasonNewQuestion      = "new question"
	ReasonQuestionDeleted  = "question deleted"
	ReasonNewAnswer        = "new answer"
	ReasonAnswerDeleted    = "answer deleted"
	ReasonUpvoteReceived   = "upvote received"
	ReasonUpvoteGiven      = "upvote given"
	ReasonDownvoteReceived = "downvote received"
	ReasonDownvoteGiven    = "downvote given"
	ReasonBestAnswer       = "best answer accepted"
)

// ReputationSnapshot reports a user's balance after (or without) a ledger
// movement. Delta and Reason are zero-valued for pure reads.
type ReputationSnapshot struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
	Delta  int    `json:"delta,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ReputationService is the ledger. It owns no transaction: callers pass the
// handle of their enclosing unit of work so point movements commit (or roll
// back) with the state change that caused them.
type ReputationService struct {
	// Points is the immutable constants table injected at startup.
	Points PointsTable
}

// ApplyDelta moves a user's balance by delta and returns the resulting
// snapshot. The movement is a single atomic UPDATE; concurrent movements
// against the same user serialize on the row.
//
// Returns ErrUserNotFound when the user does not exist. Any other failure
// is the raw storage error and must abort the caller's unit of work.
func (s *ReputationService) ApplyDelta(ctx context.Context, db *gorm.DB, userID string, delta int, reason string) (*ReputationSnapshot, error) {
	points, err := repo.AdjustReputation(ctx, db, userID, delta)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &ReputationSnapshot{UserID: userID, Points: points, Delta: delta, Reason: reason}, nil
}

// CurrentBalance returns the user's balance without writing anything. The
// vote engine's no-op branch uses this so that retried identical requests
// stay write-free.
func (s *ReputationService) CurrentBalance(ctx context.Context, db *gorm.DB, userID string) (*ReputationSnapshot, error) {
	points, err := repo.GetReputation(ctx, db, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &ReputationSnapshot{UserID: userID, Points: points}, nil
}

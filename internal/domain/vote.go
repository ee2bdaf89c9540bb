// Package domain defines the persistence models for the application.
// This file contains the Vote model and the votable target kinds.
package domain

import "time"

// TargetKind identifies which entity class a vote refers to. A Vote
// references exactly one of the three kinds.
type TargetKind string

// Votable target kinds. These values are persisted in the votes table and
// must not change.
const (
	TargetQuestion TargetKind = "question"
	TargetAnswer   TargetKind = "answer"
	TargetComment  TargetKind = "comment"
)

// Valid reports whether k is one of the persisted target kinds.
func (k TargetKind) Valid() bool {
	switch k {
	case TargetQuestion, TargetAnswer, TargetComment:
		return true
	}
	return false
}

// Vote records a single user's vote on a single target. The database
// enforces at most one row per (voter_id, target_kind, target_id), which is
// what makes concurrent first-vote inserts safe: the losing writer observes
// a unique violation and retries as a flip.
//
// The vote engine is the only writer of this table.
type Vote struct {
	ID         string     `json:"id"          gorm:"type:char(36);primaryKey"`
	VoterID    string     `json:"voter_id"    gorm:"type:char(36);not null;uniqueIndex:ux_votes_voter_target,priority:1"`
	TargetKind TargetKind `json:"target_kind" gorm:"type:varchar(16);not null;uniqueIndex:ux_votes_voter_target,priority:2;check:target_kind IN ('question','answer','comment')"`
	TargetID   string     `json:"target_id"   gorm:"type:char(36);not null;uniqueIndex:ux_votes_voter_target,priority:3;index"`
	IsUpvote   bool       `json:"is_upvote"   gorm:"not null"`
	VotedAt    time.Time  `json:"voted_at"    gorm:"not null"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Vote.
func (Vote) TableName() string { return "votes" }

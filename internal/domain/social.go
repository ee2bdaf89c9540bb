// Package domain defines the persistence models for the application.
// This file contains the lightweight social models: bookmarks and follows.
// Both are toggled rows with a uniqueness constraint per pair.
package domain

import "time"

// Bookmark marks a question saved by a user.
type Bookmark struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID     string    `json:"user_id"     gorm:"type:char(36);not null;uniqueIndex:ux_bookmark_user_question,priority:1"`
	QuestionID string    `json:"question_id" gorm:"type:char(36);not null;uniqueIndex:ux_bookmark_user_question,priority:2"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Bookmark) TableName() string { return "bookmarks" }

// Follow records that FollowerID follows FolloweeID.
type Follow struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	FollowerID string    `json:"follower_id" gorm:"type:char(36);not null;uniqueIndex:ux_follow_pair,priority:1"`
	FolloweeID string    `json:"followee_id" gorm:"type:char(36);not null;uniqueIndex:ux_follow_pair,priority:2;index"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }

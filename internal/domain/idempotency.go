// Package domain defines the persistence models for the application.
// This file contains the Idempotency model used for safe request retries.
package domain

import "time"

// Idempotency represents a recorded result of a previously processed answer
// submission, keyed by (user_id, question_id, key). It enables safe retries
// for POST operations by returning the originally produced answer without
// re-executing side effects (answer insert, reputation award).
type Idempotency struct {
	ID         string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserID     string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_question_key,priority:1"`
	QuestionID string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_question_key,priority:2"`
	Key        string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_question_key,priority:3"`
	AnswerID   string    `gorm:"type:TEXT NOT NULL"`
	Status     int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt  time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }

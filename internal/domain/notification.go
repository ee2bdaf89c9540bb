// Package domain defines the persistence models for the application.
// This file contains the Notification model.
package domain

import "time"

// Notification is a durable message to a user about activity on their
// content. Rows are written inside the same unit of work as the state
// change that triggered them; the real-time push happens only after that
// unit of work commits.
//
// Points carries the recipient's reputation balance at creation time so the
// rendered message stays stable even as the balance moves on.
type Notification struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	RecipientID string    `json:"recipient_id" gorm:"type:char(36);not null;index:idx_recipient_notifications"`
	ActorID     string    `json:"actor_id"     gorm:"type:char(36);not null"`
	Message     string    `json:"message"      gorm:"type:text;not null"`
	Points      int       `json:"points"       gorm:"not null"`
	IsRead      bool      `json:"is_read"      gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Notification.
func (Notification) TableName() string { return "notifications" }

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Notification model. Rows are created by the notification dispatcher
// inside the caller's transaction; reads back the user's inbox.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// CreateNotification inserts a notification row. Callers pass the handle of
// the enclosing transaction so the row commits (or rolls back) with the
// triggering state change.
func CreateNotification(ctx context.Context, db *gorm.DB, recipientID, actorID, message string, points int) (*domain.Notification, error) {
	n := &domain.Notification{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		ActorID:     actorID,
		Message:     message,
		Points:      points,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// CountNotifications returns the total number of notifications for a user.
func CountNotifications(ctx context.Context, db *gorm.DB, recipientID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ?", recipientID).
		Count(&total).Error
	return total, err
}

// CountUnread returns the number of unread notifications for a user.
func CountUnread(ctx context.Context, db *gorm.DB, recipientID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&total).Error
	return total, err
}

// ListNotificationsPage returns a page of notifications, newest first.
func ListNotificationsPage(ctx context.Context, db *gorm.DB, recipientID string, offset, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	err := db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkNotificationRead flags one notification as read, enforcing that it
// belongs to recipientID. Returns ErrNotFound when no row matched.
func MarkNotificationRead(ctx context.Context, db *gorm.DB, id, recipientID string) error {
	res := db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification of a user as read.
func MarkAllRead(ctx context.Context, db *gorm.DB, recipientID string) error {
	return db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}

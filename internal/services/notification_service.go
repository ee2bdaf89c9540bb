// Package services – NotificationService
//
// This file implements the notification dispatcher. A notification is two
// things with very different failure budgets:
//
//   - a durable row, written inside the caller's unit of work so it commits
//     (or rolls back) with the state change that caused it;
//   - a real-time push to any live connection of the recipient, which runs
//     only after that unit of work has committed, on its own goroutine, and
//     whose failure is logged and swallowed.
//
// The dispatcher never suppresses self-notifications itself; callers skip
// the Notify call when recipient == actor so the rule stays visible at the
// call site.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/repo"
)

// Pusher delivers a committed notification to the recipient's live
// connections. Implementations must be safe for concurrent use. Delivery
// is best effort; a missing subscriber is not an error worth surfacing.
type Pusher interface {
	Push(ctx context.Context, recipientID string, n *domain.Notification) error
}

// pushTimeout bounds a single real-time delivery attempt.
const pushTimeout = 5 * time.Second

// NotificationService persists notifications and schedules their real-time
// delivery behind the commit boundary.
type NotificationService struct {
	// DB is used for inbox reads outside any engine transaction.
	DB *gorm.DB
	// Pusher fans a committed notification out to live connections.
	// Optional; when nil only the durable row is produced.
	Pusher Pusher
	// Log receives push failures.
	Log zerolog.Logger
}

// Notify persists a notification row on tx and registers a commit hook
// that pushes it to the recipient once the transaction has durably
// committed. If the transaction rolls back, the hook never runs and the
// row disappears with it.
//
// The push runs on its own goroutine with a bounded timeout; errors are
// logged and never reach the caller.
func (s *NotificationService) Notify(ctx context.Context, tx *gorm.DB, uow *repo.UnitOfWork, recipientID, actorID, message string, points int) (*domain.Notification, error) {
	n, err := repo.CreateNotification(ctx, tx, recipientID, actorID, message, points)
	if err != nil {
		return nil, err
	}

	if s.Pusher != nil {
		uow.OnCommit(func() {
			go func() {
				pctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
				defer cancel()
				if err := s.Pusher.Push(pctx, recipientID, n); err != nil {
					s.Log.Error().
						Err(err).
						Str("notification_id", n.ID).
						Str("recipient_id", recipientID).
						Msg("notification push failed")
				}
			}()
		})
	}
	return n, nil
}

// ListPage returns a page of the user's notifications and the total count.
func (s *NotificationService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountNotifications(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Notification{}, 0, nil
	}
	items, err := repo.ListNotificationsPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// UnreadCount returns how many unread notifications the user has.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return repo.CountUnread(ctx, s.DB, userID)
}

// MarkRead flags one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	err := repo.MarkNotificationRead(ctx, s.DB, notificationID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

// MarkAllRead flags every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return repo.MarkAllRead(ctx, s.DB, userID)
}

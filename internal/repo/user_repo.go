// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User
// model, including the atomic reputation counter used by the ledger.
//
// Error semantics:
//   - When a user is not found, functions return ErrNotFound.
//   - On other DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// CreateUser inserts a new user row. The caller supplies an already-hashed
// password. Unique violations on username/email surface as ErrDuplicate.
func CreateUser(ctx context.Context, db *gorm.DB, username, email, passwordHash string) (*domain.User, error) {
	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		if IsDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

// GetUser fetches a user by ID, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail fetches a user by email, or ErrNotFound.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// AdjustReputation applies a signed delta to the user's reputation balance
// using a single atomic UPDATE (no read-modify-write in application code)
// and returns the new balance read inside the same handle.
//
// Concurrent deltas against the same user serialize on the row; the update
// is commutative so ordering does not matter. Returns ErrNotFound when the
// user does not exist.
func AdjustReputation(ctx context.Context, db *gorm.DB, userID string, delta int) (int, error) {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		UpdateColumn("reputation", gorm.Expr("reputation + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return GetReputation(ctx, db, userID)
}

// GetReputation returns the user's current point balance, or ErrNotFound.
func GetReputation(ctx context.Context, db *gorm.DB, userID string) (int, error) {
	var points int
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Select("reputation").
		Take(&points).Error
	if err != nil {
		return 0, err
	}
	return points, nil
}

// UpdateUserProfile updates mutable profile fields (bio). Returns
// ErrNotFound when no row matched.
func UpdateUserProfile(ctx context.Context, db *gorm.DB, userID, bio string) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("bio", bio)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Tag model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// CreateTag inserts a tag. Name uniqueness violations surface as
// ErrDuplicate.
func CreateTag(ctx context.Context, db *gorm.DB, name, description string) (*domain.Tag, error) {
	t := &domain.Tag{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		if IsDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return t, nil
}

// GetTagByName fetches a tag by its (lowercased) name, or ErrNotFound.
func GetTagByName(ctx context.Context, db *gorm.DB, name string) (*domain.Tag, error) {
	var t domain.Tag
	if err := db.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetOrCreateTag returns the existing tag with the given name or creates it.
func GetOrCreateTag(ctx context.Context, db *gorm.DB, name string) (*domain.Tag, error) {
	t, err := GetTagByName(ctx, db, name)
	if err == nil {
		return t, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	t, err = CreateTag(ctx, db, name, "")
	if err == ErrDuplicate {
		// Lost a race with a concurrent creator; read the winner's row.
		return GetTagByName(ctx, db, name)
	}
	return t, err
}

// ListTags returns all tags ordered by name.
func ListTags(ctx context.Context, db *gorm.DB) ([]domain.Tag, error) {
	var out []domain.Tag
	err := db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// UpdateTag updates a tag's description. Returns ErrNotFound when missing.
func UpdateTag(ctx context.Context, db *gorm.DB, id, description string) error {
	res := db.WithContext(ctx).
		Model(&domain.Tag{}).
		Where("id = ?", id).
		Update("description", description)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTag soft-deletes a tag.
func DeleteTag(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Tag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

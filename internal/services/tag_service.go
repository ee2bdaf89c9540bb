// Package services – TagService
//
// Tags are shared labels with a canonical lowercase form. Normalization is
// centralized here so every writer (question creation, retagging, tag CRUD)
// stores the same spelling and the unique index does the deduplication.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/repo"
)

const maxTagRunes = 35

// tagCaser lowercases tag names language-independently. Shared and
// immutable after init.
var tagCaser = cases.Lower(language.Und)

// normalizeTagName canonicalizes a tag name: trim, lowercase, and collapse
// internal whitespace to single hyphens. Returns "" for blank input.
func normalizeTagName(name string) string {
	name = strings.TrimSpace(tagCaser.String(name))
	if name == "" {
		return ""
	}
	return strings.Join(strings.Fields(name), "-")
}

// resolveTags normalizes, deduplicates, and materializes tag names inside
// the caller's transaction, creating tags on first use.
func resolveTags(ctx context.Context, tx *gorm.DB, names []string) ([]domain.Tag, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]domain.Tag, 0, len(names))
	for _, raw := range names {
		name := normalizeTagName(raw)
		if name == "" {
			return nil, ErrEmptyContent
		}
		if utf8.RuneCountInString(name) > maxTagRunes {
			return nil, ErrTooLong
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		t, err := repo.GetOrCreateTag(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

// TagService implements tag CRUD. Creation through questions goes through
// resolveTags; this service covers the explicit tag management surface.
type TagService struct {
	DB *gorm.DB
}

// Create registers a tag with an optional description. The name is
// canonicalized first; an existing name yields ErrDuplicateTag.
func (s *TagService) Create(ctx context.Context, name, description string) (*domain.Tag, error) {
	name = normalizeTagName(name)
	if name == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(name) > maxTagRunes {
		return nil, ErrTooLong
	}
	t, err := repo.CreateTag(ctx, s.DB, name, strings.TrimSpace(description))
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrDuplicateTag
	}
	return t, err
}

// Get returns a tag by its canonical name.
func (s *TagService) Get(ctx context.Context, name string) (*domain.Tag, error) {
	t, err := repo.GetTagByName(ctx, s.DB, normalizeTagName(name))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTagNotFound
	}
	return t, err
}

// List returns every tag ordered by name.
func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	return repo.ListTags(ctx, s.DB)
}

// UpdateDescription replaces a tag's description.
func (s *TagService) UpdateDescription(ctx context.Context, id, description string) error {
	err := repo.UpdateTag(ctx, s.DB, id, strings.TrimSpace(description))
	if errors.Is(err, repo.ErrNotFound) {
		return ErrTagNotFound
	}
	return err
}

// Delete removes a tag. Existing question associations keep their join rows
// until the questions are retagged; listings filter on live tags only.
func (s *TagService) Delete(ctx context.Context, id string) error {
	err := repo.DeleteTag(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrTagNotFound
	}
	return err
}

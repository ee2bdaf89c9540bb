// Package services – QuestionService
//
// Question lifecycle: ask, read, list, edit, delete, retag. Asking earns
// points, deleting costs points, and both movements ride the same unit of
// work as the row change. The in-memory search index follows the write
// paths through commit hooks so a rolled-back write never surfaces in
// search results.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/repo"
	"github.com/tbourn/go-qna-backend/internal/search"
)

// Content length limits, counted in runes.
const (
	maxTitleRunes = 150
	maxBodyRunes  = 30000
	maxTagsPerQ   = 5
)

// QuestionService implements question CRUD plus full-text-ish search over
// titles and bodies.
type QuestionService struct {
	// DB opens each unit of work.
	DB *gorm.DB
	// Reputation applies the ask/delete point movements.
	Reputation *ReputationService
	// Index mirrors committed questions for search. Optional; when nil,
	// Search returns empty results and writes skip indexing.
	Index search.Index
	// Log receives non-fatal diagnostics.
	Log zerolog.Logger
}

// validateContent trims and length-checks a title/body pair.
func validateContent(title, body string) (string, string, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return "", "", ErrEmptyContent
	}
	if utf8.RuneCountInString(title) > maxTitleRunes || utf8.RuneCountInString(body) > maxBodyRunes {
		return "", "", ErrTooLong
	}
	return title, body, nil
}

// Create asks a new question on behalf of ownerID, attaches the given tags
// (created on first use), and credits the asker. Everything commits
// together; the search index is updated only after the commit.
func (s *QuestionService) Create(ctx context.Context, ownerID, title, body string, tags []string) (*domain.Question, error) {
	title, body, err := validateContent(title, body)
	if err != nil {
		return nil, err
	}
	if len(tags) > maxTagsPerQ {
		return nil, ErrTooLong
	}

	var q *domain.Question
	err = repo.InTx(ctx, s.DB, func(tx *gorm.DB, uow *repo.UnitOfWork) error {
		if _, err := repo.GetUser(ctx, tx, ownerID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		q, err = repo.CreateQuestion(ctx, tx, ownerID, title, body)
		if err != nil {
			return err
		}
		if len(tags) > 0 {
			resolved, err := resolveTags(ctx, tx, tags)
			if err != nil {
				return err
			}
			if err := repo.ReplaceQuestionTags(ctx, tx, q, resolved); err != nil {
				return err
			}
		}
		if _, err := s.Reputation.ApplyDelta(ctx, tx, ownerID, s.Reputation.Points.NewQuestion, ReasonNewQuestion); err != nil {
			return err
		}
		if s.Index != nil {
			id, t, b := q.ID, q.Title, q.Body
			uow.OnCommit(func() { s.Index.Upsert(id, t, b) })
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Get returns one question with its tags.
func (s *QuestionService) Get(ctx context.Context, id string) (*domain.Question, error) {
	q, err := repo.GetQuestion(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// ListPage returns a page of questions, newest first, optionally filtered
// by tag name, plus the total for pagination metadata.
func (s *QuestionService) ListPage(ctx context.Context, tag string, page, pageSize int) ([]domain.Question, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	tag = normalizeTagName(tag)

	total, err := repo.CountQuestions(ctx, s.DB, tag)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Question{}, 0, nil
	}
	items, err := repo.ListQuestionsPage(ctx, s.DB, tag, (page-1)*pageSize, pageSize)
	return items, total, err
}

// Update edits title and body. Only the owner may edit; a mismatch is
// reported as ErrForbidden when the question exists and ErrQuestionNotFound
// when it does not.
func (s *QuestionService) Update(ctx context.Context, id, userID, title, body string) (*domain.Question, error) {
	title, body, err := validateContent(title, body)
	if err != nil {
		return nil, err
	}

	var q *domain.Question
	err = repo.InTx(ctx, s.DB, func(tx *gorm.DB, uow *repo.UnitOfWork) error {
		if err := repo.UpdateQuestion(ctx, tx, id, userID, title, body); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return s.ownershipError(ctx, tx, id)
			}
			return err
		}
		q, err = repo.GetQuestion(ctx, tx, id)
		if err != nil {
			return err
		}
		if s.Index != nil {
			uow.OnCommit(func() { s.Index.Upsert(id, title, body) })
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Delete removes the owner's question and debits the configured penalty.
// The row is soft-deleted; the search entry goes away with the commit.
func (s *QuestionService) Delete(ctx context.Context, id, userID string) error {
	return repo.InTx(ctx, s.DB, func(tx *gorm.DB, uow *repo.UnitOfWork) error {
		if err := repo.DeleteQuestion(ctx, tx, id, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return s.ownershipError(ctx, tx, id)
			}
			return err
		}
		if _, err := s.Reputation.ApplyDelta(ctx, tx, userID, s.Reputation.Points.QuestionDeleted, ReasonQuestionDeleted); err != nil {
			return err
		}
		if s.Index != nil {
			uow.OnCommit(func() { s.Index.Remove(id) })
		}
		return nil
	})
}

// SetTags replaces the owner's question tag set.
func (s *QuestionService) SetTags(ctx context.Context, id, userID string, tags []string) (*domain.Question, error) {
	if len(tags) > maxTagsPerQ {
		return nil, ErrTooLong
	}
	var q *domain.Question
	err := repo.InTx(ctx, s.DB, func(tx *gorm.DB, _ *repo.UnitOfWork) error {
		var err error
		q, err = repo.GetQuestion(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		if q.OwnerID != userID {
			return ErrForbidden
		}
		resolved, err := resolveTags(ctx, tx, tags)
		if err != nil {
			return err
		}
		if err := repo.ReplaceQuestionTags(ctx, tx, q, resolved); err != nil {
			return err
		}
		q.Tags = resolved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// SearchResult pairs a matched question with its similarity score.
type SearchResult struct {
	Question domain.Question `json:"question"`
	Score    float64         `json:"score"`
}

// Search ranks questions against the query and loads the top matches.
// Questions deleted between indexing and lookup are silently dropped from
// the result.
func (s *QuestionService) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if s.Index == nil {
		return []SearchResult{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	hits := s.Index.TopK(query, limit)
	out := make([]SearchResult, 0, len(hits))
	for _, h := range hits {
		q, err := repo.GetQuestion(ctx, s.DB, h.QuestionID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, SearchResult{Question: *q, Score: h.Score})
	}
	return out, nil
}

// ReindexAll rebuilds the search index from storage. Called once at startup
// so the in-memory index survives restarts.
func (s *QuestionService) ReindexAll(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	const batch = 500
	total := 0
	for offset := 0; ; offset += batch {
		qs, err := repo.ListQuestionsPage(ctx, s.DB, "", offset, batch)
		if err != nil {
			return total, err
		}
		for i := range qs {
			s.Index.Upsert(qs[i].ID, qs[i].Title, qs[i].Body)
		}
		total += len(qs)
		if len(qs) < batch {
			return total, nil
		}
	}
}

// ownershipError distinguishes "no such question" from "not yours" after an
// owner-scoped write matched zero rows.
func (s *QuestionService) ownershipError(ctx context.Context, tx *gorm.DB, id string) error {
	if _, err := repo.GetQuestion(ctx, tx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return ErrForbidden
}

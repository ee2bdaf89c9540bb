// Package services – CommentService
//
// Comments attach to exactly one parent, a question or an answer. The
// exclusive-arc rule (one and only one parent) is enforced here rather
// than with a database CHECK so the error can name the violation.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/repo"
)

const maxCommentRunes = 600

// CommentService implements comment creation, listing, and deletion.
type CommentService struct {
	DB *gorm.DB
}

// CreateOnQuestion attaches a comment to a question.
func (s *CommentService) CreateOnQuestion(ctx context.Context, ownerID, questionID, body string) (*domain.Comment, error) {
	return s.create(ctx, ownerID, &questionID, nil, body)
}

// CreateOnAnswer attaches a comment to an answer.
func (s *CommentService) CreateOnAnswer(ctx context.Context, ownerID, answerID, body string) (*domain.Comment, error) {
	return s.create(ctx, ownerID, nil, &answerID, body)
}

func (s *CommentService) create(ctx context.Context, ownerID string, questionID, answerID *string, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(body) > maxCommentRunes {
		return nil, ErrTooLong
	}
	if (questionID == nil) == (answerID == nil) {
		return nil, ErrCommentTarget
	}

	var c *domain.Comment
	err := repo.InTx(ctx, s.DB, func(tx *gorm.DB, _ *repo.UnitOfWork) error {
		if _, err := repo.GetUser(ctx, tx, ownerID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if questionID != nil {
			if _, err := repo.GetQuestion(ctx, tx, *questionID); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return ErrQuestionNotFound
				}
				return err
			}
		}
		if answerID != nil {
			if _, err := repo.GetAnswer(ctx, tx, *answerID); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return ErrAnswerNotFound
				}
				return err
			}
		}
		var err error
		c, err = repo.CreateComment(ctx, tx, ownerID, questionID, answerID, body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns one comment.
func (s *CommentService) Get(ctx context.Context, id string) (*domain.Comment, error) {
	c, err := repo.GetComment(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrCommentNotFound
	}
	return c, err
}

// ListForQuestion returns a question's comments, oldest first.
func (s *CommentService) ListForQuestion(ctx context.Context, questionID string) ([]domain.Comment, error) {
	if _, err := repo.GetQuestion(ctx, s.DB, questionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return repo.ListQuestionComments(ctx, s.DB, questionID)
}

// ListForAnswer returns an answer's comments, oldest first.
func (s *CommentService) ListForAnswer(ctx context.Context, answerID string) ([]domain.Comment, error) {
	if _, err := repo.GetAnswer(ctx, s.DB, answerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	return repo.ListAnswerComments(ctx, s.DB, answerID)
}

// Delete removes the author's comment. Non-owners get ErrForbidden when the
// comment exists, ErrCommentNotFound otherwise.
func (s *CommentService) Delete(ctx context.Context, id, userID string) error {
	err := repo.DeleteComment(ctx, s.DB, id, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if _, gerr := repo.GetComment(ctx, s.DB, id); gerr != nil {
		if errors.Is(gerr, repo.ErrNotFound) {
			return ErrCommentNotFound
		}
		return gerr
	}
	return ErrForbidden
}

// Package services – AnswerService
//
// Answer lifecycle: submit, list, delete, and accept-as-best. Submitting
// earns points and notifies the question owner; accepting awards the
// answer's author and notifies them. Submission supports idempotency keys
// so a client retry after a lost response returns the original answer
// instead of creating a sibling.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/repo"
)

const maxAnswerRunes = 30000

// defaultIdemTTL bounds how long a replayed idempotency key keeps returning
// the original answer.
const defaultIdemTTL = 24 * time.Hour

// AnswerService implements answer CRUD plus best-answer acceptance.
type AnswerService struct {
	// DB opens each unit of work.
	DB *gorm.DB
	// Reputation applies the answer/accept point movements.
	Reputation *ReputationService
	// Notifier informs question owners of new answers and answer authors of
	// acceptance. Optional; when nil no notifications are produced.
	Notifier *NotificationService
	// IdemTTL overrides the idempotency-record lifetime (0 = default).
	IdemTTL time.Duration
	// Log receives non-fatal diagnostics.
	Log zerolog.Logger
}

func (s *AnswerService) idemTTL() time.Duration {
	if s.IdemTTL > 0 {
		return s.IdemTTL
	}
	return defaultIdemTTL
}

// Create submits an answer under a question, bumps the question's answer
// counter, credits the author, and notifies the question owner (unless they
// answered their own question).
//
// When idemKey is non-empty and a non-expired record exists for
// (owner, question, key), the previously created answer is returned and no
// writes happen.
func (s *AnswerService) Create(ctx context.Context, questionID, ownerID, body, idemKey string) (*domain.Answer, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(body) > maxAnswerRunes {
		return nil, ErrTooLong
	}

	staleAnswerID := ""
	if idemKey != "" {
		rec, err := repo.GetIdempotency(ctx, s.DB, ownerID, questionID, idemKey, time.Now().UTC())
		switch {
		case err == nil:
			prior, err := repo.GetAnswer(ctx, s.DB, rec.AnswerID)
			if err == nil {
				return prior, nil
			}
			if !errors.Is(err, repo.ErrNotFound) {
				return nil, err
			}
			// Original answer was deleted since; fall through and create anew.
			staleAnswerID = rec.AnswerID
		case errors.Is(err, repo.ErrNotFound):
		default:
			return nil, err
		}
	}

	var a *domain.Answer
	err := repo.InTx(ctx, s.DB, func(tx *gorm.DB, uow *repo.UnitOfWork) error {
		author, err := repo.GetUser(ctx, tx, ownerID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		q, err := repo.GetQuestion(ctx, tx, questionID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}

		a, err = repo.CreateAnswer(ctx, tx, questionID, ownerID, body)
		if err != nil {
			return err
		}
		if err := repo.AdjustAnswerCount(ctx, tx, questionID, 1); err != nil {
			return err
		}
		if _, err := s.Reputation.ApplyDelta(ctx, tx, ownerID, s.Reputation.Points.NewAnswer, ReasonNewAnswer); err != nil {
			return err
		}

		if idemKey != "" {
			// An expired record, or one whose answer was deleted since, still
			// occupies the unique index; clear it before re-recording the key.
			if err := repo.DeleteStaleIdempotency(ctx, tx, ownerID, questionID, idemKey, time.Now().UTC(), staleAnswerID); err != nil {
				return err
			}
			if _, err := repo.CreateIdempotency(ctx, tx, ownerID, questionID, idemKey, a.ID, http.StatusCreated, s.idemTTL()); err != nil {
				// A concurrent identical request already recorded the key;
				// its answer wins and this unit of work rolls back.
				if errors.Is(err, repo.ErrDuplicate) {
					return ErrIdempotencyConflict
				}
				return err
			}
		}

		if s.Notifier != nil && q.OwnerID != ownerID {
			bal, err := s.Reputation.CurrentBalance(ctx, tx, q.OwnerID)
			if err != nil {
				return err
			}
			msg := fmt.Sprintf("%s answered your question %q", author.Username, q.Title)
			if _, err := s.Notifier.Notify(ctx, tx, uow, q.OwnerID, ownerID, msg, bal.Points); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Get returns one answer.
func (s *AnswerService) Get(ctx context.Context, id string) (*domain.Answer, error) {
	a, err := repo.GetAnswer(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrAnswerNotFound
	}
	return a, err
}

// ListPage returns a page of a question's answers (accepted first, then by
// votes) and the total count.
func (s *AnswerService) ListPage(ctx context.Context, questionID string, page, pageSize int) ([]domain.Answer, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if _, err := repo.GetQuestion(ctx, s.DB, questionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, 0, ErrQuestionNotFound
		}
		return nil, 0, err
	}
	total, err := repo.CountAnswers(ctx, s.DB, questionID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Answer{}, 0, nil
	}
	items, err := repo.ListAnswersPage(ctx, s.DB, questionID, (page-1)*pageSize, pageSize)
	return items, total, err
}

// Delete removes the author's answer, decrements the question's answer
// counter, and debits the configured penalty.
func (s *AnswerService) Delete(ctx context.Context, id, userID string) error {
	return repo.InTx(ctx, s.DB, func(tx *gorm.DB, _ *repo.UnitOfWork) error {
		a, err := repo.GetAnswer(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrAnswerNotFound
			}
			return err
		}
		if a.OwnerID != userID {
			return ErrForbidden
		}
		if err := repo.DeleteAnswer(ctx, tx, id, userID); err != nil {
			return err
		}
		if err := repo.AdjustAnswerCount(ctx, tx, a.QuestionID, -1); err != nil {
			return err
		}
		_, err = s.Reputation.ApplyDelta(ctx, tx, userID, s.Reputation.Points.AnswerDeleted, ReasonAnswerDeleted)
		return err
	})
}

// AcceptBest marks answerID as the accepted answer of questionID. Only the
// question owner may accept. The previous accepted answer (if any) loses
// the flag; acceptance is not additive. The answer's author is awarded the
// best-answer bonus and notified, unless they own the question themselves.
func (s *AnswerService) AcceptBest(ctx context.Context, questionID, answerID, userID string) error {
	return repo.InTx(ctx, s.DB, func(tx *gorm.DB, uow *repo.UnitOfWork) error {
		q, err := repo.GetQuestion(ctx, tx, questionID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		if q.OwnerID != userID {
			return ErrForbidden
		}
		a, err := repo.GetAnswer(ctx, tx, answerID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrAnswerNotFound
			}
			return err
		}
		if a.QuestionID != questionID {
			return ErrAnswerNotFound
		}
		// Accepting the already-accepted answer is a no-op.
		if q.BestAnswerID != nil && *q.BestAnswerID == answerID {
			return nil
		}

		if err := repo.MarkAccepted(ctx, tx, questionID, answerID); err != nil {
			return err
		}
		if err := repo.SetBestAnswer(ctx, tx, questionID, answerID); err != nil {
			return err
		}

		snap, err := s.Reputation.ApplyDelta(ctx, tx, a.OwnerID, s.Reputation.Points.BestAnswer, ReasonBestAnswer)
		if err != nil {
			return err
		}
		if s.Notifier != nil && a.OwnerID != userID {
			owner, err := repo.GetUser(ctx, tx, userID)
			if err != nil {
				return err
			}
			msg := fmt.Sprintf("%s accepted your answer (%+d points)", owner.Username, snap.Delta)
			if _, err := s.Notifier.Notify(ctx, tx, uow, a.OwnerID, userID, msg, snap.Points); err != nil {
				return err
			}
		}
		return nil
	})
}

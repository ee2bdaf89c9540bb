// Package services – votable capability
//
// The vote engine runs one state machine for all three target kinds. The
// Votable interface is the narrow capability it needs from a target: who
// owns it, and how to move its counter. Three small adapters map the
// capability onto questions, answers, and comments so the state machine is
// never duplicated.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/repo"
)

// Votable is what the vote engine needs from a target: identity, owner,
// and an atomic counter mutation executed against the engine's transaction.
type Votable interface {
	// Kind reports the persisted target kind.
	Kind() domain.TargetKind
	// ID returns the target's primary key.
	ID() string
	// OwnerID returns the authoring user, the notification recipient.
	OwnerID() string
	// AdjustVotes moves the target's vote counter by delta inside tx.
	AdjustVotes(ctx context.Context, tx *gorm.DB, delta int) error
}

type questionTarget struct{ q *domain.Question }

func (t questionTarget) Kind() domain.TargetKind { return domain.TargetQuestion }
func (t questionTarget) ID() string              { return t.q.ID }
func (t questionTarget) OwnerID() string         { return t.q.OwnerID }
func (t questionTarget) AdjustVotes(ctx context.Context, tx *gorm.DB, delta int) error {
	return repo.AdjustQuestionVotes(ctx, tx, t.q.ID, delta)
}

type answerTarget struct{ a *domain.Answer }

func (t answerTarget) Kind() domain.TargetKind { return domain.TargetAnswer }
func (t answerTarget) ID() string              { return t.a.ID }
func (t answerTarget) OwnerID() string         { return t.a.OwnerID }
func (t answerTarget) AdjustVotes(ctx context.Context, tx *gorm.DB, delta int) error {
	return repo.AdjustAnswerVotes(ctx, tx, t.a.ID, delta)
}

type commentTarget struct{ c *domain.Comment }

func (t commentTarget) Kind() domain.TargetKind { return domain.TargetComment }
func (t commentTarget) ID() string              { return t.c.ID }
func (t commentTarget) OwnerID() string         { return t.c.OwnerID }
func (t commentTarget) AdjustVotes(ctx context.Context, tx *gorm.DB, delta int) error {
	return repo.AdjustCommentVotes(ctx, tx, t.c.ID, delta)
}

// resolveVotable loads the target row inside the caller's transaction and
// wraps it in the matching adapter. Missing targets map to the per-kind
// not-found sentinel so callers can name the failed lookup.
func resolveVotable(ctx context.Context, tx *gorm.DB, kind domain.TargetKind, targetID string) (Votable, error) {
	switch kind {
	case domain.TargetQuestion:
		q, err := repo.GetQuestion(ctx, tx, targetID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrQuestionNotFound
			}
			return nil, err
		}
		return questionTarget{q}, nil
	case domain.TargetAnswer:
		a, err := repo.GetAnswer(ctx, tx, targetID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrAnswerNotFound
			}
			return nil, err
		}
		return answerTarget{a}, nil
	case domain.TargetComment:
		c, err := repo.GetComment(ctx, tx, targetID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		return commentTarget{c}, nil
	default:
		return nil, ErrInvalidTarget
	}
}

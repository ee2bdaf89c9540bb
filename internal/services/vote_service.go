// Package services – VoteService
//
// This file implements the vote engine: the state machine that records a
// user's vote on a question, answer, or comment, keeps that vote idempotent
// and flippable, adjusts reputation balances for both the voter and the
// content owner, and schedules a best-effort real-time notification that
// runs only after the enclosing transaction has committed.
//
// The state machine over the existing vote (if any) for (voter, target):
//
//	existing  requested  action       counter  reputation                    notify
//	none      up         create(up)   +1       owner +recv, voter +given     yes*
//	none      down       create(down) -1       owner -recv, voter -given     no
//	up        up         no-op        0        none (current balance)        no
//	down      down       no-op        0        none                          no
//	down      up         flip to up   +2       owner +recv, voter +given     yes*
//	up        down       flip to down -2       owner -recv, voter -given     no
//
// (*) never when the voter owns the target.
//
// A flip is "undo the old vote, apply the new vote" collapsed into one
// counter write, so its magnitude is always exactly double a fresh vote's.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/repo"
)

// Direction is the requested vote direction.
type Direction string

// Valid vote directions.
const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseDirection validates a wire-level direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionUp, DirectionDown:
		return Direction(s), nil
	}
	return "", ErrInvalidDirection
}

// votesCast counts vote engine outcomes by target kind and branch taken.
var votesCast = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "votes_cast_total",
		Help: "Total vote operations by target kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

func init() {
	prometheus.MustRegister(votesCast)
}

// VoteService implements the vote engine. It is the only writer of the
// votes table and of the per-target vote counters.
//
// Every Cast call executes as one unit of work: the vote row, the counter
// mutation, and the reputation deltas for both sides commit together or not
// at all. The notification push is registered as a commit hook and can
// neither delay nor fail the vote.
type VoteService struct {
	// DB is the GORM handle used to open each unit of work.
	DB *gorm.DB
	// Reputation is the point ledger driven by the engine.
	Reputation *ReputationService
	// Notifier persists and pushes owner notifications. Optional in tests;
	// when nil, no notifications are produced.
	Notifier *NotificationService
	// Log receives non-fatal diagnostics.
	Log zerolog.Logger
}

// Cast records, flips, or no-ops the voter's vote on the target and returns
// the voter's reputation snapshot.
//
// Semantics:
//   - Voter and target must exist; otherwise the per-lookup not-found
//     sentinel is returned (ErrVoterNotFound, ErrQuestionNotFound, ...).
//   - Re-submitting the identical direction performs zero writes and
//     returns the voter's current balance unchanged, making client retries
//     safe.
//   - A lost race on the first-vote insert returns ErrVoteConflict; a vote
//     now exists, so the caller may retry and will take the no-op or flip
//     branch.
//   - Any storage failure aborts the whole unit of work; no partial
//     counter/point changes survive.
func (s *VoteService) Cast(ctx context.Context, voterID string, kind domain.TargetKind, targetID string, dir Direction) (*ReputationSnapshot, error) {
	if !kind.Valid() {
		return nil, ErrInvalidTarget
	}
	if dir != DirectionUp && dir != DirectionDown {
		return nil, ErrInvalidDirection
	}

	var (
		snapshot *ReputationSnapshot
		outcome  string
	)
	err := repo.InTx(ctx, s.DB, func(tx *gorm.DB, uow *repo.UnitOfWork) error {
		voter, err := repo.GetUser(ctx, tx, voterID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrVoterNotFound
			}
			return err
		}

		target, err := resolveVotable(ctx, tx, kind, targetID)
		if err != nil {
			return err
		}

		existing, err := repo.GetVote(ctx, tx, voterID, kind, targetID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		up := dir == DirectionUp

		// No-op branch: identical direction already recorded. Zero writes;
		// report the voter's balance as it stands.
		if existing != nil && existing.IsUpvote == up {
			snapshot, err = s.Reputation.CurrentBalance(ctx, tx, voterID)
			outcome = "noop"
			return err
		}

		var delta int
		switch {
		case existing == nil:
			if _, err := repo.CreateVote(ctx, tx, voterID, kind, targetID, up); err != nil {
				if errors.Is(err, repo.ErrDuplicate) {
					// A concurrent first vote won the unique index. The
					// caller retries; the retry observes the winner's row.
					return ErrVoteConflict
				}
				return err
			}
			if up {
				delta = 1
			} else {
				delta = -1
			}
			outcome = "create"
		default:
			if err := repo.FlipVote(ctx, tx, existing.ID, up); err != nil {
				return err
			}
			// Undo old + apply new collapsed into one write.
			if up {
				delta = 2
			} else {
				delta = -2
			}
			outcome = "flip"
		}

		if err := target.AdjustVotes(ctx, tx, delta); err != nil {
			return err
		}

		ownerSnap, voterSnap, err := s.applyReputation(ctx, tx, target.OwnerID(), voterID, up)
		if err != nil {
			return err
		}
		snapshot = voterSnap

		// Downvotes never notify; neither do self-votes. The self-vote
		// suppression lives here, at the call site, not in the dispatcher.
		if up && s.Notifier != nil && target.OwnerID() != voterID {
			msg := fmt.Sprintf("%s upvoted your %s (%+d points)",
				voter.Username, target.Kind(), ownerSnap.Delta)
			if _, err := s.Notifier.Notify(ctx, tx, uow, target.OwnerID(), voterID, msg, ownerSnap.Points); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	votesCast.WithLabelValues(string(kind), outcome).Inc()
	return snapshot, nil
}

// applyReputation moves both sides of the ledger for an effective vote in
// the given direction and returns (owner snapshot, voter snapshot). Both
// movements ride the caller's transaction.
//
// When the voter owns the target both deltas land on the same balance; the
// returned voter snapshot reflects the final state.
func (s *VoteService) applyReputation(ctx context.Context, tx *gorm.DB, ownerID, voterID string, up bool) (*ReputationSnapshot, *ReputationSnapshot, error) {
	pts := s.Reputation.Points

	var (
		recvDelta, givenDelta   int
		recvReason, givenReason string
	)
	if up {
		recvDelta, recvReason = pts.UpvoteReceived, ReasonUpvoteReceived
		givenDelta, givenReason = pts.UpvoteGiven, ReasonUpvoteGiven
	} else {
		recvDelta, recvReason = pts.DownvoteReceived, ReasonDownvoteReceived
		givenDelta, givenReason = pts.DownvoteGiven, ReasonDownvoteGiven
	}

	ownerSnap, err := s.Reputation.ApplyDelta(ctx, tx, ownerID, recvDelta, recvReason)
	if err != nil {
		return nil, nil, err
	}
	voterSnap, err := s.Reputation.ApplyDelta(ctx, tx, voterID, givenDelta, givenReason)
	if err != nil {
		return nil, nil, err
	}
	return ownerSnap, voterSnap, nil
}

// Retract removes the voter's existing vote on the target, reversing the
// counter movement. Reputation gained or lost from the original vote is
// deliberately not clawed back here; only the counter tracks live votes.
// Returns ErrVoteConflict-free semantics: retracting a missing vote is
// reported via the per-kind not-found sentinel on the target lookup or a
// nil no-op when the vote row is already gone.
func (s *VoteService) Retract(ctx context.Context, voterID string, kind domain.TargetKind, targetID string) error {
	if !kind.Valid() {
		return ErrInvalidTarget
	}
	return repo.InTx(ctx, s.DB, func(tx *gorm.DB, _ *repo.UnitOfWork) error {
		target, err := resolveVotable(ctx, tx, kind, targetID)
		if err != nil {
			return err
		}
		existing, err := repo.GetVote(ctx, tx, voterID, kind, targetID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil
			}
			return err
		}
		if err := repo.DeleteVote(ctx, tx, existing.ID); err != nil {
			return err
		}
		delta := -1
		if !existing.IsUpvote {
			delta = 1
		}
		return target.AdjustVotes(ctx, tx, delta)
	})
}

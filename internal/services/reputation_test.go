package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-qna-backend/internal/config"
)

// The point values are product policy; a drift here silently re-prices every
// action on the site.
func TestDefaultPoints_Pinned(t *testing.T) {
	p := DefaultPoints()
	want := PointsTable{
		NewQuestion:      5,
		QuestionDeleted:  -2,
		NewAnswer:        10,
		AnswerDeleted:    -5,
		UpvoteReceived:   10,
		UpvoteGiven:      1,
		DownvoteReceived: -2,
		DownvoteGiven:    -1,
		BestAnswer:       15,
	}
	if p != want {
		t.Fatalf("points table drifted: %+v", p)
	}
}

func TestPointsFromConfig(t *testing.T) {
	// Unmodified config reproduces the standard table.
	if got := PointsFromConfig(config.DefaultReputation()); got != DefaultPoints() {
		t.Fatalf("default config table: %+v", got)
	}

	// Every override lands on its field, zero included.
	rc := config.ReputationConfig{
		NewQuestion:      3,
		QuestionDeleted:  -1,
		NewAnswer:        7,
		AnswerDeleted:    -3,
		UpvoteReceived:   25,
		UpvoteGiven:      2,
		DownvoteReceived: -4,
		DownvoteGiven:    0,
		BestAnswer:       30,
	}
	got := PointsFromConfig(rc)
	want := PointsTable{
		NewQuestion:      3,
		QuestionDeleted:  -1,
		NewAnswer:        7,
		AnswerDeleted:    -3,
		UpvoteReceived:   25,
		UpvoteGiven:      2,
		DownvoteReceived: -4,
		DownvoteGiven:    0,
		BestAnswer:       30,
	}
	if got != want {
		t.Fatalf("configured table: %+v", got)
	}
}

func TestApplyDelta_AdjustsAndReportsSnapshot(t *testing.T) {
	db := newServiceDB(t)
	u := seedUser(t, db, "alice")
	s := &ReputationService{Points: DefaultPoints()}
	ctx := context.Background()

	snap, err := s.ApplyDelta(ctx, db, u.ID, 7, ReasonNewQuestion)
	if err != nil {
		t.Fatalf("ApplyDelta: %v", err)
	}
	if snap.UserID != u.ID || snap.Points != 7 || snap.Delta != 7 || snap.Reason != ReasonNewQuestion {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	// Deltas accumulate; balances may go negative.
	snap, err = s.ApplyDelta(ctx, db, u.ID, -10, ReasonDownvoteReceived)
	if err != nil {
		t.Fatalf("ApplyDelta: %v", err)
	}
	if snap.Points != -3 {
		t.Fatalf("balance = %d, want -3", snap.Points)
	}
	if got := reputationOf(t, db, u.ID); got != -3 {
		t.Fatalf("persisted balance = %d, want -3", got)
	}
}

func TestApplyDelta_UnknownUser(t *testing.T) {
	db := newServiceDB(t)
	s := &ReputationService{Points: DefaultPoints()}
	if _, err := s.ApplyDelta(context.Background(), db, "ghost", 1, ReasonUpvoteGiven); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCurrentBalance_ReadsWithoutWriting(t *testing.T) {
	db := newServiceDB(t)
	u := seedUser(t, db, "bob")
	s := &ReputationService{Points: DefaultPoints()}
	ctx := context.Background()

	if _, err := s.ApplyDelta(ctx, db, u.ID, 42, ReasonBestAnswer); err != nil {
		t.Fatalf("ApplyDelta: %v", err)
	}
	snap, err := s.CurrentBalance(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("CurrentBalance: %v", err)
	}
	if snap.Points != 42 || snap.Delta != 0 || snap.Reason != "" {
		t.Fatalf("pure read snapshot = %+v", snap)
	}
	if _, err := s.CurrentBalance(ctx, db, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

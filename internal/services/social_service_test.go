package services

import (
	"context"
	"errors"
	"testing"
)

func TestToggleBookmark_FlipsState(t *testing.T) {
	db := newServiceDB(t)
	u := seedUser(t, db, "reader")
	owner := seedUser(t, db, "owner")
	q := seedQuestion(t, db, owner.ID, "Q", "body")

	s := &SocialService{DB: db}
	ctx := context.Background()

	on, err := s.ToggleBookmark(ctx, u.ID, q.ID)
	if err != nil || !on {
		t.Fatalf("first toggle: on=%v err=%v", on, err)
	}
	marks, err := s.ListBookmarks(ctx, u.ID, 1, 10)
	if err != nil || len(marks) != 1 || marks[0].ID != q.ID {
		t.Fatalf("ListBookmarks: %v %v", marks, err)
	}

	off, err := s.ToggleBookmark(ctx, u.ID, q.ID)
	if err != nil || off {
		t.Fatalf("second toggle: on=%v err=%v", off, err)
	}
	marks, err = s.ListBookmarks(ctx, u.ID, 1, 10)
	if err != nil || len(marks) != 0 {
		t.Fatalf("bookmarks after untoggle: %v %v", marks, err)
	}

	if _, err := s.ToggleBookmark(ctx, u.ID, "missing"); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("missing question toggle: %v", err)
	}
}

func TestToggleFollow_FlipsEdgeAndCounts(t *testing.T) {
	db := newServiceDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	s := &SocialService{DB: db}
	ctx := context.Background()

	if _, err := s.ToggleFollow(ctx, alice.ID, alice.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("self-follow: %v", err)
	}
	if _, err := s.ToggleFollow(ctx, alice.ID, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing followee: %v", err)
	}

	if on, err := s.ToggleFollow(ctx, alice.ID, bob.ID); err != nil || !on {
		t.Fatalf("alice→bob: on=%v err=%v", on, err)
	}
	if on, err := s.ToggleFollow(ctx, carol.ID, bob.ID); err != nil || !on {
		t.Fatalf("carol→bob: on=%v err=%v", on, err)
	}
	if on, err := s.ToggleFollow(ctx, bob.ID, alice.ID); err != nil || !on {
		t.Fatalf("bob→alice: on=%v err=%v", on, err)
	}

	followers, following, err := s.FollowCounts(ctx, bob.ID)
	if err != nil {
		t.Fatalf("FollowCounts: %v", err)
	}
	if followers != 2 || following != 1 {
		t.Fatalf("bob counts = %d/%d, want 2/1", followers, following)
	}

	// Untoggle removes the edge.
	if on, err := s.ToggleFollow(ctx, carol.ID, bob.ID); err != nil || on {
		t.Fatalf("untoggle: on=%v err=%v", on, err)
	}
	followers, _, err = s.FollowCounts(ctx, bob.ID)
	if err != nil || followers != 1 {
		t.Fatalf("followers after untoggle = %d (%v), want 1", followers, err)
	}
}

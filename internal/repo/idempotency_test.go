package repo

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

func TestIdempotency_CreateGetRoundTrip(t *testing.T) {
	db := newRepoDB(t, &domain.Idempotency{})
	ctx := context.Background()
	now := time.Now().UTC()

	rec, err := CreateIdempotency(ctx, db, "u1", "q1", "key-1", "a1", http.StatusCreated, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.AnswerID != "a1" || rec.Status != http.StatusCreated {
		t.Fatalf("record fields: %+v", rec)
	}

	got, err := GetIdempotency(ctx, db, "u1", "q1", "key-1", now)
	if err != nil || got.ID != rec.ID {
		t.Fatalf("GetIdempotency: %+v %v", got, err)
	}

	// Wrong scope misses.
	if _, err := GetIdempotency(ctx, db, "u2", "q1", "key-1", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong user: %v", err)
	}
	if _, err := GetIdempotency(ctx, db, "u1", "", "key-1", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("blank question short-circuit: %v", err)
	}

	// Duplicate key for the same (user, question) is rejected.
	if _, err := CreateIdempotency(ctx, db, "u1", "q1", "key-1", "a2", http.StatusCreated, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate key: %v", err)
	}
}

func TestIdempotency_ExpiryHidesRecord(t *testing.T) {
	db := newRepoDB(t, &domain.Idempotency{})
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "u1", "q1", "key-1", "a1", http.StatusCreated, time.Millisecond); err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	future := time.Now().UTC().Add(time.Minute)
	if _, err := GetIdempotency(ctx, db, "u1", "q1", "key-1", future); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired record should be invisible: %v", err)
	}
}

func TestDeleteStaleIdempotency_PreservesLiveRecords(t *testing.T) {
	db := newRepoDB(t, &domain.Idempotency{})
	ctx := context.Background()
	now := time.Now().UTC()

	live, err := CreateIdempotency(ctx, db, "u1", "q1", "key-1", "a-live", http.StatusCreated, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}

	// Neither expired nor pointing at the stale answer: must survive.
	if err := DeleteStaleIdempotency(ctx, db, "u1", "q1", "key-1", now, "a-other"); err != nil {
		t.Fatalf("DeleteStaleIdempotency: %v", err)
	}
	if _, err := GetIdempotency(ctx, db, "u1", "q1", "key-1", now); err != nil {
		t.Fatalf("live record deleted: %v", err)
	}

	// Pointing at the stale answer: cleared.
	if err := DeleteStaleIdempotency(ctx, db, "u1", "q1", "key-1", now, live.AnswerID); err != nil {
		t.Fatalf("DeleteStaleIdempotency: %v", err)
	}
	if _, err := GetIdempotency(ctx, db, "u1", "q1", "key-1", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stale record survived: %v", err)
	}

	// Expired: cleared even without a stale answer hint.
	if _, err := CreateIdempotency(ctx, db, "u1", "q1", "key-2", "a2", http.StatusCreated, time.Millisecond); err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	future := now.Add(time.Minute)
	if err := DeleteStaleIdempotency(ctx, db, "u1", "q1", "key-2", future, ""); err != nil {
		t.Fatalf("DeleteStaleIdempotency: %v", err)
	}
	var n int64
	if err := db.Model(&domain.Idempotency{}).Where("key = ?", "key-2").Count(&n).Error; err != nil || n != 0 {
		t.Fatalf("expired record survived: n=%d err=%v", n, err)
	}
}

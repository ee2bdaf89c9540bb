package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCommentCreate_OnQuestionAndAnswer(t *testing.T) {
	db := newServiceDB(t)
	u := seedUser(t, db, "commenter")
	q := seedQuestion(t, db, u.ID, "Q", "body")
	a := seedAnswer(t, db, q.ID, u.ID, "A")

	s := &CommentService{DB: db}
	ctx := context.Background()

	qc, err := s.CreateOnQuestion(ctx, u.ID, q.ID, "  on the question  ")
	if err != nil {
		t.Fatalf("CreateOnQuestion: %v", err)
	}
	if qc.QuestionID == nil || *qc.QuestionID != q.ID || qc.AnswerID != nil {
		t.Fatalf("question comment parents: %+v", qc)
	}
	if qc.Body != "on the question" {
		t.Fatalf("body not trimmed: %q", qc.Body)
	}

	ac, err := s.CreateOnAnswer(ctx, u.ID, a.ID, "on the answer")
	if err != nil {
		t.Fatalf("CreateOnAnswer: %v", err)
	}
	if ac.AnswerID == nil || *ac.AnswerID != a.ID || ac.QuestionID != nil {
		t.Fatalf("answer comment parents: %+v", ac)
	}

	qList, err := s.ListForQuestion(ctx, q.ID)
	if err != nil || len(qList) != 1 {
		t.Fatalf("ListForQuestion: %d %v", len(qList), err)
	}
	aList, err := s.ListForAnswer(ctx, a.ID)
	if err != nil || len(aList) != 1 {
		t.Fatalf("ListForAnswer: %d %v", len(aList), err)
	}
}

func TestCommentCreate_Validation(t *testing.T) {
	db := newServiceDB(t)
	u := seedUser(t, db, "commenter")
	q := seedQuestion(t, db, u.ID, "Q", "body")

	s := &CommentService{DB: db}
	ctx := context.Background()

	if _, err := s.CreateOnQuestion(ctx, u.ID, q.ID, "   "); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("blank body: %v", err)
	}
	if _, err := s.CreateOnQuestion(ctx, u.ID, q.ID, strings.Repeat("x", 601)); !errors.Is(err, ErrTooLong) {
		t.Fatalf("long body: %v", err)
	}
	if _, err := s.CreateOnQuestion(ctx, "ghost", q.ID, "hi"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown author: %v", err)
	}
	if _, err := s.CreateOnQuestion(ctx, u.ID, "missing", "hi"); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("missing question: %v", err)
	}
	if _, err := s.CreateOnAnswer(ctx, u.ID, "missing", "hi"); !errors.Is(err, ErrAnswerNotFound) {
		t.Fatalf("missing answer: %v", err)
	}
}

func TestCommentDelete_Ownership(t *testing.T) {
	db := newServiceDB(t)
	author := seedUser(t, db, "author")
	other := seedUser(t, db, "other")
	q := seedQuestion(t, db, author.ID, "Q", "body")

	s := &CommentService{DB: db}
	ctx := context.Background()

	c, err := s.CreateOnQuestion(ctx, author.ID, q.ID, "mine")
	if err != nil {
		t.Fatalf("CreateOnQuestion: %v", err)
	}

	if err := s.Delete(ctx, c.ID, other.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner delete: %v", err)
	}
	if err := s.Delete(ctx, "missing", author.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("missing delete: %v", err)
	}
	if err := s.Delete(ctx, c.ID, author.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, c.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("deleted comment still readable: %v", err)
	}
}

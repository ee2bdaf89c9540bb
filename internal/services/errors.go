// Package services defines the business logic for the Q&A application:
// questions, answers, comments, tags, votes, reputation, and notifications.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Lookup errors. Each names the lookup that failed so callers can report
// precisely which entity was missing.
var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrVoterNotFound indicates that the voting user does not exist.
	ErrVoterNotFound = errors.New("voter not found")

	// ErrQuestionNotFound indicates that the requested question does not exist.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrAnswerNotFound indicates that the requested answer does not exist.
	ErrAnswerNotFound = errors.New("answer not found")

	// ErrCommentNotFound indicates that the requested comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrTagNotFound indicates that the requested tag does not exist.
	ErrTagNotFound = errors.New("tag not found")

	// ErrNotificationNotFound indicates that the requested notification does
	// not exist or belongs to a different user.
	ErrNotificationNotFound = errors.New("notification not found")
)

// Vote engine errors.
var (
	// ErrInvalidDirection is returned when a vote direction is neither
	// "up" nor "down".
	ErrInvalidDirection = errors.New("vote direction must be up or down")

	// ErrInvalidTarget is returned when a target kind is not one of
	// question, answer, or comment.
	ErrInvalidTarget = errors.New("invalid vote target kind")

	// ErrVoteConflict is returned when a concurrent first-vote insert lost
	// the race on the (voter, target) uniqueness constraint. A vote now
	// exists, so the caller may safely retry; the retry will take the
	// no-op or flip branch.
	ErrVoteConflict = errors.New("vote already recorded concurrently")

	// ErrIdempotencyConflict is returned when a concurrent request with the
	// same idempotency key committed first. The caller retries and receives
	// the winner's result.
	ErrIdempotencyConflict = errors.New("idempotency key already used concurrently")
)

// Validation and authorization errors.
var (
	// ErrEmptyContent is returned when a title or body is blank after
	// normalization.
	ErrEmptyContent = errors.New("content is empty")

	// ErrTooLong is returned when submitted content exceeds the configured
	// length limit.
	ErrTooLong = errors.New("content too long")

	// ErrForbidden is returned when a user attempts an operation on a
	// resource they do not own.
	ErrForbidden = errors.New("operation not permitted")

	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDuplicateUser is returned when a username or email is taken.
	ErrDuplicateUser = errors.New("username or email already registered")

	// ErrDuplicateTag is returned when creating a tag whose name exists.
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrCommentTarget is returned when a comment names zero or both of
	// question and answer as its parent.
	ErrCommentTarget = errors.New("comment must reference exactly one of question or answer")
)

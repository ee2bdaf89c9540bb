// Handler wiring.
//
// This file groups the service contracts consumed by the HTTP layer and the
// shared request helpers (identity extraction, pagination clamping).
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/services"
	"github.com/tbourn/go-qna-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// UserService defines account and profile operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and must honor
// the provided context for cancellation and timeouts.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID string) (*services.Profile, error)
	UpdateBio(ctx context.Context, userID, bio string) error
	Balance(ctx context.Context, userID string) (*services.ReputationSnapshot, error)
}

// QuestionService defines question lifecycle and search operations.
type QuestionService interface {
	Create(ctx context.Context, ownerID, title, body string, tags []string) (*domain.Question, error)
	Get(ctx context.Context, id string) (*domain.Question, error)
	ListPage(ctx context.Context, tag string, page, pageSize int) ([]domain.Question, int64, error)
	Update(ctx context.Context, id, userID, title, body string) (*domain.Question, error)
	Delete(ctx context.Context, id, userID string) error
	SetTags(ctx context.Context, id, userID string, tags []string) (*domain.Question, error)
	Search(ctx context.Context, query string, limit int) ([]services.SearchResult, error)
}

// AnswerService defines answer lifecycle operations including best-answer
// acceptance.
type AnswerService interface {
	Create(ctx context.Context, questionID, ownerID, body, idemKey string) (*domain.Answer, error)
	Get(ctx context.Context, id string) (*domain.Answer, error)
	ListPage(ctx context.Context, questionID string, page, pageSize int) ([]domain.Answer, int64, error)
	Delete(ctx context.Context, id, userID string) error
	AcceptBest(ctx context.Context, questionID, answerID, userID string) error
}

// CommentService defines comment operations.
type CommentService interface {
	CreateOnQuestion(ctx context.Context, ownerID, questionID, body string) (*domain.Comment, error)
	CreateOnAnswer(ctx context.Context, ownerID, answerID, body string) (*domain.Comment, error)
	ListForQuestion(ctx context.Context, questionID string) ([]domain.Comment, error)
	ListForAnswer(ctx context.Context, answerID string) ([]domain.Comment, error)
	Delete(ctx context.Context, id, userID string) error
}

// TagService defines tag management operations.
type TagService interface {
	Create(ctx context.Context, name, description string) (*domain.Tag, error)
	Get(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	UpdateDescription(ctx context.Context, id, description string) error
	Delete(ctx context.Context, id string) error
}

// VoteService defines the vote engine operations.
type VoteService interface {
	Cast(ctx context.Context, voterID string, kind domain.TargetKind, targetID string, dir services.Direction) (*services.ReputationSnapshot, error)
	Retract(ctx context.Context, voterID string, kind domain.TargetKind, targetID string) error
}

// NotificationService defines the notification inbox operations.
type NotificationService interface {
	ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Notification, int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// SocialService defines bookmark and follow toggles.
type SocialService interface {
	ToggleBookmark(ctx context.Context, userID, questionID string) (bool, error)
	ListBookmarks(ctx context.Context, userID string, page, pageSize int) ([]domain.Question, error)
	ToggleFollow(ctx context.Context, followerID, followeeID string) (bool, error)
	FollowCounts(ctx context.Context, userID string) (int64, int64, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the public API. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	userSvc     UserService
	questionSvc QuestionService
	answerSvc   AnswerService
	commentSvc  CommentService
	tagSvc      TagService
	voteSvc     VoteService
	notifSvc    NotificationService
	socialSvc   SocialService
}

// New constructs a Handlers instance bound to the given services.
func New(
	userSvc UserService,
	questionSvc QuestionService,
	answerSvc AnswerService,
	commentSvc CommentService,
	tagSvc TagService,
	voteSvc VoteService,
	notifSvc NotificationService,
	socialSvc SocialService,
) *Handlers {
	return &Handlers{
		userSvc:     userSvc,
		questionSvc: questionSvc,
		answerSvc:   answerSvc,
		commentSvc:  commentSvc,
		tagSvc:      tagSvc,
		voteSvc:     voteSvc,
		notifSvc:    notifSvc,
		socialSvc:   socialSvc,
	}
}

// userID extracts the authenticated user id from Gin context, where the
// bearer-token middleware stashes it. The context is the only identity
// source; request headers are never consulted, so an unauthenticated
// caller cannot name their own identity. Returns "" when anonymous.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// requireUser extracts the authenticated user or fails the request with 401.
func requireUser(c *gin.Context) (string, bool) {
	uid := userID(c)
	if uid == "" {
		fail(c, 401, ErrCodeUnauthorized, "authentication required")
		return "", false
	}
	return uid, true
}

//
// Shared DTOs and helpers
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// paginate computes the metadata block for a page of total items.
func paginate(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

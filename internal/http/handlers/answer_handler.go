// Answer HTTP handlers.
//
// This file exposes REST endpoints for answer resources:
//   - POST   /questions/{id}/answers          (submit, supports Idempotency-Key)
//   - GET    /questions/{id}/answers          (list, paginated)
//   - POST   /questions/{id}/answers/{aid}/accept (accept best)
//   - DELETE /answers/{id}                    (delete)
//
// Answer submission honors the Idempotency-Key header: retrying the same
// key returns the originally created answer instead of a duplicate.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/http/middleware"
)

// CreateAnswerRequest is the JSON payload for submitting an answer.
type CreateAnswerRequest struct {
	Body string `json:"body" binding:"required,min=1" example:"Use context.WithCancel and select on ctx.Done()."`
}

// ListAnswersResponse wraps a page of answers and pagination information.
type ListAnswersResponse struct {
	Answers    []domain.Answer `json:"answers"`
	Pagination Pagination      `json:"pagination"`
}

// CreateAnswer godoc
// @ID          createAnswer
// @Summary     Submit an answer
// @Description Creates an answer under a question, credits the author, and notifies the asker.
// @Tags        Answers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key header string false "Safe-retry key" example(2c9a1c1e-answer-1)
// @Param       id   path string true "Question ID (UUID)" format(uuid)
// @Param       body body handlers.CreateAnswerRequest true "Answer payload"
// @Success     201 {object} domain.Answer
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404 {object} handlers.ErrorResponse "Question not found"
// @Failure     409 {object} handlers.ErrorResponse "Idempotency conflict"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id}/answers [post]
func (h *Handlers) CreateAnswer(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "body required")
		return
	}
	idemKey := strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))

	a, err := h.answerSvc.Create(c.Request.Context(), c.Param("id"), uid, req.Body, idemKey)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, a)
}

// ListAnswers godoc
// @ID          listAnswers
// @Summary     List a question's answers (paginated)
// @Description Returns answers ordered accepted-first, then by votes.
// @Tags        Answers
// @Produce     json
// @Param       id        path  string true  "Question ID (UUID)" format(uuid)
// @Param       page      query int    false "Page number"    minimum(1) default(1)
// @Param       page_size query int    false "Items per page" minimum(1) maximum(100) default(20)
// @Success     200 {object} handlers.ListAnswersResponse
// @Failure     404 {object} handlers.ErrorResponse "Question not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id}/answers [get]
func (h *Handlers) ListAnswers(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.answerSvc.ListPage(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListAnswersResponse{
		Answers:    items,
		Pagination: paginate(page, pageSize, total),
	})
}

// AcceptAnswer godoc
// @ID          acceptAnswer
// @Summary     Accept an answer as best
// @Description Marks the answer as the question's accepted answer. Only the question owner may accept.
// @Tags        Answers
// @Security    BearerAuth
// @Param       id  path string true "Question ID (UUID)" format(uuid)
// @Param       aid path string true "Answer ID (UUID)"   format(uuid)
// @Success     204 {string} string "No Content"
// @Failure     403 {object} handlers.ErrorResponse "Not the question owner"
// @Failure     404 {object} handlers.ErrorResponse "Question or answer not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id}/answers/{aid}/accept [post]
func (h *Handlers) AcceptAnswer(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	if err := h.answerSvc.AcceptBest(c.Request.Context(), c.Param("id"), c.Param("aid"), uid); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// DeleteAnswer godoc
// @ID          deleteAnswer
// @Summary     Delete an answer
// @Description Soft-deletes the author's answer and debits the delete penalty.
// @Tags        Answers
// @Security    BearerAuth
// @Param       id path string true "Answer ID (UUID)" format(uuid)
// @Success     204 {string} string "No Content"
// @Failure     400 {object} handlers.ErrorResponse "Invalid ID"
// @Failure     403 {object} handlers.ErrorResponse "Not the author"
// @Failure     404 {object} handlers.ErrorResponse "Answer not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /answers/{id} [delete]
func (h *Handlers) DeleteAnswer(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "answer id must be a UUID")
		return
	}
	if err := h.answerSvc.Delete(c.Request.Context(), id, uid); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// Comment HTTP handlers.
//
// This file exposes REST endpoints for comment resources:
//   - POST   /questions/{id}/comments  (comment on a question)
//   - GET    /questions/{id}/comments  (list, oldest first)
//   - POST   /answers/{id}/comments    (comment on an answer)
//   - GET    /answers/{id}/comments    (list, oldest first)
//   - DELETE /comments/{id}            (delete own comment)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// CreateCommentRequest is the JSON payload for creating a comment.
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=600" example:"Can you share the goroutine's stack trace?"`
}

// CommentOnQuestion godoc
// @ID          commentOnQuestion
// @Summary     Comment on a question
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string true "Question ID (UUID)" format(uuid)
// @Param       body body handlers.CreateCommentRequest true "Comment payload"
// @Success     201 {object} domain.Comment
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404 {object} handlers.ErrorResponse "Question not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id}/comments [post]
func (h *Handlers) CommentOnQuestion(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "body required (1-600 chars)")
		return
	}
	cm, err := h.commentSvc.CreateOnQuestion(c.Request.Context(), uid, c.Param("id"), req.Body)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, cm)
}

// CommentOnAnswer godoc
// @ID          commentOnAnswer
// @Summary     Comment on an answer
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string true "Answer ID (UUID)" format(uuid)
// @Param       body body handlers.CreateCommentRequest true "Comment payload"
// @Success     201 {object} domain.Comment
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404 {object} handlers.ErrorResponse "Answer not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /answers/{id}/comments [post]
func (h *Handlers) CommentOnAnswer(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "body required (1-600 chars)")
		return
	}
	cm, err := h.commentSvc.CreateOnAnswer(c.Request.Context(), uid, c.Param("id"), req.Body)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, cm)
}

// ListQuestionComments godoc
// @ID          listQuestionComments
// @Summary     List a question's comments
// @Tags        Comments
// @Produce     json
// @Param       id path string true "Question ID (UUID)" format(uuid)
// @Success     200 {array} domain.Comment
// @Failure     404 {object} handlers.ErrorResponse "Question not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id}/comments [get]
func (h *Handlers) ListQuestionComments(c *gin.Context) {
	items, err := h.commentSvc.ListForQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	if items == nil {
		items = []domain.Comment{}
	}
	ok(c, http.StatusOK, items)
}

// ListAnswerComments godoc
// @ID          listAnswerComments
// @Summary     List an answer's comments
// @Tags        Comments
// @Produce     json
// @Param       id path string true "Answer ID (UUID)" format(uuid)
// @Success     200 {array} domain.Comment
// @Failure     404 {object} handlers.ErrorResponse "Answer not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /answers/{id}/comments [get]
func (h *Handlers) ListAnswerComments(c *gin.Context) {
	items, err := h.commentSvc.ListForAnswer(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	if items == nil {
		items = []domain.Comment{}
	}
	ok(c, http.StatusOK, items)
}

// DeleteComment godoc
// @ID          deleteComment
// @Summary     Delete a comment
// @Tags        Comments
// @Security    BearerAuth
// @Param       id path string true "Comment ID (UUID)" format(uuid)
// @Success     204 {string} string "No Content"
// @Failure     403 {object} handlers.ErrorResponse "Not the author"
// @Failure     404 {object} handlers.ErrorResponse "Comment not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /comments/{id} [delete]
func (h *Handlers) DeleteComment(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	if err := h.commentSvc.Delete(c.Request.Context(), c.Param("id"), uid); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// Question HTTP handlers.
//
// This file exposes REST endpoints for question resources:
//   - POST   /questions            (ask)
//   - GET    /questions            (list, paginated, optional ?tag= filter)
//   - GET    /questions/search     (similarity search)
//   - GET    /questions/{id}       (read)
//   - PUT    /questions/{id}       (edit)
//   - DELETE /questions/{id}       (delete)
//   - PUT    /questions/{id}/tags  (retag)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/services"
	"github.com/tbourn/go-qna-backend/internal/utils"
)

// CreateQuestionRequest is the JSON payload for asking a question.
type CreateQuestionRequest struct {
	Title string   `json:"title" binding:"required,min=1,max=150" example:"How do I cancel a goroutine?"`
	Body  string   `json:"body"  binding:"required,min=1"         example:"I start a worker goroutine and..."`
	Tags  []string `json:"tags,omitempty" example:"go,concurrency"`
}

// UpdateQuestionRequest is the JSON payload for editing a question.
type UpdateQuestionRequest struct {
	Title string `json:"title" binding:"required,min=1,max=150"`
	Body  string `json:"body"  binding:"required,min=1"`
}

// SetTagsRequest is the JSON payload for replacing a question's tags.
type SetTagsRequest struct {
	Tags []string `json:"tags" binding:"required" example:"go,concurrency"`
}

// ListQuestionsResponse wraps a page of questions and pagination information.
type ListQuestionsResponse struct {
	Questions  []domain.Question `json:"questions"`
	Pagination Pagination        `json:"pagination"`
}

// CreateQuestion godoc
// @ID          createQuestion
// @Summary     Ask a question
// @Description Creates a question for the current user, attaches tags, and credits reputation.
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body handlers.CreateQuestionRequest true "Question payload"
// @Success     201 {object} domain.Question
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions [post]
func (h *Handlers) CreateQuestion(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title (1-150) and body required")
		return
	}
	q, err := h.questionSvc.Create(c.Request.Context(), uid, req.Title, req.Body, req.Tags)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, q)
}

// ListQuestions godoc
// @ID          listQuestions
// @Summary     List questions (paginated)
// @Description Returns a page of questions, newest first, optionally filtered by tag.
// @Tags        Questions
// @Produce     json
// @Param       tag       query string false "Filter by tag name" example(go)
// @Param       page      query int    false "Page number"     minimum(1) default(1)
// @Param       page_size query int    false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200 {object} handlers.ListQuestionsResponse
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions [get]
func (h *Handlers) ListQuestions(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.questionSvc.ListPage(c.Request.Context(), c.Query("tag"), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListQuestionsResponse{
		Questions:  items,
		Pagination: paginate(page, pageSize, total),
	})
}

// SearchQuestions godoc
// @ID          searchQuestions
// @Summary     Search questions
// @Description Ranks questions by similarity to the query over titles and bodies.
// @Tags        Questions
// @Produce     json
// @Param       q     query string true  "Search query" example(goroutine cancel)
// @Param       limit query int    false "Max results"  minimum(1) maximum(50) default(10)
// @Success     200 {array} services.SearchResult
// @Failure     400 {object} handlers.ErrorResponse "Missing query"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/search [get]
func (h *Handlers) SearchQuestions(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query parameter q required")
		return
	}
	limit := utils.AtoiDefault(c.Query("limit"), 10)
	results, err := h.questionSvc.Search(c.Request.Context(), query, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if results == nil {
		results = []services.SearchResult{}
	}
	ok(c, http.StatusOK, results)
}

// GetQuestion godoc
// @ID          getQuestion
// @Summary     Read a question
// @Tags        Questions
// @Produce     json
// @Param       id path string true "Question ID (UUID)" format(uuid)
// @Success     200 {object} domain.Question
// @Failure     400 {object} handlers.ErrorResponse "Invalid ID"
// @Failure     404 {object} handlers.ErrorResponse "Question not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id} [get]
func (h *Handlers) GetQuestion(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "question id must be a UUID")
		return
	}
	q, err := h.questionSvc.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// UpdateQuestion godoc
// @ID          updateQuestion
// @Summary     Edit a question
// @Description Updates title and body. Only the owner may edit.
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string true "Question ID (UUID)" format(uuid)
// @Param       body body handlers.UpdateQuestionRequest true "Updated content"
// @Success     200 {object} domain.Question
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     403 {object} handlers.ErrorResponse "Not the owner"
// @Failure     404 {object} handlers.ErrorResponse "Question not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id} [put]
func (h *Handlers) UpdateQuestion(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title (1-150) and body required")
		return
	}
	q, err := h.questionSvc.Update(c.Request.Context(), c.Param("id"), uid, req.Title, req.Body)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// DeleteQuestion godoc
// @ID          deleteQuestion
// @Summary     Delete a question
// @Description Soft-deletes the owner's question and debits the delete penalty.
// @Tags        Questions
// @Security    BearerAuth
// @Param       id path string true "Question ID (UUID)" format(uuid)
// @Success     204 {string} string "No Content"
// @Failure     403 {object} handlers.ErrorResponse "Not the owner"
// @Failure     404 {object} handlers.ErrorResponse "Question not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id} [delete]
func (h *Handlers) DeleteQuestion(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	if err := h.questionSvc.Delete(c.Request.Context(), c.Param("id"), uid); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// SetQuestionTags godoc
// @ID          setQuestionTags
// @Summary     Replace a question's tags
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string true "Question ID (UUID)" format(uuid)
// @Param       body body handlers.SetTagsRequest true "New tag set"
// @Success     200 {object} domain.Question
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     403 {object} handlers.ErrorResponse "Not the owner"
// @Failure     404 {object} handlers.ErrorResponse "Question not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id}/tags [put]
func (h *Handlers) SetQuestionTags(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req SetTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tags array required")
		return
	}
	q, err := h.questionSvc.SetTags(c.Request.Context(), c.Param("id"), uid, req.Tags)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

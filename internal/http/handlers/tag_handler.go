// Tag HTTP handlers.
//
// This file exposes REST endpoints for tag resources:
//   - GET    /tags         (list)
//   - POST   /tags         (create)
//   - GET    /tags/{name}  (read by canonical name)
//   - PUT    /tags/{id}    (update description)
//   - DELETE /tags/{id}    (delete)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// CreateTagRequest is the JSON payload for registering a tag.
type CreateTagRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=35" example:"concurrency"`
	Description string `json:"description,omitempty" example:"Questions about concurrent execution"`
}

// UpdateTagRequest is the JSON payload for changing a tag description.
type UpdateTagRequest struct {
	Description string `json:"description" binding:"required"`
}

// ListTags godoc
// @ID          listTags
// @Summary     List tags
// @Tags        Tags
// @Produce     json
// @Success     200 {array} domain.Tag
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /tags [get]
func (h *Handlers) ListTags(c *gin.Context) {
	items, err := h.tagSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if items == nil {
		items = []domain.Tag{}
	}
	ok(c, http.StatusOK, items)
}

// CreateTag godoc
// @ID          createTag
// @Summary     Create a tag
// @Tags        Tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body handlers.CreateTagRequest true "Tag payload"
// @Success     201 {object} domain.Tag
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     409 {object} handlers.ErrorResponse "Tag already exists"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /tags [post]
func (h *Handlers) CreateTag(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required (1-35 chars)")
		return
	}
	t, err := h.tagSvc.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, t)
}

// GetTag godoc
// @ID          getTag
// @Summary     Read a tag by name
// @Tags        Tags
// @Produce     json
// @Param       name path string true "Canonical tag name" example(go)
// @Success     200 {object} domain.Tag
// @Failure     404 {object} handlers.ErrorResponse "Tag not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /tags/{name} [get]
func (h *Handlers) GetTag(c *gin.Context) {
	t, err := h.tagSvc.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, t)
}

// UpdateTag godoc
// @ID          updateTag
// @Summary     Update a tag description
// @Tags        Tags
// @Accept      json
// @Security    BearerAuth
// @Param       id   path string true "Tag ID (UUID)" format(uuid)
// @Param       body body handlers.UpdateTagRequest true "New description"
// @Success     204 {string} string "No Content"
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404 {object} handlers.ErrorResponse "Tag not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /tags/{id} [put]
func (h *Handlers) UpdateTag(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "description required")
		return
	}
	if err := h.tagSvc.UpdateDescription(c.Request.Context(), c.Param("id"), req.Description); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// DeleteTag godoc
// @ID          deleteTag
// @Summary     Delete a tag
// @Tags        Tags
// @Security    BearerAuth
// @Param       id path string true "Tag ID (UUID)" format(uuid)
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse "Tag not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /tags/{id} [delete]
func (h *Handlers) DeleteTag(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	if err := h.tagSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

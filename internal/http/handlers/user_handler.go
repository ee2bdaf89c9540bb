// User and social HTTP handlers.
//
// This file exposes REST endpoints for profiles, reputation, bookmarks, and
// follows:
//   - GET    /users/{id}             (public profile)
//   - GET    /users/{id}/reputation  (point balance)
//   - PUT    /me/bio                 (update own bio)
//   - POST   /questions/{id}/bookmark (toggle bookmark)
//   - GET    /me/bookmarks           (list bookmarked questions)
//   - POST   /users/{id}/follow      (toggle follow)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// UpdateBioRequest is the JSON payload for changing the profile bio.
type UpdateBioRequest struct {
	Bio string `json:"bio" binding:"max=500" example:"Gopher since 1.4"`
}

// ToggleResponse reports the state a toggle endpoint landed on.
type ToggleResponse struct {
	Active bool `json:"active"`
}

// GetProfile godoc
// @ID          getProfile
// @Summary     Read a public profile
// @Tags        Users
// @Produce     json
// @Param       id path string true "User ID (UUID)" format(uuid)
// @Success     200 {object} services.Profile
// @Failure     404 {object} handlers.ErrorResponse "User not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id} [get]
func (h *Handlers) GetProfile(c *gin.Context) {
	p, err := h.userSvc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// GetReputation godoc
// @ID          getReputation
// @Summary     Read a user's reputation balance
// @Tags        Users
// @Produce     json
// @Param       id path string true "User ID (UUID)" format(uuid)
// @Success     200 {object} services.ReputationSnapshot
// @Failure     404 {object} handlers.ErrorResponse "User not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/reputation [get]
func (h *Handlers) GetReputation(c *gin.Context) {
	snap, err := h.userSvc.Balance(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, snap)
}

// UpdateBio godoc
// @ID          updateBio
// @Summary     Update own bio
// @Tags        Users
// @Accept      json
// @Security    BearerAuth
// @Param       body body handlers.UpdateBioRequest true "New bio"
// @Success     204 {string} string "No Content"
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /me/bio [put]
func (h *Handlers) UpdateBio(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req UpdateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "bio must be at most 500 chars")
		return
	}
	if err := h.userSvc.UpdateBio(c.Request.Context(), uid, req.Bio); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// ToggleBookmark godoc
// @ID          toggleBookmark
// @Summary     Toggle a question bookmark
// @Description Flips the current user's bookmark on the question and reports whether it is now set.
// @Tags        Social
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Question ID (UUID)" format(uuid)
// @Success     200 {object} handlers.ToggleResponse
// @Failure     404 {object} handlers.ErrorResponse "Question not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id}/bookmark [post]
func (h *Handlers) ToggleBookmark(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	active, err := h.socialSvc.ToggleBookmark(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ToggleResponse{Active: active})
}

// ListBookmarks godoc
// @ID          listBookmarks
// @Summary     List bookmarked questions
// @Tags        Social
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"    minimum(1) default(1)
// @Param       page_size query int false "Items per page" minimum(1) maximum(100) default(20)
// @Success     200 {array} domain.Question
// @Failure     401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /me/bookmarks [get]
func (h *Handlers) ListBookmarks(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	page, pageSize := clampPagination(c)
	items, err := h.socialSvc.ListBookmarks(c.Request.Context(), uid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if items == nil {
		items = []domain.Question{}
	}
	ok(c, http.StatusOK, items)
}

// ToggleFollow godoc
// @ID          toggleFollow
// @Summary     Toggle following a user
// @Description Flips the current user's follow edge to the target user and reports whether it is now set.
// @Tags        Social
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID (UUID)" format(uuid)
// @Success     200 {object} handlers.ToggleResponse
// @Failure     403 {object} handlers.ErrorResponse "Cannot follow yourself"
// @Failure     404 {object} handlers.ErrorResponse "User not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/follow [post]
func (h *Handlers) ToggleFollow(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	active, err := h.socialSvc.ToggleFollow(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ToggleResponse{Active: active})
}

// Notification HTTP handlers.
//
// This file exposes the notification inbox:
//   - GET  /notifications            (list, paginated, newest first)
//   - GET  /notifications/unread     (unread count)
//   - POST /notifications/{id}/read  (mark one read)
//   - POST /notifications/read-all   (mark all read)
//
// Real-time delivery happens over Redis pub/sub; these endpoints serve the
// durable inbox, which is the source of truth.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// ListNotificationsResponse wraps a page of notifications and pagination
// information.
type ListNotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Pagination    Pagination            `json:"pagination"`
}

// UnreadCountResponse reports the unread notification count.
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// ListNotifications godoc
// @ID          listNotifications
// @Summary     List notifications (paginated)
// @Tags        Notifications
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"    minimum(1) default(1)
// @Param       page_size query int false "Items per page" minimum(1) maximum(100) default(20)
// @Success     200 {object} handlers.ListNotificationsResponse
// @Failure     401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications [get]
func (h *Handlers) ListNotifications(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	page, pageSize := clampPagination(c)
	items, total, err := h.notifSvc.ListPage(c.Request.Context(), uid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListNotificationsResponse{
		Notifications: items,
		Pagination:    paginate(page, pageSize, total),
	})
}

// UnreadNotifications godoc
// @ID          unreadNotifications
// @Summary     Count unread notifications
// @Tags        Notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} handlers.UnreadCountResponse
// @Failure     401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications/unread [get]
func (h *Handlers) UnreadNotifications(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	n, err := h.notifSvc.UnreadCount(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, UnreadCountResponse{Unread: n})
}

// ReadNotification godoc
// @ID          readNotification
// @Summary     Mark a notification read
// @Tags        Notifications
// @Security    BearerAuth
// @Param       id path string true "Notification ID (UUID)" format(uuid)
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse "Notification not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications/{id}/read [post]
func (h *Handlers) ReadNotification(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	if err := h.notifSvc.MarkRead(c.Request.Context(), uid, c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// ReadAllNotifications godoc
// @ID          readAllNotifications
// @Summary     Mark all notifications read
// @Tags        Notifications
// @Security    BearerAuth
// @Success     204 {string} string "No Content"
// @Failure     401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications/read-all [post]
func (h *Handlers) ReadAllNotifications(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	if err := h.notifSvc.MarkAllRead(c.Request.Context(), uid); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

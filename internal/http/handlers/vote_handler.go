// Vote HTTP handlers.
//
// This file exposes the vote engine over REST:
//   - POST   /votes  (cast, flip, or no-op a vote)
//   - DELETE /votes  (retract a vote)
//
// Casting returns the voter's reputation snapshot so clients can refresh
// the displayed balance without a second round trip. Re-submitting the
// identical vote is a safe no-op that returns the unchanged balance.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/services"
)

// CastVoteRequest is the JSON payload for casting a vote.
type CastVoteRequest struct {
	// TargetKind is one of "question", "answer", "comment".
	TargetKind string `json:"target_kind" binding:"required,oneof=question answer comment" example:"question"`
	// TargetID is the UUID of the voted content.
	TargetID string `json:"target_id" binding:"required,uuid" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	// Direction is "up" or "down".
	Direction string `json:"direction" binding:"required,oneof=up down" example:"up"`
}

// RetractVoteRequest is the JSON payload for retracting a vote.
type RetractVoteRequest struct {
	TargetKind string `json:"target_kind" binding:"required,oneof=question answer comment" example:"question"`
	TargetID   string `json:"target_id"   binding:"required,uuid"`
}

// CastVote godoc
// @ID          castVote
// @Summary     Cast a vote
// @Description Records, flips, or no-ops the current user's vote on a question, answer, or comment and returns the voter's reputation snapshot.
// @Tags        Votes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body handlers.CastVoteRequest true "Vote payload"
// @Success     200 {object} services.ReputationSnapshot
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404 {object} handlers.ErrorResponse "Voter or target not found"
// @Failure     409 {object} handlers.ErrorResponse "Concurrent first vote lost the race"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /votes [post]
func (h *Handlers) CastVote(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "target_kind, target_id (UUID), and direction (up|down) required")
		return
	}
	dir, err := services.ParseDirection(req.Direction)
	if err != nil {
		failErr(c, err)
		return
	}

	snap, err := h.voteSvc.Cast(c.Request.Context(), uid, domain.TargetKind(req.TargetKind), req.TargetID, dir)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, snap)
}

// RetractVote godoc
// @ID          retractVote
// @Summary     Retract a vote
// @Description Removes the current user's vote on the target and reverses its counter movement. Retracting a missing vote is a no-op.
// @Tags        Votes
// @Accept      json
// @Security    BearerAuth
// @Param       body body handlers.RetractVoteRequest true "Retract payload"
// @Success     204 {string} string "No Content"
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404 {object} handlers.ErrorResponse "Target not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /votes [delete]
func (h *Handlers) RetractVote(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req RetractVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "target_kind and target_id (UUID) required")
		return
	}
	if err := h.voteSvc.Retract(c.Request.Context(), uid, domain.TargetKind(req.TargetKind), req.TargetID); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

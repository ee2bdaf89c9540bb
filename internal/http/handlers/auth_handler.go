// Auth HTTP handlers.
//
// This file exposes the REST endpoints for account registration and login:
//   - POST /auth/register  (create account)
//   - POST /auth/login     (exchange credentials for a bearer token)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30" example:"alice"`
	Email    string `json:"email"    binding:"required,email"        example:"alice@example.com"`
	Password string `json:"password" binding:"required,min=8"        example:"correct horse battery"`
}

// LoginRequest is the JSON payload for credential login.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required"       example:"correct horse battery"`
}

// LoginResponse wraps the authenticated user and their bearer token.
type LoginResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Register godoc
// @ID          register
// @Summary     Create an account
// @Description Registers a new user with a unique username and email.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body body handlers.RegisterRequest true "Registration payload"
// @Success     201 {object} domain.User
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     409 {object} handlers.ErrorResponse "Username or email taken"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username (3-30), valid email, and password (8+) required")
		return
	}
	u, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies credentials and returns a signed bearer token.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body body handlers.LoginRequest true "Login payload"
// @Success     200 {object} handlers.LoginResponse
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     401 {object} handlers.ErrorResponse "Invalid credentials"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password required")
		return
	}
	u, token, err := h.userSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, LoginResponse{User: *u, Token: token})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tictac1213/JobNotification/internal/dto"
	"github.com/tictac1213/JobNotification/internal/service"
	"github.com/tictac1213/JobNotification/pkg/jwt"
	"github.com/tictac1213/JobNotification/pkg/response"
)

// AuthHandler serves the auth and own-profile endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Signup registers a new student account.
// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.authSvc.Signup(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.Error(c, http.StatusConflict, 11002, "email already registered")
		case errors.Is(err, service.ErrScholarNoExists):
			response.Error(c, http.StatusConflict, 11003, "scholar number already registered")
		case errors.Is(err, service.ErrCourseNotFound):
			response.BadRequest(c, 11004, "course not found")
		default:
			// Course-rule violations carry their own message.
			response.BadRequest(c, 11005, err.Error())
		}
		return
	}

	response.Created(c, result)
}

// Login authenticates by email and password.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, 11001, "invalid email or password")
		case errors.Is(err, service.ErrAccountNotApproved):
			response.Forbidden(c, 11006, "account pending admin approval")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Refresh exchanges a refresh token for a new token pair.
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired),
			errors.Is(err, jwt.ErrTokenInvalid),
			errors.Is(err, service.ErrTokenRevoked):
			response.Unauthorized(c, 10002, "refresh token invalid or expired")
		case errors.Is(err, service.ErrAccountNotApproved):
			response.Forbidden(c, 11006, "account pending admin approval")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Logout revokes the caller's access token.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiresAt, ok := GetTokenInfo(c)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetMe returns the caller's own profile.
// GET /api/users/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.GetMe(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11007, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateProfile updates the caller's own profile.
// PUT /api/users/me
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.authSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11007, "user not found")
		case errors.Is(err, service.ErrEmailExists):
			response.Error(c, http.StatusConflict, 11002, "email already registered")
		case errors.Is(err, service.ErrScholarNoExists):
			response.Error(c, http.StatusConflict, 11003, "scholar number already registered")
		default:
			response.BadRequest(c, 11005, err.Error())
		}
		return
	}

	response.OK(c, result)
}

// UpdateEmailPreferences toggles the caller's notification opt-outs.
// PUT /api/users/me/email-preferences
func (h *AuthHandler) UpdateEmailPreferences(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEmailPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.authSvc.UpdateEmailPreferences(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11007, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

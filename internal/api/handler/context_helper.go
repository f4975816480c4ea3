package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tictac1213/JobNotification/pkg/response"
)

// MustGetUserID extracts user_id from the Gin context. Writes a 401 and
// returns false when the auth middleware did not inject it; callers should
// return immediately in that case.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts role from the Gin context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// GetTokenInfo reads the token id and expiry injected by the auth middleware.
func GetTokenInfo(c *gin.Context) (jti string, expiresAt time.Time, ok bool) {
	v, exists := c.Get("jti")
	if !exists {
		return "", time.Time{}, false
	}
	jti, sok := v.(string)
	if !sok || jti == "" {
		return "", time.Time{}, false
	}
	if e, exists := c.Get("token_expires_at"); exists {
		if t, tok := e.(time.Time); tok {
			expiresAt = t
		}
	}
	return jti, expiresAt, true
}

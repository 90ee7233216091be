package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/session"
)

// POST /auth/guest
func CreateGuestSession(registry *session.Registry, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := registry.Create(c.Request.Context(), true)

		token, err := IssueSessionToken(secret, s.ID, true, s.CreatedAt, s.ExpiresAt)
		if err != nil {
			registry.Remove(c.Request.Context(), s.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, sessionResponse(s, token, "Guest session created"))
	}
}

func sessionResponse(s *session.Session, token, message string) gin.H {
	return gin.H{
		"message":    message,
		"session_id": s.ID,
		"guest":      s.IsGuest(),
		"token":      token,
		"expires_at": s.ExpiresAt,
	}
}

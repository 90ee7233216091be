package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/middleware"
	"github.com/junaidrashid-git/revista-gateway/session"
	"github.com/rs/zerolog/log"
)

// GET /admin/sessions
func GetSessions(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions := registry.List()
		middleware.SetLiveSessions(len(sessions))
		c.JSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
	}
}

// DELETE /admin/sessions/:id
// Logs the device out and forgets its session.
func DeleteSession(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		registry.Remove(c.Request.Context(), id)
		log.Info().Str("session_id", id).Msg("🗑️ Session removed by admin")
		c.JSON(http.StatusOK, gin.H{"message": "Session removed"})
	}
}

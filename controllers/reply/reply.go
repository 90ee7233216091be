// Package reply writes the gateway's JSON error bodies.
package reply

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/api"
	"github.com/junaidrashid-git/revista-gateway/loader"
	"github.com/junaidrashid-git/revista-gateway/session"
	"github.com/junaidrashid-git/revista-gateway/validation"
	"github.com/rs/zerolog/log"
)

// MsgLoginAgain is shown when a customer action has no remote token.
const MsgLoginAgain = "No token found. Please login again."

// Error maps err to a status and writes {"error": ...}. fallback is the
// message used for unexpected failures.
func Error(c *gin.Context, err error, fallback string) {
	var fieldErrs validation.Errors
	var apiErr *api.APIError

	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": fieldErrs})
	case errors.Is(err, session.ErrNotAuthenticated), errors.Is(err, api.ErrMissingToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": MsgLoginAgain})
	case errors.Is(err, loader.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": "Request superseded by a newer one"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": fallback})
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status >= 500 || status < 400 {
			status = http.StatusBadGateway
		}
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		c.JSON(status, gin.H{"error": msg})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("❌ " + fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// BadRequest answers a body that could not be decoded.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// Package auth signs customers in against the Revista API and issues
// the gateway session tokens.
package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/api"
	"github.com/junaidrashid-git/revista-gateway/controllers/reply"
	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/junaidrashid-git/revista-gateway/session"
	"github.com/junaidrashid-git/revista-gateway/validation"
	"github.com/rs/zerolog/log"
)

// POST /auth/login
func Login(registry *session.Registry, client *api.Client, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			reply.BadRequest(c, err)
			return
		}
		if err := validation.Struct(input); err != nil {
			reply.Error(c, err, "Login failed")
			return
		}

		remoteToken, err := client.Login(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			reply.Error(c, err, "Login failed")
			return
		}

		signIn(c, registry, secret, remoteToken, "Login successful")
	}
}

// POST /auth/register
// The new account is signed in right away.
func Register(registry *session.Registry, client *api.Client, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			reply.BadRequest(c, err)
			return
		}
		if err := validation.Struct(input); err != nil {
			reply.Error(c, err, "Registration failed")
			return
		}

		msg, err := client.Register(c.Request.Context(), input)
		if err != nil {
			reply.Error(c, err, "Registration failed")
			return
		}
		if msg == "" {
			msg = "Registration successful"
		}

		remoteToken, err := client.Login(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			reply.Error(c, err, "Registration succeeded but login failed")
			return
		}

		signIn(c, registry, secret, remoteToken, msg)
	}
}

// signIn stores remoteToken in the caller's current session, upgrading
// a guest session in place, or in a new one.
func signIn(c *gin.Context, registry *session.Registry, secret, remoteToken, message string) {
	ctx := c.Request.Context()
	s, err := SessionFromHeader(ctx, c.GetHeader("Authorization"), secret, registry)
	if err != nil {
		s = registry.Create(ctx, false)
	}
	s.MarkSignedIn()

	if err := s.Auth.Login(ctx, remoteToken); err != nil {
		reply.Error(c, err, "Failed to store session")
		return
	}

	token, err := IssueSessionToken(secret, s.ID, false, time.Now(), s.ExpiresAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	log.Info().Str("session_id", s.ID).Msg("✅ Customer signed in")
	c.JSON(http.StatusOK, sessionResponse(s, token, message))
}

// POST /auth/logout
func Logout(sessionOf func(*gin.Context) *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessionOf(c)
		if s == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": reply.MsgLoginAgain})
			return
		}
		s.Logout(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

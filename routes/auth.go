package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/auth"
	"github.com/junaidrashid-git/revista-gateway/middleware"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		limited := authGroup.Group("", middleware.RateLimit(d.LoginRatePerMin))
		limited.POST("/login", auth.Login(d.Registry, d.Client, d.JWTSecret))
		limited.POST("/register", auth.Register(d.Registry, d.Client, d.JWTSecret))

		authGroup.POST("/guest", auth.CreateGuestSession(d.Registry, d.JWTSecret))
		authGroup.POST("/logout", middleware.ValidateToken(d.JWTSecret, d.Registry), auth.Logout(middleware.CurrentSession))
	}
}

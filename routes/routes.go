package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/api"
	orderControllers "github.com/junaidrashid-git/revista-gateway/controllers/order"
	"github.com/junaidrashid-git/revista-gateway/events"
	"github.com/junaidrashid-git/revista-gateway/middleware"
	"github.com/junaidrashid-git/revista-gateway/session"
)

// Deps is what the route groups hand to their controllers.
type Deps struct {
	Registry        *session.Registry
	Client          *api.Client
	Publisher       events.Publisher
	Hub             *orderControllers.Hub
	JWTSecret       string
	AdminAPIKey     string
	LoginRatePerMin int
}

// SetupRoutes is the single entry‐point that wires up every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())

	// 1️⃣ Public Auth routes
	SetupAuthRoutes(r, d)

	// 2️⃣ Public catalog, session aware when a token is sent
	SetupCatalogRoutes(r, d)

	// 3️⃣ Session routes (JWT‐protected)
	SetupUserRoutes(r, d)

	// 4️⃣ Checkout and order routes (JWT‐protected)
	SetupOrderRoutes(r, d)

	// 5️⃣ Admin routes (API‐Key‐protected)
	SetupAdminRoutes(r, d)
}

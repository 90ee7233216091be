package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/junaidrashid-git/revista-gateway/controllers/admin"
	orderControllers "github.com/junaidrashid-git/revista-gateway/controllers/order"
	"github.com/junaidrashid-git/revista-gateway/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.AdminAPIKey))
	{
		// ─────────── Sessions ───────────
		adminGroup.GET("/sessions", adminController.GetSessions(d.Registry))
		adminGroup.DELETE("/sessions/:id", adminController.DeleteSession(d.Registry))

		// ─────────── Orders ───────────
		adminGroup.GET("/orders/export-excel", adminController.ExportOrdersToExcel(d.Registry))
		adminGroup.GET("/orders/ws", orderControllers.AdminOrderWebSocketHandler(d.Hub))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/revista-gateway/controllers/order"
	"github.com/junaidrashid-git/revista-gateway/middleware"
)

func SetupOrderRoutes(r *gin.Engine, d Deps) {
	checkout := r.Group("/checkout")
	checkout.Use(middleware.ValidateToken(d.JWTSecret, d.Registry))
	{
		checkout.POST("/summary", orderControllers.Summary(d.Client))
		checkout.POST("/place", orderControllers.PlaceOrder(d.Client, d.Publisher, d.Hub))
	}

	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(d.JWTSecret, d.Registry))
	{
		orders.GET("", orderControllers.GetOrders())

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler(d.Hub))
	}
}

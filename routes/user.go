package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/revista-gateway/controllers/cart"
	userControllers "github.com/junaidrashid-git/revista-gateway/controllers/user"
	"github.com/junaidrashid-git/revista-gateway/middleware"
)

// SetupUserRoutes registers “/session” and all “/user/*” endpoints.
// Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	r.GET("/session", middleware.ValidateToken(d.JWTSecret, d.Registry), userControllers.GetSession())

	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(d.JWTSecret, d.Registry))
	{
		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(d.Client))
			cartGroup.POST("", cartControllers.AddCartItem(d.Client))
			cartGroup.PUT("/:id", cartControllers.UpdateCartItem())
			cartGroup.DELETE("/:id", cartControllers.DeleteCartItem(d.Client))
			cartGroup.DELETE("", cartControllers.ClearCart(d.Client))
		}

		// ──────────────── Wishlist ────────────────
		wishGroup := userGroup.Group("/wishlist")
		{
			wishGroup.GET("", userControllers.GetWishlist(d.Client))
			wishGroup.POST("", userControllers.AddToWishlist(d.Client))
			wishGroup.DELETE("/:id", userControllers.RemoveFromWishlist(d.Client))
			wishGroup.DELETE("", userControllers.ClearWishlist(d.Client))
			wishGroup.POST("/:id/move-to-cart", userControllers.MoveToCart(d.Client))
		}

		// ──────────────── Addresses ────────────────
		addrGroup := userGroup.Group("/addresses")
		{
			addrGroup.GET("", userControllers.GetAddresses())
			addrGroup.POST("", userControllers.AddAddress(d.Client))
			addrGroup.POST("/refresh", userControllers.RefreshAddresses(d.Client))
			addrGroup.PUT("/:id", userControllers.UpdateAddress())
			addrGroup.DELETE("/:id", userControllers.DeleteAddress())
			addrGroup.PUT("/:id/select", userControllers.SelectAddress())
		}

		// ──────────────── Reviews ────────────────
		userGroup.POST("/reviews", userControllers.SubmitReview(d.Client))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/junaidrashid-git/revista-gateway/controllers/product"
	"github.com/junaidrashid-git/revista-gateway/middleware"
)

// SetupCatalogRoutes registers all “/catalog/*” endpoints.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	catalog := r.Group("/catalog")
	catalog.Use(middleware.OptionalSession(d.JWTSecret, d.Registry))
	{
		catalog.GET("/home", productcontroller.GetHome(d.Client))
		catalog.GET("/categories", productcontroller.GetCategories(d.Client))
		catalog.GET("/categories/popular", productcontroller.GetPopularCategories(d.Client))
		catalog.GET("/flash-sale", productcontroller.GetFlashSale(d.Client))
		catalog.GET("/sellers", productcontroller.GetSellers(d.Client))
		catalog.GET("/sellers/top", productcontroller.GetTopSellers(d.Client))
		catalog.GET("/products/:id/related", productcontroller.GetRelatedProducts(d.Client))
		catalog.GET("/products/:id/reviews", productcontroller.GetReviews(d.Client))
	}
}

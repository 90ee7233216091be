package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/middleware"
)

// GET /session
func GetSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		book := s.Store.Addresses()
		c.JSON(http.StatusOK, gin.H{
			"session":     s.Info(),
			"is_loading":  s.Auth.IsLoading(),
			"selected_id": book.SelectedID,
			"views": gin.H{
				"cart":      s.Views.Cart.Snapshot().LoadedAt,
				"wishlist":  s.Views.Wishlist.Snapshot().LoadedAt,
				"addresses": s.Views.Addresses.Snapshot().LoadedAt,
				"home":      s.Views.Home.Snapshot().LoadedAt,
			},
		})
	}
}

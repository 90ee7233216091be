package userControllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/api"
	"github.com/junaidrashid-git/revista-gateway/controllers/reply"
	"github.com/junaidrashid-git/revista-gateway/middleware"
	"github.com/junaidrashid-git/revista-gateway/models"
)

func wishlistResponse(items []models.FavouriteItem, message string) gin.H {
	body := gin.H{"items": items}
	if message != "" {
		body["message"] = message
	}
	return body
}

// GET /user/wishlist
func GetWishlist(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		if !s.Auth.IsAuthenticated() {
			c.JSON(http.StatusOK, wishlistResponse(s.Store.Favourites(), ""))
			return
		}

		items, err := s.Views.Wishlist.Focus(c.Request.Context(), func(ctx context.Context) ([]models.FavouriteItem, error) {
			token, err := s.Auth.Token()
			if err != nil {
				return nil, err
			}
			return client.Wishlist(ctx, token)
		})
		if err != nil {
			reply.Error(c, err, "Failed to fetch wishlist")
			return
		}
		c.JSON(http.StatusOK, wishlistResponse(s.Store.SyncFavourites(items), ""))
	}
}

// POST /user/wishlist
func AddToWishlist(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)

		var input models.FavouriteItem
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		msg := "Added to wishlist"
		if s.Auth.IsAuthenticated() {
			token, _ := s.Auth.Token()
			remoteMsg, err := client.AddToWishlist(c.Request.Context(), token, input.ID)
			if err != nil {
				reply.Error(c, err, "Failed to add to wishlist")
				return
			}
			if remoteMsg != "" {
				msg = remoteMsg
			}
		}

		status := http.StatusCreated
		if !s.Store.AddFavourite(input) {
			status = http.StatusOK
			msg = "Already in wishlist"
		}
		c.JSON(status, wishlistResponse(s.Store.Favourites(), msg))
	}
}

// DELETE /user/wishlist/:id
func RemoveFromWishlist(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		id := c.Param("id")

		if s.Auth.IsAuthenticated() {
			token, _ := s.Auth.Token()
			if _, err := client.RemoveFromWishlist(c.Request.Context(), token, id); err != nil {
				reply.Error(c, err, "Failed to remove from wishlist")
				return
			}
		}

		if !s.Store.RemoveFavourite(id) && !s.Auth.IsAuthenticated() {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
			return
		}
		c.JSON(http.StatusOK, wishlistResponse(s.Store.Favourites(), "Removed from wishlist"))
	}
}

// DELETE /user/wishlist
func ClearWishlist(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)

		if s.Auth.IsAuthenticated() {
			token, _ := s.Auth.Token()
			if _, err := client.ClearWishlist(c.Request.Context(), token); err != nil {
				reply.Error(c, err, "Failed to clear wishlist")
				return
			}
		}

		s.Store.ClearFavourites()
		s.Views.Wishlist.Set([]models.FavouriteItem{})
		c.JSON(http.StatusOK, wishlistResponse([]models.FavouriteItem{}, "Wishlist cleared"))
	}
}

// POST /user/wishlist/:id/move-to-cart
// Adds one unit of the product to the cart and drops it from the
// wishlist.
func MoveToCart(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		ctx := c.Request.Context()
		id := c.Param("id")

		fav, ok := s.Store.Favourite(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
			return
		}

		if s.Auth.IsAuthenticated() {
			token, _ := s.Auth.Token()
			if _, err := client.AddToCart(ctx, token, id, 1); err != nil {
				reply.Error(c, err, "Failed to add item to cart")
				return
			}
			if _, err := client.RemoveFromWishlist(ctx, token, id); err != nil {
				reply.Error(c, err, "Failed to remove from wishlist")
				return
			}
		}

		item := models.CartItem{ID: fav.ID, Name: fav.Name, Price: fav.Price, Quantity: 1}
		if fav.Image != "" {
			item.Images = []string{fav.Image}
		}
		s.Store.AddCartItem(item)
		s.Store.RemoveFavourite(id)

		cart, favs := s.Store.Cart(), s.Store.Favourites()
		s.Views.Cart.Set(cart)
		s.Views.Wishlist.Set(favs)

		c.JSON(http.StatusOK, gin.H{
			"message":  "Moved to cart",
			"cart":     cart,
			"wishlist": favs,
		})
	}
}

package cartControllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/api"
	"github.com/junaidrashid-git/revista-gateway/checkout"
	"github.com/junaidrashid-git/revista-gateway/controllers/reply"
	"github.com/junaidrashid-git/revista-gateway/middleware"
	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/junaidrashid-git/revista-gateway/session"
)

// QuantityInput changes a cart line. Action is "increment" or
// "decrement"; otherwise Quantity is set as is.
type QuantityInput struct {
	Quantity int    `json:"quantity"`
	Action   string `json:"action"`
}

func cartResponse(items []models.CartItem, message string) gin.H {
	totals := checkout.CalculateTotals(items)
	body := gin.H{
		"items":   items,
		"totals":  totals,
		"summary": checkout.Format(totals),
	}
	if message != "" {
		body["message"] = message
	}
	return body
}

// GET /user/cart
// Signed-in customers get the remote cart, which also replaces the
// session cart. Guests get the session cart.
func GetCart(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		if !s.Auth.IsAuthenticated() {
			c.JSON(http.StatusOK, cartResponse(s.Store.Cart(), ""))
			return
		}

		items, err := s.Views.Cart.Focus(c.Request.Context(), func(ctx context.Context) ([]models.CartItem, error) {
			token, err := s.Auth.Token()
			if err != nil {
				return nil, err
			}
			return client.Cart(ctx, token)
		})
		if err != nil {
			reply.Error(c, err, "Failed to fetch cart")
			return
		}

		c.JSON(http.StatusOK, cartResponse(s.Store.SyncCart(items), ""))
	}
}

// POST /user/cart
func AddCartItem(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)

		var input models.CartItem
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity < 1 {
			input.Quantity = 1
		}

		msg := "Item added to cart"
		if s.Auth.IsAuthenticated() {
			token, _ := s.Auth.Token()
			remoteMsg, err := client.AddToCart(c.Request.Context(), token, input.ID, input.Quantity)
			if err != nil {
				reply.Error(c, err, "Failed to add item to cart")
				return
			}
			if remoteMsg != "" {
				msg = remoteMsg
			}
		}

		status := http.StatusCreated
		if !s.Store.AddCartItem(input) {
			status = http.StatusOK
			msg = "Item already in cart"
		}
		c.JSON(status, cartResponse(s.Store.Cart(), msg))
	}
}

// PUT /user/cart/:id
func UpdateCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		id := c.Param("id")

		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var ok bool
		switch input.Action {
		case "increment":
			_, ok = s.Store.StepCartQuantity(id, true)
		case "decrement":
			_, ok = s.Store.StepCartQuantity(id, false)
		case "":
			_, ok = s.Store.SetCartQuantity(id, input.Quantity)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action " + input.Action})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(s.Store.Cart(), ""))
	}
}

// DELETE /user/cart/:id
func DeleteCartItem(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		id := c.Param("id")

		if s.Auth.IsAuthenticated() {
			if err := removeRemote(c.Request.Context(), client, s, id); err != nil {
				reply.Error(c, err, "Failed to delete item")
				return
			}
		}

		if !s.Store.RemoveCartItem(id) && !s.Auth.IsAuthenticated() {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(s.Store.Cart(), "Item removed from cart"))
	}
}

// removeRemote deletes the remote row of product id. Rows added through
// the gateway carry no key yet, so the remote cart is read to find it.
func removeRemote(ctx context.Context, client *api.Client, s *session.Session, id string) error {
	token, err := s.Auth.Token()
	if err != nil {
		return err
	}

	key := ""
	if item, ok := s.Store.CartItem(id); ok {
		key = item.Key
	}
	if key == "" {
		rows, err := client.Cart(ctx, token)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if row.ID == id {
				key = row.Key
				break
			}
		}
	}
	if key == "" {
		return nil
	}
	_, err = client.RemoveFromCart(ctx, token, key)
	return err
}

// DELETE /user/cart
func ClearCart(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)

		if s.Auth.IsAuthenticated() {
			token, _ := s.Auth.Token()
			if _, err := client.ClearCart(c.Request.Context(), token); err != nil {
				reply.Error(c, err, "Failed to clear cart")
				return
			}
		}

		s.Store.ClearCart()
		s.Views.Cart.Set([]models.CartItem{})
		c.JSON(http.StatusOK, cartResponse([]models.CartItem{}, "Cart cleared"))
	}
}

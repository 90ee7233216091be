package orderControllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/api"
	"github.com/junaidrashid-git/revista-gateway/checkout"
	"github.com/junaidrashid-git/revista-gateway/controllers/reply"
	"github.com/junaidrashid-git/revista-gateway/events"
	"github.com/junaidrashid-git/revista-gateway/middleware"
	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/junaidrashid-git/revista-gateway/session"
	"github.com/rs/zerolog/log"
)

// -------- Request Structs --------

type SummaryRequest struct {
	Items []models.CartItem `json:"items"`
}

type PlaceOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
	AddressID     string `json:"address_id"`
}

// -------- Helpers --------

// syncCartOnce loads the remote cart into the session for signed-in
// customers whose cart was never synced. Once synced, the session cart is
// the source of truth, quantity edits included.
func syncCartOnce(ctx context.Context, client *api.Client, s *session.Session) error {
	if !s.Auth.IsAuthenticated() || s.Store.CartSynced() {
		return nil
	}
	token, err := s.Auth.Token()
	if err != nil {
		return err
	}
	items, err := client.Cart(ctx, token)
	if err != nil {
		return err
	}
	s.Store.SyncCart(items)
	return nil
}

// -------- Handlers --------

// POST /checkout/summary
// Totals the posted items, or the current cart when none are posted.
func Summary(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)

		var req SummaryRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		items := req.Items
		if len(items) == 0 {
			if err := syncCartOnce(c.Request.Context(), client, s); err != nil {
				reply.Error(c, err, "Failed to fetch cart")
				return
			}
			items = s.Store.Cart()
		}

		totals := checkout.CalculateTotals(items)
		c.JSON(http.StatusOK, gin.H{
			"items":   items,
			"totals":  totals,
			"summary": checkout.Format(totals),
		})
	}
}

// POST /checkout/place
// The order is recorded before the remote cart is cleared; a failed
// clear is reported in the response but does not undo the order.
func PlaceOrder(client *api.Client, publisher events.Publisher, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		ctx := c.Request.Context()

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		switch models.PaymentMethod(req.PaymentMethod) {
		case "":
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a payment method to proceed."})
			return
		case models.PaymentCashOnDelivery:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported payment method " + req.PaymentMethod})
			return
		}

		book := s.Store.Addresses()
		var addr *models.Address
		if req.AddressID != "" {
			a, ok := book.Find(req.AddressID)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
				return
			}
			addr = &a
		} else if a, ok := book.Selected(); ok {
			addr = &a
		}

		if err := syncCartOnce(ctx, client, s); err != nil {
			reply.Error(c, err, "Failed to fetch cart")
			return
		}
		order, ok := s.Store.Checkout(addr, models.PaymentCashOnDelivery)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot checkout an empty cart"})
			return
		}
		s.Views.Cart.Set([]models.CartItem{})
		middleware.RecordOrderPlaced()
		log.Info().Str("session_id", s.ID).Str("order_ref", order.Ref).Msg("🛒 Order placed")

		cartCleared := true
		if s.Auth.IsAuthenticated() {
			token, _ := s.Auth.Token()
			if _, err := client.ClearCart(ctx, token); err != nil {
				cartCleared = false
				log.Error().Err(err).Str("order_ref", order.Ref).Msg("❌ Failed to clear remote cart")
			}
		}

		if err := publisher.PublishOrder(ctx, events.OrderPlaced{SessionID: s.ID, Order: order}); err != nil {
			log.Error().Err(err).Str("order_ref", order.Ref).Msg("❌ Failed to publish order")
		}
		hub.Broadcast(s.ID, order)

		c.JSON(http.StatusCreated, gin.H{
			"message":      "Your order has been placed.",
			"order":        order,
			"summary":      checkout.Format(order.Totals),
			"cart_cleared": cartCleared,
		})
	}
}

// GET /orders
func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"orders": s.Store.Orders()})
	}
}

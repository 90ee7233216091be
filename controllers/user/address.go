package userControllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/revista-gateway/api"
	"github.com/junaidrashid-git/revista-gateway/controllers/reply"
	"github.com/junaidrashid-git/revista-gateway/middleware"
	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/junaidrashid-git/revista-gateway/validation"
	"github.com/rs/zerolog/log"
)

// GET /user/addresses
func GetAddresses() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, s.Store.Addresses())
	}
}

// POST /user/addresses
// Signed-in customers save the address remotely first. When the API does
// not echo an id, a local one is assigned.
func AddAddress(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)

		var input models.AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			reply.BadRequest(c, err)
			return
		}
		if err := validation.Struct(input); err != nil {
			reply.Error(c, err, "Failed to add address")
			return
		}

		id, msg := "", "Address added"
		if s.Auth.IsAuthenticated() {
			token, _ := s.Auth.Token()
			remoteID, remoteMsg, err := client.AddAddress(c.Request.Context(), token, input)
			if err != nil {
				reply.Error(c, err, "Failed to add address")
				return
			}
			id = remoteID
			if remoteMsg != "" {
				msg = remoteMsg
			}
		}
		if id == "" {
			id = uuid.NewString()
			log.Debug().Str("address_id", id).Msg("No remote address id, using a local one")
		}

		addr := input.ToAddress(id)
		book := s.Store.AddAddress(addr)
		c.JSON(http.StatusCreated, gin.H{
			"message":     msg,
			"address":     addr,
			"addresses":   book.Addresses,
			"selected_id": book.SelectedID,
		})
	}
}

// PUT /user/addresses/:id
func UpdateAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		id := c.Param("id")

		if _, ok := s.Store.Addresses().Find(id); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}

		var input models.AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			reply.BadRequest(c, err)
			return
		}
		if err := validation.Struct(input); err != nil {
			reply.Error(c, err, "Failed to update address")
			return
		}

		c.JSON(http.StatusOK, s.Store.UpdateAddress(input.ToAddress(id)))
	}
}

// DELETE /user/addresses/:id
func DeleteAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		id := c.Param("id")

		if _, ok := s.Store.Addresses().Find(id); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		c.JSON(http.StatusOK, s.Store.RemoveAddress(id))
	}
}

// PUT /user/addresses/:id/select
func SelectAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		id := c.Param("id")

		if _, ok := s.Store.Addresses().Find(id); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		c.JSON(http.StatusOK, s.Store.SelectAddress(id))
	}
}

// POST /user/addresses/refresh
// Reloads the address list from the API. A newer refresh of the same
// session supersedes this one.
func RefreshAddresses(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)

		addrs, err := s.Views.Addresses.Focus(c.Request.Context(), func(ctx context.Context) ([]models.Address, error) {
			token, err := s.Auth.Token()
			if err != nil {
				return nil, err
			}
			return client.Addresses(ctx, token)
		})
		if err != nil {
			reply.Error(c, err, "Failed to fetch addresses. Please try again.")
			return
		}

		c.JSON(http.StatusOK, s.Store.ResetAddresses(addrs))
	}
}

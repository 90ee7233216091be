package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/api"
	"github.com/junaidrashid-git/revista-gateway/controllers/reply"
	"github.com/junaidrashid-git/revista-gateway/middleware"
	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/junaidrashid-git/revista-gateway/validation"
)

// POST /user/reviews
func SubmitReview(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)

		var input models.ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			reply.BadRequest(c, err)
			return
		}
		if err := validation.Struct(input); err != nil {
			reply.Error(c, err, "Please provide a rating and comment.")
			return
		}

		token, err := s.Auth.Token()
		if err != nil {
			reply.Error(c, err, "Failed to submit review")
			return
		}
		msg, err := client.SubmitReview(c.Request.Context(), token, input)
		if err != nil {
			reply.Error(c, err, "Failed to submit review")
			return
		}
		if msg == "" {
			msg = "Review submitted"
		}
		c.JSON(http.StatusCreated, gin.H{"message": msg})
	}
}

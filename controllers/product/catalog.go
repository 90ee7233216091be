package productcontroller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/api"
	"github.com/junaidrashid-git/revista-gateway/controllers/reply"
	"github.com/junaidrashid-git/revista-gateway/middleware"
	"github.com/junaidrashid-git/revista-gateway/models"
)

// withImageURLs rewrites product image names to public URLs.
func withImageURLs(client *api.Client, products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		p.Thumbnail = client.ProductImageURL(p.Thumbnail)
		if len(p.Images) > 0 {
			images := make([]string, len(p.Images))
			for j, img := range p.Images {
				images[j] = client.ProductImageURL(img)
			}
			p.Images = images
		}
		out[i] = p
	}
	return out
}

// GET /catalog/home?q=
// With a session the load runs through the session's home loader, so a
// newer request of the same device supersedes an older one.
func GetHome(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			feed models.HomeFeed
			err  error
		)
		if s := middleware.CurrentSession(c); s != nil {
			feed, err = s.Views.Home.Focus(c.Request.Context(), func(ctx context.Context) (models.HomeFeed, error) {
				return client.HomeFeed(ctx)
			})
		} else {
			feed, err = client.HomeFeed(c.Request.Context())
		}
		if err != nil {
			reply.Error(c, err, "Failed to fetch home")
			return
		}

		feed.LatestProducts = withImageURLs(client, api.FilterProducts(feed.LatestProducts, c.Query("q")))
		c.JSON(http.StatusOK, feed)
	}
}

// GET /catalog/categories
func GetCategories(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := client.Categories(c.Request.Context())
		if err != nil {
			reply.Error(c, err, "Failed to fetch categories")
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// GET /catalog/categories/popular
func GetPopularCategories(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := client.PopularCategories(c.Request.Context())
		if err != nil {
			reply.Error(c, err, "Failed to fetch categories")
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// GET /catalog/flash-sale
func GetFlashSale(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := client.FlashSale(c.Request.Context())
		if err != nil {
			reply.Error(c, err, "Failed to fetch flash sale")
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": withImageURLs(client, products)})
	}
}

// GET /catalog/products/:id/related
func GetRelatedProducts(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := client.RelatedProducts(c.Request.Context(), c.Param("id"))
		if err != nil {
			reply.Error(c, err, "Failed to fetch related products")
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": withImageURLs(client, products)})
	}
}

// GET /catalog/products/:id/reviews
func GetReviews(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := client.Reviews(c.Request.Context(), c.Param("id"))
		if err != nil {
			reply.Error(c, err, "Failed to fetch reviews")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"reviews":        reviews,
			"average_rating": models.AverageRating(reviews),
			"count":          len(reviews),
		})
	}
}

// SellerView is a seller with resolved image URLs.
type SellerView struct {
	models.Seller
	BannerURL string `json:"banner_url,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

func sellerViews(client *api.Client, sellers []models.Seller) []SellerView {
	out := make([]SellerView, len(sellers))
	for i, s := range sellers {
		banner, avatar := client.SellerImageURLs(s)
		out[i] = SellerView{Seller: s, BannerURL: banner, ImageURL: avatar}
	}
	return out
}

// GET /catalog/sellers
func GetSellers(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellers, err := client.Sellers(c.Request.Context())
		if err != nil {
			reply.Error(c, err, "Failed to fetch sellers")
			return
		}
		c.JSON(http.StatusOK, gin.H{"sellers": sellerViews(client, sellers)})
	}
}

// GET /catalog/sellers/top
func GetTopSellers(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellers, err := client.TopSellers(c.Request.Context())
		if err != nil {
			reply.Error(c, err, "Failed to fetch sellers")
			return
		}
		c.JSON(http.StatusOK, gin.H{"sellers": sellerViews(client, sellers)})
	}
}

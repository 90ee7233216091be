package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

func (c *Client) get(ctx context.Context, path string) (gjson.Result, error) {
	return c.do(ctx, request{method: http.MethodGet, path: path})
}

func (c *Client) Banners(ctx context.Context) ([]models.Banner, error) {
	res, err := c.get(ctx, PathBanners)
	if err != nil {
		return nil, err
	}
	items := list(res, "banners")
	out := make([]models.Banner, 0, len(items))
	for _, item := range items {
		out = append(out, parseBanner(item))
	}
	return out, nil
}

func (c *Client) PopularCategories(ctx context.Context) ([]models.Category, error) {
	return c.categories(ctx, PathPopularCats)
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	return c.categories(ctx, PathCategories)
}

func (c *Client) categories(ctx context.Context, path string) ([]models.Category, error) {
	res, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	items := list(res, "categories")
	out := make([]models.Category, 0, len(items))
	for _, item := range items {
		out = append(out, parseCategory(item))
	}
	return out, nil
}

func (c *Client) LatestProducts(ctx context.Context) ([]models.Product, error) {
	return c.products(ctx, PathLatestProducts)
}

func (c *Client) FlashSale(ctx context.Context) ([]models.Product, error) {
	return c.products(ctx, PathFlashSale)
}

func (c *Client) RelatedProducts(ctx context.Context, productID string) ([]models.Product, error) {
	return c.products(ctx, withID(PathRelated, productID))
}

func (c *Client) products(ctx context.Context, path string) ([]models.Product, error) {
	res, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return parseProducts(list(res, "products")), nil
}

func (c *Client) TopSellers(ctx context.Context) ([]models.Seller, error) {
	return c.sellers(ctx, PathTopSellers)
}

func (c *Client) Sellers(ctx context.Context) ([]models.Seller, error) {
	return c.sellers(ctx, PathAllSellers)
}

func (c *Client) sellers(ctx context.Context, path string) ([]models.Seller, error) {
	res, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	items := list(res, "sellers")
	out := make([]models.Seller, 0, len(items))
	for _, item := range items {
		out = append(out, parseSeller(item))
	}
	return out, nil
}

func (c *Client) Reviews(ctx context.Context, productID string) ([]models.Review, error) {
	res, err := c.get(ctx, withID(PathReviews, productID))
	if err != nil {
		return nil, err
	}
	items := list(res, "reviews")
	out := make([]models.Review, 0, len(items))
	for _, item := range items {
		out = append(out, parseReview(item))
	}
	return out, nil
}

// HomeFeed loads banners, popular categories and latest products
// concurrently. Any failure fails the whole feed.
func (c *Client) HomeFeed(ctx context.Context) (models.HomeFeed, error) {
	var feed models.HomeFeed
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		feed.Banners, err = c.Banners(gctx)
		return err
	})
	g.Go(func() (err error) {
		feed.Categories, err = c.PopularCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		feed.LatestProducts, err = c.LatestProducts(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.HomeFeed{}, err
	}
	return feed, nil
}

// FilterProducts keeps the products whose name contains query, ignoring
// case. An empty query keeps everything.
func FilterProducts(products []models.Product, query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return out
}

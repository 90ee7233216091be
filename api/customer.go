package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/junaidrashid-git/revista-gateway/models"
)

// ─────────── Cart ───────────

// AddToCart puts quantity units of productID in the remote cart.
func (c *Client) AddToCart(ctx context.Context, token, productID string, quantity int) (string, error) {
	res, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   PathCartAdd,
		token:  token,
		auth:   true,
		body:   form{"id": productID, "quantity": strconv.Itoa(quantity)},
	})
	if err != nil {
		return "", err
	}
	return message(res), nil
}

func (c *Client) Cart(ctx context.Context, token string) ([]models.CartItem, error) {
	res, err := c.do(ctx, request{method: http.MethodGet, path: PathCart, token: token, auth: true})
	if err != nil {
		return nil, err
	}
	items := list(res, "cart")
	out := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		out = append(out, parseCartItem(item))
	}
	return out, nil
}

// RemoveFromCart drops the cart row identified by key.
func (c *Client) RemoveFromCart(ctx context.Context, token, key string) (string, error) {
	res, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   PathCartRemove,
		token:  token,
		auth:   true,
		body:   form{"key": key},
	})
	if err != nil {
		return "", err
	}
	return message(res), nil
}

func (c *Client) ClearCart(ctx context.Context, token string) (string, error) {
	res, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   PathCartClear,
		token:  token,
		auth:   true,
		body:   map[string]string{},
	})
	if err != nil {
		return "", err
	}
	return message(res), nil
}

// ─────────── Wishlist ───────────

func (c *Client) AddToWishlist(ctx context.Context, token, productID string) (string, error) {
	return c.wishlistCall(ctx, token, PathWishlistAdd, productID)
}

func (c *Client) RemoveFromWishlist(ctx context.Context, token, productID string) (string, error) {
	return c.wishlistCall(ctx, token, PathWishlistRemove, productID)
}

func (c *Client) wishlistCall(ctx context.Context, token, path, productID string) (string, error) {
	res, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path,
		token:  token,
		auth:   true,
		body:   form{"product_id": productID},
	})
	if err != nil {
		return "", err
	}
	return message(res), nil
}

func (c *Client) Wishlist(ctx context.Context, token string) ([]models.FavouriteItem, error) {
	res, err := c.do(ctx, request{method: http.MethodGet, path: PathWishlist, token: token, auth: true})
	if err != nil {
		return nil, err
	}
	items := list(res, "wishlist")
	out := make([]models.FavouriteItem, 0, len(items))
	for _, item := range items {
		out = append(out, parseFavourite(item))
	}
	return out, nil
}

func (c *Client) ClearWishlist(ctx context.Context, token string) (string, error) {
	res, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   PathWishlistClear,
		token:  token,
		auth:   true,
		body:   map[string]string{},
	})
	if err != nil {
		return "", err
	}
	return message(res), nil
}

// ─────────── Addresses ───────────

func (c *Client) Addresses(ctx context.Context, token string) ([]models.Address, error) {
	res, err := c.do(ctx, request{method: http.MethodGet, path: PathAddressList, token: token, auth: true})
	if err != nil {
		return nil, err
	}
	items := list(res, "addresses")
	out := make([]models.Address, 0, len(items))
	for _, item := range items {
		out = append(out, parseAddress(item))
	}
	return out, nil
}

// AddAddress stores a billing address remotely. The returned id is
// empty when the API does not echo one.
func (c *Client) AddAddress(ctx context.Context, token string, in models.AddressInput) (id, msg string, err error) {
	res, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   PathAddressAdd,
		token:  token,
		auth:   true,
		body: map[string]any{
			"contact_person_name": in.Name,
			"phone":               in.Phone,
			"address_type":        in.BillingType,
			"country":             in.Country,
			"city":                in.City,
			"zip":                 in.Postcode,
			"address":             in.Address,
			"latitude":            in.Latitude,
			"longitude":           in.Longitude,
			"is_billing":          1,
		},
	})
	if err != nil {
		return "", "", err
	}
	return firstString(res, "id", "address.id", "data.id"), message(res), nil
}

// ─────────── Reviews ───────────

func (c *Client) SubmitReview(ctx context.Context, token string, in models.ReviewInput) (string, error) {
	res, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   PathSubmitReview,
		token:  token,
		auth:   true,
		body: map[string]any{
			"product_id": in.ProductID,
			"comment":    in.Comment,
			"rating":     in.Rating,
		},
	})
	if err != nil {
		return "", err
	}
	return message(res), nil
}

package api

import (
	"strings"

	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/tidwall/gjson"
)

// list returns the array at res, or at res.field when res is an object.
func list(res gjson.Result, field string) []gjson.Result {
	if res.IsArray() {
		return res.Array()
	}
	if v := res.Get(field); v.IsArray() {
		return v.Array()
	}
	return nil
}

// firstString returns the first non-empty string among paths.
func firstString(res gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := res.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func firstFloat(res gjson.Result, paths ...string) float64 {
	for _, p := range paths {
		if v := res.Get(p); v.Exists() {
			return v.Float()
		}
	}
	return 0
}

// images decodes the images field, which the API sends either as an
// array or as a JSON-encoded string holding one.
func images(res gjson.Result) []string {
	v := res.Get("images")
	if v.Type == gjson.String && gjson.Valid(v.String()) {
		v = gjson.Parse(v.String())
	}
	if !v.IsArray() {
		return nil
	}
	var out []string
	for _, img := range v.Array() {
		name := img.String()
		if img.IsObject() {
			name = img.Get("image_name").String()
		}
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func parseProduct(res gjson.Result) models.Product {
	p := models.Product{
		ID:           res.Get("id").String(),
		Name:         res.Get("name").String(),
		Price:        firstFloat(res, "unit_price", "price"),
		Thumbnail:    res.Get("thumbnail").String(),
		Images:       images(res),
		Discount:     res.Get("discount").Float(),
		DiscountType: res.Get("discount_type").String(),
		Tax:          res.Get("tax").Float(),
		ShippingCost: res.Get("shipping_cost").Float(),
		Details:      res.Get("details").String(),
	}
	if rating := res.Get("rating"); rating.IsArray() {
		p.Rating = rating.Get("0.average").Float()
	} else {
		p.Rating = rating.Float()
	}
	return p
}

func parseProducts(items []gjson.Result) []models.Product {
	out := make([]models.Product, 0, len(items))
	for _, item := range items {
		out = append(out, parseProduct(item))
	}
	return out
}

// parseCartItem reads a remote cart row. ID is the product id; Key is
// the row id the API expects on removal.
func parseCartItem(res gjson.Result) models.CartItem {
	quantity := int(res.Get("quantity").Int())
	if quantity < 1 {
		quantity = 1
	}
	return models.CartItem{
		ID:           firstString(res, "product_id", "id"),
		Key:          res.Get("id").String(),
		Name:         res.Get("name").String(),
		Price:        firstFloat(res, "price", "unit_price"),
		Quantity:     quantity,
		Images:       nonEmpty(res.Get("thumbnail").String()),
		Discount:     res.Get("discount").Float(),
		DiscountType: res.Get("discount_type").String(),
		Tax:          res.Get("tax").Float(),
		ShippingCost: res.Get("shipping_cost").Float(),
	}
}

func parseFavourite(res gjson.Result) models.FavouriteItem {
	info := res.Get("product_full_info")
	if !info.Exists() {
		info = res
	}
	return models.FavouriteItem{
		ID:    firstString(res, "product_id", "product_full_info.id", "id"),
		Name:  info.Get("name").String(),
		Price: firstFloat(info, "unit_price", "price"),
		Image: info.Get("thumbnail").String(),
	}
}

func parseAddress(res gjson.Result) models.Address {
	return models.Address{
		ID:          res.Get("id").String(),
		Name:        res.Get("contact_person_name").String(),
		Address:     res.Get("address").String(),
		City:        res.Get("city").String(),
		Postcode:    res.Get("zip").String(),
		Phone:       res.Get("phone").String(),
		Country:     res.Get("country").String(),
		BillingType: res.Get("address_type").String(),
		Latitude:    res.Get("latitude").String(),
		Longitude:   res.Get("longitude").String(),
	}
}

func parseCategory(res gjson.Result) models.Category {
	c := models.Category{
		ID:   res.Get("id").String(),
		Name: res.Get("name").String(),
		Icon: res.Get("icon").String(),
	}
	for _, child := range res.Get("childes").Array() {
		c.Children = append(c.Children, parseCategory(child))
	}
	return c
}

func parseSeller(res gjson.Result) models.Seller {
	return models.Seller{
		ID:            firstString(res, "id", "seller_id"),
		Name:          firstString(res, "name", "shop.name"),
		Banner:        firstString(res, "banner", "shop.banner"),
		Image:         firstString(res, "image", "seller.image"),
		Rating:        res.Get("rating").Float(),
		TotalProducts: int(firstFloat(res, "total_products", "product_count")),
	}
}

func parseReview(res gjson.Result) models.Review {
	return models.Review{
		ID:           res.Get("id").String(),
		ProductID:    res.Get("product_id").String(),
		CustomerName: strings.TrimSpace(res.Get("customer.f_name").String() + " " + res.Get("customer.l_name").String()),
		Comment:      res.Get("comment").String(),
		Rating:       int(res.Get("rating").Int()),
	}
}

func parseBanner(res gjson.Result) models.Banner {
	return models.Banner{
		ID:         res.Get("id").String(),
		Photo:      res.Get("photo").String(),
		URL:        res.Get("url").String(),
		BannerType: res.Get("banner_type").String(),
	}
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// ProductImageURL returns the public URL of a product image file.
func (c *Client) ProductImageURL(name string) string {
	return c.publicURL(productImagePath, name)
}

// SellerImageURLs returns the public banner and avatar URLs of a seller.
func (c *Client) SellerImageURLs(s models.Seller) (banner, avatar string) {
	return c.publicURL(sellerBannerPath, s.Banner), c.publicURL(sellerAvatarPath, s.Image)
}

// publicURL resolves a stored file name under dir. Absolute URLs pass
// through unchanged.
func (c *Client) publicURL(dir, name string) string {
	if name == "" || strings.HasPrefix(name, "http") {
		return name
	}
	return c.baseURL + dir + name
}

package api

import "net/url"

// Paths of the Revista API v4, relative to the base URL.
const (
	PathLogin          = "/api/v4/auth/login"
	PathSignup         = "/api/v4/auth/register"
	PathBanners        = "/api/v4/banners"
	PathPopularCats    = "/api/v4/categories/popular-categories"
	PathCategories     = "/api/v4/categories"
	PathLatestProducts = "/api/v4/products/latest"
	PathFlashSale      = "/api/v4/flash-deals"
	PathTopSellers     = "/api/v4/seller/top"
	PathAllSellers     = "/api/v4/seller/all"
	PathRelated        = "/api/v4/products/related-products/"
	PathReviews        = "/api/v4/products/reviews/"
	PathSubmitReview   = "/api/v4/products/reviews/submit"
	PathCartAdd        = "/api/v4/cart/add"
	PathCart           = "/api/v4/cart"
	PathCartRemove     = "/api/v4/cart/remove"
	PathCartClear      = "/api/v4/cart/remove-all"
	PathAddressList    = "/api/v4/customer/address/list"
	PathAddressAdd     = "/api/v4/customer/address/add"
	PathWishlistAdd    = "/api/v4/customer/wish-list/add"
	PathWishlistRemove = "/api/v4/customer/wish-list/remove"
	PathWishlist       = "/api/v4/customer/wish-list"
	PathWishlistClear  = "/api/v4/customer/wish-list/clear-all"
)

// Storage locations of the images the API refers to by file name.
const (
	productImagePath = "/storage/app/public/product/"
	sellerBannerPath = "/storage/app/public/shop/banner/"
	sellerAvatarPath = "/storage/app/public/seller/"
)

func withID(prefix, id string) string {
	return prefix + url.PathEscape(id)
}

package models

type Category struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Icon     string     `json:"icon,omitempty"`
	Children []Category `json:"childes,omitempty"`
}

type Banner struct {
	ID         string `json:"id"`
	Photo      string `json:"photo"`
	URL        string `json:"url,omitempty"`
	BannerType string `json:"banner_type,omitempty"`
}

type Seller struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Banner        string  `json:"banner,omitempty"`
	Image         string  `json:"image,omitempty"`
	Rating        float64 `json:"rating"`
	TotalProducts int     `json:"total_products"`
}

type Review struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	CustomerName string `json:"customer_name,omitempty"`
	Comment      string `json:"comment"`
	Rating       int    `json:"rating"`
}

// ReviewInput is the body of a review submission.
type ReviewInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Comment   string `json:"comment" validate:"required"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
}

// HomeFeed is what the home screen renders on focus.
type HomeFeed struct {
	Banners        []Banner   `json:"banners"`
	Categories     []Category `json:"categories"`
	LatestProducts []Product  `json:"latest_products"`
}

// AverageRating returns the mean rating of reviews, or 0 for none.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

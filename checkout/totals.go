package checkout

import (
	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/shopspring/decimal"
)

// CalculateTotals computes the checkout summary of items.
//
// Shipping cost is taken once per line, not per unit. Unknown discount
// types contribute no discount. The grand total is not floored at zero
// and no rounding is applied here; see FormatAmount for display.
func CalculateTotals(items []models.CartItem) models.Totals {
	var t models.Totals

	for _, item := range items {
		qty := float64(item.Quantity)

		t.SubTotal += item.Price * qty
		t.TotalDiscount += discountAmount(item)
		t.TotalTax += (item.Tax / 100) * item.Price * qty
		t.TotalShipping += item.ShippingCost
	}

	t.Total = t.SubTotal + t.TotalTax + t.TotalShipping - t.TotalDiscount
	return t
}

func discountAmount(item models.CartItem) float64 {
	qty := float64(item.Quantity)
	switch item.DiscountType {
	case models.DiscountFlat:
		return item.Discount * qty
	case models.DiscountPercent:
		return (item.Price * item.Discount / 100) * qty
	default:
		return 0
	}
}

// FormatAmount renders an amount with two decimals for display.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// Summary is the display form of a Totals value.
type Summary struct {
	SubTotal string `json:"sub_total"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
}

// Format renders every field of t with FormatAmount.
func Format(t models.Totals) Summary {
	return Summary{
		SubTotal: FormatAmount(t.SubTotal),
		Tax:      FormatAmount(t.TotalTax),
		Shipping: FormatAmount(t.TotalShipping),
		Discount: FormatAmount(t.TotalDiscount),
		Total:    FormatAmount(t.Total),
	}
}

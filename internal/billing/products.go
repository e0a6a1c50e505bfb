// Package billing holds the store product catalog the app renders in
// its upsell flow. The backend never talks to the store directly; it
// only confirms transactions the app or the billing webhook reports.
package billing

// Product mirrors a store listing.
type Product struct {
	ID             string
	Title          string
	Description    string
	Price          int
	LocalizedPrice string
}

// PremiumMonthly is the single premium subscription product.
func PremiumMonthly(productID string) Product {
	return Product{
		ID:             productID,
		Title:          "Premium Plan",
		Description:    "Monthly premium subscription",
		Price:          1000,
		LocalizedPrice: "¥1,000",
	}
}

package order

import (
	"fmt"

	"meatdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// FreeDeliveryThreshold: orders whose items total strictly exceeds it ship for free.
	FreeDeliveryThreshold = decimal.NewFromInt(500)
	StandardDeliveryFee   = decimal.NewFromInt(30)
	PlatformFee           = decimal.NewFromInt(5)
	TaxRate               = decimal.RequireFromString("0.05")
)

// Pricing is frozen at creation and never recomputed.
type Pricing struct {
	ItemsTotal  decimal.Decimal
	DeliveryFee decimal.Decimal
	PlatformFee decimal.Decimal
	Taxes       decimal.Decimal
	Discount    decimal.Decimal
	GrandTotal  decimal.Decimal
}

// CalculatePricing prices a basket:
//
//	itemsTotal  = Σ unitPrice × quantity, rounded to MoneyPlaces
//	deliveryFee = 0 if itemsTotal > 500, else 30
//	platformFee = 5
//	taxes       = round(itemsTotal × 5%) to a whole unit
//	grandTotal  = itemsTotal + deliveryFee + platformFee + taxes − discount
func CalculatePricing(items []Item) Pricing {
	itemsTotal := decimal.Zero
	for _, item := range items {
		itemsTotal = itemsTotal.Add(item.LinePrice())
	}
	itemsTotal = itemsTotal.Round(MoneyPlaces)

	deliveryFee := StandardDeliveryFee
	if itemsTotal.GreaterThan(FreeDeliveryThreshold) {
		deliveryFee = decimal.Zero
	}

	p := Pricing{
		ItemsTotal:  itemsTotal,
		DeliveryFee: deliveryFee,
		PlatformFee: PlatformFee,
		Taxes:       itemsTotal.Mul(TaxRate).Round(0),
		Discount:    decimal.Zero,
	}
	p.GrandTotal = p.total()
	return p
}

// Validate checks the grand total identity, used when restoring persisted orders.
func (p Pricing) Validate() error {
	if !p.GrandTotal.Equal(p.total()) {
		return errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("grand total %s does not match components %s", p.GrandTotal, p.total()))
	}
	return nil
}

func (p Pricing) total() decimal.Decimal {
	return p.ItemsTotal.Add(p.DeliveryFee).Add(p.PlatformFee).Add(p.Taxes).Sub(p.Discount)
}

package order

import (
	"errors"
	"fmt"
	"strings"

	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item was not created via NewItem.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("item must be created via NewItem")

// Unit is the selling unit of a cut.
type Unit string

const (
	UnitKg    Unit = "kg"
	UnitPiece Unit = "piece"
	UnitDozen Unit = "dozen"
)

func (u Unit) Validate() error {
	switch u {
	case UnitKg, UnitPiece, UnitDozen:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("unit", fmt.Errorf("%q is not one of kg, piece, dozen", string(u)))
	}
}

// Stored precision of quantities and money. Values that do not fit are rejected
// instead of being rounded by the store.
const (
	QuantityPlaces = 3
	MoneyPlaces    = 2
)

var (
	// MaxQuantity and MaxMoney are exclusive upper bounds.
	MaxQuantity = decimal.New(1, 9)
	MaxMoney    = decimal.New(1, 10)
)

// Cut is the catalog cut snapshot copied into the order at creation time.
type Cut struct {
	Name         string
	PricePerUnit decimal.Decimal
	Unit         Unit
}

// Item is one denormalized order line. It is never refreshed from the catalog.
type Item struct { //nolint:recvcheck //using for validation
	productID   string
	productName string
	category    string
	cut         Cut
	quantity    decimal.Decimal
	unitPrice   decimal.Decimal
	guard       guard.ConstructorGuard
}

// NewItem validates a line item. Quantity must be positive and the unit price
// must not be negative. Quantities carry at most QuantityPlaces decimals and
// prices at most MoneyPlaces.
func NewItem(
	productID, productName, category string,
	cut Cut,
	quantity, unitPrice decimal.Decimal,
) (Item, error) {
	item := Item{
		productName: strings.TrimSpace(productName),
		category:    strings.TrimSpace(category),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setCut(cut),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() string {
	return i.productID
}

func (i Item) ProductName() string {
	return i.productName
}

func (i Item) Category() string {
	return i.category
}

func (i Item) Cut() Cut {
	return i.cut
}

func (i Item) Quantity() decimal.Decimal {
	return i.quantity
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// LinePrice is unit price times quantity.
func (i Item) LinePrice() decimal.Decimal {
	return i.unitPrice.Mul(i.quantity)
}

func (i *Item) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	i.productID = productID
	return nil
}

func (i *Item) setCut(cut Cut) error {
	if cut.Unit == "" {
		cut.Unit = UnitKg
	}
	if err := cut.Unit.Validate(); err != nil {
		return err
	}
	if cut.PricePerUnit.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("cut.pricePerUnit",
			fmt.Errorf("%s is negative", cut.PricePerUnit))
	}
	if err := fits("cut.pricePerUnit", cut.PricePerUnit, MoneyPlaces, MaxMoney); err != nil {
		return err
	}
	cut.Name = strings.TrimSpace(cut.Name)
	i.cut = cut
	return nil
}

func (i *Item) setQuantity(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is not greater than 0", quantity))
	}
	if err := fits("quantity", quantity, QuantityPlaces, MaxQuantity); err != nil {
		return err
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	if err := fits("price", price, MoneyPlaces, MaxMoney); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}

func fits(name string, value decimal.Decimal, places int32, limit decimal.Decimal) error {
	if !value.Equal(value.Truncate(places)) {
		return errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("%s has more than %d decimal places", value, places))
	}
	if value.GreaterThanOrEqual(limit) {
		return errs.NewValueIsOutOfRangeError(name, value, 0, limit)
	}
	return nil
}

// Package orderrepo maps the order aggregate onto the orders, order_items and
// order_status_entries tables.
package orderrepo

import (
	"time"

	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Both points are stored as plain degree
// columns covered by composite indexes used for bounding-box scans.
type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number              string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	DeliveryPartnerID   *uuid.UUID `gorm:"type:uuid;index"`
	Status              string     `gorm:"type:varchar(32);not null;index"`
	DeliveryAddress     AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	Shop                ShopDTO    `gorm:"embedded;embeddedPrefix:shop_"`
	Pricing             PricingDTO `gorm:"embedded"`
	PaymentMethod       string     `gorm:"type:varchar(16);not null"`
	PaymentStatus       string     `gorm:"type:varchar(16);not null"`
	SpecialInstructions string     `gorm:"type:text"`
	CancellationReason  string     `gorm:"type:text"`
	ActualDeliveryTime  *time.Time
	Rating              RatingDTO `gorm:"embedded;embeddedPrefix:rating_"`
	CreatedAt           time.Time `gorm:"not null;index"`
	UpdatedAt           time.Time `gorm:"not null"`
	Version             int       `gorm:"not null;default:0"`

	Items   []ItemDTO        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []StatusEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	Label     string  `gorm:"type:varchar(64)"`
	Street    string  `gorm:"type:varchar(255);not null"`
	City      string  `gorm:"type:varchar(128);not null"`
	State     string  `gorm:"type:varchar(128)"`
	Pincode   string  `gorm:"type:varchar(16)"`
	Landmark  string  `gorm:"type:varchar(255)"`
	Longitude float64 `gorm:"not null;index:idx_orders_delivery_point,priority:2"`
	Latitude  float64 `gorm:"not null;index:idx_orders_delivery_point,priority:1"`
}

type ShopDTO struct {
	Name      string  `gorm:"type:varchar(255);not null"`
	Address   string  `gorm:"type:varchar(255)"`
	Longitude float64 `gorm:"not null;index:idx_orders_shop_point,priority:2"`
	Latitude  float64 `gorm:"not null;index:idx_orders_shop_point,priority:1"`
}

type PricingDTO struct {
	ItemsTotal  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PlatformFee decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Taxes       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	GrandTotal  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// RatingDTO keeps Rated apart from the scores because a comment-only rating has no
// score at all.
type RatingDTO struct {
	Rated    bool `gorm:"not null;default:false"`
	Food     *int
	Delivery *int
	Comment  string `gorm:"type:text"`
}

type ItemDTO struct {
	ID           uint            `gorm:"primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position     int             `gorm:"not null"`
	ProductID    string          `gorm:"type:varchar(64);not null"`
	ProductName  string          `gorm:"type:varchar(255)"`
	Category     string          `gorm:"type:varchar(64)"`
	CutName      string          `gorm:"type:varchar(128)"`
	CutUnitPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
	CutUnit      string          `gorm:"type:varchar(16);not null"`
	Quantity     decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

type StatusEntryDTO struct {
	ID         uint      `gorm:"primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"not null"`
	Status     string    `gorm:"type:varchar(32);not null"`
	Note       string    `gorm:"type:text"`
	RecordedAt time.Time `gorm:"not null"`
}

func (StatusEntryDTO) TableName() string {
	return "order_status_entries"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	var partnerID *uuid.UUID
	if id := o.DeliveryPartner(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	address := o.DeliveryAddress()
	shop := o.Shop()
	pricing := o.Pricing()

	dto := OrderDTO{
		ID:                orderID,
		Number:            o.Number(),
		CustomerID:        o.CustomerID().Bytes(),
		DeliveryPartnerID: partnerID,
		Status:            o.Status().String(),
		DeliveryAddress: AddressDTO{
			Label:     address.Label,
			Street:    address.Street,
			City:      address.City,
			State:     address.State,
			Pincode:   address.Pincode,
			Landmark:  address.Landmark,
			Longitude: address.Location.Longitude(),
			Latitude:  address.Location.Latitude(),
		},
		Shop: ShopDTO{
			Name:      shop.Name,
			Address:   shop.Address,
			Longitude: shop.Location.Longitude(),
			Latitude:  shop.Location.Latitude(),
		},
		Pricing: PricingDTO{
			ItemsTotal:  pricing.ItemsTotal,
			DeliveryFee: pricing.DeliveryFee,
			PlatformFee: pricing.PlatformFee,
			Taxes:       pricing.Taxes,
			Discount:    pricing.Discount,
			GrandTotal:  pricing.GrandTotal,
		},
		PaymentMethod:       o.PaymentMethod().String(),
		PaymentStatus:       o.PaymentStatus().String(),
		SpecialInstructions: o.SpecialInstructions(),
		CancellationReason:  o.CancellationReason(),
		ActualDeliveryTime:  o.ActualDeliveryTime(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
		Version:             o.Version(),
	}

	if r := o.Rating(); r != nil {
		dto.Rating = RatingDTO{Rated: true, Food: r.Food, Delivery: r.Delivery, Comment: r.Comment}
	}

	for i, item := range o.Items() {
		cut := item.Cut()
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:      orderID,
			Position:     i,
			ProductID:    item.ProductID(),
			ProductName:  item.ProductName(),
			Category:     item.Category(),
			CutName:      cut.Name,
			CutUnitPrice: cut.PricePerUnit,
			CutUnit:      string(cut.Unit),
			Quantity:     item.Quantity(),
			UnitPrice:    item.UnitPrice(),
		})
	}

	for i, entry := range o.StatusHistory() {
		dto.History = append(dto.History, StatusEntryDTO{
			OrderID:    orderID,
			Position:   i,
			Status:     entry.Status.String(),
			Note:       entry.Note,
			RecordedAt: entry.Timestamp,
		})
	}

	return dto
}

// columns lists the mutable columns written by a conditional update. Items and the
// already stored history are immutable.
func (dto OrderDTO) columns() map[string]any {
	return map[string]any{
		"delivery_partner_id":  dto.DeliveryPartnerID,
		"status":               dto.Status,
		"payment_status":       dto.PaymentStatus,
		"cancellation_reason":  dto.CancellationReason,
		"actual_delivery_time": dto.ActualDeliveryTime,
		"rating_rated":         dto.Rating.Rated,
		"rating_food":          dto.Rating.Food,
		"rating_delivery":      dto.Rating.Delivery,
		"rating_comment":       dto.Rating.Comment,
		"updated_at":           dto.UpdatedAt,
		"version":              dto.Version + 1,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.DeliveryPartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.DeliveryPartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewGeoPoint(dto.DeliveryAddress.Longitude, dto.DeliveryAddress.Latitude)
	if err != nil {
		return nil, err
	}
	origin, err := kernel.NewGeoPoint(dto.Shop.Longitude, dto.Shop.Latitude)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range sortedItems(dto.Items) {
		item, itemErr := order.NewItem(
			itemDTO.ProductID,
			itemDTO.ProductName,
			itemDTO.Category,
			order.Cut{Name: itemDTO.CutName, PricePerUnit: itemDTO.CutUnitPrice, Unit: order.Unit(itemDTO.CutUnit)},
			itemDTO.Quantity,
			itemDTO.UnitPrice,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.StatusEntry, 0, len(dto.History))
	for _, entryDTO := range sortedHistory(dto.History) {
		entryStatus, statusErr := order.ParseStatus(entryDTO.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		history = append(history, order.StatusEntry{
			Status:    entryStatus,
			Timestamp: entryDTO.RecordedAt,
			Note:      entryDTO.Note,
		})
	}

	var rating *order.Rating
	if dto.Rating.Rated {
		rating = &order.Rating{Food: dto.Rating.Food, Delivery: dto.Rating.Delivery, Comment: dto.Rating.Comment}
	}

	return order.RestoreOrder(order.Snapshot{
		ID:         id,
		Number:     dto.Number,
		CustomerID: customerID,
		Items:      items,
		DeliveryAddress: order.Address{
			Label:    dto.DeliveryAddress.Label,
			Street:   dto.DeliveryAddress.Street,
			City:     dto.DeliveryAddress.City,
			State:    dto.DeliveryAddress.State,
			Pincode:  dto.DeliveryAddress.Pincode,
			Landmark: dto.DeliveryAddress.Landmark,
			Location: destination,
		},
		Shop:      order.Shop{Name: dto.Shop.Name, Address: dto.Shop.Address, Location: origin},
		PartnerID: partnerID,
		Status:    status,
		History:   history,
		Pricing: order.Pricing{
			ItemsTotal:  dto.Pricing.ItemsTotal,
			DeliveryFee: dto.Pricing.DeliveryFee,
			PlatformFee: dto.Pricing.PlatformFee,
			Taxes:       dto.Pricing.Taxes,
			Discount:    dto.Pricing.Discount,
			GrandTotal:  dto.Pricing.GrandTotal,
		},
		PaymentMethod:       paymentMethod,
		PaymentStatus:       paymentStatus,
		SpecialInstructions: dto.SpecialInstructions,
		CancellationReason:  dto.CancellationReason,
		ActualDeliveryTime:  dto.ActualDeliveryTime,
		Rating:              rating,
		CreatedAt:           dto.CreatedAt,
		UpdatedAt:           dto.UpdatedAt,
		Version:             dto.Version,
	})
}

package http

import (
	"time"

	"meatdelivery/internal/core/application/usecases/queries"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

type locationDTO struct {
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Latitude  *float64 `json:"latitude"  validate:"required,gte=-90,lte=90"`
}

func (l locationDTO) point() (kernel.GeoPoint, error) {
	return kernel.NewGeoPoint(*l.Longitude, *l.Latitude)
}

type cutDTO struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Unit  string          `json:"unit" validate:"omitempty,oneof=kg piece dozen"`
}

type itemRequest struct {
	Product     string          `json:"product"     validate:"required"`
	ProductName string          `json:"productName"`
	Category    string          `json:"category"`
	Cut         cutDTO          `json:"cut"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type addressRequest struct {
	Label    string      `json:"label"`
	Street   string      `json:"street"   validate:"required"`
	City     string      `json:"city"     validate:"required"`
	State    string      `json:"state"`
	Pincode  string      `json:"pincode"`
	Landmark string      `json:"landmark"`
	Location locationDTO `json:"location"`
}

type createOrderRequest struct {
	Items               []itemRequest  `json:"items"               validate:"required,min=1,dive"`
	DeliveryAddress     addressRequest `json:"deliveryAddress"`
	PaymentMethod       string         `json:"paymentMethod"       validate:"omitempty,oneof=cash online card"`
	SpecialInstructions string         `json:"specialInstructions" validate:"max=500"`
}

func (r createOrderRequest) items() ([]order.Item, error) {
	items := make([]order.Item, 0, len(r.Items))
	for _, it := range r.Items {
		unit := order.Unit(it.Cut.Unit)
		if unit == "" {
			unit = order.UnitKg
		}
		item, err := order.NewItem(it.Product, it.ProductName, it.Category,
			order.Cut{Name: it.Cut.Name, PricePerUnit: it.Cut.Price, Unit: unit},
			it.Quantity, it.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r createOrderRequest) address() (order.Address, error) {
	a := r.DeliveryAddress
	point, err := a.Location.point()
	if err != nil {
		return order.Address{}, err
	}
	return order.Address{
		Label:    a.Label,
		Street:   a.Street,
		City:     a.City,
		State:    a.State,
		Pincode:  a.Pincode,
		Landmark: a.Landmark,
		Location: point,
	}, nil
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"   validate:"max=500"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type rateOrderRequest struct {
	Food     *int   `json:"food"     validate:"omitempty,min=1,max=5"`
	Delivery *int   `json:"delivery" validate:"omitempty,min=1,max=5"`
	Comment  string `json:"comment"  validate:"max=1000"`
}

type availableOrdersRequest struct {
	Longitude *float64 `query:"longitude" validate:"required,gte=-180,lte=180"`
	Latitude  *float64 `query:"latitude"  validate:"required,gte=-90,lte=90"`
	Radius    float64  `query:"radius"    validate:"gte=0"`
}

type earningsRequest struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// periodBound accepts a calendar date or an RFC 3339 timestamp. A bare end date
// covers the whole day.
func periodBound(s string, end bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	if end {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

type itemResponse struct {
	Product     string          `json:"product"`
	ProductName string          `json:"productName"`
	Category    string          `json:"category"`
	Cut         cutDTO          `json:"cut"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	LinePrice   decimal.Decimal `json:"linePrice"`
}

type pointResponse struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type addressResponse struct {
	Label    string        `json:"label,omitempty"`
	Street   string        `json:"street"`
	City     string        `json:"city"`
	State    string        `json:"state,omitempty"`
	Pincode  string        `json:"pincode,omitempty"`
	Landmark string        `json:"landmark,omitempty"`
	Location pointResponse `json:"location"`
}

type shopResponse struct {
	Name     string        `json:"name"`
	Address  string        `json:"address"`
	Location pointResponse `json:"location"`
}

type statusEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

type pricingResponse struct {
	ItemsTotal  decimal.Decimal `json:"itemsTotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	PlatformFee decimal.Decimal `json:"platformFee"`
	Taxes       decimal.Decimal `json:"taxes"`
	Discount    decimal.Decimal `json:"discount"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
}

type ratingResponse struct {
	Food     *int   `json:"food,omitempty"`
	Delivery *int   `json:"delivery,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

type orderResponse struct {
	ID                  string                `json:"id"`
	OrderNumber         string                `json:"orderNumber"`
	Customer            string                `json:"customer"`
	DeliveryPartner     *string               `json:"deliveryPartner"`
	Items               []itemResponse        `json:"items"`
	DeliveryAddress     addressResponse       `json:"deliveryAddress"`
	Shop                shopResponse          `json:"shopDetails"`
	Status              string                `json:"status"`
	StatusHistory       []statusEntryResponse `json:"statusHistory"`
	Pricing             pricingResponse       `json:"pricing"`
	PaymentMethod       string                `json:"paymentMethod"`
	PaymentStatus       string                `json:"paymentStatus"`
	SpecialInstructions string                `json:"specialInstructions,omitempty"`
	CancellationReason  string                `json:"cancellationReason,omitempty"`
	ActualDeliveryTime  *time.Time            `json:"actualDeliveryTime,omitempty"`
	Rating              *ratingResponse       `json:"rating,omitempty"`
	DistanceKm          *float64              `json:"distanceKm,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
}

func pointOf(p kernel.GeoPoint) pointResponse {
	return pointResponse{Longitude: p.Longitude(), Latitude: p.Latitude()}
}

func toOrderResponse(o *order.Order) orderResponse {
	address := o.DeliveryAddress()
	shop := o.Shop()
	pricing := o.Pricing()

	resp := orderResponse{
		ID:          o.ID().String(),
		OrderNumber: o.Number(),
		Customer:    o.CustomerID().String(),
		DeliveryAddress: addressResponse{
			Label:    address.Label,
			Street:   address.Street,
			City:     address.City,
			State:    address.State,
			Pincode:  address.Pincode,
			Landmark: address.Landmark,
			Location: pointOf(address.Location),
		},
		Shop: shopResponse{Name: shop.Name, Address: shop.Address, Location: pointOf(shop.Location)},
		Status: o.Status().String(),
		Pricing: pricingResponse{
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
	}

	if id := o.DeliveryPartner(); id != nil {
		partnerID := id.String()
		resp.DeliveryPartner = &partnerID
	}

	for _, item := range o.Items() {
		cut := item.Cut()
		resp.Items = append(resp.Items, itemResponse{
			Product:     item.ProductID(),
			ProductName: item.ProductName(),
			Category:    item.Category(),
			Cut:         cutDTO{Name: cut.Name, Price: cut.PricePerUnit, Unit: string(cut.Unit)},
			Quantity:    item.Quantity(),
			Price:       item.UnitPrice(),
			LinePrice:   item.LinePrice(),
		})
	}

	for _, entry := range o.StatusHistory() {
		resp.StatusHistory = append(resp.StatusHistory, statusEntryResponse{
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp,
			Note:      entry.Note,
		})
	}

	if r := o.Rating(); r != nil {
		resp.Rating = &ratingResponse{Food: r.Food, Delivery: r.Delivery, Comment: r.Comment}
	}

	return resp
}

func toOrderResponses(orders []*order.Order) []orderResponse {
	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}

func toRankedResponses(ranked []services.RankedOrder) []orderResponse {
	resp := make([]orderResponse, 0, len(ranked))
	for _, r := range ranked {
		o := toOrderResponse(r.Order)
		distance := r.DistanceKm
		o.DistanceKm = &distance
		resp = append(resp, o)
	}
	return resp
}

type earningsStatsResponse struct {
	TotalDeliveries         int             `json:"totalDeliveries"`
	TotalEarnings           decimal.Decimal `json:"totalEarnings"`
	AverageEarningsPerOrder decimal.Decimal `json:"averageEarningsPerOrder"`
}

type earnedOrderResponse struct {
	ID                 string          `json:"id"`
	OrderNumber        string          `json:"orderNumber"`
	DeliveryFee        decimal.Decimal `json:"deliveryFee"`
	CreatedAt          time.Time       `json:"createdAt"`
	ActualDeliveryTime *time.Time      `json:"actualDeliveryTime,omitempty"`
}

func toEarningsResponse(r queries.GetEarningsQueryResponse) (earningsStatsResponse, []earnedOrderResponse) {
	stats := earningsStatsResponse{
		TotalDeliveries:         r.Stats.TotalDeliveries,
		TotalEarnings:           r.Stats.TotalEarnings,
		AverageEarningsPerOrder: r.Stats.AverageEarningsPerOrder,
	}
	orders := make([]earnedOrderResponse, 0, len(r.Orders))
	for _, o := range r.Orders {
		orders = append(orders, earnedOrderResponse{
			ID:                 o.ID.String(),
			OrderNumber:        o.Number,
			DeliveryFee:        o.DeliveryFee,
			CreatedAt:          o.CreatedAt,
			ActualDeliveryTime: o.ActualDeliveryTime,
		})
	}
	return stats, orders
}

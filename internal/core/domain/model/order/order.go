package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsNotDelivered is returned when rating an order that is not delivered yet.
	ErrOrderIsNotDelivered = errs.NewValueIsInvalidErrorWithCause("status", errors.New("order is not delivered yet"))

	// ErrOrderIsAlreadyRated is returned on a second rating attempt.
	ErrOrderIsAlreadyRated = errs.NewValueIsInvalidErrorWithCause("rating", errors.New("order has already been rated"))
)

// Placement is what a customer submits at checkout.
type Placement struct {
	CustomerID          kernel.UUID
	Items               []Item
	DeliveryAddress     Address
	Shop                Shop
	PaymentMethod       PaymentMethod
	SpecialInstructions string
}

// Order is the aggregate root of the order lifecycle, from placement through the
// claim by a delivery partner to delivery or cancellation.
//
// Order maintains these invariants:
//   - items are non-empty and priced once at creation
//   - pricing.GrandTotal = itemsTotal + deliveryFee + platformFee + taxes − discount
//   - the status history is append-only, its timestamps never decrease and its
//     last entry always matches the current status
//   - the delivery partner is set exactly once, by Assign
//
// version is the optimistic concurrency token checked by the repository on every
// conditional write.
type Order struct {
	id                  kernel.UUID
	number              string
	customerID          kernel.UUID
	items               []Item
	deliveryAddress     Address
	shop                Shop
	partnerID           *kernel.UUID
	status              Status
	history             []StatusEntry
	pricing             Pricing
	paymentMethod       PaymentMethod
	paymentStatus       PaymentStatus
	specialInstructions string
	cancellationReason  string
	actualDeliveryTime  *time.Time
	rating              *Rating
	createdAt           time.Time
	updatedAt           time.Time
	version             int

	isConstructed bool
}

// NewOrder prices the placement and creates a pending order whose history starts
// with a single "Order placed successfully" entry.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.NewNumber(now), placement, now)
//	if err != nil {
//	    return err // validation error
//	}
//	o.Pricing().GrandTotal // frozen from here on
func NewOrder(id kernel.UUID, number string, placement Placement, placedAt time.Time) (*Order, error) {
	o := &Order{
		status:              Pending,
		paymentMethod:       placement.PaymentMethod,
		paymentStatus:       PaymentPending,
		specialInstructions: strings.TrimSpace(placement.SpecialInstructions),
		createdAt:           placedAt,
		isConstructed:       true,
	}
	if o.paymentMethod == UnknownPaymentMethod {
		o.paymentMethod = Cash
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerID(placement.CustomerID),
		o.setItems(placement.Items),
		o.setDeliveryAddress(placement.DeliveryAddress),
		o.setShop(placement.Shop),
		o.paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}

	o.pricing = CalculatePricing(o.items)
	if o.pricing.GrandTotal.GreaterThanOrEqual(MaxMoney) {
		return nil, errs.NewValueIsOutOfRangeError("grandTotal", o.pricing.GrandTotal, 0, MaxMoney)
	}
	o.appendHistory(Pending, notePlaced, placedAt)

	return o, nil
}

// Snapshot carries every persisted field of an order.
type Snapshot struct {
	ID                  kernel.UUID
	Number              string
	CustomerID          kernel.UUID
	Items               []Item
	DeliveryAddress     Address
	Shop                Shop
	PartnerID           *kernel.UUID
	Status              Status
	History             []StatusEntry
	Pricing             Pricing
	PaymentMethod       PaymentMethod
	PaymentStatus       PaymentStatus
	SpecialInstructions string
	CancellationReason  string
	ActualDeliveryTime  *time.Time
	Rating              *Rating
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int
}

// RestoreOrder rebuilds an order loaded from storage, re-checking the invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		partnerID:           s.PartnerID,
		status:              s.Status,
		history:             slices.Clone(s.History),
		pricing:             s.Pricing,
		paymentMethod:       s.PaymentMethod,
		paymentStatus:       s.PaymentStatus,
		specialInstructions: s.SpecialInstructions,
		cancellationReason:  s.CancellationReason,
		actualDeliveryTime:  s.ActualDeliveryTime,
		rating:              s.Rating,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		version:             s.Version,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setCustomerID(s.CustomerID),
		o.setItems(s.Items),
		o.setDeliveryAddress(s.DeliveryAddress),
		o.setShop(s.Shop),
		s.Status.Validate(),
		s.Status.ValidateCanHavePartner(s.PartnerID != nil),
		s.Pricing.Validate(),
		s.PaymentMethod.Validate(),
		s.PaymentStatus.Validate(),
		validateHistory(s.Status, s.History),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

func (o *Order) DeliveryAddress() Address {
	return o.deliveryAddress
}

func (o *Order) Shop() Shop {
	return o.shop
}

// DeliveryPartner returns the assigned partner, or nil while the order is unclaimed.
func (o *Order) DeliveryPartner() *kernel.UUID {
	if o.partnerID == nil {
		return nil
	}
	id := *o.partnerID
	return &id
}

// IsAssignedTo reports whether partnerID is the order's delivery partner.
func (o *Order) IsAssignedTo(partnerID kernel.UUID) bool {
	return o.partnerID != nil && o.partnerID.IsEqual(partnerID)
}

func (o *Order) Status() Status {
	return o.status
}

// StatusHistory returns a copy of the history, oldest first.
func (o *Order) StatusHistory() []StatusEntry {
	return slices.Clone(o.history)
}

func (o *Order) Pricing() Pricing {
	return o.pricing
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

func (o *Order) ActualDeliveryTime() *time.Time {
	return o.actualDeliveryTime
}

// Rating returns the customer rating, nil until the order is rated.
func (o *Order) Rating() *Rating {
	return o.rating
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the concurrency token the order was loaded with.
func (o *Order) Version() int {
	return o.version
}

// AdvanceVersion is called by repositories once a conditional write has succeeded.
func (o *Order) AdvanceVersion() {
	o.version++
}

// Assign claims a pending order for a delivery partner.
//
// Any order that is no longer pending has been claimed (or cancelled) already, so
// every late caller receives an AlreadyAssignedError.
func (o *Order) Assign(partnerID kernel.UUID, at time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	if o.status != Pending {
		return errs.NewAlreadyAssignedError(o.number)
	}

	next, err := o.status.Advance(Assigned)
	if err != nil {
		return err
	}

	o.partnerID = &partnerID
	o.appendHistory(next, noteAssigned, at)
	return nil
}

// AdvanceStatus moves the order one step along the forward chain. Assigned and
// Cancelled are rejected here; they are reached through Assign and Cancel.
//
// Entering Delivered stamps the delivery time and marks cash orders as paid.
// An empty note is replaced with "Order status updated to <status>".
func (o *Order) AdvanceStatus(next Status, note string, at time.Time) error {
	if next == Assigned || next == Cancelled {
		return errs.NewInvalidTransitionErrorWithCause(o.status.String(), next.String(),
			fmt.Errorf("%s is not reachable through a status update", next))
	}

	newStatus, err := o.status.Advance(next)
	if err != nil {
		return err
	}

	if note = strings.TrimSpace(note); note == "" {
		note = defaultStatusNote(newStatus)
	}

	o.appendHistory(newStatus, note, at)

	if newStatus == Delivered {
		deliveredAt := o.updatedAt
		o.actualDeliveryTime = &deliveredAt
		if o.paymentMethod == Cash {
			o.paymentStatus = PaymentPaid
		}
	}
	return nil
}

// Cancel cancels an order that has not been picked up yet.
func (o *Order) Cancel(reason string, at time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	o.cancellationReason = reason

	note := reason
	if note == "" {
		note = noteCanceled
	}
	o.appendHistory(newStatus, note, at)
	return nil
}

// Rate records the customer's rating. Only delivered orders are rateable, once.
func (o *Order) Rate(rating Rating, at time.Time) error {
	if o.status != Delivered {
		return ErrOrderIsNotDelivered
	}
	if o.rating != nil {
		return ErrOrderIsAlreadyRated
	}
	if err := rating.Validate(); err != nil {
		return err
	}

	o.rating = &rating
	o.touch(at)
	return nil
}

// appendHistory records the transition. Timestamps are clamped so the history
// never goes back in time even if the caller's clock does.
func (o *Order) appendHistory(status Status, note string, at time.Time) {
	at = o.clamp(at)
	o.status = status
	o.history = append(o.history, StatusEntry{Status: status, Timestamp: at, Note: note})
	o.updatedAt = at
}

func (o *Order) touch(at time.Time) {
	o.updatedAt = o.clamp(at)
}

func (o *Order) clamp(at time.Time) time.Time {
	if n := len(o.history); n > 0 && at.Before(o.history[n-1].Timestamp) {
		at = o.history[n-1].Timestamp
	}
	if at.Before(o.updatedAt) {
		at = o.updatedAt
	}
	return at
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if err := validateNumber(number); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setDeliveryAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setShop(shop Shop) error {
	if err := shop.Validate(); err != nil {
		return err
	}
	o.shop = shop
	return nil
}

func validateHistory(status Status, history []StatusEntry) error {
	if len(history) == 0 {
		return errs.NewValueIsRequiredError("statusHistory")
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.Before(history[i-1].Timestamp) {
			return errs.NewValueIsInvalidErrorWithCause("statusHistory",
				fmt.Errorf("entry %d goes back in time", i))
		}
	}
	if last := history[len(history)-1]; last.Status != status {
		return errs.NewValueIsInvalidErrorWithCause("statusHistory",
			fmt.Errorf("last entry is %s, order is %s", last.Status, status))
	}
	return nil
}

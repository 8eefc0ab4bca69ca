package services

import (
	"errors"
	"time"

	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/partner"
)

var ErrPartnerIsRequired = errors.New("delivery partner is required")

// OrderDispatcher hands a pending order over to the partner who claimed it.
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch assigns o to p and marks p busy. Both aggregates are left untouched
// when the claim fails.
//
// Returns:
//   - nil on success
//   - an AlreadyAssignedError if o is no longer pending
//   - a validation error for unconstructed aggregates
func (d OrderDispatcher) Dispatch(o *order.Order, p *partner.Partner, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if p == nil {
		return ErrPartnerIsRequired
	}
	if err := p.Validate(); err != nil {
		return err
	}

	if err := o.Assign(p.ID(), at); err != nil {
		return err
	}

	p.MarkBusy()
	return nil
}

// CompleteDelivery advances o to Delivered and counts the delivery for p.
func (d OrderDispatcher) CompleteDelivery(o *order.Order, p *partner.Partner, note string, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	if err := o.AdvanceStatus(order.Delivered, note, at); err != nil {
		return err
	}

	p.CompleteDelivery()
	return nil
}

package order

import (
	"fmt"

	"meatdelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions (strict adjacency, no skipping):
//
//	Pending ─> Assigned ─> PartnerAccepted ─> PickingUp ─> PickedUp ─> InTransit ─> Delivered
//	   │           │              │                │
//	   └───────────┴──────────────┴────────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Assigned is only entered through a claim
// (Order.Assign) and Cancelled only through Order.Cancel.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota

	// Pending orders are waiting for a delivery partner to claim them.
	Pending

	// Assigned orders have an exclusive delivery partner.
	Assigned

	PartnerAccepted
	PickingUp
	PickedUp
	InTransit

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

// forwardChain lists the statuses of the happy path in order.
var forwardChain = []Status{Pending, Assigned, PartnerAccepted, PickingUp, PickedUp, InTransit, Delivered}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		Pending:         "pending",
		Assigned:        "assigned",
		PartnerAccepted: "partner_accepted",
		PickingUp:       "picking_up",
		PickedUp:        "picked_up",
		InTransit:       "in_transit",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
	}
}

// ParseStatus maps the wire code (e.g. "picked_up") back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, code := range getStatusStrings() {
		if status != Unknown && code == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case wire code of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsCancellable reports whether the order has not been physically picked up yet.
func (s Status) IsCancellable() bool {
	switch s { //nolint:exhaustive // every other status is not cancellable
	case Pending, Assigned, PartnerAccepted, PickingUp:
		return true
	default:
		return false
	}
}

// IsActive reports whether a partner is currently working on the order.
func (s Status) IsActive() bool {
	return s >= Assigned && s <= InTransit
}

// Next returns the status that directly follows s in the forward chain.
func (s Status) Next() (Status, bool) {
	for i, status := range forwardChain {
		if status == s && i+1 < len(forwardChain) {
			return forwardChain[i+1], true
		}
	}
	return Unknown, false
}

// Advance validates a forward move from s to next and returns next.
//
// Returns an InvalidTransitionError when s is terminal or next is not the direct
// successor of s.
func (s Status) Advance(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return s, err
	}
	if s.IsTerminal() {
		return s, errs.NewInvalidTransitionErrorWithCause(s.String(), next.String(),
			fmt.Errorf("%s is a final status", s))
	}
	successor, ok := s.Next()
	if !ok || successor != next {
		return s, errs.NewInvalidTransitionError(s.String(), next.String())
	}
	return next, nil
}

// Cancel validates the move into Cancelled.
func (s Status) Cancel() (Status, error) {
	if !s.IsCancellable() {
		return s, errs.NewInvalidTransitionErrorWithCause(s.String(), Cancelled.String(),
			fmt.Errorf("%s orders can no longer be cancelled", s))
	}
	return Cancelled, nil
}

// ValidateCanHavePartner checks that the partner assignment matches the status:
// pending orders have no partner, active and delivered orders have one.
func (s Status) ValidateCanHavePartner(hasPartner bool) error {
	if hasPartner && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s orders cannot have a delivery partner", s))
	}
	if !hasPartner && (s.IsActive() || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s orders must have a delivery partner", s))
	}
	return nil
}

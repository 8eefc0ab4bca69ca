package partner

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"
)

const (
	MinRating = 0.0
	MaxRating = 5.0
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner constructor")
)

// Partner is a delivery partner profile. Its id equals the id of the authenticated
// principal, so the profile is registered lazily on first use.
//
// Invariants:
//   - rating stays within [0, 5]
//   - totalDeliveries is never negative and only grows on completed deliveries
//   - isAvailable is set to false when an order is accepted and only the partner
//     turns it back on
type Partner struct {
	id              kernel.UUID
	name            string
	location        *kernel.GeoPoint
	isAvailable     bool
	rating          float64
	totalDeliveries int
	version         int
	guard           guard.ConstructorGuard
}

// NewPartner registers an available partner with no rating and no location yet.
func NewPartner(id kernel.UUID, name string) (*Partner, error) {
	p := &Partner{
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setID(id), p.setName(name)); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePartner rebuilds a persisted partner.
func RestorePartner(
	id kernel.UUID,
	name string,
	location *kernel.GeoPoint,
	isAvailable bool,
	rating float64,
	totalDeliveries int,
	version int,
) (*Partner, error) {
	p := &Partner{
		isAvailable: isAvailable,
		version:     version,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setLocation(location),
		p.setRating(rating),
		p.setTotalDeliveries(totalDeliveries),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Partner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

func (p *Partner) IsEqual(other *Partner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Partner) ID() kernel.UUID {
	return p.id
}

func (p *Partner) Name() string {
	return p.name
}

// Location returns the last reported position, nil if none was reported yet.
func (p *Partner) Location() *kernel.GeoPoint {
	if p.location == nil {
		return nil
	}
	loc := *p.location
	return &loc
}

func (p *Partner) IsAvailable() bool {
	return p.isAvailable
}

func (p *Partner) Rating() float64 {
	return p.rating
}

func (p *Partner) TotalDeliveries() int {
	return p.totalDeliveries
}

func (p *Partner) Version() int {
	return p.version
}

// AdvanceVersion is called by repositories once a conditional write has succeeded.
func (p *Partner) AdvanceVersion() {
	p.version++
}

// Rename keeps the profile name in sync with the principal's display name.
func (p *Partner) Rename(name string) error {
	return p.setName(name)
}

// UpdateLocation overwrites the current position.
func (p *Partner) UpdateLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	p.location = &location
	return nil
}

// ToggleAvailability flips the availability flag and returns the new value.
func (p *Partner) ToggleAvailability() bool {
	p.isAvailable = !p.isAvailable
	return p.isAvailable
}

// MarkBusy is applied when the partner wins a claim. It is not reset automatically
// when the delivery completes.
func (p *Partner) MarkBusy() {
	p.isAvailable = false
}

// CompleteDelivery counts a delivered order.
func (p *Partner) CompleteDelivery() {
	p.totalDeliveries++
}

// ApplyDeliveryScore folds a customer's delivery score into the running average:
//
//	newRating = (rating × totalDeliveries + score) / (totalDeliveries + 1)
//
// totalDeliveries is left untouched; it only grows in CompleteDelivery.
func (p *Partner) ApplyDeliveryScore(score int) error {
	if score < 1 || score > 5 {
		return errs.NewValueIsOutOfRangeError("deliveryScore", score, 1, 5)
	}
	n := float64(p.totalDeliveries)
	p.rating = (p.rating*n + float64(score)) / (n + 1)
	return nil
}

func (p *Partner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Partner) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Partner) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		p.location = nil
		return nil
	}
	return p.UpdateLocation(*location)
}

func (p *Partner) setRating(rating float64) error {
	if math.IsNaN(rating) || rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	p.rating = rating
	return nil
}

func (p *Partner) setTotalDeliveries(total int) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalDeliveries", fmt.Errorf("%d is negative", total))
	}
	p.totalDeliveries = total
	return nil
}

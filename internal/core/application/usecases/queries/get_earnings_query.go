package queries

import (
	"errors"
	"time"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetEarningsQueryIsNotConstructed = errors.New(
	"GetEarningsQuery must be created via NewGetEarningsQuery constructor",
)

// GetEarningsQuery summarizes a partner's delivered orders. The period only applies
// when both ends are given.
type GetEarningsQuery struct {
	partner access.Principal
	from    *time.Time
	to      *time.Time

	guard guard.ConstructorGuard
}

func NewGetEarningsQuery(partner access.Principal, from, to *time.Time) (GetEarningsQuery, error) {
	if err := partner.ID.Validate(); err != nil {
		return GetEarningsQuery{}, errs.NewValueIsRequiredErrorWithCause("partner", err)
	}
	if from != nil && to != nil && to.Before(*from) {
		return GetEarningsQuery{}, errs.NewValueIsInvalidErrorWithCause("endDate",
			errors.New("endDate is before startDate"))
	}
	if from == nil || to == nil {
		from, to = nil, nil
	}

	return GetEarningsQuery{
		partner: partner,
		from:    from,
		to:      to,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetEarningsQueryIsNotConstructed)
}

func (q GetEarningsQuery) Partner() access.Principal {
	return q.partner
}

// Period returns the creation-time window, ok is false when none was requested.
func (q GetEarningsQuery) Period() (from, to time.Time, ok bool) {
	if q.from == nil || q.to == nil {
		return time.Time{}, time.Time{}, false
	}
	return *q.from, *q.to, true
}

// EarningsStats aggregates the delivery fees of the delivered orders.
type EarningsStats struct {
	TotalDeliveries         int
	TotalEarnings           decimal.Decimal
	AverageEarningsPerOrder decimal.Decimal
}

// EarnedOrder is one delivered order of the partner.
type EarnedOrder struct {
	ID                 kernel.UUID
	Number             string
	DeliveryFee        decimal.Decimal
	CreatedAt          time.Time
	ActualDeliveryTime *time.Time
}

type GetEarningsQueryResponse struct {
	Stats  EarningsStats
	Orders []EarnedOrder
}

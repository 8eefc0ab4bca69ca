package commands

import (
	"errors"
	"time"

	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"
)

var ErrRebroadcastPendingOrdersCommandIsNotConstructed = errors.New(
	"RebroadcastPendingOrdersCommand must be created via NewRebroadcastPendingOrdersCommand constructor",
)

// RebroadcastPendingOrdersCommand re-announces orders that are still unclaimed, so
// partners that connected after an order was placed learn about it.
type RebroadcastPendingOrdersCommand struct {
	staleAfter time.Duration
	limit      int

	guard guard.ConstructorGuard
}

// NewRebroadcastPendingOrdersCommand selects at most limit pending orders older than
// staleAfter.
func NewRebroadcastPendingOrdersCommand(staleAfter time.Duration, limit int) (RebroadcastPendingOrdersCommand, error) {
	if staleAfter < 0 {
		return RebroadcastPendingOrdersCommand{}, errs.NewValueIsOutOfRangeError("staleAfter", staleAfter, 0, "∞")
	}
	if limit <= 0 {
		return RebroadcastPendingOrdersCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "∞")
	}

	return RebroadcastPendingOrdersCommand{
		staleAfter: staleAfter,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RebroadcastPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRebroadcastPendingOrdersCommandIsNotConstructed)
}

func (c RebroadcastPendingOrdersCommand) StaleAfter() time.Duration {
	return c.staleAfter
}

func (c RebroadcastPendingOrdersCommand) Limit() int {
	return c.limit
}

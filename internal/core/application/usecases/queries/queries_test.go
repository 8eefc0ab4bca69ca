package queries_test

import (
	"testing"
	"time"

	"meatdelivery/internal/adapters/out/postgres/dbtest"
	"meatdelivery/internal/adapters/out/postgres/orderrepo"
	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/order/ordertest"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func principal(role access.Role) access.Principal {
	return access.Principal{ID: kernel.NewUUID(), Name: string(role), Role: role}
}

// store opens an empty database with a repository outside any unit of work.
func store(t *testing.T) (*gorm.DB, *orderrepo.GormOrderRepository) {
	t.Helper()
	db := dbtest.SQLite(t)
	return db, orderrepo.NewGormOrderRepository(db, nil)
}

func save(t *testing.T, repo *orderrepo.GormOrderRepository, orders ...*order.Order) {
	t.Helper()
	for _, o := range orders {
		require.NoError(t, repo.Add(t.Context(), o))
	}
}

// delivered returns an order delivered by partnerID, placed at placedAt with one
// line per price.
func delivered(t *testing.T, partnerID kernel.UUID, placedAt time.Time, prices ...string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.NewNumber(placedAt),
		ordertest.Placement(t, kernel.NewUUID(), prices...), placedAt)
	require.NoError(t, err)

	require.NoError(t, o.Assign(partnerID, placedAt))
	for o.Status() != order.Delivered {
		next, _ := o.Status().Next()
		require.NoError(t, o.AdvanceStatus(next, "", placedAt))
	}
	return o
}

package queries

import (
	"context"
	"time"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetEarningsQueryHandler reads the partner's delivered orders straight from the
// orders table.
type GetEarningsQueryHandler struct {
	db *gorm.DB
}

func NewGetEarningsQueryHandler(db *gorm.DB) GetEarningsQueryHandler {
	return GetEarningsQueryHandler{db: db}
}

// Handle sums the delivery fees of the partner's delivered orders, newest first.
// The average is zero when there are no deliveries.
func (h GetEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetEarningsQuery,
) (GetEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEarningsQueryResponse{}, err
	}
	if err := access.RequireRole(query.Partner(), "get_earnings", access.RoleDeliveryPartner); err != nil {
		return GetEarningsQueryResponse{}, err
	}

	sql := `
		SELECT
			id,
			number,
			delivery_fee,
			created_at,
			actual_delivery_time
		FROM orders
		WHERE delivery_partner_id = ? AND status = ?`
	args := []any{query.Partner().ID.Bytes(), order.Delivered.String()}
	if from, to, ok := query.Period(); ok {
		sql += ` AND created_at BETWEEN ? AND ?`
		args = append(args, from.UTC(), to.UTC())
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return GetEarningsQueryResponse{}, err
	}
	defer rows.Close()

	response := GetEarningsQueryResponse{
		Stats: EarningsStats{
			TotalEarnings:           decimal.Zero,
			AverageEarningsPerOrder: decimal.Zero,
		},
		Orders: make([]EarnedOrder, 0),
	}

	for rows.Next() {
		var (
			earned      EarnedOrder
			id          uuid.UUID
			deliveredAt *time.Time
		)

		if err = rows.Scan(&id, &earned.Number, &earned.DeliveryFee, &earned.CreatedAt, &deliveredAt); err != nil {
			return GetEarningsQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetEarningsQueryResponse{}, idErr
		}
		earned.ID = orderID
		earned.ActualDeliveryTime = deliveredAt

		response.Orders = append(response.Orders, earned)
		response.Stats.TotalEarnings = response.Stats.TotalEarnings.Add(earned.DeliveryFee)
	}

	if err = rows.Err(); err != nil {
		return GetEarningsQueryResponse{}, err
	}

	response.Stats.TotalDeliveries = len(response.Orders)
	if n := response.Stats.TotalDeliveries; n > 0 {
		response.Stats.AverageEarningsPerOrder = response.Stats.TotalEarnings.Div(decimal.NewFromInt(int64(n))).Round(2)
	}

	return response, nil
}

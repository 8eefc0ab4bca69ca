package orderrepo

import (
	"context"
	"errors"
	"math"
	"slices"
	"time"

	"meatdelivery/internal/adapters/out/postgres/dberrs"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/services"
	"meatdelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var activeStatuses = []string{
	order.Assigned.String(),
	order.PartnerAccepted.String(),
	order.PickingUp.String(),
	order.PickedUp.String(),
	order.InTransit.String(),
}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a repository bound to db. tracker may be nil for
// read-only use outside a unit of work.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order with its items and first history entries.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberrs.IsUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("number", aggregate.Number(), err)
		}
		return err
	}

	r.track(aggregate)
	return nil
}

// Update is a conditional write:
//
//	UPDATE orders SET ... WHERE id = ? AND version = ?
//
// Zero affected rows means another writer got there first. New history entries are
// appended after the stored ones.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(dto.columns())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missedUpdate(ctx, aggregate)
	}

	var stored int64
	if err := db.Model(&StatusEntryDTO{}).Where("order_id = ?", dto.ID).Count(&stored).Error; err != nil {
		return err
	}
	if appended := dto.History[min(int(stored), len(dto.History)):]; len(appended) > 0 {
		if err := db.Create(&appended).Error; err != nil {
			return err
		}
	}

	aggregate.AdvanceVersion()
	r.track(aggregate)
	return nil
}

func (r *GormOrderRepository) missedUpdate(ctx context.Context, aggregate *order.Order) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidError("order.version")
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	return r.find(r.preloaded(ctx).Where("customer_id = ?", customerID.Bytes()).Order("created_at DESC"))
}

func (r *GormOrderRepository) ListByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error) {
	return r.find(r.preloaded(ctx).Where("delivery_partner_id = ?", partnerID.Bytes()).Order("created_at DESC"))
}

func (r *GormOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(r.preloaded(ctx).Order("created_at DESC"))
}

func (r *GormOrderRepository) ListActiveByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error) {
	return r.find(r.preloaded(ctx).
		Where("delivery_partner_id = ? AND status IN ?", partnerID.Bytes(), activeStatuses).
		Order("created_at"))
}

// ListPendingWithin scans the point index of the selected field. The box is in
// degrees, the native unit of the stored columns. Rows are ordered by the
// equirectangular distance to center before the limit applies, so the closest
// orders are never cut off by older ones further away.
func (r *GormOrderRepository) ListPendingWithin(
	ctx context.Context,
	field services.GeoField,
	center kernel.GeoPoint,
	radiusKm float64,
	limit int,
) ([]*order.Order, error) {
	prefix := "delivery_"
	if field == services.ShopOrigin {
		prefix = "shop_"
	}
	box := center.BoundingBox(radiusKm)

	return r.find(r.preloaded(ctx).
		Where("status = ?", order.Pending.String()).
		Where(prefix+"latitude BETWEEN ? AND ?", box.MinLatitude, box.MaxLatitude).
		Where(prefix+"longitude BETWEEN ? AND ?", box.MinLongitude, box.MaxLongitude).
		Order(approximateDistance(prefix, center)).
		Order("created_at").
		Limit(limit))
}

// approximateDistance orders by the squared equirectangular distance in degrees.
// The longitude difference is scaled by the cosine of the center latitude, which
// keeps the ordering of haversine distances at delivery radii.
func approximateDistance(prefix string, center kernel.GeoPoint) clause.OrderBy {
	scale := math.Cos(center.Latitude() * math.Pi / 180)
	return clause.OrderBy{Expression: clause.Expr{
		SQL: "((" + prefix + "latitude - ?) * (" + prefix + "latitude - ?)) + " +
			"((" + prefix + "longitude - ?) * ? * (" + prefix + "longitude - ?) * ?)",
		Vars: []any{
			center.Latitude(), center.Latitude(),
			center.Longitude(), scale, center.Longitude(), scale,
		},
		WithoutParentheses: true,
	}}
}

func (r *GormOrderRepository) ListPendingCreatedBefore(
	ctx context.Context,
	before time.Time,
	limit int,
) ([]*order.Order, error) {
	return r.find(r.preloaded(ctx).
		Where("status = ? AND created_at < ?", order.Pending.String(), before).
		Order("created_at").
		Limit(limit))
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items").Preload("History")
}

func (r *GormOrderRepository) find(query *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

func sortedItems(items []ItemDTO) []ItemDTO {
	return slices.SortedStableFunc(slices.Values(items), func(a, b ItemDTO) int { return a.Position - b.Position })
}

func sortedHistory(history []StatusEntryDTO) []StatusEntryDTO {
	return slices.SortedStableFunc(slices.Values(history), func(a, b StatusEntryDTO) int { return a.Position - b.Position })
}

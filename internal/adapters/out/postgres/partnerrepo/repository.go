package partnerrepo

import (
	"context"
	"errors"
	"time"

	"meatdelivery/internal/adapters/out/postgres/dberrs"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/partner"
	"meatdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPartnerRepository implements ports.PartnerRepository using GORM.
type GormPartnerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPartnerRepository(db *gorm.DB, tracker aggregateTracker) *GormPartnerRepository {
	return &GormPartnerRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberrs.IsUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("partner", aggregate.ID().String(), err)
		}
		return err
	}

	r.track(aggregate)
	return nil
}

// Partner writes touch only the columns of the change being made and apply
// counters as column expressions, so independent writes to one profile never
// conflict. Every write bumps version.

// UpdateLocation overwrites the position columns.
func (r *GormPartnerRepository) UpdateLocation(ctx context.Context, aggregate *partner.Partner) error {
	dto := fromDomain(aggregate)
	return r.updateColumns(ctx, aggregate, map[string]any{
		"longitude": dto.Longitude,
		"latitude":  dto.Latitude,
	})
}

// SetAvailability overwrites the availability flag.
func (r *GormPartnerRepository) SetAvailability(ctx context.Context, aggregate *partner.Partner) error {
	return r.updateColumns(ctx, aggregate, map[string]any{
		"is_available": aggregate.IsAvailable(),
	})
}

// RecordDelivery increments the stored delivery counter.
func (r *GormPartnerRepository) RecordDelivery(ctx context.Context, aggregate *partner.Partner) error {
	return r.updateColumns(ctx, aggregate, map[string]any{
		"total_deliveries": gorm.Expr("total_deliveries + 1"),
	})
}

// ApplyDeliveryScore folds score into the stored rating with the stored counter,
// the same average partner.Partner.ApplyDeliveryScore computes.
func (r *GormPartnerRepository) ApplyDeliveryScore(ctx context.Context, aggregate *partner.Partner, score int) error {
	if score < 1 || score > 5 {
		return errs.NewValueIsOutOfRangeError("deliveryScore", score, 1, 5)
	}
	return r.updateColumns(ctx, aggregate, map[string]any{
		"rating": gorm.Expr("(rating * total_deliveries + ?) / (total_deliveries + 1)", float64(score)),
	})
}

func (r *GormPartnerRepository) updateColumns(
	ctx context.Context,
	aggregate *partner.Partner,
	columns map[string]any,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	columns["version"] = gorm.Expr("version + 1")
	columns["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&PartnerDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("partner", aggregate.ID().String())
	}

	aggregate.AdvanceVersion()
	r.track(aggregate)
	return nil
}

func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partner", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPartnerRepository) track(aggregate *partner.Partner) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

// Package partnerrepo maps delivery partner profiles onto the partners table.
package partnerrepo

import (
	"time"

	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

type PartnerDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Longitude       *float64
	Latitude        *float64
	IsAvailable     bool    `gorm:"not null;default:true;index"`
	Rating          float64 `gorm:"not null;default:0"`
	TotalDeliveries int     `gorm:"not null;default:0"`
	Version         int     `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PartnerDTO) TableName() string {
	return "partners"
}

func fromDomain(p *partner.Partner) PartnerDTO {
	dto := PartnerDTO{
		ID:              p.ID().Bytes(),
		Name:            p.Name(),
		IsAvailable:     p.IsAvailable(),
		Rating:          p.Rating(),
		TotalDeliveries: p.TotalDeliveries(),
		Version:         p.Version(),
	}
	if loc := p.Location(); loc != nil {
		lon, lat := loc.Longitude(), loc.Latitude()
		dto.Longitude, dto.Latitude = &lon, &lat
	}
	return dto
}

func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Longitude != nil && dto.Latitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Longitude, *dto.Latitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return partner.RestorePartner(id, dto.Name, location, dto.IsAvailable, dto.Rating, dto.TotalDeliveries, dto.Version)
}

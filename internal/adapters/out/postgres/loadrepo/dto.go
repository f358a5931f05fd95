// Package loadrepo provides data transfer objects and mapping functions for
// load persistence. It implements the repository side of the optimistic
// concurrency protocol: every write of an existing row is conditional on the
// version the caller read.
package loadrepo

import (
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// LoadDTO represents the database structure for persisting load aggregates.
// The listing path filters by status, equipment, and pickup window, hence the
// composite index; reference numbers carry a unique index that arbitrates
// concurrent counter claims.
type LoadDTO struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ReferenceNumber string      `gorm:"uniqueIndex"`
	Origin          LocationDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination     LocationDTO `gorm:"embedded;embeddedPrefix:dest_"`
	PickupAt        time.Time   `gorm:"index:idx_loads_listing,priority:3"`
	DeliveryAt      time.Time

	Rate          decimal.Decimal     `gorm:"type:numeric(12,2)"`
	MinRate       decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	MaxRate       decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	FuelSurcharge decimal.NullDecimal `gorm:"type:numeric(12,2)"`

	Equipment   string `gorm:"index:idx_loads_listing,priority:2"`
	Commodity   string
	WeightLbs   int
	Dimensions  string
	NumOfPieces int
	Hazmat      bool
	HazmatClass string

	Booked              bool
	SessionID           string
	Miles               decimal.NullDecimal `gorm:"type:numeric(8,1)"`
	Notes               string
	BrokerCompany       string
	CustomerName        string
	SpecialRequirements pq.StringArray `gorm:"type:text[]"`

	Status    string `gorm:"index:idx_loads_listing,priority:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
	Version   int
}

// TableName overrides GORM's default naming convention to use "loads".
func (LoadDTO) TableName() string {
	return "loads"
}

// LocationDTO represents an embedded city/state/postal-code triple within the
// loads table.
type LocationDTO struct {
	City       string
	State      string
	PostalCode string
}

func fromDomain(aggregate *load.Load) LoadDTO {
	return LoadDTO{
		ID:              aggregate.ID().Bytes(),
		ReferenceNumber: aggregate.ReferenceNumber(),
		Origin:          locationFromDomain(aggregate.Origin()),
		Destination:     locationFromDomain(aggregate.Destination()),
		PickupAt:        aggregate.PickupAt(),
		DeliveryAt:      aggregate.DeliveryAt(),

		Rate:          aggregate.Rate().Amount(),
		MinRate:       moneyToColumn(aggregate.MinRate()),
		MaxRate:       moneyToColumn(aggregate.MaxRate()),
		FuelSurcharge: moneyToColumn(aggregate.FuelSurcharge()),

		Equipment:   string(aggregate.Equipment()),
		Commodity:   aggregate.Commodity(),
		WeightLbs:   aggregate.WeightLbs(),
		Dimensions:  aggregate.Dimensions(),
		NumOfPieces: aggregate.NumOfPieces(),
		Hazmat:      aggregate.Hazmat(),
		HazmatClass: aggregate.HazmatClass(),

		Booked:              aggregate.Booked(),
		SessionID:           aggregate.SessionID(),
		Miles:               milesToColumn(aggregate.Miles()),
		Notes:               aggregate.Notes(),
		BrokerCompany:       aggregate.BrokerCompany(),
		CustomerName:        aggregate.CustomerName(),
		SpecialRequirements: pq.StringArray(aggregate.SpecialRequirements()),

		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		DeletedAt: aggregate.DeletedAt(),
		Version:   aggregate.Version(),
	}
}

func toDomain(dto LoadDTO) (*load.Load, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	origin, err := locationToDomain(dto.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := locationToDomain(dto.Destination)
	if err != nil {
		return nil, err
	}

	rate, err := kernel.NewMoney(dto.Rate)
	if err != nil {
		return nil, err
	}

	minRate, err := moneyToDomain(dto.MinRate)
	if err != nil {
		return nil, err
	}
	maxRate, err := moneyToDomain(dto.MaxRate)
	if err != nil {
		return nil, err
	}
	fuelSurcharge, err := moneyToDomain(dto.FuelSurcharge)
	if err != nil {
		return nil, err
	}

	miles, err := milesToDomain(dto.Miles)
	if err != nil {
		return nil, err
	}

	status, err := load.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return load.RestoreLoad(load.RestoreLoadParams{
		ID:              id,
		ReferenceNumber: dto.ReferenceNumber,
		Origin:          origin,
		Destination:     destination,
		PickupAt:        dto.PickupAt,
		DeliveryAt:      dto.DeliveryAt,

		Rate:          rate,
		MinRate:       minRate,
		MaxRate:       maxRate,
		FuelSurcharge: fuelSurcharge,

		Equipment:   load.EquipmentType(dto.Equipment),
		Commodity:   dto.Commodity,
		WeightLbs:   dto.WeightLbs,
		Dimensions:  dto.Dimensions,
		NumOfPieces: dto.NumOfPieces,
		Hazmat:      dto.Hazmat,
		HazmatClass: dto.HazmatClass,

		Booked:              dto.Booked,
		SessionID:           dto.SessionID,
		Miles:               miles,
		Notes:               dto.Notes,
		BrokerCompany:       dto.BrokerCompany,
		CustomerName:        dto.CustomerName,
		SpecialRequirements: dto.SpecialRequirements,

		Status:    status,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		DeletedAt: dto.DeletedAt,
		Version:   dto.Version,
	})
}

func locationFromDomain(location kernel.Location) LocationDTO {
	return LocationDTO{
		City:       location.City(),
		State:      location.State(),
		PostalCode: location.PostalCode(),
	}
}

func locationToDomain(dto LocationDTO) (kernel.Location, error) {
	return kernel.NewLocation(dto.City, dto.State, dto.PostalCode)
}

func moneyToColumn(m *kernel.Money) decimal.NullDecimal {
	if m == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: m.Amount(), Valid: true}
}

func moneyToDomain(d decimal.NullDecimal) (*kernel.Money, error) {
	if !d.Valid {
		return nil, nil
	}
	m, err := kernel.NewMoney(d.Decimal)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func milesToColumn(d *kernel.Distance) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d.Miles(), Valid: true}
}

func milesToDomain(d decimal.NullDecimal) (*kernel.Distance, error) {
	if !d.Valid {
		return nil, nil
	}
	distance, err := kernel.NewDistance(d.Decimal)
	if err != nil {
		return nil, err
	}
	return &distance, nil
}

package queries

import (
	"context"
	"errors"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// loadDetailRow is the full-detail projection scanned from the loads table.
type loadDetailRow struct {
	ID               uuid.UUID `gorm:"column:id"`
	ReferenceNumber  string    `gorm:"column:reference_number"`
	OriginCity       string    `gorm:"column:origin_city"`
	OriginState      string    `gorm:"column:origin_state"`
	OriginPostalCode string    `gorm:"column:origin_postal_code"`
	DestCity         string    `gorm:"column:dest_city"`
	DestState        string    `gorm:"column:dest_state"`
	DestPostalCode   string    `gorm:"column:dest_postal_code"`
	PickupAt         time.Time `gorm:"column:pickup_at"`
	DeliveryAt       time.Time `gorm:"column:delivery_at"`

	Rate          decimal.Decimal     `gorm:"column:rate"`
	MinRate       decimal.NullDecimal `gorm:"column:min_rate"`
	MaxRate       decimal.NullDecimal `gorm:"column:max_rate"`
	FuelSurcharge decimal.NullDecimal `gorm:"column:fuel_surcharge"`
	RatePerMile   decimal.NullDecimal `gorm:"column:rate_per_mile"`

	Equipment   string `gorm:"column:equipment"`
	Commodity   string `gorm:"column:commodity"`
	WeightLbs   int    `gorm:"column:weight_lbs"`
	Dimensions  string `gorm:"column:dimensions"`
	NumOfPieces int    `gorm:"column:num_of_pieces"`
	Hazmat      bool   `gorm:"column:hazmat"`
	HazmatClass string `gorm:"column:hazmat_class"`

	Booked              bool                `gorm:"column:booked"`
	SessionID           string              `gorm:"column:session_id"`
	Miles               decimal.NullDecimal `gorm:"column:miles"`
	Notes               string              `gorm:"column:notes"`
	BrokerCompany       string              `gorm:"column:broker_company"`
	CustomerName        string              `gorm:"column:customer_name"`
	SpecialRequirements pq.StringArray      `gorm:"column:special_requirements;type:text[]"`

	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	Version   int       `gorm:"column:version"`
}

// GetLoadQueryHandler serves load detail straight from the database.
type GetLoadQueryHandler struct {
	db *gorm.DB
}

// NewGetLoadQueryHandler creates a handler for load detail queries.
func NewGetLoadQueryHandler(db *gorm.DB) GetLoadQueryHandler {
	return GetLoadQueryHandler{db: db}
}

// Handle executes the detail query. Missing and soft-deleted loads both
// report LoadNotFoundError: from the read side a deleted load is gone.
func (h GetLoadQueryHandler) Handle(ctx context.Context, query GetLoadQuery) (GetLoadResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLoadResponse{}, err
	}

	var row loadDetailRow
	err := h.db.WithContext(ctx).Table("loads").
		Select("id, reference_number, origin_city, origin_state, origin_postal_code, "+
			"dest_city, dest_state, dest_postal_code, pickup_at, delivery_at, "+
			"rate, min_rate, max_rate, fuel_surcharge, "+
			ratePerMileExpr+" AS rate_per_mile, "+
			"equipment, commodity, weight_lbs, dimensions, num_of_pieces, hazmat, hazmat_class, "+
			"booked, session_id, miles, notes, broker_company, customer_name, special_requirements, "+
			"status, created_at, updated_at, version").
		Where("id = ? AND deleted_at IS NULL", query.LoadID().String()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetLoadResponse{}, errs.NewLoadNotFoundError(query.LoadID().String())
		}
		return GetLoadResponse{}, errs.NewRepositoryError("get load", err)
	}

	return row.toResponse()
}

func (r *loadDetailRow) toResponse() (GetLoadResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return GetLoadResponse{}, err
	}

	origin, err := kernel.NewLocation(r.OriginCity, r.OriginState, r.OriginPostalCode)
	if err != nil {
		return GetLoadResponse{}, err
	}
	destination, err := kernel.NewLocation(r.DestCity, r.DestState, r.DestPostalCode)
	if err != nil {
		return GetLoadResponse{}, err
	}

	rate, err := kernel.NewMoney(r.Rate)
	if err != nil {
		return GetLoadResponse{}, err
	}

	minRate, err := optionalMoney(r.MinRate)
	if err != nil {
		return GetLoadResponse{}, err
	}
	maxRate, err := optionalMoney(r.MaxRate)
	if err != nil {
		return GetLoadResponse{}, err
	}
	fuelSurcharge, err := optionalMoney(r.FuelSurcharge)
	if err != nil {
		return GetLoadResponse{}, err
	}
	ratePerMile, err := optionalMoney(r.RatePerMile)
	if err != nil {
		return GetLoadResponse{}, err
	}

	var miles *kernel.Distance
	if r.Miles.Valid {
		distance, distErr := kernel.NewDistance(r.Miles.Decimal)
		if distErr != nil {
			return GetLoadResponse{}, distErr
		}
		miles = &distance
	}

	status, err := load.StatusFromString(r.Status)
	if err != nil {
		return GetLoadResponse{}, err
	}

	return GetLoadResponse{
		ID:                  id,
		ReferenceNumber:     r.ReferenceNumber,
		Origin:              origin,
		Destination:         destination,
		PickupAt:            r.PickupAt,
		DeliveryAt:          r.DeliveryAt,
		Rate:                rate,
		MinRate:             minRate,
		MaxRate:             maxRate,
		FuelSurcharge:       fuelSurcharge,
		RatePerMile:         ratePerMile,
		Equipment:           load.EquipmentType(r.Equipment),
		Commodity:           r.Commodity,
		WeightLbs:           r.WeightLbs,
		Dimensions:          r.Dimensions,
		NumOfPieces:         r.NumOfPieces,
		Hazmat:              r.Hazmat,
		HazmatClass:         r.HazmatClass,
		Booked:              r.Booked,
		SessionID:           r.SessionID,
		Miles:               miles,
		Notes:               r.Notes,
		BrokerCompany:       r.BrokerCompany,
		CustomerName:        r.CustomerName,
		SpecialRequirements: r.SpecialRequirements,
		Status:              status,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
		Version:             r.Version,
	}, nil
}

func optionalMoney(d decimal.NullDecimal) (*kernel.Money, error) {
	if !d.Valid {
		return nil, nil
	}
	m, err := kernel.NewMoney(d.Decimal)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

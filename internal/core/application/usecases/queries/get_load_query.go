package queries

import (
	"errors"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/guard"
)

var ErrGetLoadQueryIsNotConstructed = errors.New(
	"GetLoadQuery must be created via NewGetLoadQuery constructor",
)

// GetLoadQuery retrieves the full detail of one load by identity.
// Soft-deleted loads are not served.
type GetLoadQuery struct {
	loadID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLoadQuery creates a detail query for the given load.
func NewGetLoadQuery(loadID kernel.UUID) (GetLoadQuery, error) {
	if err := loadID.Validate(); err != nil {
		return GetLoadQuery{}, errs.NewValidationError("load_id", err)
	}

	return GetLoadQuery{
		loadID: loadID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLoadQuery) Validate() error {
	return q.guard.Validate(ErrGetLoadQueryIsNotConstructed)
}

// LoadID returns the target load identity.
func (q GetLoadQuery) LoadID() kernel.UUID {
	return q.loadID
}

// GetLoadResponse is the full detail projection of one load. RatePerMile is
// derived at read time and nil when miles are missing or zero.
type GetLoadResponse struct {
	ID              kernel.UUID
	ReferenceNumber string
	Origin          kernel.Location
	Destination     kernel.Location
	PickupAt        time.Time
	DeliveryAt      time.Time

	Rate          kernel.Money
	MinRate       *kernel.Money
	MaxRate       *kernel.Money
	FuelSurcharge *kernel.Money
	RatePerMile   *kernel.Money

	Equipment   load.EquipmentType
	Commodity   string
	WeightLbs   int
	Dimensions  string
	NumOfPieces int
	Hazmat      bool
	HazmatClass string

	Booked              bool
	SessionID           string
	Miles               *kernel.Distance
	Notes               string
	BrokerCompany       string
	CustomerName        string
	SpecialRequirements []string

	Status    load.Status
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

package load

import (
	"errors"
	"fmt"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"
)

// ErrLoadIsNotConstructed is returned when a Load instance was not created
// through NewLoad or RestoreLoad.
var ErrLoadIsNotConstructed = errors.New("Load must be created via NewLoad or RestoreLoad constructor")

// DefaultMaxWeightLbs is the weight ceiling applied when no explicit limit
// is configured.
const DefaultMaxWeightLbs = 80000

// Load is the aggregate root of the load board: a freight shipment listing
// with route, schedule, commercial terms, cargo profile, and lifecycle state.
//
// Invariants held at all times:
//   - pickup strictly precedes delivery
//   - weight is positive and below the configured ceiling
//   - min_rate ≤ loadboard_rate ≤ max_rate whenever both bounds are set
//   - hazmat loads carry a hazmat class
//   - equipment type is a catalog value
//
// Status changes follow the transition graph in Status. A soft-deleted load
// or a load in a terminal status never mutates again, except through the
// deletion path itself. The version counter backs optimistic concurrency:
// it starts at 0 and the store advances it by exactly 1 per successful write.
type Load struct {
	id              kernel.UUID
	referenceNumber string

	origin      kernel.Location
	destination kernel.Location

	pickupAt   time.Time
	deliveryAt time.Time

	rate          kernel.Money
	minRate       *kernel.Money
	maxRate       *kernel.Money
	fuelSurcharge *kernel.Money

	equipment   EquipmentType
	commodity   string
	weightLbs   int
	dimensions  string
	numOfPieces int
	hazmat      bool
	hazmatClass string

	booked              bool
	sessionID           string
	miles               *kernel.Distance
	notes               string
	brokerCompany       string
	customerName        string
	specialRequirements []string

	status    Status
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
	version   int

	isConstructed bool
}

// NewLoadParams carries the caller-supplied fields for load creation.
// MaxWeightLbs configures the weight ceiling; zero means DefaultMaxWeightLbs.
type NewLoadParams struct {
	ID          kernel.UUID
	Origin      kernel.Location
	Destination kernel.Location
	PickupAt    time.Time
	DeliveryAt  time.Time

	Rate          kernel.Money
	MinRate       *kernel.Money
	MaxRate       *kernel.Money
	FuelSurcharge *kernel.Money

	Equipment   EquipmentType
	Commodity   string
	WeightLbs   int
	Dimensions  string
	NumOfPieces int
	Hazmat      bool
	HazmatClass string

	SessionID           string
	Miles               *kernel.Distance
	Notes               string
	BrokerCompany       string
	CustomerName        string
	SpecialRequirements []string

	MaxWeightLbs int
}

// NewLoad creates a fresh load in Available status at version 0.
// The reference number must already be assigned (the create use case derives
// it from the monthly counter); now stamps created_at and updated_at, with
// the zero value falling back to the current UTC time.
//
// All NewLoadParams fields are validated as a whole; the first violated
// invariant is reported as a ValidationError naming the offending field.
func NewLoad(referenceNumber string, p NewLoadParams, now time.Time) (*Load, error) {
	if referenceNumber == "" {
		return nil, errs.NewValidationError("reference_number", errors.New("reference number is required"))
	}
	if err := p.ID.Validate(); err != nil {
		return nil, errs.NewValidationError("load_id", err)
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	l := &Load{
		id:                  p.ID,
		referenceNumber:     referenceNumber,
		origin:              p.Origin,
		destination:         p.Destination,
		pickupAt:            p.PickupAt,
		deliveryAt:          p.DeliveryAt,
		rate:                p.Rate,
		minRate:             p.MinRate,
		maxRate:             p.MaxRate,
		fuelSurcharge:       p.FuelSurcharge,
		equipment:           p.Equipment,
		commodity:           p.Commodity,
		weightLbs:           p.WeightLbs,
		dimensions:          p.Dimensions,
		numOfPieces:         p.NumOfPieces,
		hazmat:              p.Hazmat,
		hazmatClass:         p.HazmatClass,
		sessionID:           p.SessionID,
		miles:               p.Miles,
		notes:               p.Notes,
		brokerCompany:       p.BrokerCompany,
		customerName:        p.CustomerName,
		specialRequirements: append([]string(nil), p.SpecialRequirements...),
		status:              Available,
		createdAt:           now,
		updatedAt:           now,
		version:             0,
		isConstructed:       true,
	}

	if err := l.validateInvariants(p.MaxWeightLbs); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLoadParams carries the full persisted state of a load.
type RestoreLoadParams struct {
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

	Equipment   EquipmentType
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

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	Version   int
}

// RestoreLoad reconstructs a load from persistence. Status and version are
// taken as stored; status validity is still checked so corrupt rows surface
// instead of flowing into the state machine.
func RestoreLoad(p RestoreLoadParams) (*Load, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, errs.NewValidationError("load_id", err)
	}
	if p.ReferenceNumber == "" {
		return nil, errs.NewValidationError("reference_number", errors.New("reference number is required"))
	}
	if err := p.Status.Validate(); err != nil {
		return nil, err
	}
	if p.Version < 0 {
		return nil, errs.NewValidationError("version", fmt.Errorf("%d is negative", p.Version))
	}

	return &Load{
		id:                  p.ID,
		referenceNumber:     p.ReferenceNumber,
		origin:              p.Origin,
		destination:         p.Destination,
		pickupAt:            p.PickupAt,
		deliveryAt:          p.DeliveryAt,
		rate:                p.Rate,
		minRate:             p.MinRate,
		maxRate:             p.MaxRate,
		fuelSurcharge:       p.FuelSurcharge,
		equipment:           p.Equipment,
		commodity:           p.Commodity,
		weightLbs:           p.WeightLbs,
		dimensions:          p.Dimensions,
		numOfPieces:         p.NumOfPieces,
		hazmat:              p.Hazmat,
		hazmatClass:         p.HazmatClass,
		booked:              p.Booked,
		sessionID:           p.SessionID,
		miles:               p.Miles,
		notes:               p.Notes,
		brokerCompany:       p.BrokerCompany,
		customerName:        p.CustomerName,
		specialRequirements: append([]string(nil), p.SpecialRequirements...),
		status:              p.Status,
		createdAt:           p.CreatedAt,
		updatedAt:           p.UpdatedAt,
		deletedAt:           p.DeletedAt,
		version:             p.Version,
		isConstructed:       true,
	}, nil
}

// Validate ensures the Load was created through a constructor.
func (l *Load) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLoadIsNotConstructed
	}
	return nil
}

// IsEqual compares two loads by identity.
func (l *Load) IsEqual(other *Load) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the opaque unique identifier.
func (l *Load) ID() kernel.UUID { return l.id }

// ReferenceNumber returns the human-readable identity, immutable once assigned.
func (l *Load) ReferenceNumber() string { return l.referenceNumber }

// Origin returns the pickup location.
func (l *Load) Origin() kernel.Location { return l.origin }

// Destination returns the drop-off location.
func (l *Load) Destination() kernel.Location { return l.destination }

// PickupAt returns the scheduled pickup time.
func (l *Load) PickupAt() time.Time { return l.pickupAt }

// DeliveryAt returns the scheduled delivery time.
func (l *Load) DeliveryAt() time.Time { return l.deliveryAt }

// Rate returns the posted loadboard rate.
func (l *Load) Rate() kernel.Money { return l.rate }

// MinRate returns the lower bound of the negotiable band, nil when unset.
func (l *Load) MinRate() *kernel.Money { return l.minRate }

// MaxRate returns the upper bound of the negotiable band, nil when unset.
func (l *Load) MaxRate() *kernel.Money { return l.maxRate }

// FuelSurcharge returns the fuel surcharge, nil when unset.
func (l *Load) FuelSurcharge() *kernel.Money { return l.fuelSurcharge }

// Equipment returns the required equipment type.
func (l *Load) Equipment() EquipmentType { return l.equipment }

// Commodity returns the commodity type.
func (l *Load) Commodity() string { return l.commodity }

// WeightLbs returns the cargo weight in pounds.
func (l *Load) WeightLbs() int { return l.weightLbs }

// Dimensions returns the free-form dimensions note, empty when unset.
func (l *Load) Dimensions() string { return l.dimensions }

// NumOfPieces returns the piece count, zero when unspecified.
func (l *Load) NumOfPieces() int { return l.numOfPieces }

// Hazmat reports whether the cargo is hazardous.
func (l *Load) Hazmat() bool { return l.hazmat }

// HazmatClass returns the hazmat class, required whenever Hazmat is true.
func (l *Load) HazmatClass() string { return l.hazmatClass }

// Booked reports the operational booked flag.
func (l *Load) Booked() bool { return l.booked }

// SessionID returns the call correlation token, empty when unset.
func (l *Load) SessionID() string { return l.sessionID }

// Miles returns the route distance, nil when unknown.
func (l *Load) Miles() *kernel.Distance { return l.miles }

// Notes returns the free-form notes.
func (l *Load) Notes() string { return l.notes }

// BrokerCompany returns the brokering company name.
func (l *Load) BrokerCompany() string { return l.brokerCompany }

// CustomerName returns the customer name.
func (l *Load) CustomerName() string { return l.customerName }

// SpecialRequirements returns the ordered requirement list.
func (l *Load) SpecialRequirements() []string {
	return append([]string(nil), l.specialRequirements...)
}

// Status returns the current lifecycle status.
func (l *Load) Status() Status { return l.status }

// CreatedAt returns the immutable creation timestamp.
func (l *Load) CreatedAt() time.Time { return l.createdAt }

// UpdatedAt returns the timestamp of the last successful write.
func (l *Load) UpdatedAt() time.Time { return l.updatedAt }

// DeletedAt returns the soft-delete marker, nil for live loads.
func (l *Load) DeletedAt() *time.Time { return l.deletedAt }

// IsDeleted reports whether the load is soft-deleted.
func (l *Load) IsDeleted() bool { return l.deletedAt != nil }

// Version returns the optimistic-concurrency counter.
func (l *Load) Version() int { return l.version }

// MarkDeleted soft-deletes the load. Deletion is the one mutation permitted
// on frozen loads; it fails only when the load is already deleted.
func (l *Load) MarkDeleted(now time.Time) error {
	if l.IsDeleted() {
		return errs.NewLoadDeletedError(l.id.String())
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	l.deletedAt = &now
	l.updatedAt = now
	return nil
}

// validateInvariants re-checks the whole entity. maxWeightLbs of zero falls
// back to DefaultMaxWeightLbs.
func (l *Load) validateInvariants(maxWeightLbs int) error {
	if maxWeightLbs <= 0 {
		maxWeightLbs = DefaultMaxWeightLbs
	}

	if err := l.origin.Validate(); err != nil {
		return errs.NewValidationError("origin", err)
	}
	if err := l.destination.Validate(); err != nil {
		return errs.NewValidationError("destination", err)
	}

	if l.pickupAt.IsZero() {
		return errs.NewValidationError("pickup_datetime", errors.New("pickup time is required"))
	}
	if l.deliveryAt.IsZero() {
		return errs.NewValidationError("delivery_datetime", errors.New("delivery time is required"))
	}
	if !l.pickupAt.Before(l.deliveryAt) {
		return errs.NewValidationError("pickup_datetime",
			fmt.Errorf("pickup %s must precede delivery %s",
				l.pickupAt.Format(time.RFC3339), l.deliveryAt.Format(time.RFC3339)))
	}

	if err := l.rate.Validate(); err != nil {
		return errs.NewValidationError("loadboard_rate", err)
	}
	if l.minRate != nil && l.maxRate != nil && l.maxRate.LessThan(*l.minRate) {
		return errs.NewValidationError("min_rate",
			fmt.Errorf("min rate %s exceeds max rate %s", l.minRate, l.maxRate))
	}
	if l.minRate != nil && l.rate.LessThan(*l.minRate) {
		return errs.NewValidationError("min_rate",
			fmt.Errorf("loadboard rate %s is below min rate %s", l.rate, l.minRate))
	}
	if l.maxRate != nil && l.maxRate.LessThan(l.rate) {
		return errs.NewValidationError("max_rate",
			fmt.Errorf("loadboard rate %s is above max rate %s", l.rate, l.maxRate))
	}

	if err := l.equipment.Validate(); err != nil {
		return err
	}
	if l.commodity == "" {
		return errs.NewValidationError("commodity_type", errors.New("commodity type is required"))
	}

	if l.weightLbs <= 0 || l.weightLbs > maxWeightLbs {
		return errs.NewValidationError("weight",
			errs.NewValueIsOutOfRangeError("weight", l.weightLbs, 1, maxWeightLbs))
	}

	if l.hazmat && l.hazmatClass == "" {
		return errs.NewValidationError("hazmat_class",
			errors.New("hazmat class is required for hazmat loads"))
	}

	return nil
}

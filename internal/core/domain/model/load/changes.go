package load

import (
	"errors"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"
)

// ChangeSet is a sparse partial update: only non-nil fields change, nil
// fields keep their current value. Optional entity fields are cleared by
// supplying a pointer to their empty value (e.g. an empty string for notes),
// which keeps "clear this" and "don't touch this" unambiguous.
//
// ReferenceNumber and CreatedAt exist only so callers may echo them back;
// a differing value is rejected because both fields are immutable.
type ChangeSet struct {
	Origin      *kernel.Location
	Destination *kernel.Location
	PickupAt    *time.Time
	DeliveryAt  *time.Time

	Rate          *kernel.Money
	MinRate       **kernel.Money
	MaxRate       **kernel.Money
	FuelSurcharge **kernel.Money

	Equipment   *EquipmentType
	Commodity   *string
	WeightLbs   *int
	Dimensions  *string
	NumOfPieces *int
	Hazmat      *bool
	HazmatClass *string

	Booked              *bool
	SessionID           *string
	Miles               **kernel.Distance
	Notes               *string
	BrokerCompany       *string
	CustomerName        *string
	SpecialRequirements *[]string

	Status *Status

	ReferenceNumber *string
	CreatedAt       *time.Time
}

// IsEmpty reports whether the change set touches nothing.
func (c ChangeSet) IsEmpty() bool {
	return c.Origin == nil && c.Destination == nil &&
		c.PickupAt == nil && c.DeliveryAt == nil &&
		c.Rate == nil && c.MinRate == nil && c.MaxRate == nil && c.FuelSurcharge == nil &&
		c.Equipment == nil && c.Commodity == nil && c.WeightLbs == nil &&
		c.Dimensions == nil && c.NumOfPieces == nil &&
		c.Hazmat == nil && c.HazmatClass == nil &&
		c.Booked == nil && c.SessionID == nil && c.Miles == nil &&
		c.Notes == nil && c.BrokerCompany == nil && c.CustomerName == nil &&
		c.SpecialRequirements == nil && c.Status == nil
}

// ApplyChanges merges a change set onto the load and re-validates the merged
// entity as a whole. Either every change lands or none does: the receiver is
// untouched when any check fails.
//
// Checks run in order: immutable-field echoes, then the status transition
// against the graph, then the full invariant set on the merged state.
// The guard sequence for deleted/frozen loads is the caller's duty; this
// method assumes the load is mutable.
func (l *Load) ApplyChanges(c ChangeSet, maxWeightLbs int, now time.Time) error {
	if err := l.Validate(); err != nil {
		return err
	}

	if c.ReferenceNumber != nil && *c.ReferenceNumber != l.referenceNumber {
		return errs.NewValidationError("reference_number", errors.New("field is immutable"))
	}
	if c.CreatedAt != nil && !c.CreatedAt.Equal(l.createdAt) {
		return errs.NewValidationError("created_at", errors.New("field is immutable"))
	}

	next := *l
	next.specialRequirements = append([]string(nil), l.specialRequirements...)

	if c.Status != nil {
		newStatus, err := l.status.Transition(*c.Status)
		if err != nil {
			return err
		}
		next.status = newStatus
	}

	if c.Origin != nil {
		next.origin = *c.Origin
	}
	if c.Destination != nil {
		next.destination = *c.Destination
	}
	if c.PickupAt != nil {
		next.pickupAt = *c.PickupAt
	}
	if c.DeliveryAt != nil {
		next.deliveryAt = *c.DeliveryAt
	}
	if c.Rate != nil {
		next.rate = *c.Rate
	}
	if c.MinRate != nil {
		next.minRate = *c.MinRate
	}
	if c.MaxRate != nil {
		next.maxRate = *c.MaxRate
	}
	if c.FuelSurcharge != nil {
		next.fuelSurcharge = *c.FuelSurcharge
	}
	if c.Equipment != nil {
		next.equipment = *c.Equipment
	}
	if c.Commodity != nil {
		next.commodity = *c.Commodity
	}
	if c.WeightLbs != nil {
		next.weightLbs = *c.WeightLbs
	}
	if c.Dimensions != nil {
		next.dimensions = *c.Dimensions
	}
	if c.NumOfPieces != nil {
		next.numOfPieces = *c.NumOfPieces
	}
	if c.Hazmat != nil {
		next.hazmat = *c.Hazmat
	}
	if c.HazmatClass != nil {
		next.hazmatClass = *c.HazmatClass
	}
	if c.Booked != nil {
		next.booked = *c.Booked
	}
	if c.SessionID != nil {
		next.sessionID = *c.SessionID
	}
	if c.Miles != nil {
		next.miles = *c.Miles
	}
	if c.Notes != nil {
		next.notes = *c.Notes
	}
	if c.BrokerCompany != nil {
		next.brokerCompany = *c.BrokerCompany
	}
	if c.CustomerName != nil {
		next.customerName = *c.CustomerName
	}
	if c.SpecialRequirements != nil {
		next.specialRequirements = append([]string(nil), (*c.SpecialRequirements)...)
	}

	if err := next.validateInvariants(maxWeightLbs); err != nil {
		return err
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}
	next.updatedAt = now

	*l = next
	return nil
}

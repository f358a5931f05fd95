package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/guard"
)

var ErrCreateLoadCommandIsNotConstructed = errors.New(
	"CreateLoadCommand must be created via NewCreateLoadCommand constructor",
)

// CreateLoadCommand represents a request to post a new load. It carries the
// caller-supplied fields of load.NewLoadParams; identity, reference number,
// and the weight ceiling are assigned by the handler.
//
// Example:
//
//	cmd, err := NewCreateLoadCommand(load.NewLoadParams{
//	    Origin:      origin,
//	    Destination: destination,
//	    PickupAt:    pickup,
//	    DeliveryAt:  delivery,
//	    Rate:        rate,
//	    Equipment:   load.EquipmentDryVan53,
//	    Commodity:   "general freight",
//	    WeightLbs:   40000,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid load data: %w", err)
//	}
//	resp, err := handler.Handle(ctx, cmd)
type CreateLoadCommand struct {
	params load.NewLoadParams

	guard guard.ConstructorGuard
}

// NewCreateLoadCommand builds the command, checking that the required
// fields are present. Full invariant validation (schedule ordering, rate
// band, weight ceiling, hazmat class) happens in the Load constructor so
// there is exactly one source of truth for the rules.
func NewCreateLoadCommand(params load.NewLoadParams) (CreateLoadCommand, error) {
	if err := params.Origin.Validate(); err != nil {
		return CreateLoadCommand{}, errs.NewValidationError("origin", err)
	}
	if err := params.Destination.Validate(); err != nil {
		return CreateLoadCommand{}, errs.NewValidationError("destination", err)
	}
	if params.PickupAt.IsZero() {
		return CreateLoadCommand{}, errs.NewValidationError("pickup_datetime",
			errors.New("pickup time is required"))
	}
	if params.DeliveryAt.IsZero() {
		return CreateLoadCommand{}, errs.NewValidationError("delivery_datetime",
			errors.New("delivery time is required"))
	}
	if err := params.Rate.Validate(); err != nil {
		return CreateLoadCommand{}, errs.NewValidationError("loadboard_rate", err)
	}

	return CreateLoadCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateLoadCommand) Validate() error {
	return c.guard.Validate(ErrCreateLoadCommandIsNotConstructed)
}

// Params returns the caller-supplied creation fields.
func (c CreateLoadCommand) Params() load.NewLoadParams {
	return c.params
}

package commands

import (
	"errors"
	"fmt"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/guard"
)

var ErrUpdateLoadCommandIsNotConstructed = errors.New(
	"UpdateLoadCommand must be created via NewUpdateLoadCommand constructor",
)

// UpdateLoadCommand represents a partial update of one load under optimistic
// concurrency: the target identity, the version the caller last observed,
// and a sparse change set. Omitted fields keep their current value.
//
// An empty change set is permitted; it still goes through the conditional
// write, bumping the version and refreshing updated_at.
type UpdateLoadCommand struct {
	loadID  kernel.UUID
	version int
	changes load.ChangeSet

	guard guard.ConstructorGuard
}

// NewUpdateLoadCommand builds the command. The load id must be constructed
// and the observed version non-negative.
func NewUpdateLoadCommand(loadID kernel.UUID, version int, changes load.ChangeSet) (UpdateLoadCommand, error) {
	if err := loadID.Validate(); err != nil {
		return UpdateLoadCommand{}, errs.NewValidationError("load_id", err)
	}
	if version < 0 {
		return UpdateLoadCommand{}, errs.NewValidationError("version",
			fmt.Errorf("%d is negative", version))
	}

	return UpdateLoadCommand{
		loadID:  loadID,
		version: version,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLoadCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLoadCommandIsNotConstructed)
}

// LoadID returns the target load identity.
func (c UpdateLoadCommand) LoadID() kernel.UUID {
	return c.loadID
}

// Version returns the version the caller last observed.
func (c UpdateLoadCommand) Version() int {
	return c.version
}

// Changes returns the sparse field updates.
func (c UpdateLoadCommand) Changes() load.ChangeSet {
	return c.changes
}

package commands

import (
	"errors"
	"fmt"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/guard"
)

var ErrDeleteLoadCommandIsNotConstructed = errors.New(
	"DeleteLoadCommand must be created via NewDeleteLoadCommand constructor",
)

// DeleteLoadCommand represents a soft delete of one load. Deletion is the
// only destruction path the core offers and the one mutation permitted on
// terminal loads; rows are never physically removed here.
type DeleteLoadCommand struct {
	loadID  kernel.UUID
	version int

	guard guard.ConstructorGuard
}

// NewDeleteLoadCommand builds the command with the caller's last-observed
// version; deletion runs through the same conditional-write protocol as
// updates.
func NewDeleteLoadCommand(loadID kernel.UUID, version int) (DeleteLoadCommand, error) {
	if err := loadID.Validate(); err != nil {
		return DeleteLoadCommand{}, errs.NewValidationError("load_id", err)
	}
	if version < 0 {
		return DeleteLoadCommand{}, errs.NewValidationError("version",
			fmt.Errorf("%d is negative", version))
	}

	return DeleteLoadCommand{
		loadID:  loadID,
		version: version,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteLoadCommand) Validate() error {
	return c.guard.Validate(ErrDeleteLoadCommandIsNotConstructed)
}

// LoadID returns the target load identity.
func (c DeleteLoadCommand) LoadID() kernel.UUID {
	return c.loadID
}

// Version returns the version the caller last observed.
func (c DeleteLoadCommand) Version() int {
	return c.version
}

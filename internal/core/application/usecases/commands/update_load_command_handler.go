package commands

import (
	"context"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"
)

// UpdateLoadResponse reports the state of a load after a successful update.
type UpdateLoadResponse struct {
	LoadID          kernel.UUID
	ReferenceNumber string
	Status          load.Status
	UpdatedAt       time.Time
	Version         int
}

// UpdateLoadCommandHandler applies partial updates to loads under the
// optimistic concurrency protocol.
//
// Guards run before any field is touched, each with its own error kind:
// the load must exist, must not be soft-deleted, and must not be frozen by
// a terminal status. The merge itself enforces immutable fields, the status
// transition graph, and the full invariant set. The write is a single
// conditional statement keyed on the observed version; its failure is the
// one and only conflict signal. The handler never pre-checks the version,
// because a check-then-write pair would reintroduce the lost-update race.
type UpdateLoadCommandHandler struct {
	uowFactory   LoadUoWFactory
	maxWeightLbs int
}

// NewUpdateLoadCommandHandler creates a handler for load updates.
func NewUpdateLoadCommandHandler(uowFactory LoadUoWFactory, maxWeightLbs int) UpdateLoadCommandHandler {
	return UpdateLoadCommandHandler{
		uowFactory:   uowFactory,
		maxWeightLbs: maxWeightLbs,
	}
}

// Handle processes the update command. On success the stored version has
// advanced by exactly 1; on any failure the load is untouched.
func (h *UpdateLoadCommandHandler) Handle(ctx context.Context, cmd UpdateLoadCommand) (UpdateLoadResponse, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateLoadResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateLoadResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LoadRepository()

	aggregate, err := repo.GetByID(ctx, cmd.LoadID())
	if err != nil {
		return UpdateLoadResponse{}, err
	}

	if aggregate.IsDeleted() {
		return UpdateLoadResponse{}, errs.NewLoadDeletedError(aggregate.ID().String())
	}
	if aggregate.Status() == load.Delivered {
		// Delivered loads are fully frozen, status included.
		return UpdateLoadResponse{}, errs.NewLoadImmutableError(
			aggregate.ID().String(), aggregate.Status().String())
	}
	if aggregate.Status() == load.Cancelled && cmd.Changes().Status == nil {
		// Cancelled is terminal too; a status change attempt falls through
		// to the transition check so the caller sees the from -> to pair.
		return UpdateLoadResponse{}, errs.NewLoadImmutableError(
			aggregate.ID().String(), aggregate.Status().String())
	}

	if err = aggregate.ApplyChanges(cmd.Changes(), h.maxWeightLbs, time.Now().UTC()); err != nil {
		return UpdateLoadResponse{}, err
	}

	newVersion, err := repo.ConditionalUpdate(ctx, aggregate, cmd.Version())
	if err != nil {
		return UpdateLoadResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateLoadResponse{}, err
	}

	return UpdateLoadResponse{
		LoadID:          aggregate.ID(),
		ReferenceNumber: aggregate.ReferenceNumber(),
		Status:          aggregate.Status(),
		UpdatedAt:       aggregate.UpdatedAt(),
		Version:         newVersion,
	}, nil
}

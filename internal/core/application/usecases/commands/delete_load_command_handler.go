package commands

import (
	"context"
	"time"

	"loadboard/internal/core/domain/model/kernel"
)

// DeleteLoadResponse reports the state of a load after a soft delete.
type DeleteLoadResponse struct {
	LoadID          kernel.UUID
	ReferenceNumber string
	DeletedAt       time.Time
	Version         int
}

// DeleteLoadCommandHandler soft-deletes loads through the conditional-write
// protocol. Already-deleted loads are rejected; terminal statuses are not,
// since deletion is the one mutation a frozen load still accepts.
type DeleteLoadCommandHandler struct {
	uowFactory LoadUoWFactory
}

// NewDeleteLoadCommandHandler creates a handler for load soft deletion.
func NewDeleteLoadCommandHandler(uowFactory LoadUoWFactory) DeleteLoadCommandHandler {
	return DeleteLoadCommandHandler{uowFactory: uowFactory}
}

// Handle processes the deletion command.
func (h *DeleteLoadCommandHandler) Handle(ctx context.Context, cmd DeleteLoadCommand) (DeleteLoadResponse, error) {
	if err := cmd.Validate(); err != nil {
		return DeleteLoadResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeleteLoadResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LoadRepository()

	aggregate, err := repo.GetByID(ctx, cmd.LoadID())
	if err != nil {
		return DeleteLoadResponse{}, err
	}

	if err = aggregate.MarkDeleted(time.Now().UTC()); err != nil {
		return DeleteLoadResponse{}, err
	}

	newVersion, err := repo.ConditionalUpdate(ctx, aggregate, cmd.Version())
	if err != nil {
		return DeleteLoadResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DeleteLoadResponse{}, err
	}

	return DeleteLoadResponse{
		LoadID:          aggregate.ID(),
		ReferenceNumber: aggregate.ReferenceNumber(),
		DeletedAt:       *aggregate.DeletedAt(),
		Version:         newVersion,
	}, nil
}

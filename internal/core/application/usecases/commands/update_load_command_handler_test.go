package commands_test

import (
	"errors"
	"testing"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func statusPtr(s load.Status) *load.Status { return &s }

func TestNewUpdateLoadCommand_Invalid(t *testing.T) {
	t.Run("unconstructed load id", func(t *testing.T) {
		_, err := commands.NewUpdateLoadCommand(kernel.UUID{}, 0, load.ChangeSet{})
		require.Error(t, err)

		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "load_id", validationErr.Field)
	})

	t.Run("negative version", func(t *testing.T) {
		_, err := commands.NewUpdateLoadCommand(kernel.NewUUID(), -1, load.ChangeSet{})
		require.Error(t, err)

		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "version", validationErr.Field)
	})
}

func TestUpdateLoadCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredLoad(t, load.Available, 3)

	notes := "call broker before pickup"
	cmd, err := commands.NewUpdateLoadCommand(aggregate.ID(), 3, load.ChangeSet{Notes: &notes})
	require.NoError(t, err)

	repo := new(MockLoadRepository)
	uow := new(MockLoadUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoadRepository").Return(repo).Once(),
		repo.On("GetByID", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("ConditionalUpdate", mock.Anything, aggregate, 3).Return(4, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoadUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateLoadCommandHandler(factory, 0)
	resp, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 4, resp.Version)
	require.Equal(t, "call broker before pickup", aggregate.Notes())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateLoadCommandHandler_Handle_NotConstructed(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateLoadCommand{} // not constructed properly

	factory := new(MockLoadUoWFactory)
	h := commands.NewUpdateLoadCommandHandler(factory, 0)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestUpdateLoadCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewUpdateLoadCommand(id, 0, load.ChangeSet{})
	require.NoError(t, err)

	repo := new(MockLoadRepository)
	uow := new(MockLoadUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoadRepository").Return(repo).Once(),
		repo.On("GetByID", mock.Anything, id).
			Return(nil, errs.NewLoadNotFoundError(id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoadUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateLoadCommandHandler(factory, 0)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrLoadNotFound)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateLoadCommandHandler_Handle_DeletedLoad(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredLoad(t, load.Available, 1)
	require.NoError(t, aggregate.MarkDeleted(aggregate.UpdatedAt()))

	cmd, err := commands.NewUpdateLoadCommand(aggregate.ID(), 1, load.ChangeSet{})
	require.NoError(t, err)

	repo := new(MockLoadRepository)
	uow := new(MockLoadUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoadRepository").Return(repo).Once(),
		repo.On("GetByID", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoadUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateLoadCommandHandler(factory, 0)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrLoadDeleted)
	repo.AssertNotCalled(t, "ConditionalUpdate")
}

func TestUpdateLoadCommandHandler_Handle_TerminalStatus(t *testing.T) {
	tests := map[string]struct {
		status  load.Status
		changes load.ChangeSet
		wantErr error
	}{
		"delivered rejects field edits": {
			status:  load.Delivered,
			changes: load.ChangeSet{Commodity: ptr("produce")},
			wantErr: errs.ErrLoadImmutable,
		},
		"delivered rejects status changes": {
			status:  load.Delivered,
			changes: load.ChangeSet{Status: statusPtr(load.Available)},
			wantErr: errs.ErrLoadImmutable,
		},
		"cancelled rejects field edits": {
			status:  load.Cancelled,
			changes: load.ChangeSet{Commodity: ptr("produce")},
			wantErr: errs.ErrLoadImmutable,
		},
		"cancelled reports transition on status change": {
			status:  load.Cancelled,
			changes: load.ChangeSet{Status: statusPtr(load.Available)},
			wantErr: errs.ErrInvalidTransition,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			aggregate := restoredLoad(t, tt.status, 2)
			cmd, err := commands.NewUpdateLoadCommand(aggregate.ID(), 2, tt.changes)
			require.NoError(t, err)

			repo := new(MockLoadRepository)
			uow := new(MockLoadUoW)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("LoadRepository").Return(repo).Once(),
				repo.On("GetByID", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(MockLoadUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewUpdateLoadCommandHandler(factory, 0)
			_, err = h.Handle(ctx, cmd)
			require.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "ConditionalUpdate")
		})
	}
}

func TestUpdateLoadCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredLoad(t, load.Available, 5)
	cmd, err := commands.NewUpdateLoadCommand(aggregate.ID(), 4, load.ChangeSet{})
	require.NoError(t, err)

	repo := new(MockLoadRepository)
	uow := new(MockLoadUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoadRepository").Return(repo).Once(),
		repo.On("GetByID", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("ConditionalUpdate", mock.Anything, aggregate, 4).
			Return(0, errs.NewVersionConflictError(aggregate.ID().String(), 4)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoadUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateLoadCommandHandler(factory, 0)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrVersionConflict)
	uow.AssertExpectations(t)
}

func TestUpdateLoadCommandHandler_Handle_InvalidMerge(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredLoad(t, load.Available, 0)
	weight := -50
	cmd, err := commands.NewUpdateLoadCommand(aggregate.ID(), 0, load.ChangeSet{WeightLbs: &weight})
	require.NoError(t, err)

	repo := new(MockLoadRepository)
	uow := new(MockLoadUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoadRepository").Return(repo).Once(),
		repo.On("GetByID", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoadUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateLoadCommandHandler(factory, 0)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValidation)
	require.Equal(t, 40000, aggregate.WeightLbs())
	repo.AssertNotCalled(t, "ConditionalUpdate")
}

func TestUpdateLoadCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredLoad(t, load.Available, 0)
	cmd, err := commands.NewUpdateLoadCommand(aggregate.ID(), 0, load.ChangeSet{})
	require.NoError(t, err)

	repo := new(MockLoadRepository)
	uow := new(MockLoadUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoadRepository").Return(repo).Once(),
		repo.On("GetByID", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("ConditionalUpdate", mock.Anything, aggregate, 0).Return(1, nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoadUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateLoadCommandHandler(factory, 0)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}

func ptr[T any](v T) *T { return &v }

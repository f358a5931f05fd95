package commands_test

import (
	"errors"
	"testing"
	"time"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateLoadCommand_MissingRequiredFields(t *testing.T) {
	tests := map[string]struct {
		mutate func(*load.NewLoadParams)
		field  string
	}{
		"missing origin": {
			mutate: func(p *load.NewLoadParams) { p.Origin = kernel.Location{} },
			field:  "origin",
		},
		"missing destination": {
			mutate: func(p *load.NewLoadParams) { p.Destination = kernel.Location{} },
			field:  "destination",
		},
		"missing pickup": {
			mutate: func(p *load.NewLoadParams) { p.PickupAt = time.Time{} },
			field:  "pickup_datetime",
		},
		"missing delivery": {
			mutate: func(p *load.NewLoadParams) { p.DeliveryAt = time.Time{} },
			field:  "delivery_datetime",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			params := validCreateParams(t)
			tt.mutate(&params)

			_, err := commands.NewCreateLoadCommand(params)
			require.Error(t, err)

			var validationErr *errs.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestCreateLoadCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateLoadCommand(validCreateParams(t))
	require.NoError(t, err)

	repo := new(MockLoadRepository)
	uow := new(MockLoadUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoadRepository").Return(repo).Once(),
		repo.On("MaxReferenceCounter", mock.Anything, mock.Anything, mock.Anything).Return(7, nil).Once(),
		repo.On("Create", mock.Anything, mock.AnythingOfType("*load.Load")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoadUoWFactory)
	factory.On("Create").Return(uow).Once()

	estimator := new(MockDistanceEstimator)

	h := commands.NewCreateLoadCommandHandler(factory, estimator, 0)
	resp, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, resp.LoadID.Validate())
	require.Equal(t, load.Available, resp.Status)
	require.Regexp(t, `^LD-\d{4}-\d{2}-00008$`, resp.ReferenceNumber)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	estimator.AssertNotCalled(t, "EstimateMiles")
}

func TestCreateLoadCommandHandler_Handle_EstimatesMissingMiles(t *testing.T) {
	ctx := t.Context()
	params := validCreateParams(t)
	params.Miles = nil
	cmd, err := commands.NewCreateLoadCommand(params)
	require.NoError(t, err)

	repo := new(MockLoadRepository)
	uow := new(MockLoadUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoadRepository").Return(repo).Once(),
		repo.On("MaxReferenceCounter", mock.Anything, mock.Anything, mock.Anything).Return(0, nil).Once(),
		repo.On("Create", mock.Anything, mock.MatchedBy(func(l *load.Load) bool {
			return l.Miles() != nil && l.Miles().String() == "812.5"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoadUoWFactory)
	factory.On("Create").Return(uow).Once()

	estimator := new(MockDistanceEstimator)
	estimator.On("EstimateMiles", mock.Anything, params.Origin, params.Destination).
		Return(mustDistance(t, "812.5"), nil).Once()

	h := commands.NewCreateLoadCommandHandler(factory, estimator, 0)
	resp, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Regexp(t, `^LD-\d{4}-\d{2}-00001$`, resp.ReferenceNumber)

	repo.AssertExpectations(t)
	estimator.AssertExpectations(t)
}

func TestCreateLoadCommandHandler_Handle_NotConstructed(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateLoadCommand{} // not constructed properly

	factory := new(MockLoadUoWFactory)
	estimator := new(MockDistanceEstimator)
	h := commands.NewCreateLoadCommandHandler(factory, estimator, 0)

	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateLoadCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateLoadCommand(validCreateParams(t))
	require.NoError(t, err)

	uow := new(MockLoadUoW)
	factory := new(MockLoadUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateLoadCommandHandler(factory, new(MockDistanceEstimator), 0)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateLoadCommandHandler_Handle_CreateError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateLoadCommand(validCreateParams(t))
	require.NoError(t, err)

	repo := new(MockLoadRepository)
	uow := new(MockLoadUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoadRepository").Return(repo).Once(),
		repo.On("MaxReferenceCounter", mock.Anything, mock.Anything, mock.Anything).Return(0, nil).Once(),
		repo.On("Create", mock.Anything, mock.AnythingOfType("*load.Load")).
			Return(errors.New("create error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoadUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateLoadCommandHandler(factory, new(MockDistanceEstimator), 0)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateLoadCommandHandler_Handle_RetriesDuplicateReference(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateLoadCommand(validCreateParams(t))
	require.NoError(t, err)

	repo := new(MockLoadRepository)
	repo.On("MaxReferenceCounter", mock.Anything, mock.Anything, mock.Anything).Return(4, nil).Twice()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*load.Load")).
		Return(errs.NewDuplicateKeyError("reference_number", "LD-2025-03-00005")).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*load.Load")).Return(nil).Once()

	uow := new(MockLoadUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("LoadRepository").Return(repo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockLoadUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewCreateLoadCommandHandler(factory, new(MockDistanceEstimator), 0)
	resp, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotEmpty(t, resp.ReferenceNumber)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateLoadCommandHandler_Handle_ExhaustsReferenceRetries(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateLoadCommand(validCreateParams(t))
	require.NoError(t, err)

	repo := new(MockLoadRepository)
	repo.On("MaxReferenceCounter", mock.Anything, mock.Anything, mock.Anything).Return(4, nil).Times(3)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*load.Load")).
		Return(errs.NewDuplicateKeyError("reference_number", "LD-2025-03-00005")).Times(3)

	uow := new(MockLoadUoW)
	uow.On("Begin", ctx).Return(nil).Times(3)
	uow.On("LoadRepository").Return(repo).Times(3)
	uow.On("Rollback", ctx).Return(nil).Times(3)

	factory := new(MockLoadUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	h := commands.NewCreateLoadCommandHandler(factory, new(MockDistanceEstimator), 0)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrDuplicateReference)

	var dupErr *errs.DuplicateReferenceError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, 3, dupErr.Attempts)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

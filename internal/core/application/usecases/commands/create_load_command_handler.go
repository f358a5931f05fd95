package commands

import (
	"context"
	"errors"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/core/ports"
	"loadboard/internal/pkg/errs"
)

// referenceAttempts bounds the retry budget when concurrent creations race
// for the same monthly counter.
const referenceAttempts = 3

// CreateLoadResponse reports the persisted identity of a new load.
type CreateLoadResponse struct {
	LoadID          kernel.UUID
	ReferenceNumber string
	Status          load.Status
	CreatedAt       time.Time
}

// CreateLoadCommandHandler creates new loads: it derives missing mileage
// through the distance estimator, assigns the next monthly reference number,
// and persists the aggregate in a single transactional write.
//
// Reference numbers are claimed optimistically: read the highest assigned
// counter, format counter+1, and let the unique constraint arbitrate. When
// a concurrent creation wins the same counter, the whole attempt rolls back
// and a fresh counter is read, up to referenceAttempts times.
type CreateLoadCommandHandler struct {
	uowFactory   LoadUoWFactory
	estimator    ports.DistanceEstimator
	maxWeightLbs int
}

// NewCreateLoadCommandHandler creates a handler for load creation.
// maxWeightLbs of zero applies the default ceiling.
func NewCreateLoadCommandHandler(
	uowFactory LoadUoWFactory,
	estimator ports.DistanceEstimator,
	maxWeightLbs int,
) CreateLoadCommandHandler {
	return CreateLoadCommandHandler{
		uowFactory:   uowFactory,
		estimator:    estimator,
		maxWeightLbs: maxWeightLbs,
	}
}

// Handle processes the creation command. Exactly one repository write
// happens on success; on any failure nothing is persisted.
func (h *CreateLoadCommandHandler) Handle(ctx context.Context, cmd CreateLoadCommand) (CreateLoadResponse, error) {
	if err := cmd.Validate(); err != nil {
		return CreateLoadResponse{}, err
	}

	params := cmd.Params()
	params.ID = kernel.NewUUID()
	params.MaxWeightLbs = h.maxWeightLbs

	if params.Miles == nil {
		miles, err := h.estimator.EstimateMiles(ctx, params.Origin, params.Destination)
		if err != nil {
			return CreateLoadResponse{}, err
		}
		params.Miles = &miles
	}

	now := time.Now().UTC()

	var lastReference string
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		resp, err := h.attemptCreate(ctx, params, now)
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, errs.ErrDuplicateKey) {
			return CreateLoadResponse{}, err
		}
		lastReference = resp.ReferenceNumber
	}

	return CreateLoadResponse{}, errs.NewDuplicateReferenceError(lastReference, referenceAttempts)
}

// attemptCreate runs one full counter-read/insert cycle in its own
// transaction. A duplicate-key failure aborts the transaction, so retries
// cannot reuse it. The claimed reference number is returned even on failure
// for error reporting.
func (h *CreateLoadCommandHandler) attemptCreate(
	ctx context.Context,
	params load.NewLoadParams,
	now time.Time,
) (CreateLoadResponse, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateLoadResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LoadRepository()

	counter, err := repo.MaxReferenceCounter(ctx, now.Year(), now.Month())
	if err != nil {
		return CreateLoadResponse{}, err
	}

	reference := load.FormatReferenceNumber(now.Year(), now.Month(), counter+1)

	aggregate, err := load.NewLoad(reference, params, now)
	if err != nil {
		return CreateLoadResponse{ReferenceNumber: reference}, err
	}

	if err = repo.Create(ctx, aggregate); err != nil {
		return CreateLoadResponse{ReferenceNumber: reference}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateLoadResponse{ReferenceNumber: reference}, err
	}

	return CreateLoadResponse{
		LoadID:          aggregate.ID(),
		ReferenceNumber: aggregate.ReferenceNumber(),
		Status:          aggregate.Status(),
		CreatedAt:       aggregate.CreatedAt(),
	}, nil
}

package ports

import (
	"context"

	"loadboard/internal/core/domain/model/kernel"
)

// DistanceEstimator supplies route mileage when the caller did not provide
// it. Implementations must be deterministic: identical origin/destination
// pairs always yield the same distance, so derived miles are reproducible.
type DistanceEstimator interface {
	EstimateMiles(ctx context.Context, origin, destination kernel.Location) (kernel.Distance, error)
}

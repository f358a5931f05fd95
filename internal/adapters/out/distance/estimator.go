// Package distance provides a deterministic highway-mileage estimator used
// when a load is posted without known miles. It stands in for a routing
// provider: distances are synthesized from the location pair, but the same
// pair always yields the same miles, so derived rate-per-mile figures stay
// stable across reads.
package distance

import (
	"context"
	"hash/fnv"
	"math"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/ports"

	"github.com/shopspring/decimal"
)

const (
	// gridSpan is the side of the synthetic coordinate plane, in miles.
	gridSpan = 2500.0

	// minMiles keeps distinct city pairs from collapsing to zero.
	minMiles = 25.0
)

// PlanarEstimator derives miles from synthetic planar coordinates: each
// location hashes to a fixed point on a gridSpan-sized plane and the estimate
// is the euclidean distance between the two points, floored at minMiles.
type PlanarEstimator struct{}

// NewPlanarEstimator creates the estimator.
func NewPlanarEstimator() *PlanarEstimator {
	return &PlanarEstimator{}
}

var _ ports.DistanceEstimator = (*PlanarEstimator)(nil)

// EstimateMiles returns the synthetic highway distance between two
// locations, rounded to one decimal. Identical origin and destination
// estimate to minMiles.
func (e *PlanarEstimator) EstimateMiles(
	_ context.Context,
	origin, destination kernel.Location,
) (kernel.Distance, error) {
	ox, oy := planarPoint(origin)
	dx, dy := planarPoint(destination)

	miles := math.Hypot(dx-ox, dy-oy)
	if miles < minMiles {
		miles = minMiles
	}

	return kernel.NewDistance(decimal.NewFromFloat(miles).Round(1))
}

// planarPoint hashes a location onto the synthetic plane. Postal code is
// excluded so that all addresses within a city share one point.
func planarPoint(location kernel.Location) (float64, float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(location.City()))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(location.State()))
	sum := h.Sum64()

	x := float64(sum&math.MaxUint32) / float64(math.MaxUint32) * gridSpan
	y := float64(sum>>32) / float64(math.MaxUint32) * gridSpan
	return x, y
}

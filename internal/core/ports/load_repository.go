package ports

import (
	"context"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
)

// LoadRepository defines the persistence contract for load aggregates on the
// command side; listings go through the read-model queries. Its semantics,
// especially ConditionalUpdate, define the concurrency protocol every backing
// store must honor.
type LoadRepository interface {
	// Create persists a new load. Fails with DuplicateKeyError when the
	// reference number already exists.
	Create(ctx context.Context, aggregate *load.Load) error

	// GetByID retrieves a load by identity, soft-deleted rows included.
	// Fails with LoadNotFoundError when no row exists.
	GetByID(ctx context.Context, id kernel.UUID) (*load.Load, error)

	// ConditionalUpdate commits the aggregate's state as a single atomic
	// write guarded by the version check: "UPDATE ... WHERE id = ? AND
	// version = ?". Zero matched rows, whether the load is gone or another
	// writer advanced the version, fail with VersionConflictError; the
	// conflict signal comes from this one statement, never from a separate
	// existence check. On success the stored version is expectedVersion+1,
	// updated_at is refreshed, and the new version is returned.
	ConditionalUpdate(ctx context.Context, aggregate *load.Load, expectedVersion int) (int, error)

	// MaxReferenceCounter returns the highest reference-number counter
	// already assigned in the given year and month, zero when none exists.
	MaxReferenceCounter(ctx context.Context, year int, month time.Month) (int, error)
}

package loadrepo

import (
	"context"
	"errors"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLoadRepository implements LoadRepository using GORM. Duplicate-key
// detection relies on the connection being opened with TranslateError, which
// maps the postgres unique violation onto gorm.ErrDuplicatedKey.
type GormLoadRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLoadRepository creates a new GORM load repository.
func NewGormLoadRepository(db *gorm.DB, tracker aggregateTracker) *GormLoadRepository {
	return &GormLoadRepository{
		db:      db,
		tracker: tracker,
	}
}

// Create saves a new load to the database.
func (r *GormLoadRepository) Create(ctx context.Context, aggregate *load.Load) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateKeyError("reference_number", dto.ReferenceNumber)
		}
		return errs.NewRepositoryError("create load", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByID retrieves a load by ID, soft-deleted rows included.
func (r *GormLoadRepository) GetByID(ctx context.Context, id kernel.UUID) (*load.Load, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LoadDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewLoadNotFoundError(id.String())
		}
		return nil, errs.NewRepositoryError("get load", err)
	}

	return toDomain(dto)
}

// ConditionalUpdate writes the aggregate's state in a single statement
// guarded by the version check. Zero matched rows mean another writer got
// there first (or the row is gone) and fail with VersionConflictError; the
// existence/version distinction is deliberately not made, since either way
// the caller's snapshot is stale. On success the stored version is
// expectedVersion+1.
func (r *GormLoadRepository) ConditionalUpdate(
	ctx context.Context,
	aggregate *load.Load,
	expectedVersion int,
) (int, error) {
	if err := aggregate.Validate(); err != nil {
		return 0, err
	}

	dto := fromDomain(aggregate)
	dto.Version = expectedVersion + 1

	// Select("*") forces cleared optional columns back to NULL; a plain
	// struct update would skip them as zero values.
	result := r.db.WithContext(ctx).
		Model(&LoadDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return 0, errs.NewRepositoryError("update load", result.Error)
	}

	if result.RowsAffected == 0 {
		return 0, errs.NewVersionConflictError(aggregate.ID().String(), expectedVersion)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return dto.Version, nil
}

// MaxReferenceCounter returns the highest reference-number counter already
// assigned in the given month, zero when the month has no loads yet.
func (r *GormLoadRepository) MaxReferenceCounter(ctx context.Context, year int, month time.Month) (int, error) {
	prefix := load.ReferenceNumberPrefix(year, month)

	var counter int
	err := r.db.WithContext(ctx).
		Model(&LoadDTO{}).
		Select("COALESCE(MAX(CAST(SUBSTRING(reference_number FROM ?) AS INTEGER)), 0)", len(prefix)+1).
		Where("reference_number LIKE ?", prefix+"%").
		Scan(&counter).Error
	if err != nil {
		return 0, errs.NewRepositoryError("max reference counter", err)
	}

	return counter, nil
}

package queries

import (
	"context"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// loadRow is the raw listing projection scanned from the loads table.
// rate_per_mile is computed by the database so that sorting and the returned
// value cannot disagree.
type loadRow struct {
	ID                uuid.UUID           `gorm:"column:id"`
	ReferenceNumber   string              `gorm:"column:reference_number"`
	OriginCity        string              `gorm:"column:origin_city"`
	OriginState       string              `gorm:"column:origin_state"`
	OriginPostalCode  string              `gorm:"column:origin_postal_code"`
	DestCity          string              `gorm:"column:dest_city"`
	DestState         string              `gorm:"column:dest_state"`
	DestPostalCode    string              `gorm:"column:dest_postal_code"`
	PickupAt          time.Time           `gorm:"column:pickup_at"`
	DeliveryAt        time.Time           `gorm:"column:delivery_at"`
	Rate              decimal.Decimal     `gorm:"column:rate"`
	RatePerMile       decimal.NullDecimal `gorm:"column:rate_per_mile"`
	Miles             decimal.NullDecimal `gorm:"column:miles"`
	Equipment         string              `gorm:"column:equipment"`
	Commodity         string              `gorm:"column:commodity"`
	WeightLbs         int                 `gorm:"column:weight_lbs"`
	Status            string              `gorm:"column:status"`
	CreatedAt         time.Time           `gorm:"column:created_at"`
	Version           int                 `gorm:"column:version"`
}

// ratePerMileExpr derives the rate/miles ratio, NULL when undefined.
const ratePerMileExpr = "CASE WHEN miles IS NULL OR miles <= 0 THEN NULL ELSE ROUND(rate / miles, 2) END"

// ListLoadsQueryHandler serves load listings straight from the database.
// The read model bypasses the aggregate: filters, ordering, and the derived
// rate-per-mile column are all pushed down to SQL.
type ListLoadsQueryHandler struct {
	db *gorm.DB
}

// NewListLoadsQueryHandler creates a handler for load listings.
func NewListLoadsQueryHandler(db *gorm.DB) ListLoadsQueryHandler {
	return ListLoadsQueryHandler{db: db}
}

// Handle executes the listing. Soft-deleted loads never appear. Ties on the
// sort key break by id ascending, so identical queries page identically.
func (h ListLoadsQueryHandler) Handle(ctx context.Context, query ListLoadsQuery) (ListLoadsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListLoadsResponse{}, err
	}

	params := query.Params()

	// Statements do not survive a finalizer like Count, so the filter scope
	// is rebuilt for each of the two queries.
	var total int64
	if err := h.filtered(ctx, params).Count(&total).Error; err != nil {
		return ListLoadsResponse{}, errs.NewRepositoryError("count loads", err)
	}

	offset := (params.Page - 1) * params.PageSize

	rows := make([]loadRow, 0, params.PageSize)
	err := h.filtered(ctx, params).
		Select("id, reference_number, origin_city, origin_state, origin_postal_code, " +
			"dest_city, dest_state, dest_postal_code, pickup_at, delivery_at, rate, " +
			ratePerMileExpr + " AS rate_per_mile, miles, equipment, commodity, " +
			"weight_lbs, status, created_at, version").
		Order(orderClause(params.SortBy, params.Descending)).
		Offset(offset).
		Limit(params.PageSize).
		Find(&rows).Error
	if err != nil {
		return ListLoadsResponse{}, errs.NewRepositoryError("list loads", err)
	}

	summaries := make([]LoadSummary, 0, len(rows))
	for i := range rows {
		summary, mapErr := rows[i].toSummary()
		if mapErr != nil {
			return ListLoadsResponse{}, mapErr
		}
		summaries = append(summaries, summary)
	}

	return ListLoadsResponse{
		Loads:       summaries,
		TotalCount:  total,
		Page:        params.Page,
		PageSize:    params.PageSize,
		HasNext:     int64(offset+len(summaries)) < total,
		HasPrevious: params.Page > 1,
	}, nil
}

func (h ListLoadsQueryHandler) filtered(ctx context.Context, params ListLoadsParams) *gorm.DB {
	scope := h.db.WithContext(ctx).Table("loads").Where("deleted_at IS NULL")
	if params.Status != nil {
		scope = scope.Where("status = ?", params.Status.String())
	}
	if params.Equipment != nil {
		scope = scope.Where("equipment = ?", string(*params.Equipment))
	}
	if params.PickupFrom != nil {
		scope = scope.Where("pickup_at >= ?", *params.PickupFrom)
	}
	if params.PickupTo != nil {
		scope = scope.Where("pickup_at <= ?", *params.PickupTo)
	}
	return scope
}

func orderClause(key SortBy, descending bool) string {
	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	switch key {
	case SortByPickupDate:
		return "pickup_at " + direction + ", id ASC"
	case SortByRate:
		return "rate " + direction + ", id ASC"
	case SortByRatePerMile:
		// Undefined ratios sort last in either direction.
		return ratePerMileExpr + " " + direction + " NULLS LAST, id ASC"
	default:
		return "created_at " + direction + ", id ASC"
	}
}

func (r *loadRow) toSummary() (LoadSummary, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return LoadSummary{}, err
	}

	origin, err := kernel.NewLocation(r.OriginCity, r.OriginState, r.OriginPostalCode)
	if err != nil {
		return LoadSummary{}, err
	}
	destination, err := kernel.NewLocation(r.DestCity, r.DestState, r.DestPostalCode)
	if err != nil {
		return LoadSummary{}, err
	}

	rate, err := kernel.NewMoney(r.Rate)
	if err != nil {
		return LoadSummary{}, err
	}

	var ratePerMile *kernel.Money
	if r.RatePerMile.Valid {
		rpm, rpmErr := kernel.NewMoney(r.RatePerMile.Decimal)
		if rpmErr != nil {
			return LoadSummary{}, rpmErr
		}
		ratePerMile = &rpm
	}

	var miles *kernel.Distance
	if r.Miles.Valid {
		distance, distErr := kernel.NewDistance(r.Miles.Decimal)
		if distErr != nil {
			return LoadSummary{}, distErr
		}
		miles = &distance
	}

	status, err := load.StatusFromString(r.Status)
	if err != nil {
		return LoadSummary{}, err
	}

	return LoadSummary{
		ID:              id,
		ReferenceNumber: r.ReferenceNumber,
		Origin:          origin,
		Destination:     destination,
		PickupAt:        r.PickupAt,
		DeliveryAt:      r.DeliveryAt,
		Rate:            rate,
		RatePerMile:     ratePerMile,
		Miles:           miles,
		Equipment:       load.EquipmentType(r.Equipment),
		Commodity:       r.Commodity,
		WeightLbs:       r.WeightLbs,
		Status:          status,
		CreatedAt:       r.CreatedAt,
		Version:         r.Version,
	}, nil
}
